// handlers/health_handler.go
package handlers

import (
	"net/http"

	"github.com/mtu-cubesat/swarm/dashboard/services"
)

// Healthz reports that the process is up.
func Healthz(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports 503 until the telemetry log is loaded. A failed load keeps
// it at 503 for the life of the process.
func Readyz(dash *services.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !dash.Ready() {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
