// handlers/router.go
package handlers

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mtu-cubesat/swarm/dashboard/metrics"
	"github.com/mtu-cubesat/swarm/dashboard/services"
	"github.com/mtu-cubesat/swarm/dashboard/web"
)

// NewRouter registers every route of the dashboard and wraps the mux in the
// metrics and request logging middleware. It fails when the page markup does
// not carry the elements the controller drives.
func NewRouter(dash *services.Dashboard) (http.Handler, error) {
	pages, err := NewDashboardHandler(dash)
	if err != nil {
		return nil, err
	}
	if err := pages.Verify(); err != nil {
		return nil, err
	}
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}
	api := NewAPIHandler(dash)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", pages.ServePage)
	mux.HandleFunc("POST /boxes/{n}/primary", pages.PrimaryClick)
	mux.HandleFunc("POST /boxes/{n}/secondary", pages.SecondaryClick)
	mux.HandleFunc("POST /overlay", pages.OverlayClick)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /api/dashboard", api.Dashboard)
	mux.HandleFunc("POST /api/boxes/{n}/primary", api.Primary)
	mux.HandleFunc("POST /api/boxes/{n}/secondary", api.Secondary)
	mux.HandleFunc("POST /api/overlay", api.Overlay)
	mux.HandleFunc("GET /api/satellites/{n}/latest", api.Latest)
	mux.HandleFunc("GET /api/log", api.Log)
	mux.HandleFunc("GET /api/status", api.Status)

	mux.HandleFunc("GET /healthz", Healthz)
	mux.HandleFunc("GET /readyz", Readyz(dash))
	mux.Handle("GET /metrics", metrics.Handler())

	// metrics -> logging -> mux
	var handler http.Handler = mux
	handler = loggingMiddleware(handler)
	handler = metrics.Middleware(handler)
	return handler, nil
}

func probePath(path string) bool {
	return path == "/healthz" || path == "/readyz" || path == "/metrics"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sr, r)

		entry := log.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sr.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_ip":   r.RemoteAddr,
		})
		if probePath(r.URL.Path) {
			entry.Debug("Handler: request")
			return
		}
		entry.Info("Handler: request")
	})
}
