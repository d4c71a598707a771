// handlers/api_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/mtu-cubesat/swarm/dashboard/models"
	"github.com/mtu-cubesat/swarm/dashboard/services"
	"github.com/mtu-cubesat/swarm/dashboard/utils"
)

// DefaultLogLimit is the number of records /api/log returns without ?limit.
const DefaultLogLimit = 50

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Handler: marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Warnf("Handler: API error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrControlHidden):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnknownSatellite):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func satelliteFromPath(r *http.Request) (int, error) {
	return utils.ParseSatelliteNumber(r.PathValue("n"), models.SatelliteCount)
}

// APIHandler serves the JSON view of the dashboard.
type APIHandler struct {
	dash *services.Dashboard
}

func NewAPIHandler(dash *services.Dashboard) *APIHandler {
	return &APIHandler{dash: dash}
}

// Dashboard handles GET /api/dashboard.
func (h *APIHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.dash.Snapshot())
}

// Primary handles POST /api/boxes/{n}/primary.
func (h *APIHandler) Primary(w http.ResponseWriter, r *http.Request) {
	h.boxClick(w, r, h.dash.TogglePrimary)
}

// Secondary handles POST /api/boxes/{n}/secondary.
func (h *APIHandler) Secondary(w http.ResponseWriter, r *http.Request) {
	h.boxClick(w, r, h.dash.ToggleSecondary)
}

// Overlay handles POST /api/overlay.
func (h *APIHandler) Overlay(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dash.ClickOverlay()
	h.respondWithSnapshot(w, snap, err)
}

func (h *APIHandler) boxClick(w http.ResponseWriter, r *http.Request, click func(int) (models.PageSnapshot, error)) {
	n, err := satelliteFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	snap, err := click(n)
	h.respondWithSnapshot(w, snap, err)
}

func (h *APIHandler) respondWithSnapshot(w http.ResponseWriter, snap models.PageSnapshot, err error) {
	if err != nil {
		respondWithError(w, statusFor(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// Latest handles GET /api/satellites/{n}/latest.
func (h *APIHandler) Latest(w http.ResponseWriter, r *http.Request) {
	n, err := satelliteFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	table := h.dash.Table()
	if table == nil {
		respondWithError(w, http.StatusServiceUnavailable, services.ErrNotReady.Error())
		return
	}

	resp := models.LatestRecordResponse{Number: n, Callsign: utils.Callsign(n)}
	if rec, found := table.FindLatest(n); found {
		resp.Found = true
		resp.Battery = services.ExtractBattery(rec.Comment)
		resp.Record = &rec
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// Log handles GET /api/log?limit=N and returns the last N records in file order.
func (h *APIHandler) Log(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLogLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	table := h.dash.Table()
	if table == nil {
		respondWithError(w, http.StatusServiceUnavailable, services.ErrNotReady.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, table.Tail(limit))
}

// Status handles GET /api/status.
func (h *APIHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.dash.Status())
}
