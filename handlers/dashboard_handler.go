// handlers/dashboard_handler.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/mtu-cubesat/swarm/dashboard/models"
	"github.com/mtu-cubesat/swarm/dashboard/services"
	"github.com/mtu-cubesat/swarm/dashboard/web"
)

type pageData struct {
	models.PageSnapshot
	NoDataMessage string
}

// DashboardHandler serves the HTML page and the form clicks posted from it.
type DashboardHandler struct {
	dash *services.Dashboard
	tmpl *template.Template
}

func NewDashboardHandler(dash *services.Dashboard) (*DashboardHandler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	return &DashboardHandler{dash: dash, tmpl: tmpl}, nil
}

// Render executes the page template for snap.
func (h *DashboardHandler) Render(snap models.PageSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	data := pageData{PageSnapshot: snap, NoDataMessage: models.MessageNoData}
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

// Verify renders the current page and checks it against the markup the
// controller drives.
func (h *DashboardHandler) Verify() error {
	page, err := h.Render(h.dash.Snapshot())
	if err != nil {
		return err
	}
	return VerifyMarkup(page, models.SatelliteCount)
}

// ServePage handles GET /.
func (h *DashboardHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	page, err := h.Render(h.dash.Snapshot())
	if err != nil {
		log.Errorf("Handler: %v", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// PrimaryClick handles POST /boxes/{n}/primary.
func (h *DashboardHandler) PrimaryClick(w http.ResponseWriter, r *http.Request) {
	h.boxClick(w, r, h.dash.TogglePrimary)
}

// SecondaryClick handles POST /boxes/{n}/secondary.
func (h *DashboardHandler) SecondaryClick(w http.ResponseWriter, r *http.Request) {
	h.boxClick(w, r, h.dash.ToggleSecondary)
}

// OverlayClick handles POST /overlay.
func (h *DashboardHandler) OverlayClick(w http.ResponseWriter, r *http.Request) {
	_, err := h.dash.ClickOverlay()
	h.afterClick(w, r, err)
}

func (h *DashboardHandler) boxClick(w http.ResponseWriter, r *http.Request, click func(int) (models.PageSnapshot, error)) {
	n, err := satelliteFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	_, err = click(n)
	h.afterClick(w, r, err)
}

// afterClick sends the browser back to the page. A click the page should not
// have offered (stale form, log not loaded) is logged and otherwise ignored.
func (h *DashboardHandler) afterClick(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		if errors.Is(err, services.ErrUnknownSatellite) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.WithField("path", r.URL.Path).Warnf("Handler: click ignored: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
