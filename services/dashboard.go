// services/dashboard.go
package services

import (
	"errors"
	"sync"
	"time"

	"github.com/mtu-cubesat/swarm/dashboard/models"
)

// ErrNotReady is returned for clicks while no telemetry table is attached.
var ErrNotReady = errors.New("dashboard not ready")

// Dashboard owns the page view-models and, once the log is loaded, the
// controller driving them. All access goes through one mutex, so clicks from
// concurrent HTTP requests are applied one at a time.
type Dashboard struct {
	mu       sync.Mutex
	boxes    []*BoxModel
	page     *PageModel
	ctrl     *Controller
	table    *LogTable
	source   string
	loadedAt time.Time
	loadErr  error
}

// NewDashboard returns a dashboard in the page's default state with no table
// attached. Until Attach succeeds every click answers ErrNotReady.
func NewDashboard() *Dashboard {
	d := &Dashboard{page: &PageModel{}}
	for n := 1; n <= models.SatelliteCount; n++ {
		d.boxes = append(d.boxes, NewBoxModel(n))
	}
	return d
}

// Attach binds the loaded table and wires the boxes. It may only succeed once.
func (d *Dashboard) Attach(table *LogTable, source string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctrl != nil {
		return errors.New("dashboard already attached")
	}

	views := make([]BoxView, len(d.boxes))
	for i, b := range d.boxes {
		views[i] = b
	}
	ctrl, err := NewController(table, views, d.page)
	if err != nil {
		return err
	}
	d.ctrl = ctrl
	d.table = table
	d.source = source
	d.loadedAt = time.Now().UTC()
	d.loadErr = nil
	return nil
}

// MarkLoadFailed records why the table could not be loaded. The dashboard
// stays in its default state.
func (d *Dashboard) MarkLoadFailed(source string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = source
	d.loadErr = err
}

// Ready reports whether a table is attached.
func (d *Dashboard) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrl != nil
}

// Table returns the attached table, or nil before Attach.
func (d *Dashboard) Table() *LogTable {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.table
}

func (d *Dashboard) TogglePrimary(n int) (models.PageSnapshot, error) {
	return d.click(func(c *Controller) error { return c.TogglePrimary(n) })
}

func (d *Dashboard) ToggleSecondary(n int) (models.PageSnapshot, error) {
	return d.click(func(c *Controller) error { return c.ToggleSecondary(n) })
}

func (d *Dashboard) ClickOverlay() (models.PageSnapshot, error) {
	return d.click(func(c *Controller) error {
		c.ClickOverlay()
		return nil
	})
}

// Snapshot returns the current visual state of the page.
func (d *Dashboard) Snapshot() models.PageSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Status reports what was loaded and from where.
func (d *Dashboard) Status() models.StatusResponse {
	d.mu.Lock()
	defer d.mu.Unlock()

	resp := models.StatusResponse{
		Ready:   d.ctrl != nil,
		Source:  d.source,
		Records: d.table.Len(),
	}
	if !d.loadedAt.IsZero() {
		t := d.loadedAt
		resp.LoadedAt = &t
	}
	if d.loadErr != nil {
		resp.LoadError = d.loadErr.Error()
	}
	for _, b := range d.boxes {
		_, found := d.table.FindLatest(b.snap.Number)
		resp.Satellites = append(resp.Satellites, models.SatelliteStatus{
			Number:   b.snap.Number,
			Callsign: b.snap.Callsign,
			HasData:  found,
		})
	}
	return resp
}

func (d *Dashboard) click(fn func(c *Controller) error) (models.PageSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctrl == nil {
		return d.snapshotLocked(), ErrNotReady
	}
	err := fn(d.ctrl)
	return d.snapshotLocked(), err
}

func (d *Dashboard) snapshotLocked() models.PageSnapshot {
	snap := models.PageSnapshot{
		Ready:          d.ctrl != nil,
		OverlayVisible: d.page.OverlayVisible,
		ScrollLocked:   d.page.ScrollLocked,
	}
	for _, b := range d.boxes {
		s := b.Snapshot()
		if d.ctrl != nil {
			if state, err := d.ctrl.State(s.Number); err == nil {
				s.State = state
			}
		}
		snap.Boxes = append(snap.Boxes, s)
	}
	return snap
}
