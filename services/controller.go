// services/controller.go
package services

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mtu-cubesat/swarm/dashboard/metrics"
	"github.com/mtu-cubesat/swarm/dashboard/models"
)

var (
	// ErrUnknownSatellite is returned for a box number outside 1..SatelliteCount.
	ErrUnknownSatellite = errors.New("unknown satellite")
	// ErrControlHidden is returned when a click targets a control that is not
	// displayed in the box's current state.
	ErrControlHidden = errors.New("control is hidden in the current state")
)

type boxBinding struct {
	number int
	view   BoxView
	state  models.BoxState
}

// Controller runs the click state machine of the satellite boxes. It is not
// safe for concurrent use; Dashboard serializes calls into it.
type Controller struct {
	table *LogTable
	boxes []*boxBinding
	page  PageView
}

// NewController binds one view per satellite (views[0] is satellite 1) to the
// table and performs the initial render: the wave indicator of a satellite
// with no record is hidden.
func NewController(table *LogTable, views []BoxView, page PageView) (*Controller, error) {
	if len(views) != models.SatelliteCount {
		return nil, fmt.Errorf("expected %d satellite boxes, got %d", models.SatelliteCount, len(views))
	}
	if page == nil {
		return nil, errors.New("page view is required")
	}

	c := &Controller{table: table, page: page}
	for i, v := range views {
		if v == nil {
			return nil, fmt.Errorf("satellite box %d has no view", i+1)
		}
		c.boxes = append(c.boxes, &boxBinding{number: i + 1, view: v, state: models.BoxCollapsed})
	}

	for _, b := range c.boxes {
		_, found := c.table.FindLatest(b.number)
		b.view.SetWaveVisible(found)
		if !found {
			log.WithField("satellite", b.number).Info("Service: no telemetry for satellite, hiding wave indicator")
		}
	}
	return c, nil
}

// State returns the state of box n.
func (c *Controller) State(n int) (models.BoxState, error) {
	b, err := c.box(n)
	if err != nil {
		return models.BoxCollapsed, err
	}
	return b.state, nil
}

// TogglePrimary handles a click on the "Show details"/"Hide details" button of box n.
func (c *Controller) TogglePrimary(n int) error {
	b, err := c.box(n)
	if err != nil {
		return err
	}
	switch b.state {
	case models.BoxCollapsed:
		c.showSummary(b)
	case models.BoxShowingSummary:
		c.collapse(b)
	default:
		return fmt.Errorf("primary toggle of satellite %d: %w", n, ErrControlHidden)
	}
	return nil
}

// ToggleSecondary handles a click on the "More details"/"Hide more details" button of box n.
func (c *Controller) ToggleSecondary(n int) error {
	b, err := c.box(n)
	if err != nil {
		return err
	}
	switch b.state {
	case models.BoxShowingSummary:
		c.expand(b)
	case models.BoxShowingFull:
		c.shrink(b)
	default:
		return fmt.Errorf("secondary toggle of satellite %d: %w", n, ErrControlHidden)
	}
	return nil
}

// ClickOverlay closes every expanded box back to its summary. When no box is
// expanded it resets every box to collapsed instead.
func (c *Controller) ClickOverlay() {
	closed := 0
	for _, b := range c.boxes {
		if b.state == models.BoxShowingFull {
			c.shrink(b)
			closed++
		}
	}
	if closed > 0 {
		return
	}

	for _, b := range c.boxes {
		v := b.view
		v.SetExpanded(false)
		v.SetTranslated(false)
		v.SetSummaryVisible(false)
		v.SetDetailsVisible(false)
		v.SetPrimaryLabel(models.LabelShowDetails)
		v.SetSecondaryLabel(models.LabelMoreDetails)
		v.SetSecondaryVisible(false)
		b.state = models.BoxCollapsed
	}
	c.page.SetOverlayVisible(false)
	c.page.SetScrollLocked(false)
	metrics.BoxTransitions.WithLabelValues(metrics.TransitionOverlayReset).Inc()
	log.Debug("Service: overlay reset all satellite boxes")
}

func (c *Controller) box(n int) (*boxBinding, error) {
	if n < 1 || n > len(c.boxes) {
		return nil, fmt.Errorf("satellite %d: %w", n, ErrUnknownSatellite)
	}
	return c.boxes[n-1], nil
}

func (c *Controller) showSummary(b *boxBinding) {
	v := b.view
	rec, found := c.table.FindLatest(b.number)
	if found {
		v.RenderSummary(summaryPanel(rec))
		v.SetWaveVisible(true)
	} else {
		v.RenderSummary(models.SummaryPanel{NoData: true})
		v.SetWaveVisible(false)
	}
	v.SetSummaryVisible(true)
	v.SetDetailsVisible(false)
	v.SetPrimaryLabel(models.LabelHideDetails)
	v.SetSecondaryVisible(true)
	v.SetSecondaryLabel(models.LabelMoreDetails)
	v.SetTranslated(true)
	v.SetExpanded(false)
	c.page.SetOverlayVisible(false)

	b.state = models.BoxShowingSummary
	c.transitioned(b, metrics.TransitionShowSummary, found)
}

func (c *Controller) collapse(b *boxBinding) {
	v := b.view
	v.SetSummaryVisible(false)
	v.SetDetailsVisible(false)
	v.SetPrimaryLabel(models.LabelShowDetails)
	v.SetSecondaryVisible(false)
	v.SetSecondaryLabel(models.LabelMoreDetails)
	v.SetTranslated(false)
	v.SetExpanded(false)
	c.page.SetOverlayVisible(false)
	// The wave comes back even for a satellite without data.
	v.SetWaveVisible(true)

	b.state = models.BoxCollapsed
	c.transitioned(b, metrics.TransitionCollapse, true)
}

func (c *Controller) expand(b *boxBinding) {
	v := b.view
	rec, found := c.table.FindLatest(b.number)
	if found {
		v.RenderDetails(detailPanel(rec))
	} else {
		v.RenderDetails(models.DetailPanel{NoData: true})
	}
	v.SetDetailsVisible(true)
	v.SetSecondaryLabel(models.LabelHideMoreDetails)
	v.SetSummaryVisible(false)
	v.SetPrimaryVisible(false)
	v.SetExpanded(true)
	v.SetTranslated(false)
	c.page.SetOverlayVisible(true)
	c.page.SetScrollLocked(true)

	b.state = models.BoxShowingFull
	c.transitioned(b, metrics.TransitionExpand, found)
}

func (c *Controller) shrink(b *boxBinding) {
	v := b.view
	v.SetDetailsVisible(false)
	v.SetSecondaryLabel(models.LabelMoreDetails)
	v.SetSummaryVisible(true)
	v.SetExpanded(false)
	v.SetTranslated(true)
	c.page.SetOverlayVisible(false)
	c.page.SetScrollLocked(false)
	v.SetPrimaryVisible(true)

	b.state = models.BoxShowingSummary
	c.transitioned(b, metrics.TransitionShrink, true)
}

func (c *Controller) transitioned(b *boxBinding, transition string, found bool) {
	metrics.BoxTransitions.WithLabelValues(transition).Inc()
	log.WithFields(log.Fields{
		"satellite":  b.number,
		"transition": transition,
		"state":      b.state.String(),
		"has_data":   found,
	}).Debug("Service: satellite box transition")
}

func summaryPanel(rec models.LogRecord) models.SummaryPanel {
	return models.SummaryPanel{
		Time:      rec.ISOTime,
		Battery:   ExtractBattery(rec.Comment) + " V",
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		// The summary always reads OK, whatever the record's status column says.
		Status: models.StatusOK,
	}
}

func detailPanel(rec models.LogRecord) models.DetailPanel {
	status := rec.Status
	if status == "" {
		status = models.StatusOK
	}
	return models.DetailPanel{Rows: []models.DetailRow{
		{Label: "Callsign", Value: rec.Source},
		{Label: "Latitude", Value: rec.Latitude},
		{Label: "Longitude", Value: rec.Longitude},
		{Label: "Altitude", Value: rec.Altitude},
		{Label: "Battery", Value: ExtractBattery(rec.Comment) + " V"},
		{Label: "Time", Value: rec.ISOTime},
		{Label: "Status", Value: status},
		{Label: "Comment", Value: rec.Comment},
	}}
}
