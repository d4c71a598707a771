// services/view_model.go
package services

import (
	"github.com/mtu-cubesat/swarm/dashboard/models"
	"github.com/mtu-cubesat/swarm/dashboard/utils"
)

// BoxView is the set of page regions of one satellite box that the
// controller drives.
type BoxView interface {
	RenderSummary(panel models.SummaryPanel)
	RenderDetails(panel models.DetailPanel)
	SetSummaryVisible(visible bool)
	SetDetailsVisible(visible bool)
	SetPrimaryLabel(label string)
	SetPrimaryVisible(visible bool)
	SetSecondaryLabel(label string)
	SetSecondaryVisible(visible bool)
	SetTranslated(on bool)
	SetExpanded(on bool)
	SetWaveVisible(visible bool)
}

// PageView holds the regions shared by all boxes.
type PageView interface {
	SetOverlayVisible(visible bool)
	SetScrollLocked(locked bool)
}

// BoxModel is the in-memory BoxView the HTML page is rendered from.
type BoxModel struct {
	snap models.BoxSnapshot
}

// NewBoxModel returns box n in the state the page markup starts in.
func NewBoxModel(n int) *BoxModel {
	return &BoxModel{snap: models.BoxSnapshot{
		Number:         n,
		Callsign:       utils.Callsign(n),
		State:          models.BoxCollapsed,
		PrimaryLabel:   models.LabelShowDetails,
		PrimaryVisible: true,
		SecondaryLabel: models.LabelMoreDetails,
		WaveVisible:    true,
	}}
}

func (b *BoxModel) RenderSummary(panel models.SummaryPanel) { b.snap.Summary = panel }
func (b *BoxModel) RenderDetails(panel models.DetailPanel)  { b.snap.Details = panel }
func (b *BoxModel) SetSummaryVisible(visible bool)          { b.snap.SummaryVisible = visible }
func (b *BoxModel) SetDetailsVisible(visible bool)          { b.snap.DetailsVisible = visible }
func (b *BoxModel) SetPrimaryLabel(label string)            { b.snap.PrimaryLabel = label }
func (b *BoxModel) SetPrimaryVisible(visible bool)          { b.snap.PrimaryVisible = visible }
func (b *BoxModel) SetSecondaryLabel(label string)          { b.snap.SecondaryLabel = label }
func (b *BoxModel) SetSecondaryVisible(visible bool)        { b.snap.SecondaryVisible = visible }
func (b *BoxModel) SetTranslated(on bool)                   { b.snap.Translated = on }
func (b *BoxModel) SetExpanded(on bool)                     { b.snap.Expanded = on }
func (b *BoxModel) SetWaveVisible(visible bool)             { b.snap.WaveVisible = visible }

// Snapshot returns a copy of the box state. State is filled in by the caller
// that owns the controller.
func (b *BoxModel) Snapshot() models.BoxSnapshot {
	s := b.snap
	if s.Details.Rows != nil {
		s.Details.Rows = append([]models.DetailRow(nil), s.Details.Rows...)
	}
	return s
}

// PageModel is the in-memory PageView.
type PageModel struct {
	OverlayVisible bool
	ScrollLocked   bool
}

func (p *PageModel) SetOverlayVisible(visible bool) { p.OverlayVisible = visible }
func (p *PageModel) SetScrollLocked(locked bool)    { p.ScrollLocked = locked }
