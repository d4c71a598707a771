// models/dashboard.go
package models

import "fmt"

// BoxState is the position of one satellite box in its toggle cycle.
type BoxState int

const (
	BoxCollapsed BoxState = iota
	BoxShowingSummary
	BoxShowingFull
)

func (s BoxState) String() string {
	switch s {
	case BoxCollapsed:
		return "collapsed"
	case BoxShowingSummary:
		return "showing_summary"
	case BoxShowingFull:
		return "showing_full"
	default:
		return "unknown"
	}
}

// MarshalText lets BoxState appear by name in JSON snapshots.
func (s BoxState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BoxState) UnmarshalText(text []byte) error {
	for _, st := range []BoxState{BoxCollapsed, BoxShowingSummary, BoxShowingFull} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown box state %q", text)
}

// Labels and messages shown on the dashboard.
const (
	LabelShowDetails     = "Show details"
	LabelHideDetails     = "Hide details"
	LabelMoreDetails     = "More details"
	LabelHideMoreDetails = "Hide more details"
	MessageNoData        = "No data available for this cubesat."
	StatusOK             = "OK"
)

// SummaryPanel is the short summary (data-section) of a box.
type SummaryPanel struct {
	NoData    bool   `json:"no_data"`
	Time      string `json:"time,omitempty"`
	Battery   string `json:"battery,omitempty"` // Already suffixed with " V"
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	Status    string `json:"status,omitempty"`
}

// DetailRow is one line of the extended attribute table.
type DetailRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DetailPanel is the extended table (more-data-section) of a box.
type DetailPanel struct {
	NoData bool        `json:"no_data"`
	Rows   []DetailRow `json:"rows,omitempty"`
}

// BoxSnapshot is the complete visual state of one satellite box.
type BoxSnapshot struct {
	Number           int          `json:"number"`
	Callsign         string       `json:"callsign"`
	State            BoxState     `json:"state"`
	PrimaryLabel     string       `json:"primary_label"`
	PrimaryVisible   bool         `json:"primary_visible"`
	SecondaryLabel   string       `json:"secondary_label"`
	SecondaryVisible bool         `json:"secondary_visible"`
	SummaryVisible   bool         `json:"summary_visible"`
	DetailsVisible   bool         `json:"details_visible"`
	Translated       bool         `json:"translated"`
	Expanded         bool         `json:"expanded"`
	WaveVisible      bool         `json:"wave_visible"`
	Summary          SummaryPanel `json:"summary"`
	Details          DetailPanel  `json:"details"`
}

// PageSnapshot is the visual state of the whole dashboard page.
type PageSnapshot struct {
	Ready          bool          `json:"ready"`
	OverlayVisible bool          `json:"overlay_visible"`
	ScrollLocked   bool          `json:"scroll_locked"`
	Boxes          []BoxSnapshot `json:"boxes"`
}
