// models/api_models.go
package models

import "time"

// LatestRecordResponse is returned by GET /api/satellites/{n}/latest.
// Found is false when the log holds no row for the callsign.
type LatestRecordResponse struct {
	Number   int        `json:"number"`
	Callsign string     `json:"callsign"`
	Found    bool       `json:"found"`
	Battery  string     `json:"battery"`
	Record   *LogRecord `json:"record,omitempty"`
}

// SatelliteStatus tells whether the log holds data for one satellite.
type SatelliteStatus struct {
	Number   int    `json:"number"`
	Callsign string `json:"callsign"`
	HasData  bool   `json:"has_data"`
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	Ready      bool              `json:"ready"`
	Source     string            `json:"source"`
	LoadedAt   *time.Time        `json:"loaded_at,omitempty"`
	Records    int               `json:"records"`
	LoadError  string            `json:"load_error,omitempty"`
	Satellites []SatelliteStatus `json:"satellites"`
}
