// models/log_record.go
package models

// SatelliteCount is the number of satellite boxes on the dashboard.
const SatelliteCount = 4

// LogRecord represents one row of the ground-station telemetry log (donnees.txt).
// CSV tags match the header names written by the ground station.
// A column missing from a row is left as the empty string.
type LogRecord struct {
	// Source is the callsign, e.g. "MTU1-11".
	Source    string `csv:"source" json:"source"`
	ISOTime   string `csv:"isotime" json:"isotime"`
	Latitude  string `csv:"latitude" json:"latitude"`
	Longitude string `csv:"longitude" json:"longitude"`
	Altitude  string `csv:"altitude" json:"altitude,omitempty"`
	// Status is optional; the dashboard shows "OK" when it is empty.
	Status string `csv:"status" json:"status,omitempty"`
	// Comment is free text and may carry a battery reading ("BAT 3.7").
	Comment string `csv:"comment" json:"comment,omitempty"`

	// Columns with no matching field above, keyed by header name.
	Extra map[string]string `csv:"-" json:"extra,omitempty"`
}
