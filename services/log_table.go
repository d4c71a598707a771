// services/log_table.go
package services

import (
	"github.com/mtu-cubesat/swarm/dashboard/models"
	"github.com/mtu-cubesat/swarm/dashboard/utils"
)

// LogTable is the telemetry log as loaded at startup. It is never modified
// after NewLogTable returns, so it can be shared without locking.
type LogTable struct {
	records []models.LogRecord
	// last index of each source value, built once
	lastIndex map[string]int
}

// NewLogTable copies records (file order, oldest first) into a read-only table.
func NewLogTable(records []models.LogRecord) *LogTable {
	t := &LogTable{
		records:   make([]models.LogRecord, len(records)),
		lastIndex: make(map[string]int),
	}
	copy(t.records, records)
	for i, rec := range t.records {
		t.lastIndex[rec.Source] = i
	}
	return t
}

// Len returns the number of records.
func (t *LogTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Tail returns a copy of the last n records (all of them if n <= 0 or n > Len).
func (t *LogTable) Tail(n int) []models.LogRecord {
	if t == nil {
		return []models.LogRecord{}
	}
	if n <= 0 || n > len(t.records) {
		n = len(t.records)
	}
	out := make([]models.LogRecord, n)
	copy(out, t.records[len(t.records)-n:])
	return out
}

// FindLatest returns the last record, in file order, whose source is the
// callsign of satellite n. The boolean is false when there is no such record.
func (t *LogTable) FindLatest(n int) (models.LogRecord, bool) {
	if t == nil {
		return models.LogRecord{}, false
	}
	i, ok := t.lastIndex[utils.Callsign(n)]
	if !ok {
		return models.LogRecord{}, false
	}
	return t.records[i], true
}

// scanLatest is the index-free lookup: a backward scan over the records.
func (t *LogTable) scanLatest(n int) (models.LogRecord, bool) {
	callsign := utils.Callsign(n)
	for i := len(t.records) - 1; i >= 0; i-- {
		if t.records[i].Source == callsign {
			return t.records[i], true
		}
	}
	return models.LogRecord{}, false
}
