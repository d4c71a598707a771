// database/telemetry_store.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/mtu-cubesat/swarm/dashboard/models"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TelemetrySource reads the log rows from a table holding one column per log
// field. Rows come back in insertion order (by id), which stands in for file
// order.
type TelemetrySource struct {
	DB    *sql.DB
	Table string
}

// NewTelemetrySource checks the table name, which is spliced into the query.
func NewTelemetrySource(db *sql.DB, table string) (*TelemetrySource, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid telemetry table name %q", table)
	}
	return &TelemetrySource{DB: db, Table: table}, nil
}

func (s *TelemetrySource) Name() string {
	return "database " + s.Table
}

// Load returns every row of the table. NULL columns read as empty fields.
func (s *TelemetrySource) Load(ctx context.Context) ([]models.LogRecord, error) {
	query := fmt.Sprintf(`
		SELECT source, isotime, latitude, longitude, altitude, status, comment
		FROM %s
		ORDER BY id
	`, s.Table)

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.Table, err)
	}
	defer rows.Close()

	records := []models.LogRecord{}
	for rows.Next() {
		var source, isoTime, lat, lon, alt, status, comment sql.NullString
		if err := rows.Scan(&source, &isoTime, &lat, &lon, &alt, &status, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan %s row %d: %w", s.Table, len(records)+1, err)
		}
		records = append(records, models.LogRecord{
			Source:    source.String,
			ISOTime:   isoTime.String,
			Latitude:  lat.String,
			Longitude: lon.String,
			Altitude:  alt.String,
			Status:    status.String,
			Comment:   comment.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", s.Table, err)
	}

	log.Printf("Database: read %d telemetry rows from %s", len(records), s.Table)
	return records, nil
}
