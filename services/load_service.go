// services/load_service.go
package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mtu-cubesat/swarm/dashboard/loader"
	"github.com/mtu-cubesat/swarm/dashboard/metrics"
)

// LoadDashboard loads the telemetry log once from src and attaches it to d.
// On failure the dashboard is left in its default state and the error is
// returned; nothing is retried.
func LoadDashboard(ctx context.Context, d *Dashboard, src loader.Source) error {
	log.Printf("Service: loading telemetry log from %s", src.Name())

	records, err := src.Load(ctx)
	if err != nil {
		return LoadFailed(d, src.Name(), err)
	}

	table := NewLogTable(records)
	if err := d.Attach(table, src.Name()); err != nil {
		return fmt.Errorf("failed to attach telemetry log: %w", err)
	}
	metrics.LogRecordsLoaded.Set(float64(table.Len()))

	log.WithFields(log.Fields{"records": table.Len(), "source": src.Name()}).Info("Service: dashboard ready")
	return nil
}

// LoadFailed counts a failed load of the telemetry log, records it on d so the
// dashboard stays inert, and returns the wrapped error.
func LoadFailed(d *Dashboard, source string, err error) error {
	metrics.LogLoadFailures.Inc()
	d.MarkLoadFailed(source, err)
	return fmt.Errorf("failed to load telemetry log from %s: %w", source, err)
}
