package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mtu-cubesat/swarm/dashboard/metrics"
	"github.com/mtu-cubesat/swarm/dashboard/models"
)

type fakeSource struct {
	records []models.LogRecord
	err     error
}

func (f fakeSource) Name() string { return "fake" }

func (f fakeSource) Load(ctx context.Context) ([]models.LogRecord, error) {
	return f.records, f.err
}

func TestLoadDashboard(t *testing.T) {
	d := NewDashboard()
	if err := LoadDashboard(context.Background(), d, fakeSource{records: fixtureRecords()}); err != nil {
		t.Fatalf("LoadDashboard: %v", err)
	}
	if !d.Ready() {
		t.Fatal("dashboard not ready after load")
	}
	if got := testutil.ToFloat64(metrics.LogRecordsLoaded); got != 4 {
		t.Errorf("records gauge = %v, want 4", got)
	}
	if st := d.Status(); st.Source != "fake" || st.Records != 4 {
		t.Errorf("status = %+v", st)
	}
}

func TestLoadDashboardFailureLeavesDashboardInert(t *testing.T) {
	before := testutil.ToFloat64(metrics.LogLoadFailures)
	loadErr := errors.New("connection refused")

	d := NewDashboard()
	err := LoadDashboard(context.Background(), d, fakeSource{err: loadErr})
	if !errors.Is(err, loadErr) {
		t.Fatalf("err = %v, want wrapped %v", err, loadErr)
	}
	if d.Ready() {
		t.Error("dashboard ready after failed load")
	}
	if got := testutil.ToFloat64(metrics.LogLoadFailures) - before; got != 1 {
		t.Errorf("failure counter grew by %v, want 1", got)
	}
	if _, err := d.TogglePrimary(1); !errors.Is(err, ErrNotReady) {
		t.Errorf("click err = %v, want ErrNotReady", err)
	}
	if st := d.Status(); st.LoadError == "" || st.Source != "fake" {
		t.Errorf("status = %+v", st)
	}
}

func TestLoadDashboardEmptyLog(t *testing.T) {
	d := NewDashboard()
	if err := LoadDashboard(context.Background(), d, fakeSource{}); err != nil {
		t.Fatalf("LoadDashboard: %v", err)
	}
	snap, err := d.TogglePrimary(2)
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Boxes[1].Summary.NoData || snap.Boxes[1].WaveVisible {
		t.Errorf("box 2 = %+v, want no data and hidden wave", snap.Boxes[1])
	}
}

func TestLoadFailedCountsAndRecords(t *testing.T) {
	before := testutil.ToFloat64(metrics.LogLoadFailures)
	openErr := errors.New("failed to ping database")

	d := NewDashboard()
	err := LoadFailed(d, "database telemetry_log", openErr)
	if !errors.Is(err, openErr) {
		t.Fatalf("err = %v, want wrapped %v", err, openErr)
	}
	if got := testutil.ToFloat64(metrics.LogLoadFailures) - before; got != 1 {
		t.Errorf("failure counter grew by %v, want 1", got)
	}
	st := d.Status()
	if st.Ready || st.Source != "database telemetry_log" || st.LoadError != openErr.Error() {
		t.Errorf("status = %+v", st)
	}
}
