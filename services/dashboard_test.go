package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/mtu-cubesat/swarm/dashboard/models"
	"github.com/mtu-cubesat/swarm/dashboard/utils"
)

func TestDashboardNotReady(t *testing.T) {
	d := NewDashboard()

	if d.Ready() {
		t.Fatal("new dashboard reports ready")
	}
	snap, err := d.TogglePrimary(1)
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
	if snap.Ready || len(snap.Boxes) != models.SatelliteCount {
		t.Fatalf("snapshot = %+v", snap)
	}
	for _, b := range snap.Boxes {
		if b.State != models.BoxCollapsed || !b.WaveVisible || b.SummaryVisible {
			t.Errorf("box %d = %+v, want default markup state", b.Number, b)
		}
	}
	if _, err := d.ClickOverlay(); !errors.Is(err, ErrNotReady) {
		t.Errorf("overlay err = %v, want ErrNotReady", err)
	}
	if d.Table() != nil {
		t.Error("Table() not nil before attach")
	}
}

func TestDashboardAttachOnce(t *testing.T) {
	d := NewDashboard()
	if err := d.Attach(NewLogTable(fixtureRecords()), "test"); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := d.Attach(NewLogTable(nil), "again"); err == nil {
		t.Error("second Attach succeeded")
	}
	if got := d.Table().Len(); got != 4 {
		t.Errorf("table len = %d, want 4", got)
	}
}

func TestDashboardClickFlow(t *testing.T) {
	d := NewDashboard()
	if err := d.Attach(NewLogTable(fixtureRecords()), "test"); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	snap := d.Snapshot()
	if !snap.Ready || snap.Boxes[2].WaveVisible {
		t.Fatalf("initial snapshot = %+v", snap)
	}

	snap, err := d.TogglePrimary(1)
	if err != nil {
		t.Fatalf("TogglePrimary: %v", err)
	}
	if snap.Boxes[0].State != models.BoxShowingSummary {
		t.Errorf("state = %s, want showing_summary", snap.Boxes[0].State)
	}

	snap, err = d.ToggleSecondary(1)
	if err != nil {
		t.Fatalf("ToggleSecondary: %v", err)
	}
	if !snap.OverlayVisible || !snap.ScrollLocked || snap.Boxes[0].State != models.BoxShowingFull {
		t.Errorf("after expand = %+v", snap)
	}

	snap, err = d.ClickOverlay()
	if err != nil {
		t.Fatalf("ClickOverlay: %v", err)
	}
	if snap.OverlayVisible || snap.ScrollLocked || snap.Boxes[0].State != models.BoxShowingSummary {
		t.Errorf("after overlay = %+v", snap)
	}

	snap, err = d.ToggleSecondary(4)
	if !errors.Is(err, ErrControlHidden) {
		t.Errorf("err = %v, want ErrControlHidden", err)
	}
	if snap.Boxes[3].State != models.BoxCollapsed {
		t.Errorf("rejected click changed state to %s", snap.Boxes[3].State)
	}
}

func TestDashboardSnapshotIsACopy(t *testing.T) {
	d := NewDashboard()
	if err := d.Attach(NewLogTable(fixtureRecords()), "test"); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if _, err := d.TogglePrimary(1); err != nil {
		t.Fatal(err)
	}
	snap, err := d.ToggleSecondary(1)
	if err != nil {
		t.Fatal(err)
	}
	snap.Boxes[0].Details.Rows[0].Value = "changed"

	if got := d.Snapshot().Boxes[0].Details.Rows[0].Value; got != "MTU1-11" {
		t.Errorf("callsign row = %q, snapshot aliases the model", got)
	}
}

func TestDashboardConcurrentClicks(t *testing.T) {
	d := NewDashboard()
	if err := d.Attach(NewLogTable(fixtureRecords()), "test"); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			d.TogglePrimary(n%models.SatelliteCount + 1)
			d.Snapshot()
		}(i)
	}
	wg.Wait()

	// Ten clicks per box: every box is back to collapsed.
	for _, b := range d.Snapshot().Boxes {
		if b.State != models.BoxCollapsed {
			t.Errorf("box %d state = %s, want collapsed", b.Number, b.State)
		}
	}
}

func TestDashboardStatus(t *testing.T) {
	d := NewDashboard()
	d.MarkLoadFailed("file missing.txt", errors.New("boom"))

	st := d.Status()
	if st.Ready || st.LoadError != "boom" || st.Source != "file missing.txt" || st.LoadedAt != nil {
		t.Errorf("status after failure = %+v", st)
	}
	if st.Records != 0 || len(st.Satellites) != models.SatelliteCount {
		t.Errorf("status after failure = %+v", st)
	}

	d = NewDashboard()
	if err := d.Attach(NewLogTable(fixtureRecords()), "file donnees.txt"); err != nil {
		t.Fatal(err)
	}
	st = d.Status()
	if !st.Ready || st.Records != 4 || st.LoadedAt == nil || st.LoadError != "" {
		t.Errorf("status after attach = %+v", st)
	}
	wantData := []bool{true, true, false, false}
	for i, s := range st.Satellites {
		if s.HasData != wantData[i] || s.Number != i+1 || s.Callsign != utils.Callsign(i+1) {
			t.Errorf("satellite %d status = %+v", i+1, s)
		}
	}
}
