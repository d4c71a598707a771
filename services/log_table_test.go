package services

import (
	"testing"

	"github.com/mtu-cubesat/swarm/dashboard/models"
)

// fixtureRecords has MTU1-11 on rows 2 and 5 and MTU2-11 on row 3
// (row 1 being the header line of the file).
func fixtureRecords() []models.LogRecord {
	return []models.LogRecord{
		{Source: "MTU1-11", ISOTime: "t2", Latitude: "48.10", Longitude: "-1.60", Comment: "BAT 3.9"},
		{Source: "MTU2-11", ISOTime: "t3", Latitude: "48.20", Longitude: "-1.70", Altitude: "498", Comment: "BAT 3.8"},
		{Source: "MTU4-12", ISOTime: "t4"},
		{Source: "MTU1-11", ISOTime: "t5", Latitude: "48.30", Longitude: "-1.80", Status: "WARN", Comment: "BAT3.6 low"},
	}
}

func TestFindLatest(t *testing.T) {
	table := NewLogTable(fixtureRecords())

	tests := []struct {
		n         int
		wantFound bool
		wantTime  string
	}{
		{1, true, "t5"},
		{2, true, "t3"},
		{3, false, ""},
		{4, false, ""},
	}

	for _, tt := range tests {
		rec, found := table.FindLatest(tt.n)
		if found != tt.wantFound {
			t.Errorf("FindLatest(%d) found = %v, want %v", tt.n, found, tt.wantFound)
			continue
		}
		if rec.ISOTime != tt.wantTime {
			t.Errorf("FindLatest(%d).ISOTime = %q, want %q", tt.n, rec.ISOTime, tt.wantTime)
		}
	}
}

func TestFindLatestMatchesScan(t *testing.T) {
	table := NewLogTable(fixtureRecords())
	for n := 0; n <= 5; n++ {
		gotRec, gotFound := table.FindLatest(n)
		wantRec, wantFound := table.scanLatest(n)
		if gotFound != wantFound || gotRec.ISOTime != wantRec.ISOTime {
			t.Errorf("FindLatest(%d) = (%v, %v), scan gives (%v, %v)", n, gotRec.ISOTime, gotFound, wantRec.ISOTime, wantFound)
		}
	}
}

func TestFindLatestEmpty(t *testing.T) {
	for _, table := range []*LogTable{NewLogTable(nil), nil} {
		if _, found := table.FindLatest(1); found {
			t.Error("FindLatest on empty table found a record")
		}
		if table.Len() != 0 {
			t.Errorf("Len() = %d, want 0", table.Len())
		}
	}
}

func TestLogTableIsACopy(t *testing.T) {
	records := fixtureRecords()
	table := NewLogTable(records)
	records[3].ISOTime = "mutated"

	rec, _ := table.FindLatest(1)
	if rec.ISOTime != "t5" {
		t.Errorf("table changed with its input: ISOTime = %q", rec.ISOTime)
	}
}

func TestTail(t *testing.T) {
	table := NewLogTable(fixtureRecords())

	tests := []struct {
		n         int
		wantLen   int
		wantFirst string
	}{
		{2, 2, "t4"},
		{0, 4, "t2"},
		{10, 4, "t2"},
		{-1, 4, "t2"},
	}
	for _, tt := range tests {
		got := table.Tail(tt.n)
		if len(got) != tt.wantLen {
			t.Errorf("Tail(%d) len = %d, want %d", tt.n, len(got), tt.wantLen)
			continue
		}
		if got[0].ISOTime != tt.wantFirst {
			t.Errorf("Tail(%d)[0] = %q, want %q", tt.n, got[0].ISOTime, tt.wantFirst)
		}
	}
}
