package perf

import (
	"sync"
	"testing"
	"time"
)

// TestCollector_Snapshot aggregates requests and queries separately.
func TestCollector_Snapshot(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Path: "GET /dashboard", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "GET /dashboard", StatusCode: 200, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "POST /register", StatusCode: 500, DurationMs: 5, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "ExecContext", DurationMs: 5, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRecorded != 4 {
		t.Errorf("TotalRecorded = %d, want 4", snap.TotalRecorded)
	}
	if snap.Requests != 3 || snap.Queries != 1 {
		t.Errorf("Requests/Queries = %d/%d, want 3/1", snap.Requests, snap.Queries)
	}
	if snap.ServerErrors != 1 {
		t.Errorf("ServerErrors = %d, want 1", snap.ServerErrors)
	}
	if len(snap.SlowestPaths) != 2 {
		t.Fatalf("SlowestPaths len = %d, want 2", len(snap.SlowestPaths))
	}
	top := snap.SlowestPaths[0]
	if top.Path != "GET /dashboard" || top.AvgMs != 20 || top.MaxMs != 30 {
		t.Errorf("top path = %+v", top)
	}
}

// TestCollector_RingBuffer_Overwrites keeps only the newest entries.
func TestCollector_RingBuffer_Overwrites(t *testing.T) {
	c := NewCollector(3)
	now := time.Now()
	for i := 0; i < 5; i++ {
		c.Record(Entry{Kind: KindRequest, Path: "GET /", DurationMs: float64(i), Timestamp: now})
	}
	if c.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded = %d, want 5", c.TotalRecorded())
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.SlowestPaths[0].Count != 3 {
		t.Errorf("Count = %d, want 3", snap.SlowestPaths[0].Count)
	}
	if snap.SlowestPaths[0].MaxMs != 4 {
		t.Errorf("MaxMs = %v, want 4", snap.SlowestPaths[0].MaxMs)
	}
}

// TestCollector_Percentiles checks interpolation over 1..100.
func TestCollector_Percentiles(t *testing.T) {
	c := NewCollector(200)
	now := time.Now()
	for i := 1; i <= 100; i++ {
		c.Record(Entry{Kind: KindRequest, Path: "GET /p", DurationMs: float64(i), Timestamp: now})
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	tests := []struct {
		name     string
		got      float64
		min, max float64
	}{
		{"p50", snap.RequestP50Ms, 49, 51},
		{"p95", snap.RequestP95Ms, 94, 96},
		{"p99", snap.RequestP99Ms, 98, 100},
	}
	for _, tt := range tests {
		if tt.got < tt.min || tt.got > tt.max {
			t.Errorf("%s = %v, want in [%v, %v]", tt.name, tt.got, tt.min, tt.max)
		}
	}
}

// TestCollector_Snapshot_FiltersBySince excludes older entries.
func TestCollector_Snapshot_FiltersBySince(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	c.Record(Entry{Kind: KindRequest, Path: "GET /old", DurationMs: 1, Timestamp: now.Add(-2 * time.Hour)})
	c.Record(Entry{Kind: KindRequest, Path: "GET /new", DurationMs: 1, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Hour), 10)
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Path != "GET /new" {
		t.Errorf("SlowestPaths = %+v, want only GET /new", snap.SlowestPaths)
	}
}

// TestCollector_TopN truncates the lists.
func TestCollector_TopN(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	for _, p := range []string{"GET /a", "GET /b", "GET /c"} {
		c.Record(Entry{Kind: KindRequest, Path: p, DurationMs: 1, Timestamp: now})
	}
	snap := c.Snapshot(now.Add(-time.Minute), 2)
	if len(snap.SlowestPaths) != 2 {
		t.Fatalf("len = %d, want 2", len(snap.SlowestPaths))
	}
	if snap.SlowestPaths[0].Path != "GET /a" {
		t.Errorf("ties should sort by path, got %q first", snap.SlowestPaths[0].Path)
	}
}

// TestCollector_ConcurrentRecord is meant to be run with -race.
func TestCollector_ConcurrentRecord(t *testing.T) {
	c := NewCollector(50)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Record(Entry{Kind: KindQuery, Path: "QueryRowContext", DurationMs: 1, Timestamp: time.Now()})
			}
		}()
	}
	wg.Wait()
	if c.TotalRecorded() != 800 {
		t.Errorf("TotalRecorded = %d, want 800", c.TotalRecorded())
	}
}
