package journal

import (
	"testing"
	"time"

	"github.com/kurator/kurator/internal/types"
)

func TestStatsPerOperation(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	entries := []types.JournalEntry{
		{Timestamp: base, Operation: "list_data_points", Method: "GET", StatusCode: 200, DurationMs: 10},
		{Timestamp: base.Add(time.Second), Operation: "list_data_points", Method: "GET", StatusCode: 500, DurationMs: 30},
		{Timestamp: base.Add(2 * time.Second), Operation: "list_data_points", Method: "GET", StatusCode: 0, DurationMs: 2000, Error: "request timed out"},
		{Timestamp: base.Add(3 * time.Second), Operation: "add_data_point", Method: "POST", StatusCode: 200, DurationMs: 20},
	}
	for _, entry := range entries {
		if err := m.Record(entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	stats, err := m.StatsPerOperation()
	if err != nil {
		t.Fatalf("StatsPerOperation failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 operations, got %d", len(stats))
	}
	if stats[0].Operation != "add_data_point" {
		t.Errorf("Expected most recent operation first, got %s", stats[0].Operation)
	}

	list := stats[1]
	if list.TotalCalls != 3 || list.SuccessCount != 1 || list.ErrorCount != 1 || list.NetworkErrors != 1 {
		t.Errorf("Unexpected counts: %+v", list)
	}
	if list.MinDurationMs != 10 || list.MaxDurationMs != 2000 {
		t.Errorf("Expected min 10 and max 2000, got %d and %d", list.MinDurationMs, list.MaxDurationMs)
	}
	if list.StatusCodes[200] != 1 || list.StatusCodes[500] != 1 || list.StatusCodes[0] != 1 {
		t.Errorf("Unexpected status codes: %v", list.StatusCodes)
	}
	if !list.LastCalled.Equal(base.Add(2 * time.Second)) {
		t.Errorf("Expected last called %v, got %v", base.Add(2*time.Second), list.LastCalled)
	}
	if rate := list.SuccessRate(); rate < 33.3 || rate > 33.4 {
		t.Errorf("Expected success rate 33.3, got %f", rate)
	}
}

func TestStatsPerOperation_Empty(t *testing.T) {
	m := newTestManager(t)

	stats, err := m.StatsPerOperation()
	if err != nil {
		t.Fatalf("StatsPerOperation failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("Expected no stats, got %d", len(stats))
	}
}
