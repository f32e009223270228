package journal

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kurator/kurator/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "kurator.db"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRecordAndList(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	entries := []types.JournalEntry{
		{Timestamp: base, RequestID: "r1", Operation: "list_data_points", Method: "GET", Path: "/api/get_data_points", StatusCode: 200, DurationMs: 12},
		{Timestamp: base.Add(time.Second), RequestID: "r2", Operation: "add_data_point", Method: "POST", Path: "/api/add_data_point", StatusCode: 500, DurationMs: 30, Error: "unexpected status code: 500"},
		{Timestamp: base.Add(2 * time.Second), RequestID: "r3", Operation: "validate_configs", Method: "POST", Path: "/api/validate_configs", StatusCode: 200, DurationMs: 8},
	}
	for _, entry := range entries {
		if err := m.Record(entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	listed, err := m.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(listed))
	}
	if listed[0].RequestID != "r3" || listed[1].RequestID != "r2" {
		t.Errorf("Expected newest first, got %s, %s", listed[0].RequestID, listed[1].RequestID)
	}
	if listed[1].Error != "unexpected status code: 500" || listed[1].StatusCode != 500 {
		t.Errorf("Unexpected failure entry: %+v", listed[1])
	}
	if !listed[0].Timestamp.Equal(base.Add(2 * time.Second)) {
		t.Errorf("Expected timestamp %v, got %v", base.Add(2*time.Second), listed[0].Timestamp)
	}

	failures, err := m.Failures(0)
	if err != nil {
		t.Fatalf("Failures failed: %v", err)
	}
	if len(failures) != 1 || failures[0].RequestID != "r2" {
		t.Errorf("Expected only r2 as failure, got %+v", failures)
	}
}

func TestClearAndCount(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < 3; i++ {
		if err := m.Record(types.JournalEntry{RequestID: "r", Operation: "op", Method: "GET", Path: "/"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	count, err := m.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 entries, got %d", count)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if count, _ := m.Count(); count != 0 {
		t.Errorf("Expected empty journal, got %d", count)
	}
}

func TestRecord_Concurrent(t *testing.T) {
	m := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Record(types.JournalEntry{RequestID: "c", Operation: "op", Method: "POST", Path: "/"}); err != nil {
				t.Errorf("Record failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if count, _ := m.Count(); count != 20 {
		t.Errorf("Expected 20 entries, got %d", count)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kurator.db")

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m.Record(types.JournalEntry{RequestID: "persisted", Operation: "op", Method: "GET", Path: "/"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	m.Close()

	m, err = NewManager(path)
	if err != nil {
		t.Fatalf("NewManager reopen failed: %v", err)
	}
	defer m.Close()

	entries, err := m.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].RequestID != "persisted" {
		t.Errorf("Expected persisted entry, got %+v", entries)
	}
}
