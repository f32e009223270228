package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun_AppliesAllMigrations(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	version, err := GetCurrentVersion(db)
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	latest := AllMigrations[len(AllMigrations)-1].Version
	if version != latest {
		t.Errorf("Expected version %d, got %d", latest, version)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_journal_status_timestamp'").Scan(&count); err != nil {
		t.Fatalf("Failed to query indices: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected composite index to exist, got %d", count)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Run(db); err != nil {
			t.Fatalf("Run %d failed: %v", i+1, err)
		}
	}

	var applied int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if applied != len(AllMigrations) {
		t.Errorf("Expected %d recorded migrations, got %d", len(AllMigrations), applied)
	}
}

func TestAllMigrations_Ordered(t *testing.T) {
	for i := 1; i < len(AllMigrations); i++ {
		if AllMigrations[i].Version <= AllMigrations[i-1].Version {
			t.Errorf("Migration %q is out of order", AllMigrations[i].Name)
		}
	}
}
