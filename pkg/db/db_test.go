package db

import (
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "test.db")

	d, err := Init(dbPath)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer d.Close()

	// All tables, including the virtual spatial and search indexes, must be
	// queryable after migration.
	for _, table := range []string{
		"airports", "runways", "frequencies", "navaids",
		"weather_cache", "meta", "airports_rtree", "navaids_rtree", "airports_fts",
	} {
		if _, err := d.Exec("SELECT * FROM " + table + " LIMIT 1"); err != nil {
			t.Errorf("table %s not usable: %v", table, err)
		}
	}

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode query failed: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected WAL mode, got %q", mode)
	}
}

func TestInitIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	d1, err := Init(dbPath)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	d1.Close()

	// Reopening an existing database reruns migrations without error.
	d2, err := Init(dbPath)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	d2.Close()
}
