// Package db opens the flightbag SQLite database and maintains its schema.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Register driver
)

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// Init opens the database and runs migrations.
func Init(path string) (*DB, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// WAL keeps readers from blocking the single writer (map panning while a
	// weather write-through is in flight).
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	// Child runway/frequency rows are removed with their airport.
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	d := &DB{db}
	// Enforce single connection to avoid SQLITE_BUSY errors during concurrent writes
	db.SetMaxOpenConns(1)

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return d, nil
}

func (d *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS airports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			icao TEXT NOT NULL UNIQUE,
			faa_ident TEXT,
			name TEXT,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			elevation_ft REAL,
			facility TEXT,
			ownership TEXT,
			ctaf_mhz REAL,
			unicom_mhz REAL,
			artcc_ident TEXT,
			artcc_name TEXT,
			mag_var REAL,
			pattern_alt_ft REAL,
			fuel_types TEXT,
			has_beacon BOOLEAN DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS runways (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			airport_icao TEXT NOT NULL REFERENCES airports(icao) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			designator TEXT,
			length_ft REAL,
			width_ft REAL,
			surface TEXT,
			lighting TEXT,
			base_ident TEXT,
			base_lat REAL,
			base_lon REAL,
			base_elev_ft REAL,
			recip_ident TEXT,
			recip_lat REAL,
			recip_lon REAL,
			recip_elev_ft REAL
		);`,
		`CREATE TABLE IF NOT EXISTS frequencies (
			id TEXT PRIMARY KEY,
			airport_icao TEXT NOT NULL REFERENCES airports(icao) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			type TEXT,
			mhz REAL,
			name TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS navaids (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ident TEXT NOT NULL UNIQUE,
			name TEXT,
			type TEXT,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			freq REAL,
			mag_var REAL,
			elevation_ft REAL
		);`,
		`CREATE TABLE IF NOT EXISTS weather_cache (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			station_id TEXT NOT NULL UNIQUE,
			raw_text TEXT,
			category TEXT,
			temp_c REAL,
			dewpoint_c REAL,
			wind_dir INTEGER,
			wind_variable BOOLEAN DEFAULT 0,
			wind_speed_kt INTEGER,
			wind_gust_kt INTEGER,
			visibility_sm REAL,
			ceiling_ft INTEGER,
			fetched_at DATETIME,
			observed_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Spatial indexes: row id -> min/max lat/lon, maintained inside the
		// same transaction as the indexed row.
		`CREATE VIRTUAL TABLE IF NOT EXISTS airports_rtree USING rtree(
			id, min_lat, max_lat, min_lon, max_lon
		);`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS navaids_rtree USING rtree(
			id, min_lat, max_lat, min_lon, max_lon
		);`,
		// Search index over airport identifiers and name, prefix-queryable.
		`CREATE VIRTUAL TABLE IF NOT EXISTS airports_fts USING fts5(
			icao, name, faa_ident
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runways_airport ON runways(airport_icao);`,
		`CREATE INDEX IF NOT EXISTS idx_frequencies_airport ON frequencies(airport_icao);`,
		`CREATE INDEX IF NOT EXISTS idx_weather_fetched ON weather_cache(fetched_at);`,
	}

	for _, q := range queries {
		if _, err := d.Exec(q); err != nil {
			return fmt.Errorf("exec error: %w query: %s", err, q)
		}
	}

	return nil
}
