// Package store archives finished game logs in a SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no game has the requested ID.
var ErrNotFound = errors.New("game not found")

// Archive wraps a sql.DB connection to the game archive.
type Archive struct {
	db *sql.DB
}

// Summary is one row of the archive listing.
type Summary struct {
	ID              string `json:"id"`
	Scenario        string `json:"scenario"`
	CreatedUTC      string `json:"created_utc"`
	Turns           int    `json:"turns"`
	FinalIndex      int    `json:"final_index"`
	FinalLevel      string `json:"final_level"`
	ThresholdAlerts int    `json:"threshold_alerts"`
}

// Open opens or creates the archive at path and runs schema migrations.
// Use ":memory:" for a throwaway archive.
func Open(path string) (*Archive, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping archive: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return a, nil
}

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	_, err := a.db.Exec(`
CREATE TABLE IF NOT EXISTS games (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    scenario TEXT NOT NULL,
    created_utc TEXT NOT NULL,
    payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS turns (
    game_id TEXT NOT NULL,
    turn INTEGER NOT NULL,
    dtg TEXT NOT NULL,
    red_label TEXT NOT NULL,
    blue_label TEXT NOT NULL,
    escalation_delta INTEGER NOT NULL,
    escalation_index INTEGER NOT NULL,
    escalation_level TEXT NOT NULL,
    threshold_crossing INTEGER NOT NULL,
    roe_posture TEXT NOT NULL,
    roe_exceeded INTEGER NOT NULL,
    PRIMARY KEY (game_id, turn),
    FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE
);
`)
	return err
}
