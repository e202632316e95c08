// Package history keeps a small sqlite journal of render invocations so
// `texpeek history` can show what was previewed, with what selection, and
// how long the external tools took.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS renders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp INTEGER NOT NULL,
	path TEXT NOT NULL,
	kind TEXT NOT NULL,
	level INTEGER NOT NULL,
	layer INTEGER NOT NULL,
	face INTEGER NOT NULL,
	depth INTEGER NOT NULL,
	exposure REAL NOT NULL,
	display TEXT NOT NULL,
	view TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS renders_timestamp ON renders(timestamp);
`

// Entry is one recorded render invocation.
type Entry struct {
	Timestamp  int64
	Path       string
	Kind       string
	Level      int
	Layer      int
	Face       int
	Depth      int
	Exposure   float64
	Display    string
	View       string
	DurationMS int64
	Outcome    string
	Error      string
}

// Journal wraps the sqlite database holding render history.
type Journal struct {
	db *sql.DB
}

// DefaultPath returns ~/.local/share/texpeek/history.db.
func DefaultPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "texpeek", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "texpeek", "history.db")
}

// Open opens (and if needed creates) the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one entry. A zero Timestamp is filled with now.
func (j *Journal) Record(e Entry) error {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().Unix()
	}
	_, err := j.db.Exec(
		`INSERT INTO renders (timestamp, path, kind, level, layer, face, depth, exposure, display, view, duration_ms, outcome, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp, e.Path, e.Kind, e.Level, e.Layer, e.Face, e.Depth,
		e.Exposure, e.Display, e.View, e.DurationMS, e.Outcome, e.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record render: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (j *Journal) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.Query(
		`SELECT timestamp, path, kind, level, layer, face, depth, exposure, display, view, duration_ms, outcome, error
		 FROM renders ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query render history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Timestamp, &e.Path, &e.Kind, &e.Level, &e.Layer, &e.Face, &e.Depth,
			&e.Exposure, &e.Display, &e.View, &e.DurationMS, &e.Outcome, &e.Error); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear drops all recorded entries.
func (j *Journal) Clear() error {
	_, err := j.db.Exec(`DELETE FROM renders`)
	return err
}
