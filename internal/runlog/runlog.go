// Package runlog records processing outcomes in a local SQLite
// database so past runs can be reviewed.
package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Outcome is one processed paper.
type Outcome struct {
	ID        int64
	BibKey    string
	Title     string
	Status    string
	PageID    string // Notion page ID, set on success
	Error     string // failure reason, set on failure
	CreatedAt time.Time
}

// DB wraps the outcomes database.
type DB struct {
	db *sql.DB
}

// Open opens or creates the outcomes database at the given path,
// creating parent directories as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bib_key TEXT NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			page_id TEXT,
			error TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_outcomes_key ON outcomes(bib_key);
	`

	_, err := db.Exec(schema)
	return err
}

// Record appends an outcome, stamping it with the current time.
func (d *DB) Record(o Outcome) error {
	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := d.db.Exec(
		`INSERT INTO outcomes (bib_key, title, status, page_id, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		o.BibKey, o.Title, o.Status, o.PageID, o.Error, createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording outcome: %w", err)
	}
	return nil
}

// Recent returns the most recent outcomes, newest first.
func (d *DB) Recent(limit int) ([]Outcome, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(
		`SELECT id, bib_key, title, status, page_id, error, created_at
		 FROM outcomes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var o Outcome
		var createdAt string
		if err := rows.Scan(&o.ID, &o.BibKey, &o.Title, &o.Status, &o.PageID, &o.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			o.CreatedAt = t
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading outcomes: %w", err)
	}
	return outcomes, nil
}
