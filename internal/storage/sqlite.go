// Package storage persists Recycle Runner state: the leaderboard in SQLite
// and the player settings in a YAML file.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrCorrupt marks persisted state that could only be partly recovered.
// Callers fall back to what was readable and carry on.
var ErrCorrupt = errors.New("storage: persisted state corrupt")

// Store manages the SQLite database connection for leaderboard persistence.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// SSH sessions may append concurrently; wait on the lock instead of failing
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome expands a leading ~ to the home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
// Scores are stored as text, as the leaderboard file format always has.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score TEXT NOT NULL,
			run_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadLeaderboard reads every entry in storage order. Rows whose score is
// not an integer are skipped; if any were, the returned error wraps
// ErrCorrupt and the leaderboard holds the readable rows.
func (s *Store) LoadLeaderboard() (*Leaderboard, error) {
	rows, err := s.db.Query(
		`SELECT name, score, run_id, created_at
		 FROM leaderboard
		 ORDER BY id`,
	)
	if err != nil {
		return NewLeaderboard(nil), fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	skipped := 0
	for rows.Next() {
		var e Entry
		var raw string
		var createdAt any
		if err := rows.Scan(&e.Name, &raw, &e.RunID, &createdAt); err != nil {
			skipped++
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			skipped++
			continue
		}
		e.Score = score
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	lb := NewLeaderboard(entries)
	if err := rows.Err(); err != nil {
		return lb, fmt.Errorf("storage: row iteration error: %w", err)
	}
	if skipped > 0 {
		return lb, fmt.Errorf("%w: skipped %d leaderboard rows", ErrCorrupt, skipped)
	}
	return lb, nil
}

// AppendEntries inserts entries in one transaction.
func (s *Store) AppendEntries(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO leaderboard (name, score, run_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Name, strconv.Itoa(e.Score), e.RunID); err != nil {
			return fmt.Errorf("storage: cannot save entry %q: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit leaderboard: %w", err)
	}
	return nil
}

// SaveLeaderboard appends the entries added since load and marks them saved.
func (s *Store) SaveLeaderboard(lb *Leaderboard) error {
	if err := s.AppendEntries(lb.Pending()); err != nil {
		return err
	}
	lb.MarkSaved()
	return nil
}

// ClearLeaderboard deletes every entry.
func (s *Store) ClearLeaderboard() error {
	_, err := s.db.Exec("DELETE FROM leaderboard")
	if err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
