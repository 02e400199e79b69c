// Package storage provides SQLite-based persistence for the pattern
// library and preview run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// PatternEntry is one saved pattern document.
type PatternEntry struct {
	ID        int64
	Name      string
	Format    string // "json" or "yaml"
	Document  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RunEntry records one preview session.
type RunEntry struct {
	ID          int64
	PatternName string
	Seconds     float64
	Spawned     int
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS patterns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			format TEXT NOT NULL DEFAULT 'json',
			document TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_patterns_name ON patterns(name);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pattern_name TEXT NOT NULL,
			seconds REAL NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_pattern_name ON runs(pattern_name);
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

// SavePattern stores a serialized pattern document under a name,
// replacing any existing document with that name.
// Returns the ID of the record.
func (s *Store) SavePattern(name, format, document string) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO patterns (name, format, document) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			format = excluded.format,
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP`,
		name, format, document,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save pattern: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// GetPattern retrieves a saved pattern by name.
// Returns nil if no pattern with that name exists.
func (s *Store) GetPattern(name string) (*PatternEntry, error) {
	var e PatternEntry
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT id, name, format, document, created_at, updated_at
		 FROM patterns
		 WHERE name = ?`,
		name,
	).Scan(&e.ID, &e.Name, &e.Format, &e.Document, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pattern: %w", err)
	}

	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// ListPatterns retrieves all saved patterns ordered by name.
// Documents are included so callers can render or re-export without a
// second query.
func (s *Store) ListPatterns() ([]PatternEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, format, document, created_at, updated_at
		 FROM patterns
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query patterns: %w", err)
	}
	defer rows.Close()

	var entries []PatternEntry
	for rows.Next() {
		var e PatternEntry
		var createdAt, updatedAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Format, &e.Document, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeletePattern removes a saved pattern by name.
// Returns true if a record was deleted.
func (s *Store) DeletePattern(name string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM patterns WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete pattern: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// RecordRun stores the stats of one preview session.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(patternName string, seconds float64, spawned int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (pattern_name, seconds, spawned) VALUES (?, ?, ?)",
		patternName, seconds, spawned,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent preview sessions.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, pattern_name, seconds, spawned, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PatternName, &e.Seconds, &e.Spawned, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RunStats contains aggregated preview statistics for one pattern.
type RunStats struct {
	PatternName  string
	Runs         int
	TotalSeconds float64
	TotalSpawned int64
	LastRun      time.Time
}

// GetRunStats retrieves aggregated session statistics for a pattern.
func (s *Store) GetRunStats(patternName string) (*RunStats, error) {
	stats := &RunStats{PatternName: patternName}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(seconds), 0), COALESCE(SUM(spawned), 0)
		 FROM runs WHERE pattern_name = ?`,
		patternName,
	).Scan(&stats.Runs, &stats.TotalSeconds, &stats.TotalSpawned)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE pattern_name = ? ORDER BY id DESC LIMIT 1`,
		patternName,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// parseTime handles the datetime representations the driver may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
