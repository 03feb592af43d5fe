// Package storage provides SQLite-based persistence for solved-level records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for record persistence.
type Store struct {
	db *sql.DB
}

// Result is one solved level.
type Result struct {
	ID        int64
	PackID    string
	LevelID   string
	Player    string
	Steps     int
	CreatedAt time.Time
}

// PackStats contains aggregated statistics for a level pack.
type PackStats struct {
	PackID       string
	SolvedLevels int // distinct levels with at least one result
	Attempts     int // results recorded for the pack
	BestTotal    int // sum of the best step count of each solved level
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
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

// ExpandHome replaces a leading ~ with the user's home directory.
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			steps INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_level ON results(pack_id, level_id, steps);
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

// SaveResult records a solved level.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(packID, levelID, player string, steps int) (int64, error) {
	if steps < 0 {
		return 0, fmt.Errorf("storage: negative step count %d", steps)
	}

	result, err := s.db.Exec(
		"INSERT INTO results (pack_id, level_id, player, steps) VALUES (?, ?, ?, ?)",
		packID, levelID, player, steps,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestSteps returns the lowest step count recorded for a level.
// ok is false if the level has never been solved.
func (s *Store) BestSteps(packID, levelID string) (steps int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(steps) FROM results WHERE pack_id = ? AND level_id = ?",
		packID, levelID,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best steps: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// BestByLevel returns the best step count of every solved level in a pack.
func (s *Store) BestByLevel(packID string) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT level_id, MIN(steps) FROM results WHERE pack_id = ? GROUP BY level_id",
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best steps: %w", err)
	}
	defer rows.Close()

	best := make(map[string]int)
	for rows.Next() {
		var levelID string
		var steps int
		if err := rows.Scan(&levelID, &steps); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[levelID] = steps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// TopResults retrieves the best N results for a level.
// Results are ordered by steps ascending, then by age.
// An empty levelID returns the best results across the whole pack.
func (s *Store) TopResults(packID, levelID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, pack_id, level_id, player, steps, created_at
		 FROM results
		 WHERE pack_id = ?`
	args := []any{packID}
	if levelID != "" {
		query += " AND level_id = ?"
		args = append(args, levelID)
	}
	query += " ORDER BY steps ASC, created_at ASC, id ASC LIMIT ?"
	args = append(args, limit)

	return s.queryResults(query, args...)
}

// RecentResults retrieves the most recent results across all packs.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryResults(
		`SELECT id, pack_id, level_id, player, steps, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.PackID, &r.LevelID, &r.Player, &r.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// PackStats retrieves aggregated statistics for a pack.
func (s *Store) PackStats(packID string) (*PackStats, error) {
	stats := &PackStats{PackID: packID}

	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT level_id), COUNT(*)
		 FROM results WHERE pack_id = ?`,
		packID,
	).Scan(&stats.SolvedLevels, &stats.Attempts)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(best), 0) FROM (
			SELECT MIN(steps) AS best FROM results WHERE pack_id = ? GROUP BY level_id
		 )`,
		packID,
	).Scan(&stats.BestTotal)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE pack_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		packID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearResults deletes all results for a pack, or every result when
// packID is empty.
func (s *Store) ClearResults(packID string) error {
	var err error
	if packID == "" {
		_, err = s.db.Exec("DELETE FROM results")
	} else {
		_, err = s.db.Exec("DELETE FROM results WHERE pack_id = ?", packID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
