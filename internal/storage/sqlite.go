// Package storage provides SQLite-based persistence for the run ledger.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the run ledger.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished simulation run.
type RunRecord struct {
	ID          string
	Script      string
	Preset      string
	Seed        int64
	Ticks       int
	Shots       int
	Projectiles int
	Retired     int
	AimMisses   int
	Hash        uint64
	Elapsed     time.Duration
	Fired       map[string]int // projectiles per weapon archetype
	CreatedAt   time.Time
}

// WeaponUsage aggregates projectile counts per archetype across all runs.
type WeaponUsage struct {
	Kind     string
	Runs     int
	Fired    int64
	LastUsed time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			script TEXT NOT NULL,
			preset TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			shots INTEGER NOT NULL DEFAULT 0,
			projectiles INTEGER NOT NULL DEFAULT 0,
			retired INTEGER NOT NULL DEFAULT 0,
			aim_misses INTEGER NOT NULL DEFAULT 0,
			hash TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_weapons (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			fired INTEGER NOT NULL,
			PRIMARY KEY (run_id, kind)
		);
		CREATE INDEX IF NOT EXISTS idx_run_weapons_kind ON run_weapons(kind);
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

// SaveRun records a finished run and its per-archetype counts.
// A run without an ID gets a new random one. Returns the run ID.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO runs
		 (id, script, preset, seed, ticks, shots, projectiles, retired, aim_misses, hash, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Script,
		r.Preset,
		r.Seed,
		r.Ticks,
		r.Shots,
		r.Projectiles,
		r.Retired,
		r.AimMisses,
		formatHash(r.Hash),
		r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	for kind, fired := range r.Fired {
		if _, err := tx.Exec(
			"INSERT INTO run_weapons (run_id, kind, fired) VALUES (?, ?, ?)",
			r.ID, kind, fired,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save weapon counts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, script, preset, seed, ticks, shots, projectiles, retired, aim_misses, hash, elapsed_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var hash string
	var elapsedMS int64
	var createdAt any

	if err := row.Scan(
		&r.ID,
		&r.Script,
		&r.Preset,
		&r.Seed,
		&r.Ticks,
		&r.Shots,
		&r.Projectiles,
		&r.Retired,
		&r.AimMisses,
		&hash,
		&elapsedMS,
		&createdAt,
	); err != nil {
		return r, err
	}

	r.Hash, _ = strconv.ParseUint(hash, 16, 64)
	r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// Per-archetype counts are not loaded; use RunByID for those.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run with its per-archetype counts.
// Returns nil if the run does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	rows, err := s.db.Query("SELECT kind, fired FROM run_weapons WHERE run_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query weapon counts: %w", err)
	}
	defer rows.Close()

	r.Fired = make(map[string]int)
	for rows.Next() {
		var kind string
		var fired int
		if err := rows.Scan(&kind, &fired); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Fired[kind] = fired
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &r, nil
}

// WeaponStats aggregates projectile counts per archetype across all runs.
func (s *Store) WeaponStats() ([]WeaponUsage, error) {
	rows, err := s.db.Query(
		`SELECT w.kind, COUNT(*), SUM(w.fired), MAX(r.created_at)
		 FROM run_weapons w JOIN runs r ON r.id = w.run_id
		 GROUP BY w.kind
		 ORDER BY SUM(w.fired) DESC, w.kind`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get weapon stats: %w", err)
	}
	defer rows.Close()

	var stats []WeaponUsage
	for rows.Next() {
		var u WeaponUsage
		var lastUsed any
		if err := rows.Scan(&u.Kind, &u.Runs, &u.Fired, &lastUsed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		u.LastUsed = parseTime(lastUsed)
		stats = append(stats, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes every run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM run_weapons"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
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
