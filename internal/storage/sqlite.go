// Package storage provides SQLite-based persistence for benchmark reports.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Reports are diagnostics only: nothing here feeds back into a running
// simulation.
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

// Store manages the SQLite database connection for benchmark reports.
type Store struct {
	db *sql.DB
}

// BenchRun is one recorded benchmark run.
type BenchRun struct {
	ID          int64
	Frontend    string // frontend that produced the run
	Seed        int64
	Ticks       uint64
	Rounds      int
	BestScore   int
	TicksPerSec float64 // mean over the run
	Duration    time.Duration
	CreatedAt   time.Time
}

// Summary aggregates all recorded runs.
type Summary struct {
	Runs           int
	BestScore      int
	AvgTicksPerSec float64
	TotalTicks     uint64
	LastRun        time.Time
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
		CREATE TABLE IF NOT EXISTS bench_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			frontend TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			best_score INTEGER NOT NULL,
			ticks_per_sec REAL NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_bench_runs_created ON bench_runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_bench_runs_tps ON bench_runs(ticks_per_sec DESC);
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

// SaveRun records a benchmark run and returns its ID.
func (s *Store) SaveRun(run BenchRun) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO bench_runs
		 (frontend, seed, ticks, rounds, best_score, ticks_per_sec, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Frontend,
		run.Seed,
		int64(run.Ticks),
		run.Rounds,
		run.BestScore,
		run.TicksPerSec,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, frontend, seed, ticks, rounds, best_score, ticks_per_sec, duration_ms, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (BenchRun, error) {
	var (
		run        BenchRun
		ticks      int64
		durationMs int64
		createdAt  any
	)
	err := sc.Scan(
		&run.ID,
		&run.Frontend,
		&run.Seed,
		&ticks,
		&run.Rounds,
		&run.BestScore,
		&run.TicksPerSec,
		&durationMs,
		&createdAt,
	)
	if err != nil {
		return run, err
	}
	run.Ticks = uint64(ticks)
	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and string datetime columns.
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

func (s *Store) queryRuns(query string, args ...any) ([]BenchRun, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []BenchRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]BenchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM bench_runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// TopRuns retrieves the fastest runs by throughput.
func (s *Store) TopRuns(limit int) ([]BenchRun, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM bench_runs
		 ORDER BY ticks_per_sec DESC
		 LIMIT ?`,
		limit,
	)
}

// BestRun returns the fastest run, or nil if none is recorded.
func (s *Store) BestRun() (*BenchRun, error) {
	run, err := scanRun(s.db.QueryRow(
		`SELECT ` + runColumns + `
		 FROM bench_runs
		 ORDER BY ticks_per_sec DESC
		 LIMIT 1`,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return &run, nil
}

// Summarize aggregates all recorded runs.
func (s *Store) Summarize() (Summary, error) {
	var (
		sum        Summary
		totalTicks int64
		lastRun    any
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(best_score), 0), COALESCE(AVG(ticks_per_sec), 0),
		        COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM bench_runs`,
	).Scan(&sum.Runs, &sum.BestScore, &sum.AvgTicksPerSec, &totalTicks, &lastRun)
	if err != nil {
		return sum, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	sum.TotalTicks = uint64(totalTicks)
	sum.LastRun = parseTime(lastRun)
	return sum, nil
}

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM bench_runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
