package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded CLI invocation.
type Run struct {
	ID         string
	Subcommand string
	Args       []string
	StartedAt  time.Time
	FinishedAt time.Time
	ExitCode   int
	// Fired reports whether an ERROR or CRITICAL diagnostic was emitted.
	Fired bool
	// Counts holds emitted diagnostics per severity name (e.g. "ERROR").
	Counts map[string]int
}

// Duration is the wall time between start and finish.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failed reports whether the run exited non-zero.
func (r Run) Failed() bool {
	return r.ExitCode != 0
}

// RunFilter narrows ListRuns.
type RunFilter struct {
	Limit      int
	FailedOnly bool
	Subcommand string
}

// ErrRunNotFound is returned by GetRun for unknown ids.
var ErrRunNotFound = errors.New("store: run not found")

// RecordRun persists run, assigning a new id when run.ID is empty.
// It returns the stored id.
func (s *Store) RecordRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	fired := 0
	if run.Fired {
		fired = 1
	}

	_, err = tx.Exec(
		`INSERT INTO runs (id, subcommand, args, started_at, finished_at, exit_code, fired)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Subcommand,
		strings.Join(run.Args, "\x1f"),
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.ExitCode,
		fired,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	levels := make([]string, 0, len(run.Counts))
	for level := range run.Counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	for _, level := range levels {
		n := run.Counts[level]
		if n == 0 {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO run_counts (run_id, level, count) VALUES (?, ?, ?)",
			run.ID, level, n,
		); err != nil {
			return "", fmt.Errorf("insert counts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	committed = true
	return run.ID, nil
}

// ListRuns returns runs matching filter, newest first.
func (s *Store) ListRuns(filter RunFilter) ([]Run, error) {
	query := `
		SELECT id, subcommand, args, started_at, finished_at, exit_code, fired
		FROM runs
	`

	var (
		clauses []string
		args    []any
	)

	if filter.FailedOnly {
		clauses = append(clauses, "exit_code != 0")
	}

	if filter.Subcommand != "" {
		clauses = append(clauses, "subcommand = ?")
		args = append(args, filter.Subcommand)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY started_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range out {
		counts, err := s.counts(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Counts = counts
	}

	return out, nil
}

// GetRun returns a single run by id.
func (s *Store) GetRun(id string) (Run, error) {
	row := s.db.QueryRow(
		`SELECT id, subcommand, args, started_at, finished_at, exit_code, fired
		 FROM runs WHERE id = ?`, id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, err
	}

	r.Counts, err = s.counts(id)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

// PruneRuns deletes all but the newest keep runs and returns how many were removed.
func (s *Store) PruneRuns(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	result, err := s.db.Exec(
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
		)`, keep,
	)
	if err != nil {
		return 0, err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := s.db.Exec("DELETE FROM run_counts WHERE run_id NOT IN (SELECT id FROM runs)"); err != nil {
		return removed, err
	}
	return removed, nil
}

func (s *Store) counts(runID string) (map[string]int, error) {
	rows, err := s.db.Query("SELECT level, count FROM run_counts WHERE run_id = ?", runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			level string
			n     int
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, err
		}
		counts[level] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r        Run
		args     string
		started  string
		finished string
		fired    int
	)

	if err := row.Scan(&r.ID, &r.Subcommand, &args, &started, &finished, &r.ExitCode, &fired); err != nil {
		return Run{}, err
	}

	var err error
	if r.StartedAt, err = parseTime(started); err != nil {
		return Run{}, err
	}
	if r.FinishedAt, err = parseTime(finished); err != nil {
		return Run{}, err
	}
	if args != "" {
		r.Args = strings.Split(args, "\x1f")
	}
	r.Fired = fired != 0
	return r, nil
}
