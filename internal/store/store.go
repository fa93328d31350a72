// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/morsel/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for decode history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			code TEXT NOT NULL,
			mode TEXT NOT NULL,
			lang TEXT NOT NULL,
			best TEXT NOT NULL,
			letters TEXT NOT NULL,
			likelihood REAL NOT NULL,
			outcome TEXT NOT NULL,
			candidates INTEGER NOT NULL,
			scored INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a finished decode and returns its id.
func (s *Store) InsertRun(ctx context.Context, run model.Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, code, mode, lang, best, letters, likelihood, outcome, candidates, scored, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Code,
		run.Mode,
		run.Lang,
		run.Best,
		run.Letters,
		run.Likelihood,
		run.Outcome,
		run.Candidates,
		run.Scored,
		run.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func filterClauses(filter model.HistoryFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, filter.Lang)
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, filter.Outcome)
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

// ListRuns returns runs matching filter, newest first. Last limits the
// result to the most recent N runs when positive.
func (s *Store) ListRuns(ctx context.Context, filter model.HistoryFilter) ([]model.Run, error) {
	where, args := filterClauses(filter)
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, code, mode, lang, best, letters, likelihood, outcome, candidates, scored, duration_ms
		FROM runs
		WHERE %s
		ORDER BY ended_at DESC, id DESC`, where)
	if filter.Last > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var startedAt, endedAt string
		if err := rows.Scan(&run.ID, &startedAt, &endedAt, &run.Code, &run.Mode, &run.Lang, &run.Best, &run.Letters,
			&run.Likelihood, &run.Outcome, &run.Candidates, &run.Scored, &run.DurationMs); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Summary aggregates runs matching filter by outcome. Last is ignored.
func (s *Store) Summary(ctx context.Context, filter model.HistoryFilter) (model.RunSummary, error) {
	where, args := filterClauses(filter)
	query := fmt.Sprintf(`SELECT outcome, COUNT(*), COALESCE(SUM(duration_ms), 0), COALESCE(MAX(candidates), 0)
		FROM runs
		WHERE %s
		GROUP BY outcome`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return model.RunSummary{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var summary model.RunSummary
	var totalMs int64
	for rows.Next() {
		var outcome string
		var count, maxCandidates int
		var durationMs int64
		if err := rows.Scan(&outcome, &count, &durationMs, &maxCandidates); err != nil {
			return model.RunSummary{}, err
		}
		summary.Total += count
		totalMs += durationMs
		summary.MaxCandidates = max(summary.MaxCandidates, maxCandidates)
		switch outcome {
		case "found":
			summary.Found += count
		case "no-decoding":
			summary.NoDecoding += count
		case "no-segmentation":
			summary.NoSegmentation += count
		case "cancelled":
			summary.Cancelled += count
		}
	}
	if err := rows.Err(); err != nil {
		return model.RunSummary{}, err
	}
	if summary.Total > 0 {
		summary.AvgDurationMs = float64(totalMs) / float64(summary.Total)
	}
	return summary, nil
}
