package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/trajopt/internal/nlp"
)

// ErrNoRuns is returned by Latest when a problem has no recorded runs.
var ErrNoRuns = errors.New("no runs recorded")

// Artifact is a generated program to record.
type Artifact struct {
	Problem string
	App     string
	Text    string
	Layout  nlp.Layout
}

// Run is one recorded generation.
type Run struct {
	ID          string     `json:"id"`
	Seq         int64      `json:"seq"`
	Problem     string     `json:"problem"`
	App         string     `json:"app"`
	ContentHash string     `json:"content_hash"`
	Size        int        `json:"size"`
	Layout      nlp.Layout `json:"layout"`
	Text        string     `json:"-"`

	// Changed is set by Record: true when the hash differs from the
	// previous run of the same problem, or there was none.
	Changed bool `json:"changed"`
}

// Record appends a run for a. It assigns the next seq and a new run id.
func (s *Store) Record(ctx context.Context, a Artifact) (Run, error) {
	layout, err := json.Marshal(a.Layout)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	run := Run{
		ID:          s.ids.Generate(),
		Problem:     a.Problem,
		App:         a.App,
		ContentHash: ContentHash(a.Text),
		Size:        len(a.Text),
		Layout:      a.Layout,
		Text:        a.Text,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	var prev string
	err = tx.QueryRowContext(ctx, `
		SELECT content_hash FROM runs
		WHERE problem = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, a.Problem).Scan(&prev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		run.Changed = true
	case err != nil:
		return Run{}, fmt.Errorf("record run: previous hash: %w", err)
	default:
		run.Changed = prev != run.ContentHash
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, problem, app, content_hash, size, text, layout)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Seq, run.Problem, run.App, run.ContentHash, run.Size, run.Text, string(layout))
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

// Latest returns the most recent run of problem, or ErrNoRuns.
func (s *Store) Latest(ctx context.Context, problem string) (Run, error) {
	runs, err := s.History(ctx, problem)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("latest %s: %w", problem, ErrNoRuns)
	}
	return runs[len(runs)-1], nil
}

// History returns the runs of problem, or of every problem when problem
// is empty, ordered by seq ASC, id ASC.
//
// Returns an empty slice (not nil) if nothing was recorded.
func (s *Store) History(ctx context.Context, problem string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, problem, app, content_hash, size, text, layout
		FROM runs
		WHERE ? = '' OR problem = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, problem, problem)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	prev := make(map[string]string)
	for rows.Next() {
		var (
			r      Run
			layout string
		)
		if err := rows.Scan(&r.ID, &r.Seq, &r.Problem, &r.App, &r.ContentHash, &r.Size, &r.Text, &layout); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(layout), &r.Layout); err != nil {
			return nil, fmt.Errorf("run %s: layout: %w", r.ID, err)
		}
		h, seen := prev[r.Problem]
		r.Changed = !seen || h != r.ContentHash
		prev[r.Problem] = r.ContentHash
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
