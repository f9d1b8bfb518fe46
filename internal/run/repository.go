package run

import (
	"fmt"
	"time"

	"github.com/julienpequegnot/slopmon/internal/corpus"
	"github.com/julienpequegnot/slopmon/internal/database"
	"github.com/julienpequegnot/slopmon/internal/slop"
)

// Run is one journaled score computation.
type Run struct {
	ID             int64
	Source         string
	Documents      int
	TotalNgrams    int
	DistinctNgrams int
	RawScore       int
	Score          float64
	MinNgram       int
	MaxNgram       int
	TopX           int
	CreatedAt      time.Time
}

type TopNgram struct {
	N     int
	Rank  int
	Ngram string
	Count int
}

type Length struct {
	N        int
	Distinct int
	Total    int
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Record stores the analysis summary and its per-length top n-grams.
func (r *Repository) Record(a *slop.Analysis, source string) (*Run, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := a.Result
	result, err := tx.Exec(`
		INSERT INTO runs (source, documents, total_ngrams, distinct_ngrams, raw_score, score, min_ngram, max_ngram, top_x)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, source, a.Documents, res.Total, res.Table.Len(), res.Raw, res.Score, a.Range.Min, a.Range.Max, a.TopX)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, s := range a.PerN {
		if _, err := tx.Exec(
			`INSERT INTO run_lengths (run_id, n, distinct_ngrams, total_ngrams) VALUES (?, ?, ?, ?)`,
			id, s.N, s.Distinct, s.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to insert run length: %w", err)
		}
		for rank, e := range s.Top {
			if _, err := tx.Exec(
				`INSERT INTO run_ngrams (run_id, n, rank, ngram, count) VALUES (?, ?, ?, ?, ?)`,
				id, s.N, rank+1, e.Gram.Key(), e.Count,
			); err != nil {
				return nil, fmt.Errorf("failed to insert run ngram: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Get(id)
}

func (r *Repository) Get(id int64) (*Run, error) {
	var run Run
	err := r.db.QueryRow(`
		SELECT id, source, documents, total_ngrams, distinct_ngrams, raw_score, score, min_ngram, max_ngram, top_x, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Source, &run.Documents, &run.TotalNgrams, &run.DistinctNgrams, &run.RawScore,
		&run.Score, &run.MinNgram, &run.MaxNgram, &run.TopX, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns the most recent runs first.
func (r *Repository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, source, documents, total_ngrams, distinct_ngrams, raw_score, score, min_ngram, max_ngram, top_x, created_at
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Source, &run.Documents, &run.TotalNgrams, &run.DistinctNgrams, &run.RawScore,
			&run.Score, &run.MinNgram, &run.MaxNgram, &run.TopX, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// TopNgrams returns the stored top n-grams of a run ordered by length and rank.
func (r *Repository) TopNgrams(runID int64) ([]TopNgram, error) {
	rows, err := r.db.Query(`
		SELECT n, rank, ngram, count FROM run_ngrams
		WHERE run_id = ? ORDER BY n, rank
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []TopNgram
	for rows.Next() {
		var t TopNgram
		if err := rows.Scan(&t.N, &t.Rank, &t.Ngram, &t.Count); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (r *Repository) Lengths(runID int64) ([]Length, error) {
	rows, err := r.db.Query(`
		SELECT n, distinct_ngrams, total_ngrams FROM run_lengths
		WHERE run_id = ? ORDER BY n
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lengths []Length
	for rows.Next() {
		var l Length
		if err := rows.Scan(&l.N, &l.Distinct, &l.Total); err != nil {
			return nil, err
		}
		lengths = append(lengths, l)
	}
	return lengths, rows.Err()
}

// RecordIngest logs the items a supplier delivered.
func (r *Repository) RecordIngest(items []corpus.Item) error {
	for _, item := range items {
		if _, err := r.db.Exec(
			`INSERT INTO ingested (name, lines) VALUES (?, ?)`,
			item.Name, len(item.Lines),
		); err != nil {
			return fmt.Errorf("failed to record ingest of %s: %w", item.Name, err)
		}
	}
	return nil
}

func (r *Repository) CountIngested() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM ingested`).Scan(&count)
	return count, err
}
