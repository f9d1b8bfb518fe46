package run

import (
	"path/filepath"
	"testing"

	"github.com/julienpequegnot/slopmon/internal/corpus"
	"github.com/julienpequegnot/slopmon/internal/database"
	"github.com/julienpequegnot/slopmon/internal/ngram"
	"github.com/julienpequegnot/slopmon/internal/slop"
)

func setupTestDB(t *testing.T) *database.DB {
	tmpDir := t.TempDir()
	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	return db
}

func analyze(t *testing.T) *slop.Analysis {
	t.Helper()
	a, err := slop.Analyze(
		[]string{"the cat sat on the mat", "the cat sat on the mat", "a dog sat on the mat"},
		ngram.Range{Min: 4, Max: 5},
		2,
	)
	if err != nil {
		t.Fatalf("failed to analyze: %v", err)
	}
	return a
}

func TestRecordRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	a := analyze(t)

	run, err := repo.Record(a, "corpus/")
	if err != nil {
		t.Fatalf("failed to record run: %v", err)
	}

	if run.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if run.Score != a.Result.Score {
		t.Errorf("expected score %f, got %f", a.Result.Score, run.Score)
	}
	if run.Documents != 3 || run.MinNgram != 4 || run.MaxNgram != 5 || run.TopX != 2 {
		t.Errorf("unexpected run %+v", run)
	}
	if run.DistinctNgrams != a.Result.Table.Len() {
		t.Errorf("expected %d distinct, got %d", a.Result.Table.Len(), run.DistinctNgrams)
	}
}

func TestTopNgrams(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	run, err := repo.Record(analyze(t), "corpus/")
	if err != nil {
		t.Fatalf("failed to record run: %v", err)
	}

	top, err := repo.TopNgrams(run.ID)
	if err != nil {
		t.Fatalf("failed to get top ngrams: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("expected 4 stored ngrams (2 per length), got %d", len(top))
	}
	if top[0].N != 4 || top[0].Rank != 1 || top[0].Ngram != "sat on the mat" || top[0].Count != 3 {
		t.Errorf("unexpected first row %+v", top[0])
	}
	if top[1].Ngram != "the cat sat on" || top[1].Count != 2 {
		t.Errorf("expected first-seen tie order, got %+v", top[1])
	}
	if top[2].N != 5 {
		t.Errorf("expected third row to be a 5-gram, got %+v", top[2])
	}

	lengths, err := repo.Lengths(run.ID)
	if err != nil {
		t.Fatalf("failed to get lengths: %v", err)
	}
	if len(lengths) != 2 || lengths[0].N != 4 {
		t.Errorf("unexpected lengths %+v", lengths)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	first, _ := repo.Record(analyze(t), "first")
	second, _ := repo.Record(analyze(t), "second")

	runs, err := repo.List(10)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Errorf("expected newest first, got %d then %d", runs[0].ID, runs[1].ID)
	}
}

func TestRecordIngest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	err := repo.RecordIngest([]corpus.Item{
		{Name: "a.txt", Lines: []string{"one", "two"}},
		{Name: "b.txt", Lines: []string{"three"}},
	})
	if err != nil {
		t.Fatalf("failed to record ingest: %v", err)
	}

	count, err := repo.CountIngested()
	if err != nil {
		t.Fatalf("failed to count ingested: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 ingested items, got %d", count)
	}
}
