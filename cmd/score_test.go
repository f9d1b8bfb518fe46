package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julienpequegnot/slopmon/internal/config"
	"github.com/julienpequegnot/slopmon/internal/database"
	"github.com/julienpequegnot/slopmon/internal/run"
)

func TestCollectFilesAndFolders(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "corpus")
	if err := os.Mkdir(folder, 0755); err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	os.WriteFile(filepath.Join(folder, "a.txt"), []byte("alpha\n"), 0644)
	os.WriteFile(filepath.Join(folder, "skip.log"), []byte("skipped\n"), 0644)
	single := filepath.Join(dir, "single.md")
	os.WriteFile(single, []byte("single file\n"), 0644)

	batch, err := collect(context.Background(), []string{single, folder}, ".txt")
	if err != nil {
		t.Fatalf("failed to collect: %v", err)
	}

	lines := batch.Lines()
	if len(lines) != 2 || lines[0] != "single file" || lines[1] != "alpha" {
		t.Errorf("unexpected lines %q", lines)
	}
}

func TestCollectMissingPath(t *testing.T) {
	if _, err := collect(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, ".txt"); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestAnalyzeAndReportRecordsRun(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()
	runs := run.NewRepository(db)

	cfg := config.Default()
	flags := &analysisFlags{min: 4, max: 4, top: 3}
	if err := flags.apply(cfg); err != nil {
		t.Fatalf("failed to apply flags: %v", err)
	}

	var out bytes.Buffer
	lines := []string{"the cat sat on the mat", "the cat sat on the mat"}
	analysis, err := analyzeAndReport(&out, lines, cfg, flags, runs, "test")
	if err != nil {
		t.Fatalf("failed to analyze: %v", err)
	}

	if analysis.Result.Score != 1.0 {
		t.Errorf("expected score 1.0, got %f", analysis.Result.Score)
	}
	if !strings.HasPrefix(out.String(), "Slop Score for the entire corpus: 1.0\n") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	recorded, err := runs.List(10)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(recorded) != 1 || recorded[0].Source != "test" {
		t.Errorf("expected one recorded run, got %+v", recorded)
	}
}

func TestAnalysisFlagsRejectInvalidRange(t *testing.T) {
	cfg := config.Default()
	flags := &analysisFlags{min: 7}
	if err := flags.apply(cfg); err == nil {
		t.Error("expected error when min exceeds configured max")
	}
}
