// internal/config/config_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julienpequegnot/slopmon/internal/ngram"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Ngram.Min != 4 || cfg.Ngram.Max != 6 {
		t.Errorf("expected range 4-6, got %d-%d", cfg.Ngram.Min, cfg.Ngram.Max)
	}
	if cfg.Ngram.Top != 10 {
		t.Errorf("expected top 10, got %d", cfg.Ngram.Top)
	}
	if cfg.Watch.Extension != ".txt" {
		t.Errorf("expected extension .txt, got %s", cfg.Watch.Extension)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("SLOPMON_HOME", tmpDir)

	dir := Dir()
	if dir != tmpDir {
		t.Errorf("expected %s, got %s", tmpDir, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("SLOPMON_HOME", t.TempDir())

	cfg := Default()
	cfg.Ngram.Min = 2
	cfg.Ngram.Max = 3
	cfg.Feeds.URLs = []string{"https://example.com/feed.xml"}

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Range() != (ngram.Range{Min: 2, Max: 3}) {
		t.Errorf("expected range 2-3, got %s", loaded.Range())
	}
	if len(loaded.Feeds.URLs) != 1 {
		t.Errorf("expected 1 feed url, got %d", len(loaded.Feeds.URLs))
	}
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	t.Setenv("SLOPMON_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Ngram.Top != 10 {
		t.Errorf("expected default top 10, got %d", cfg.Ngram.Top)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SLOPMON_HOME", dir)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ngram:\n  top: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Ngram.Top != 3 {
		t.Errorf("expected top 3, got %d", cfg.Ngram.Top)
	}
	if cfg.Ngram.Min != 4 || cfg.Ngram.Max != 6 {
		t.Errorf("expected default range to survive, got %s", cfg.Range())
	}
}

func TestLoadRejectsInvalidRange(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SLOPMON_HOME", dir)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ngram:\n  min: 7\n  max: 5\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load()
	if !errors.Is(err, ngram.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}
