package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/julienpequegnot/slopmon/internal/config"
	"github.com/julienpequegnot/slopmon/internal/corpus"
	"github.com/julienpequegnot/slopmon/internal/database"
	"github.com/julienpequegnot/slopmon/internal/run"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [file-or-folder...]",
	Short: "Score a corpus once",
	Long: `Reads every given file, and every matching file inside the given folders,
then prints the slop score and the most frequent n-grams of each length.
Without arguments the configured watch folder is used.`,
	RunE: runScore,
}

var scoreFlags analysisFlags

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreFlags.register(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := scoreFlags.apply(cfg); err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.Watch.Folder}
	}

	batch, err := collect(cmd.Context(), paths, cfg.Watch.Extension)
	if err != nil {
		return err
	}
	for _, e := range batch.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  Error reading: %v\n", e)
	}

	var runs *run.Repository
	if !scoreFlags.noSave {
		db, err := database.New(config.DBPath())
		if err != nil {
			return err
		}
		defer db.Close()

		runs = run.NewRepository(db)
		if err := runs.RecordIngest(batch.Items); err != nil {
			return err
		}
	}

	lines := batch.Lines()
	if !scoreFlags.json {
		fmt.Fprintf(cmd.OutOrStdout(), "Scoring %d lines from %d files (n=%s)\n\n",
			len(lines), len(batch.Items), cfg.Range())
	}

	_, err = analyzeAndReport(cmd.OutOrStdout(), lines, cfg, &scoreFlags, runs, strings.Join(paths, ","))
	return err
}

// collect reads files directly and folders through a folder supplier.
func collect(ctx context.Context, paths []string, ext string) (corpus.Batch, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var batch corpus.Batch
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return batch, fmt.Errorf("failed to stat %s: %w", p, err)
		}

		if !info.IsDir() {
			lines, err := corpus.ReadLines(p)
			if err != nil {
				return batch, err
			}
			batch.Items = append(batch.Items, corpus.Item{Name: p, Lines: lines})
			continue
		}

		b, err := corpus.NewFolderSupplier(p, ext).Poll(ctx)
		if err != nil {
			return batch, err
		}
		batch.Merge(b)
	}
	return batch, nil
}
