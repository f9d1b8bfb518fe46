package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienpequegnot/slopmon/internal/config"
	"github.com/julienpequegnot/slopmon/internal/corpus"
	"github.com/julienpequegnot/slopmon/internal/database"
	"github.com/julienpequegnot/slopmon/internal/feed"
	"github.com/julienpequegnot/slopmon/internal/run"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Re-score the corpus whenever new input arrives",
	Long: `Watches a folder for new text files (and optionally RSS/Atom feeds),
appends their lines to the in-memory corpus, and recomputes the full report
every time something new shows up. The corpus starts empty on every launch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var (
	watchFlags    analysisFlags
	watchInterval int
	watchOnce     bool
	watchFeeds    []string
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchFlags.register(watchCmd)
	watchCmd.Flags().IntVar(&watchInterval, "interval", 0, "Override poll interval in seconds (0 = use config)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Run a single pass and exit")
	watchCmd.Flags().StringSliceVar(&watchFeeds, "feed", nil, "Feed or site URL to watch in addition to the folder (repeatable)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := watchFlags.apply(cfg); err != nil {
		return err
	}

	folder := cfg.Watch.Folder
	if len(args) == 1 {
		folder = args[0]
	}
	interval := cfg.Watch.IntervalSeconds
	if watchInterval > 0 {
		interval = watchInterval
	}
	feedURLs := append(append([]string{}, cfg.Feeds.URLs...), watchFeeds...)

	folderSup := corpus.NewFolderSupplier(folder, cfg.Watch.Extension)
	sources := corpus.Sources{folderSup}
	if len(feedURLs) > 0 {
		sources = append(sources, feed.NewSupplier(
			feedURLs,
			time.Duration(cfg.Feeds.TimeoutSeconds)*time.Second,
			cfg.Feeds.UserAgent,
		))
	}

	var runs *run.Repository
	if !watchFlags.noSave {
		db, err := database.New(config.DBPath())
		if err != nil {
			return err
		}
		defer db.Close()
		runs = run.NewRepository(db)
	}

	out := cmd.OutOrStdout()
	w := &watcher{
		out:    out,
		errOut: cmd.ErrOrStderr(),
		cfg:    cfg,
		runs:   runs,
		corpus: corpus.New(),
		source: folderSup.Dir(),
	}

	if !watchFlags.json {
		fmt.Fprintf(out, "Slopmon watching %s (%d feeds, interval: %ds, n=%s)\n",
			folderSup.Dir(), len(feedURLs), interval, cfg.Range())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if watchOnce {
		batch, err := corpus.PollInto(ctx, w.corpus, sources)
		w.handle(batch, err)
		if !watchFlags.json {
			fmt.Fprintln(out, "Single pass complete.")
		}
		return nil
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			fmt.Fprintf(w.errOut, "\nReceived signal %v, shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	err = corpus.Watch(ctx, w.corpus, sources, time.Duration(interval)*time.Second, w.handle)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// watcher reacts to supplier batches: it reports read errors and recomputes
// the whole analysis when new lines arrived.
type watcher struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config
	runs   *run.Repository
	corpus *corpus.Corpus
	source string
}

func (w *watcher) handle(batch corpus.Batch, err error) {
	if err != nil {
		fmt.Fprintf(w.errOut, "Poll error: %v\n", err)
	}
	for _, e := range batch.Errors {
		fmt.Fprintf(w.errOut, "  Error reading: %v\n", e)
	}
	if batch.Empty() {
		return
	}

	if w.runs != nil {
		if err := w.runs.RecordIngest(batch.Items); err != nil {
			fmt.Fprintf(w.errOut, "Journal error: %v\n", err)
		}
	}

	if !watchFlags.json {
		fmt.Fprintf(w.out, "\n[%s] %d new items, corpus now %d lines\n",
			time.Now().Format("2006-01-02 15:04:05"), len(batch.Items), w.corpus.Len())
	}

	if _, err := analyzeAndReport(w.out, w.corpus.Lines(), w.cfg, &watchFlags, w.runs, w.source); err != nil {
		fmt.Fprintf(w.errOut, "Pipeline error: %v\n", err)
	}
}
