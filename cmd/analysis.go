package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/julienpequegnot/slopmon/internal/config"
	"github.com/julienpequegnot/slopmon/internal/report"
	"github.com/julienpequegnot/slopmon/internal/run"
	"github.com/julienpequegnot/slopmon/internal/slop"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// analysisFlags are the n-gram overrides shared by score and watch.
type analysisFlags struct {
	min    int
	max    int
	top    int
	json   bool
	noSave bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.min, "min", 0, "Shortest n-gram length (0 = use config)")
	cmd.Flags().IntVar(&f.max, "max", 0, "Longest n-gram length (0 = use config)")
	cmd.Flags().IntVarP(&f.top, "top", "n", 0, "Top n-grams to show per length (0 = use config)")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "Do not record the run in the journal")
}

// apply overrides cfg with any flags that were set and validates the result.
func (f *analysisFlags) apply(cfg *config.Config) error {
	if f.min > 0 {
		cfg.Ngram.Min = f.min
	}
	if f.max > 0 {
		cfg.Ngram.Max = f.max
	}
	if f.top > 0 {
		cfg.Ngram.Top = f.top
	}
	return cfg.Validate()
}

// analyzeAndReport scores lines, prints the report and, unless disabled,
// journals the run.
func analyzeAndReport(out io.Writer, lines []string, cfg *config.Config, flags *analysisFlags, runs *run.Repository, source string) (*slop.Analysis, error) {
	analysis, err := slop.Analyze(lines, cfg.Range(), cfg.Ngram.Top)
	if err != nil {
		return nil, err
	}

	if flags.json {
		err = report.JSON(out, analysis)
	} else {
		err = report.Render(out, analysis, report.Options{Styled: isTerminal(out)})
	}
	if err != nil {
		return nil, err
	}

	if runs != nil && !flags.noSave {
		if _, err := runs.Record(analysis, source); err != nil {
			return analysis, fmt.Errorf("failed to record run: %w", err)
		}
	}
	return analysis, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
