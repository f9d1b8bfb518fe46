package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/slopmon/internal/config"
	"github.com/julienpequegnot/slopmon/internal/database"
	"github.com/julienpequegnot/slopmon/internal/ngram"
	"github.com/julienpequegnot/slopmon/internal/report"
	"github.com/julienpequegnot/slopmon/internal/run"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long:  `Lists the runs recorded by score and watch, newest first. Use --show to print the stored top n-grams of one run.`,
	RunE:  runHistory,
}

var (
	historyTop  int
	historyShow int64
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyTop, "top", "n", 20, "Number of runs to show")
	historyCmd.Flags().Int64Var(&historyShow, "show", 0, "Show the stored n-grams of a run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := run.NewRepository(db)
	if historyShow > 0 {
		return showRun(cmd, repo, historyShow)
	}

	runs, err := repo.List(historyTop)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded. Run 'slopmon score' or 'slopmon watch' first.")
		return nil
	}

	// Styles
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	scoreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf(" %-4s  %-10s  %-19s  %-7s  %-9s  %-5s  %s", "#", "SCORE", "DATE", "LINES", "NGRAMS", "N", "SOURCE")))
	fmt.Fprintln(out, strings.Repeat("─", 100))

	for _, r := range runs {
		source := truncateLeft(r.Source, 30)

		fmt.Fprintf(out, " %s  %s  %s  %-7d  %-9d  %-5s  %s\n",
			idStyle.Render(fmt.Sprintf("%-4d", r.ID)),
			scoreStyle.Render(fmt.Sprintf("%-10.4f", r.Score)),
			dateStyle.Render(r.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			r.Documents,
			r.TotalNgrams,
			ngram.Range{Min: r.MinNgram, Max: r.MaxNgram}.String(),
			source,
		)
	}

	return nil
}

func showRun(cmd *cobra.Command, repo *run.Repository, id int64) error {
	r, err := repo.Get(id)
	if err != nil {
		return fmt.Errorf("run %d not found: %w", id, err)
	}
	top, err := repo.TopNgrams(id)
	if err != nil {
		return err
	}
	lengths, err := repo.Lengths(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	fmt.Fprintf(out, "%s %s (%s)\n", titleStyle.Render(fmt.Sprintf("Run #%d", r.ID)), r.Source, r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Slop Score for the entire corpus: %s\n", report.FormatScore(r.Score, r.TotalNgrams))
	fmt.Fprintf(out, "Lines: %d, n-grams: %d (%d distinct)\n", r.Documents, r.TotalNgrams, r.DistinctNgrams)

	for _, l := range lengths {
		fmt.Fprintf(out, "\nTop %d %d-grams:\n", r.TopX, l.N)
		for _, t := range top {
			if t.N == l.N {
				fmt.Fprintf(out, "%s (count: %d)\n", t.Ngram, t.Count)
			}
		}
		fmt.Fprintf(out, "Total unique %d-grams: %d\n", l.N, l.Distinct)
	}
	return nil
}

// truncateLeft keeps the last runes of s so that it fits in width runes.
func truncateLeft(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return "..." + string(runes[len(runes)-(width-3):])
}
