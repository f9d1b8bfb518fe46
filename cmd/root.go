package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slopmon",
	Short: "Measure repeated phrasing across a growing text corpus",
	Long: `Slopmon counts repeated word n-grams across a corpus of text lines,
computes a slop score, and reports the most frequent phrases.

Pipeline: collect → score → report → journal`,
}

func init() {
	rootCmd.Version = "0.1.0"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
