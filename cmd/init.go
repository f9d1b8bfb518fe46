package cmd

import (
	"fmt"
	"os"

	"github.com/julienpequegnot/slopmon/internal/config"
	"github.com/julienpequegnot/slopmon/internal/database"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize slopmon configuration and database",
	Long:  `Creates the ~/.slopmon directory with config.yaml and the SQLite run journal.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := config.Dir()
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(out, "Created config at %s/config.yaml\n", dir)

	db, err := database.New(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	fmt.Fprintf(out, "Created database at %s\n", db.Path())
	db.Close()

	fmt.Fprintln(out, "\nSlopmon initialized! Next steps:")
	fmt.Fprintln(out, "  slopmon score <file-or-folder>   Score a corpus once")
	fmt.Fprintln(out, "  slopmon watch <folder>           Re-score whenever new .txt files appear")

	return nil
}
