// Package cmd implements the CLI commands for dayscribe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "dayscribe",
	Short: "dayscribe — sync calendar events into an Obsidian vault",
	Long: `Dayscribe fetches your calendar events, converts their HTML bodies into
clean Markdown, and writes one note per meeting (plus daily summaries)
into your Obsidian vault.

Usage:
  dayscribe sync [flags]
  dayscribe vault init --path <vault>`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env next to the binary may hold DAYSCRIBE_TOKEN.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
