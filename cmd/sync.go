// Package cmd — sync command.
// This is the main command that orchestrates the pipeline:
// fetch events → convert bodies → format notes → write to vault.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gaurav-prasanna/dayscribe/core/format"
	"github.com/gaurav-prasanna/dayscribe/core/graph"
	"github.com/gaurav-prasanna/dayscribe/sync"
	"github.com/gaurav-prasanna/dayscribe/vault"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagStart       string
	flagEnd         string
	flagToken       string
	flagConfig      string
	flagContinuous  bool
	flagInterval    int
	flagNoSummaries bool
	flagNoShortcut  bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync calendar events into the vault",
	Long: `Sync fetches calendar events for a date range (default: yesterday through
seven days out), converts each event body to Markdown, and writes one note
per meeting into the vault, plus a daily summary note per day.

Examples:
  dayscribe sync
  dayscribe sync --start 2026-09-01 --end 2026-09-07
  dayscribe sync --continuous --interval 5`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD)")
	syncCmd.Flags().StringVar(&flagEnd, "end", "", "End date (YYYY-MM-DD, exclusive)")
	syncCmd.Flags().StringVar(&flagToken, "token", "", "Graph API access token (default: $DAYSCRIBE_TOKEN)")
	syncCmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default: ~/.dayscribe/config.yaml)")
	syncCmd.Flags().BoolVar(&flagContinuous, "continuous", false, "Keep syncing until interrupted")
	syncCmd.Flags().IntVar(&flagInterval, "interval", 5, "Minutes between continuous sync cycles")
	syncCmd.Flags().BoolVar(&flagNoSummaries, "no-summaries", false, "Skip daily summary notes")
	syncCmd.Flags().BoolVar(&flagNoShortcut, "no-shortcut", false, "Skip the Current Meeting shortcut note")
}

func runSync(cmd *cobra.Command, args []string) error {
	token := flagToken
	if token == "" {
		token = os.Getenv("DAYSCRIBE_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("no access token: pass --token or set DAYSCRIBE_TOKEN")
	}

	cfg, err := loadVaultConfig()
	if err != nil {
		return err
	}

	start, end, err := resolveWindow()
	if err != nil {
		return err
	}

	// Wire the pipeline.
	conn := vault.Connect(cfg)
	formatter := format.New(cfg.Calendar.FolderOrganization != "")
	source := graph.New(token)

	var summaries *sync.SummaryGenerator
	if !flagNoSummaries {
		summaries = sync.NewSummaryGenerator(conn, formatter)
	}
	var shortcuts *sync.ShortcutGenerator
	if !flagNoShortcut {
		shortcuts = sync.NewShortcutGenerator(conn, formatter)
	}
	engine := sync.NewEngine(source, formatter, conn, summaries, shortcuts, slog.Default())

	if flagContinuous {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		daemon := sync.NewDaemon(engine, time.Duration(flagInterval)*time.Minute, slog.Default())
		return daemon.Run(ctx)
	}

	result, err := engine.Sync(context.Background(), start, end)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Synced %d events (%d notes created, %d updated)\n",
		result.EventsSynced, result.NotesCreated, result.NotesUpdated)
	if !flagNoSummaries {
		fmt.Fprintf(os.Stdout, "✓ Daily summaries: %d created, %d updated\n",
			result.SummariesCreated, result.SummariesUpdated)
	}
	return nil
}

func loadVaultConfig() (*vault.Config, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = vault.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := vault.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading vault config (run 'dayscribe vault init' first): %w", err)
	}
	return cfg, nil
}

// resolveWindow turns --start/--end into a sync range, falling back to the
// default window when unset.
func resolveWindow() (time.Time, time.Time, error) {
	start, end := sync.DefaultWindow(time.Now())

	if flagStart != "" {
		t, err := time.Parse("2006-01-02", flagStart)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date %q (want YYYY-MM-DD)", flagStart)
		}
		start = t
	}
	if flagEnd != "" {
		t, err := time.Parse("2006-01-02", flagEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date %q (want YYYY-MM-DD)", flagEnd)
		}
		end = t
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end must be after --start")
	}
	return start, end, nil
}
