// Package cmd implements the kcaltank CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/config"
	"github.com/theirongolddev/kcaltank/internal/logging"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
	"github.com/theirongolddev/kcaltank/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDays    int
	flagDB      string
	flagMode    string
	flagQuiet   bool
	flagVerbose bool
)

var (
	appConfig = config.DefaultConfig()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:               "kcaltank",
	Short:             "Beer kcal debt tracker",
	Long:              "Log drinks and exercise, and see how many cans you have earned back.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 30, "Time window in days")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagMode, "mode", "m", "", "Tank mode for this run: 1 or 2")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Mirror diagnostic logs to stderr")
}

// prepare loads the config and installs the logger before every command.
func prepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	_, logCloser = logging.Setup(logging.Options{
		Path:    config.LogPath(cfg),
		Level:   cfg.Log.Level,
		Verbose: flagVerbose,
	})
	for _, w := range cfg.Warnings() {
		slog.Warn("config", "issue", w)
	}

	if !cmd.Flags().Changed("days") && cfg.General.DefaultDays > 0 {
		flagDays = cfg.General.DefaultDays
	}
	if flagDays <= 0 {
		return fmt.Errorf("--days must be positive, got %d", flagDays)
	}
	if _, err := parseMode(flagMode); err != nil {
		return err
	}

	slog.Debug("command start", "cmd", cmd.CommandPath(), "db", dbPath())
	return nil
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.DBPath(appConfig)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(dbPath())
	if err != nil {
		return nil, fmt.Errorf("opening log database: %w", err)
	}
	return st, nil
}

// loadData reads and normalizes every log and check.
func loadData() (*pipeline.LoadResult, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()
	return loadFrom(st)
}

func loadFrom(st *store.Store) (*pipeline.LoadResult, error) {
	result, err := pipeline.Load(st, appConfig.ModelProfile())
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded",
		"logs", len(result.Logs),
		"checks", len(result.Checks),
		"legacy", result.LegacyLogs,
		"took", result.LoadTime)
	return result, nil
}

// options returns pipeline options with the --mode override applied.
func options() pipeline.Options {
	opts := appConfig.Options()
	if m, _ := parseMode(flagMode); m != "" {
		opts.Mode = m
	}
	return opts
}

func parseMode(s string) (model.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "1", "mode1":
		return model.Mode1, nil
	case "2", "mode2":
		return model.Mode2, nil
	}
	return "", fmt.Errorf("unknown mode %q (use 1 or 2)", s)
}

// timeWindow returns the [since, until) range covering the last --days days
// including today.
func timeWindow(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(flagDays - 1)), today.AddDate(0, 0, 1)
}

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseWhen reads a --at value in now's location. A bare "15:04" means today,
// a bare date means noon of that day.
func parseWhen(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if clock, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
	}
	for _, layout := range whenLayouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.Add(12 * time.Hour)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (use 15:04, 2006-01-02 or 2006-01-02 15:04)", s)
}

// resolveID expands a unique id prefix to the full log id.
func resolveID(st *store.Store, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("empty id")
	}
	if _, err := st.GetLog(prefix); err == nil {
		return prefix, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	logs, err := st.LoadAllLogs()
	if err != nil {
		return "", fmt.Errorf("loading logs: %w", err)
	}
	var match string
	for _, l := range logs {
		if !strings.HasPrefix(l.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
		}
		match = l.ID
	}
	if match == "" {
		return "", fmt.Errorf("log %s: %w", prefix, store.ErrNotFound)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func progressf(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
