package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/source"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file-or-dir>...",
	Short: "Load logs and checks from JSON or JSON Lines backups",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

var (
	importReplace bool
	importYes     bool
)

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Delete everything first instead of merging by id")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip the confirmation for --replace")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	paths, err := source.ScanPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("\n  No backup files found.")
		return nil
	}

	start := time.Now()
	results := source.ParseFiles(paths, func(current, total int) {
		progressf("\r  Parsing [%d/%d] files", current, total)
	})
	progressf("\r%*s\r", 40, "")

	var (
		logs     []model.RawLog
		checks   []model.CheckEntry
		skipped  int
		badFiles int
	)
	for _, r := range results {
		if r.Err != nil {
			badFiles++
			fmt.Fprintf(os.Stderr, "  %s: %v\n", r.Path, r.Err)
			slog.Warn("import file failed", "path", r.Path, "err", r.Err)
			continue
		}
		logs = append(logs, r.Logs...)
		checks = append(checks, r.Checks...)
		skipped += r.ParseErrors
	}

	if len(logs) == 0 && len(checks) == 0 {
		fmt.Println("\n  Nothing to import.")
		return nil
	}

	if importReplace && !importYes {
		ok := false
		err := huh.NewConfirm().
			Title("Replace all existing logs and checks?").
			Description(fmt.Sprintf("%d logs and %d checks will take their place.", len(logs), len(checks))).
			Affirmative("Replace").
			Negative("Cancel").
			Value(&ok).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Import(logs, checks, importReplace); err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	slog.Info("imported", "files", len(paths), "logs", len(logs), "checks", len(checks),
		"skipped", skipped, "replace", importReplace, "took", time.Since(start))

	fmt.Println()
	fmt.Printf("  Imported %d logs and %d checks from %d files in %.1fs\n",
		len(logs), len(checks), len(paths)-badFiles, time.Since(start).Seconds())
	if skipped > 0 {
		fmt.Printf("  %d unreadable records were skipped\n", skipped)
	}
	fmt.Println()
	return nil
}
