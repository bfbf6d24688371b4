package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/theirongolddev/kcaltank/internal/source"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every log and check to a JSON backup",
	RunE:  runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json or jsonl (default from the output extension, else json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	format := exportFormat
	if format == "" {
		format = "json"
		if exportOutput != "" && source.IsLinesFile(exportOutput) {
			format = "jsonl"
		}
	}
	if format != "json" && format != "jsonl" {
		return fmt.Errorf("unknown format %q (json or jsonl)", format)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	logs, err := st.LoadAllLogs()
	if err != nil {
		return fmt.Errorf("reading logs: %w", err)
	}
	checks, err := st.LoadAllChecks()
	if err != nil {
		return fmt.Errorf("reading checks: %w", err)
	}

	var out io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput) //nolint:gosec // user-chosen output path
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOutput, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	bw := bufio.NewWriter(out)
	if format == "jsonl" {
		err = source.WriteLines(bw, logs, checks)
	} else {
		err = source.WriteBackup(bw, logs, checks, time.Now())
	}
	if err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}

	slog.Info("exported", "logs", len(logs), "checks", len(checks), "format", format, "output", exportOutput)
	if exportOutput != "" {
		progressf("  Exported %d logs and %d checks to %s\n", len(logs), len(checks), exportOutput)
	}
	return nil
}
