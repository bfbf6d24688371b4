package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/watch"

	"github.com/spf13/cobra"
)

var watchFlags struct {
	interval time.Duration
	json     bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line whenever the balance, streak or rank changes",
	Long: "Polls the log database and prints the tank state on start and after every change.\n" +
		"With --json each event is one JSON object per line, for status bar widgets.",
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchFlags.interval, "interval", 30*time.Second, "Polling interval")
	watchCmd.Flags().BoolVar(&watchFlags.json, "json", false, "Emit events as JSON lines")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := watch.New(watch.Config{
		Options:  options(),
		Interval: watchFlags.interval,
	}, loadData)

	events, cancel := svc.Subscribe(16)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	progressf("  Watching %s every %s (Ctrl+C to stop)\n", dbPath(), watchFlags.interval)

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case err := <-done:
			return err
		case ev := <-events:
			if watchFlags.json {
				if err := enc.Encode(ev); err != nil {
					return fmt.Errorf("writing event: %w", err)
				}
				continue
			}
			fmt.Println(formatWatchEvent(ev))
		}
	}
}

func formatWatchEvent(ev watch.Event) string {
	s := ev.Snapshot
	line := fmt.Sprintf("%s  %s  %s cans  %s  streak %d",
		ev.Timestamp.Local().Format("15:04:05"),
		cli.Signed(s.BalanceKcal, cli.FormatKcal(s.BalanceKcal)),
		cli.FormatCans(s.Cans),
		cli.FormatMinutes(s.BaseMinutes, true),
		s.Streak)
	if s.Multiplier > 1 {
		line += fmt.Sprintf(" x%.1f", s.Multiplier)
	}
	line += "  rank " + s.Rank

	if ev.Type == watch.EventChange {
		d := ev.Delta
		if d.BalanceKcal != 0 {
			line += "  " + cli.Muted(fmt.Sprintf("(%+.0f kcal)", d.BalanceKcal))
		}
		if d.RankChanged {
			line += "  " + cli.Warn("rank changed")
		}
		if d.TodayChanged {
			line += "  " + cli.Muted("today: "+cli.StatusLabel(s.Today))
		}
	}
	return line
}
