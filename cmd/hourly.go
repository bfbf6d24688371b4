package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Drinks and exercise by hour of day",
	RunE:  runHourly,
}

func init() {
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Logs) == 0 {
		fmt.Println("\n  No logs found.")
		return nil
	}

	now := time.Now()
	since, until := timeWindow(now)
	hours := pipeline.AggregateHourly(result.Logs, since, until, now.Location())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ACTIVITY BY HOUR  Last %dd (local time)", flagDays)))
	fmt.Println()

	// Find max for bar scaling
	maxCount := 0
	for _, h := range hours {
		maxCount = max(maxCount, h.Drinks, h.Exercises)
	}

	maxBarWidth := 20
	barLen := func(n int) int {
		if maxCount == 0 {
			return 0
		}
		return n * maxBarWidth / maxCount
	}
	for _, h := range hours {
		d, e := barLen(h.Drinks), barLen(h.Exercises)
		fmt.Printf("  %02d:00 │ %3d %s%s │ %3d %s\n", h.Hour,
			h.Drinks, cli.Signed(-1, strings.Repeat("█", d)), strings.Repeat(" ", maxBarWidth-d),
			h.Exercises, cli.Signed(1, strings.Repeat("█", e)))
	}

	peakDrink, peakEx := 0, 0
	for _, h := range hours {
		if h.Drinks > hours[peakDrink].Drinks {
			peakDrink = h.Hour
		}
		if h.Exercises > hours[peakEx].Exercises {
			peakEx = h.Hour
		}
	}
	fmt.Printf("\n  Peak drinking: %02d:00 (%d)   Peak exercise: %02d:00 (%d)\n\n",
		peakDrink, hours[peakDrink].Drinks, peakEx, hours[peakEx].Exercises)
	return nil
}
