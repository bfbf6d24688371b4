package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Drink breakdown by style",
	RunE:  runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	since, until := timeWindow(time.Now())
	styles := pipeline.AggregateStyles(result.Logs, since, until)
	if len(styles) == 0 {
		fmt.Println("\n  No drinks in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DRINKS BY STYLE  Last %dd", flagDays)))
	fmt.Println()

	rows := make([][]string, 0, len(styles))
	for _, ss := range styles {
		s := catalog.ResolveStyle(ss.Style)
		rows = append(rows, []string{
			s.Icon + " " + s.Label,
			cli.FormatNumber(int64(ss.Drinks)),
			fmt.Sprintf("%g", ss.Cans),
			cli.FormatKcal(-ss.Kcal),
			fmt.Sprintf("%.1f%%", ss.SharePercent),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Style", "Logs", "Servings", "Kcal", "Share"},
		Rows:    rows,
	}))
	return nil
}
