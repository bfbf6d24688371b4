package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:     "chart",
	Aliases: []string{"daily"},
	Short:   "Daily plus, minus and running balance",
	RunE:    runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Logs) == 0 {
		fmt.Println("\n  No logs found.")
		return nil
	}

	now := time.Now()
	since, _ := timeWindow(now)
	base := appConfig.Exercise.Base
	days := pipeline.DailySeries(result.Logs, result.Checks, base, appConfig.ModelProfile(), since, now)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY BALANCE  Last %dd", flagDays)))
	fmt.Println()

	balances := make([]float64, 0, len(days))
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		balances = append(balances, d.BalanceMins)
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			cli.Signed(d.PlusKcal, cli.FormatKcal(d.PlusKcal)),
			cli.Signed(d.MinusKcal, cli.FormatKcal(d.MinusKcal)),
			cli.Signed(d.BalanceKcal, cli.FormatKcal(d.BalanceKcal)),
			cli.Signed(d.BalanceMins, cli.FormatMinutes(d.BalanceMins, true)),
			cli.FormatWeight(d.Weight),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Plus", "Minus", "Balance", catalog.ResolveExercise(base).Label, "Weight"},
		Rows:    rows,
	}))

	fmt.Printf("\n  Balance trend  %s\n\n", cli.RenderSparkline(balances))
	return nil
}
