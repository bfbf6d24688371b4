package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals for the selected period with a comparison to the one before",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

type periodTotals struct {
	Drinks       int
	Servings     float64
	DebtKcal     float64 // negative
	Sessions     int
	CreditKcal   float64
	LiverDays    int
	DrinkingDays int
}

func (t periodTotals) Net() float64 { return t.CreditKcal + t.DebtKcal }

func totalsFor(logs []model.LogEntry, checks []model.CheckEntry, since, until time.Time) periodTotals {
	var t periodTotals
	for _, ss := range pipeline.AggregateStyles(logs, since, until) {
		t.Drinks += ss.Drinks
		t.Servings += ss.Cans
		t.DebtKcal -= ss.Kcal
	}
	for _, es := range pipeline.AggregateExercises(logs, since, until) {
		t.Sessions += es.Sessions
		t.CreditKcal += es.Kcal
	}
	for day := since; day.Before(until); day = day.AddDate(0, 0, 1) {
		status := pipeline.DayStatusFor(day, logs, checks)
		if pipeline.Qualifies(status) {
			t.LiverDays++
		}
		if pipeline.HasAlcoholLog(logs, day) {
			t.DrinkingDays++
		}
	}
	return t
}

func runSummary(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	if len(result.Logs) == 0 && len(result.Checks) == 0 {
		fmt.Println("\n  Nothing logged yet.")
		fmt.Println("  Log a drink or a workout first, then come back!")
		return nil
	}

	now := time.Now()
	since, until := timeWindow(now)
	cur := totalsFor(result.Logs, result.Checks, since, until)
	prev := totalsFor(result.Logs, result.Checks, since.AddDate(0, 0, -flagDays), since)

	opts := options()
	p := opts.Profile
	base := opts.Tank.BaseExercise
	unit := pipeline.TankDisplayData(0, opts.Mode, opts.Tank, p)
	perDay := cur.Net() / float64(flagDays)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("KCAL SUMMARY  Last %dd", flagDays)))
	fmt.Println()

	netStr := cli.Signed(cur.Net(), cli.FormatKcal(cur.Net()))
	if prev.Drinks > 0 || prev.Sessions > 0 {
		netStr += fmt.Sprintf("  (%s vs prev %dd)", cli.FormatDelta(cur.Net(), prev.Net()), flagDays)
	}

	rows := [][]string{
		{"Drinks", fmt.Sprintf("%s logs, %g servings", cli.FormatNumber(int64(cur.Drinks)), cur.Servings)},
		{"Debt", cli.Signed(cur.DebtKcal, cli.FormatKcal(cur.DebtKcal))},
		{"Workouts", cli.FormatNumber(int64(cur.Sessions))},
		{"Credit", cli.Signed(cur.CreditKcal, cli.FormatKcal(cur.CreditKcal))},
		{"---"},
		{"Net", netStr},
		{"Net (cans)", cli.FormatCans(cur.Net() / unit.UnitKcal)},
		{"Net (" + unit.BaseLabel + ")", cli.FormatMinutes(pipeline.SignedMinutes(cur.Net(), base, p), true)},
		{"Net/day", cli.FormatKcal(perDay)},
		{"---"},
		{"Liver-friendly days", fmt.Sprintf("%d / %d", cur.LiverDays, flagDays)},
		{"Drinking days", fmt.Sprintf("%d  (prev %d)", cur.DrinkingDays, prev.DrinkingDays)},
		{"Balance (all time)", cli.FormatKcal(pipeline.Balance(result.Logs))},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if result.LegacyLogs > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "\n  %d logs were recorded in minutes and converted to kcal\n", result.LegacyLogs)
	}
	return nil
}
