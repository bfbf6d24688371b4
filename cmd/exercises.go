package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/energy"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Exercise breakdown by activity",
	RunE:  runExercises,
}

func init() {
	rootCmd.AddCommand(exercisesCmd)
}

func runExercises(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	since, until := timeWindow(time.Now())
	stats := pipeline.AggregateExercises(result.Logs, since, until)
	if len(stats) == 0 {
		fmt.Println("\n  No exercise in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EXERCISE  Last %dd", flagDays)))
	fmt.Println()

	opts := options()
	p := opts.Profile
	oneCan := catalog.UnitKcal(catalog.ResolveStyle(opts.Tank.Modes.StyleFor(opts.Mode)))
	rows := make([][]string, 0, len(stats))
	for _, es := range stats {
		ex := catalog.ResolveExercise(es.Exercise)
		rows = append(rows, []string{
			ex.Icon + " " + ex.Label,
			cli.FormatNumber(int64(es.Sessions)),
			cli.FormatMinutes(energy.KcalToMinutes(es.Kcal, es.Exercise, p), false),
			cli.FormatKcal(es.Kcal),
			cli.FormatCans(es.Kcal / oneCan),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Exercise", "Sessions", "Time", "Kcal", "Cans"},
		Rows:    rows,
	}))
	return nil
}
