package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Monthly heatmap of dry, drinking and exercise days",
	RunE:    runCalendar,
}

var calendarOffset int

func init() {
	calendarCmd.Flags().IntVarP(&calendarOffset, "offset", "o", 0, "Months from now (-1 is last month)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	now := time.Now()
	hm := pipeline.MonthHeatmap(now, calendarOffset, result.Logs, result.Checks)

	fmt.Println()
	fmt.Println(cli.RenderTitle("CALENDAR"))
	fmt.Println()
	fmt.Print(cli.RenderHeatmap(hm))
	fmt.Println()
	fmt.Printf("%s\n\n", cli.RenderLegend())

	counts := make(map[model.DayStatus]int)
	qualifying := 0
	for _, c := range hm.Cells {
		if c.Blank || c.Status == model.StatusNone {
			continue
		}
		counts[c.Status]++
		if pipeline.Qualifies(c.Status) {
			qualifying++
		}
	}
	fmt.Printf("  %d liver-friendly days, %d drinking days\n",
		qualifying, counts[model.StatusDrink]+counts[model.StatusDrinkExercise]+counts[model.StatusDrinkExerciseSuccess])

	if calendarOffset == 0 {
		ws := pipeline.WeeklyStamps(now, result.Logs, result.Checks)
		fmt.Println()
		fmt.Println(cli.RenderSection("Last 7 days"))
		fmt.Println(cli.RenderStamps(ws))
	}
	fmt.Println()
	return nil
}
