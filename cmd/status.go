package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the tank, liver rank, streak and this week's stamps",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	now := time.Now()
	d := pipeline.BuildDashboard(now, result.Logs, result.Checks, options())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("KCAL TANK  %s mode", d.Tank.StyleLabel)))
	fmt.Println()

	// Tank
	fmt.Printf("  %s\n", cli.RenderTank(d.Tank, 30))
	fmt.Printf("  %s\n", cli.Muted(cli.TankMessage(d.Tank)))
	fmt.Printf("  %s  %s\n\n",
		cli.Signed(d.Tank.BalanceKcal, cli.FormatKcal(d.Tank.BalanceKcal)),
		cli.Muted(fmt.Sprintf("1 can = %s of %s", cli.FormatMinutes(d.Tank.OneCanMinutes, false), d.Tank.BaseLabel)))

	// Rank and streak
	rank := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.Grade.Color)).
		Render(fmt.Sprintf("%s  %s", d.Grade.Rank, d.Grade.Label))
	streak := fmt.Sprintf("%d day streak", d.Streak)
	if d.Multiplier > 1 {
		streak += "  " + cli.Warn(fmt.Sprintf("x%.1f Bonus!", d.Multiplier))
	}

	rows := [][]string{
		{"Rank", rank},
		{"Progress", cli.RenderProgressBar(d.Progress, 20) + "  " + cli.Muted(cli.RankMessage(d.Grade))},
		{"Streak", streak},
		{"Today", cli.StatusLabel(d.Today)},
	}
	if d.CheckDay != pipeline.CheckNone {
		label := "Check (today)"
		if d.CheckDay == pipeline.CheckYesterday {
			label = "Check (yesterday)"
		}
		rows = append(rows, []string{label, d.CheckMessage})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Liver", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	// Weekly stamps
	fmt.Println(cli.RenderSection("This week"))
	fmt.Println(cli.RenderStamps(d.Weekly))
	fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("%d dry days before today", d.Weekly.DryCount)))

	if len(d.Shortcuts) > 0 {
		parts := make([]string, 0, len(d.Shortcuts))
		for _, sc := range d.Shortcuts {
			parts = append(parts, fmt.Sprintf("%s %s (%dx)",
				catalog.ResolveStyle(sc.Style).Label, catalog.ResolveSize(sc.Size).Label, sc.Count))
		}
		fmt.Printf("  %s %s\n\n", cli.Muted("Usual:"), strings.Join(parts, ", "))
	}

	if len(result.Logs) == 0 {
		fmt.Println("  No logs yet. Try `kcaltank drink` or `kcaltank exercise 30`.")
		fmt.Println()
	}
	return nil
}
