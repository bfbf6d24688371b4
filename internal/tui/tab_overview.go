package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
	"github.com/theirongolddev/kcaltank/internal/tui/components"
	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	d := a.dash
	tank := d.Tank

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	// Row 1: headline metrics
	streakDelta := ""
	if d.Multiplier > 1 {
		streakDelta = fmt.Sprintf("x%.1f bonus on workouts", d.Multiplier)
	}
	metrics := []components.Metric{
		{
			Label: "Balance",
			Value: cli.FormatKcal(tank.BalanceKcal),
			Delta: fmt.Sprintf("%s cans of %s", signedCans(tank.CanCount), tank.StyleLabel),
			Color: t.BalanceColor(tank.BalanceKcal),
		},
		{
			Label: tank.BaseLabel,
			Value: cli.FormatMinutes(tank.DisplayMinutes, true),
			Delta: "1 can = " + cli.FormatMinutes(tank.OneCanMinutes, false),
			Color: t.BalanceColor(tank.DisplayMinutes),
		},
		{
			Label: "Streak",
			Value: fmt.Sprintf("%d days", d.Streak),
			Delta: streakDelta,
		},
		{
			Label: "Liver rank",
			Value: d.Grade.Rank + "  " + d.Grade.Label,
			Delta: cli.RankMessage(d.Grade),
			Color: t.RankColor(d.Grade.Rank, d.Grade.Color),
		},
	}
	if a.isCompactLayout() {
		metrics = metrics[:3]
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: tank and liver side by side
	halves := components.LayoutRow(cw, 2)
	tankInner := components.CardInnerWidth(halves[0])

	liquid := tank.LiquidColor
	if liquid == "" {
		liquid = string(t.Beer)
	}
	var tankBody strings.Builder
	tankBody.WriteString(components.TankGauge(tank.StyleLabel, cli.TankFill(tank), liquid,
		tank.BalanceKcal < 0, 14, max(tankInner-16, 10)))
	tankBody.WriteString("\n")
	msgStyle := mutedStyle
	if tank.BalanceKcal < 0 {
		msgStyle = lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	}
	tankBody.WriteString(msgStyle.Render(truncStr(cli.TankMessage(tank), tankInner)))
	tankBody.WriteString("\n\n")
	tankBody.WriteString(mutedStyle.Render(fmt.Sprintf("%-14s ", "Mode")))
	tankBody.WriteString(valueStyle.Render(fmt.Sprintf("%s  %s", modeName(a.cfg.ActiveMode()), tank.StyleLabel)))
	tankBody.WriteString("\n")
	if len(d.Shortcuts) > 0 {
		tankBody.WriteString(mutedStyle.Render(fmt.Sprintf("%-14s ", "Quick log")))
		parts := make([]string, 0, len(d.Shortcuts))
		for i, sc := range d.Shortcuts {
			parts = append(parts, fmt.Sprintf("[%d] %s %s", i+1,
				catalog.ResolveStyle(sc.Style).Label, catalog.ResolveSize(sc.Size).Label))
		}
		tankBody.WriteString(valueStyle.Render(truncStr(strings.Join(parts, "  "), tankInner-15)))
	} else {
		tankBody.WriteString(mutedStyle.Render(fmt.Sprintf("%-14s ", "Quick log")))
		tankBody.WriteString(valueStyle.Render(fmt.Sprintf("[1] %s can  [+] 10 min %s", tank.StyleLabel, tank.BaseLabel)))
	}

	liverInner := components.CardInnerWidth(halves[1])
	var liverBody strings.Builder
	liverBody.WriteString(components.GradeBar(d.Progress, string(t.RankColor(d.Grade.Rank, d.Grade.Color)), max(liverInner-6, 10)))
	liverBody.WriteString("\n")
	gradeNote := fmt.Sprintf("%d liver-friendly days in the last %d", d.Grade.Current, pipeline.GradeWindowDays)
	if d.Grade.IsRookie {
		gradeNote = fmt.Sprintf("%s friendly so far, %s needed to rise",
			cli.FormatPercent(d.Grade.RawRate), cli.FormatPercent(d.Grade.TargetRate))
	}
	liverBody.WriteString(mutedStyle.Render(truncStr(gradeNote, liverInner)))
	liverBody.WriteString("\n\n")
	liverBody.WriteString(mutedStyle.Render(fmt.Sprintf("%-10s ", "Today")))
	liverBody.WriteString(lipgloss.NewStyle().Foreground(t.StatusColor(d.Today)).Background(t.Surface).
		Render(cli.StatusGlyph(d.Today) + " " + cli.StatusLabel(d.Today)))
	liverBody.WriteString("\n")
	if d.CheckDay != pipeline.CheckNone {
		label := "Check"
		if d.CheckDay == pipeline.CheckYesterday {
			label = "Yesterday"
		}
		liverBody.WriteString(mutedStyle.Render(fmt.Sprintf("%-10s ", label)))
		liverBody.WriteString(valueStyle.Render(truncStr(d.CheckMessage, liverInner-11)))
	} else {
		liverBody.WriteString(mutedStyle.Render("No check-in yet today. `kcaltank check` records one."))
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Tank", tankBody.String(), halves[0]),
		components.ContentCard("Liver", liverBody.String(), halves[1]),
	}))
	b.WriteString("\n")

	// Row 3: this week and daily balance chart
	weekW := min(cw/3, 46)
	chartW := cw - weekW

	var weekBody strings.Builder
	weekBody.WriteString(renderStamps(d.Weekly))
	weekBody.WriteString("\n\n")
	weekBody.WriteString(mutedStyle.Render(fmt.Sprintf("%d dry days before today", d.Weekly.DryCount)))

	net := make([]float64, len(a.series))
	for i, day := range a.series {
		net[i] = day.PlusKcal + day.MinusKcal
	}
	chart := components.BalanceChart(net, chartDateLabels(a.series), components.CardInnerWidth(chartW), 8)

	b.WriteString(components.CardRow([]string{
		components.ContentCard("This week", weekBody.String(), weekW),
		components.ContentCard(fmt.Sprintf("Daily net kcal [%dd]", a.days), chart, chartW),
	}))

	if a.legacy > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).
			Render(fmt.Sprintf(" %d logs were recorded in minutes and converted with your profile", a.legacy)))
	}

	return b.String()
}

func signedCans(c float64) string {
	if c < 0 {
		return "-" + cli.FormatCans(math.Abs(c))
	}
	return cli.FormatCans(c)
}
