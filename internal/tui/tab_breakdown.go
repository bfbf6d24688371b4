package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
	"github.com/theirongolddev/kcaltank/internal/tui/components"
	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderStylesCard(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	debtStyle := lipgloss.NewStyle().Foreground(t.Debt).Background(t.Surface)
	shareStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)

	title := fmt.Sprintf("Drinks by style [%dd]", a.days)
	if len(a.styles) == 0 {
		return components.ContentCard(title, mutedStyle.Render("Dry the whole period"), cw)
	}

	compact := a.isCompactLayout()
	nameW := max(innerW-7-8-10-7, 12)
	if compact {
		nameW = max(innerW-7-10-7, 10)
	}

	var body strings.Builder
	if compact {
		body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %6s %9s %6s", nameW, "Style", "Drinks", "Kcal", "Share")))
	} else {
		body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %6s %7s %9s %6s", nameW, "Style", "Drinks", "Cans", "Kcal", "Share")))
	}
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	var totalKcal float64
	for _, ss := range a.styles {
		s := catalog.ResolveStyle(ss.Style)
		liquid := t.Beer
		if s.LiquidColor != "" {
			liquid = lipgloss.Color(s.LiquidColor)
		}
		nameStyle := lipgloss.NewStyle().Foreground(liquid).Background(t.Surface)

		body.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(s.Label, nameW))))
		if compact {
			body.WriteString(rowStyle.Render(fmt.Sprintf(" %6d", ss.Drinks)))
		} else {
			body.WriteString(rowStyle.Render(fmt.Sprintf(" %6d %7g", ss.Drinks, ss.Cans)))
		}
		body.WriteString(debtStyle.Render(fmt.Sprintf(" %9s", cli.FormatKcal(-ss.Kcal))))
		body.WriteString(shareStyle.Render(fmt.Sprintf(" %5.1f%%", ss.SharePercent)))
		body.WriteString("\n")
		totalKcal += ss.Kcal
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s ", nameW, "Total")))
	body.WriteString(debtStyle.Render(cli.FormatKcal(-totalKcal)))

	return components.ContentCard(title, body.String(), cw)
}

func (a App) renderExercisesCard(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)
	p := a.cfg.ModelProfile()
	base := a.dash.Tank

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.BlueBright).Background(t.Surface)
	creditStyle := lipgloss.NewStyle().Foreground(t.Credit).Background(t.Surface)

	title := fmt.Sprintf("Exercise [%dd]", a.days)
	if len(a.exercises) == 0 {
		return components.ContentCard(title, mutedStyle.Render("No workouts in this period"), cw)
	}

	baseCol := truncStr(base.BaseLabel, 10)
	nameW := max(innerW-8-9-11-3, 10)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %8s %9s %10s", nameW, "Exercise", "Sessions", "Kcal", baseCol)))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for _, es := range a.exercises {
		ex := catalog.ResolveExercise(es.Exercise)
		body.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(ex.Icon+" "+ex.Label, nameW))))
		body.WriteString(rowStyle.Render(fmt.Sprintf(" %8d", es.Sessions)))
		body.WriteString(creditStyle.Render(fmt.Sprintf(" %9s", cli.FormatKcal(es.Kcal))))
		body.WriteString(rowStyle.Render(fmt.Sprintf(" %10s",
			cli.FormatMinutes(pipeline.SignedMinutes(es.Kcal, base.BaseExercise, p), false))))
		body.WriteString("\n")
	}

	return components.ContentCard(title, body.String(), cw)
}

func (a App) renderHourlyCard(cw int) string {
	t := theme.Active
	drinks := make([]float64, 24)
	workouts := make([]float64, 24)
	labels := make([]string, 24)
	for i := range labels {
		labels[i] = fmt.Sprintf("%02d", i)
	}
	for _, h := range a.hourly {
		if h.Hour >= 0 && h.Hour < 24 {
			drinks[h.Hour] = float64(h.Drinks)
			workouts[h.Hour] = float64(h.Exercises)
		}
	}

	innerW := components.CardInnerWidth(cw)
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		chart := components.BarChart(drinks, labels, t.Red, innerW, 6)
		return components.ContentCard("Drinks by hour", chart, cw)
	}

	return components.CardRow([]string{
		components.ContentCard("Drinks by hour", components.BarChart(drinks, labels, t.Red,
			components.CardInnerWidth(halves[0]), 6), halves[0]),
		components.ContentCard("Workouts by hour", components.BarChart(workouts, labels, t.BlueBright,
			components.CardInnerWidth(halves[1]), 6), halves[1]),
	})
}

func (a App) renderBreakdownTab(cw int) string {
	var b strings.Builder
	if a.isCompactLayout() {
		b.WriteString(a.renderStylesCard(cw))
		b.WriteString("\n")
		b.WriteString(a.renderExercisesCard(cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderStylesCard(halves[0]),
			a.renderExercisesCard(halves[1]),
		}))
	}
	b.WriteString("\n")
	b.WriteString(a.renderHourlyCard(cw))
	return b.String()
}
