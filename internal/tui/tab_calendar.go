package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
	"github.com/theirongolddev/kcaltank/internal/tui/components"
	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var legendOrder = []model.DayStatus{
	model.StatusRest,
	model.StatusRestExercise,
	model.StatusDrinkExerciseSuccess,
	model.StatusDrinkExercise,
	model.StatusDrink,
	model.StatusExercise,
}

func statusStyle(s model.DayStatus) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.StatusColor(s)).Background(t.Surface)
}

// renderStamps draws the seven-day stamp row and its message.
func renderStamps(ws model.WeeklyStamps) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	todayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	var labels, stamps strings.Builder
	for i, d := range ws.Days {
		if i > 0 {
			labels.WriteString(space.Render(" "))
			stamps.WriteString(space.Render(" "))
		}
		if d.IsToday {
			labels.WriteString(todayStyle.Render("Tdy"))
		} else {
			labels.WriteString(labelStyle.Render(cli.FormatDayOfWeek(int(d.Date.Weekday()))))
		}
		stamps.WriteString(space.Render(" ") + statusStyle(d.Status).Render(cli.StatusGlyph(d.Status)) + space.Render(" "))
	}

	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	return labels.String() + "\n" + stamps.String() + "\n" + msgStyle.Render(ws.Message)
}

// renderHeatmap draws a Sunday-first month grid with cellW columns per day.
func renderHeatmap(hm model.HeatmapMonth, cellW int) string {
	t := theme.Active
	cellW = max(cellW, 4)
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for d := 0; d < 7; d++ {
		b.WriteString(headStyle.Render(fmt.Sprintf("%-*s", cellW, cli.FormatDayOfWeek(d))))
	}

	for i, c := range hm.Cells {
		if i%7 == 0 {
			b.WriteString("\n")
		}
		text := fmt.Sprintf("%2d %s", c.Day, cli.StatusGlyph(c.Status))
		cell := fmt.Sprintf("%-*s", cellW, text)
		switch {
		case c.Blank:
			b.WriteString(space.Render(strings.Repeat(" ", cellW)))
		case c.IsToday:
			b.WriteString(lipgloss.NewStyle().
				Foreground(t.StatusColor(c.Status)).
				Background(t.SurfaceBright).
				Bold(true).
				Render(text) + space.Render(strings.Repeat(" ", cellW-lipgloss.Width(text))))
		case c.Status == model.StatusNone:
			b.WriteString(dimStyle.Render(cell))
		default:
			b.WriteString(statusStyle(c.Status).Render(cell))
		}
	}
	return b.String()
}

func renderLegend() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	lines := make([]string, 0, len(legendOrder))
	for _, s := range legendOrder {
		lines = append(lines, statusStyle(s).Render(cli.StatusGlyph(s))+labelStyle.Render(" "+cli.StatusLabel(s)))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderCalendarTab(cw int) string {
	t := theme.Active
	hm := a.heatmap

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	counts := make(map[model.DayStatus]int)
	friendly, drinking, recorded := 0, 0, 0
	for _, c := range hm.Cells {
		if c.Blank || c.Status == model.StatusNone {
			continue
		}
		recorded++
		counts[c.Status]++
		if pipeline.Qualifies(c.Status) {
			friendly++
		}
		switch c.Status {
		case model.StatusDrink, model.StatusDrinkExercise, model.StatusDrinkExerciseSuccess:
			drinking++
		}
	}

	sideW := min(max(cw/3, 32), 44)
	gridW := cw - sideW
	cellW := min(components.CardInnerWidth(gridW)/7, 8)

	title := hm.Month.Format("January 2006")
	if a.calOffset == 0 {
		title += "  (this month)"
	}
	grid := renderHeatmap(hm, cellW) + "\n\n" +
		mutedStyle.Render("[ ] previous / next month")

	var side strings.Builder
	rows := []struct {
		label string
		value int
	}{
		{"Recorded days", recorded},
		{"Liver-friendly", friendly},
		{"Drinking days", drinking},
		{"Paid back", counts[model.StatusDrinkExerciseSuccess]},
	}
	for _, r := range rows {
		side.WriteString(mutedStyle.Render(fmt.Sprintf("%-16s", r.label)))
		side.WriteString(valueStyle.Render(fmt.Sprintf("%3d", r.value)))
		side.WriteString("\n")
	}
	if recorded > 0 {
		side.WriteString(components.ProgressBar(float64(friendly)/float64(recorded),
			max(components.CardInnerWidth(sideW)-6, 8)))
		side.WriteString("\n")
	}
	side.WriteString("\n")
	side.WriteString(renderLegend())

	var b strings.Builder
	b.WriteString(components.CardRow([]string{
		components.ContentCard(title, grid, gridW),
		components.ContentCard("Month", side.String(), sideW),
	}))

	if a.calOffset == 0 {
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Last 7 days", renderStamps(a.dash.Weekly), cw))
	}
	return b.String()
}
