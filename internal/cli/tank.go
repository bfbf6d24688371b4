package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	// TankMaxCans is the credit shown as a full tank.
	TankMaxCans = 3.0
	// TankMinFill keeps a tiny credit visible.
	TankMinFill = 0.05
)

// TankFill returns the 0-1 fill level for a tank view. Debt is an empty tank.
func TankFill(v model.TankView) float64 {
	if v.BalanceKcal <= 0 {
		return 0
	}
	return math.Max(TankMinFill, math.Min(1, v.CanCount/TankMaxCans))
}

// TankMessage is the one-line tank caption for v's tier.
func TankMessage(v model.TankView) string {
	switch v.Tier {
	case model.TierHold:
		return "Hold on. Half a can first."
	case model.TierAlmost:
		return "Almost one can. Keep going!"
	case model.TierOneCan:
		return fmt.Sprintf("You've earned one %s.", v.StyleLabel)
	case model.TierPlenty:
		return "Plenty saved. Cheers!"
	case model.TierDebtPile:
		return fmt.Sprintf("Debts piling up. Pay back one can first (%s).", FormatMinutes(v.OneCanMinutes, false))
	default:
		return fmt.Sprintf("Running dry. Move for %s more cans.", FormatCans(math.Abs(v.CanCount)))
	}
}

// RenderTank renders the tank as a horizontal gauge in the style's liquid color.
func RenderTank(v model.TankView, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(math.Round(TankFill(v) * float64(width)))
	if v.BalanceKcal > 0 && filled == 0 {
		filled = 1
	}

	glyph := "█"
	if v.IsHazy {
		glyph = "▓"
	}
	liquid := lipgloss.NewStyle().Foreground(lipgloss.Color(v.LiquidColor)).Render(strings.Repeat(glyph, filled))
	empty := dimStyle.Render(strings.Repeat("░", width-filled))

	var b strings.Builder
	b.WriteString(dimStyle.Render("▕"))
	b.WriteString(liquid)
	b.WriteString(empty)
	b.WriteString(dimStyle.Render("▏"))

	cans := v.CanCount
	if cans < 0 {
		cans = 0
	}
	fmt.Fprintf(&b, " %s cans  %s", FormatCans(cans),
		Signed(v.DisplayMinutes, FormatMinutes(v.DisplayMinutes, true)+" "+v.BaseIcon))
	return b.String()
}

// RankMessage describes progress toward the next rank.
func RankMessage(g model.Grade) string {
	switch {
	case g.Next == nil:
		return "Top rank reached. Keep it up!"
	case g.IsRookie:
		return fmt.Sprintf("Almost ranked (currently %s)", FormatPercent(g.RawRate))
	default:
		return fmt.Sprintf("%d more days to rank up", *g.Next-g.Current)
	}
}

// StatusGlyph returns a one-cell symbol for a day status.
func StatusGlyph(s model.DayStatus) string {
	switch s {
	case model.StatusRest:
		return "◯"
	case model.StatusRestExercise:
		return "◎"
	case model.StatusDrinkExerciseSuccess:
		return "◉"
	case model.StatusDrinkExercise:
		return "◐"
	case model.StatusDrink:
		return "●"
	case model.StatusExercise:
		return "◇"
	default:
		return "·"
	}
}

// StatusColor returns the display color for a day status.
func StatusColor(s model.DayStatus) lipgloss.Color {
	switch s {
	case model.StatusRest, model.StatusRestExercise:
		return ColorGreen
	case model.StatusDrinkExerciseSuccess:
		return ColorAccent
	case model.StatusDrinkExercise:
		return ColorOrange
	case model.StatusDrink:
		return ColorRed
	case model.StatusExercise:
		return ColorBlue
	default:
		return ColorTextDim
	}
}

// StatusLabel returns a short human label for a day status.
func StatusLabel(s model.DayStatus) string {
	switch s {
	case model.StatusRest:
		return "Rest day"
	case model.StatusRestExercise:
		return "Rest day + workout"
	case model.StatusDrinkExerciseSuccess:
		return "Drank, paid back"
	case model.StatusDrinkExercise:
		return "Drank, partly paid"
	case model.StatusDrink:
		return "Drank"
	case model.StatusExercise:
		return "Workout"
	default:
		return "No record"
	}
}

func statusCell(s model.DayStatus, text string) string {
	return lipgloss.NewStyle().Foreground(StatusColor(s)).Render(text)
}

// RenderStamps renders the weekly stamp row with weekday labels.
func RenderStamps(ws model.WeeklyStamps) string {
	var labels, stamps strings.Builder
	for _, d := range ws.Days {
		label := FormatDayOfWeek(int(d.Date.Weekday()))
		if d.IsToday {
			label = "Tdy"
		}
		labels.WriteString(" " + padRight(label, 3) + " ")
		stamps.WriteString("  " + statusCell(d.Status, StatusGlyph(d.Status)) + "  ")
	}
	return "  " + mutedStyle.Render(labels.String()) + "\n  " + stamps.String() + "\n  " + ws.Message
}

// RenderHeatmap renders a month as a Sunday-first calendar grid.
func RenderHeatmap(hm model.HeatmapMonth) string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(hm.Month.Format("January 2006")) + "\n  ")
	for d := 0; d < 7; d++ {
		b.WriteString(mutedStyle.Render(padLeft(FormatDayOfWeek(d)[:2], 3)) + " ")
	}
	b.WriteString("\n  ")

	for i, c := range hm.Cells {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n  ")
		}
		switch {
		case c.Blank:
			b.WriteString("    ")
		case c.IsToday:
			b.WriteString(statusCell(c.Status, lipgloss.NewStyle().Underline(true).Render(padLeft(fmt.Sprint(c.Day), 3))) + " ")
		case c.Status == model.StatusNone:
			b.WriteString(dimStyle.Render(padLeft(fmt.Sprint(c.Day), 3)) + " ")
		default:
			b.WriteString(statusCell(c.Status, padLeft(fmt.Sprint(c.Day), 3)) + " ")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderLegend lists the status glyphs.
func RenderLegend() string {
	order := []model.DayStatus{
		model.StatusRest, model.StatusRestExercise, model.StatusDrinkExerciseSuccess,
		model.StatusDrinkExercise, model.StatusDrink, model.StatusExercise,
	}
	parts := make([]string, 0, len(order))
	for _, s := range order {
		parts = append(parts, statusCell(s, StatusGlyph(s))+" "+mutedStyle.Render(StatusLabel(s)))
	}
	return "  " + strings.Join(parts, "  ")
}
