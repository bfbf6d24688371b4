// Package theme holds the kcaltank palettes. Besides the surface and text
// roles every palette names the colors of the ledger itself: debt and
// credit, the beer fill, one color per calendar day status and the liver
// rank tiers.
package theme

import (
	"github.com/theirongolddev/kcaltank/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Active tab
	SurfaceBright lipgloss.Color // Selected row, today's cell
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // Focused card
	TextDim       lipgloss.Color
	TextMuted     lipgloss.Color // Labels, hints
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	BlueBright    lipgloss.Color
	Yellow        lipgloss.Color
	Cyan          lipgloss.Color

	Debt   lipgloss.Color // Negative balances and drink kcal
	Credit lipgloss.Color // Positive balances and workout kcal
	Beer   lipgloss.Color // Tank fill when a style has no liquid color

	// Day status colors for the calendar and stamp row.
	Rest          lipgloss.Color
	RestExercise  lipgloss.Color
	PaidBack      lipgloss.Color // drank and worked it off
	DrinkExercise lipgloss.Color
	Drink         lipgloss.Color
	ExerciseOnly  lipgloss.Color

	// Ranks overrides the engine's hex color per rank ("S", "A", "B",
	// "C", "Rookie"). Missing ranks keep the hex.
	Ranks map[string]lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    lipgloss.Color("#100F0F"),
	Surface:       lipgloss.Color("#1C1B1A"),
	SurfaceHover:  lipgloss.Color("#282726"),
	SurfaceBright: lipgloss.Color("#343331"),
	Border:        lipgloss.Color("#403E3C"),
	BorderAccent:  lipgloss.Color("#3AA99F"),
	TextDim:       lipgloss.Color("#575653"),
	TextMuted:     lipgloss.Color("#878580"),
	TextPrimary:   lipgloss.Color("#FFFCF0"),
	Accent:        lipgloss.Color("#3AA99F"),
	AccentBright:  lipgloss.Color("#5BC8BE"),
	GreenBright:   lipgloss.Color("#A3B859"),
	Orange:        lipgloss.Color("#DA702C"),
	Red:           lipgloss.Color("#D14D41"),
	BlueBright:    lipgloss.Color("#6BA3D6"),
	Yellow:        lipgloss.Color("#D0A215"),
	Cyan:          lipgloss.Color("#24837B"),

	Debt:   lipgloss.Color("#D14D41"),
	Credit: lipgloss.Color("#A3B859"),
	Beer:   lipgloss.Color("#D0A215"),

	Rest:          lipgloss.Color("#A3B859"),
	RestExercise:  lipgloss.Color("#879A39"),
	PaidBack:      lipgloss.Color("#5BC8BE"),
	DrinkExercise: lipgloss.Color("#DA702C"),
	Drink:         lipgloss.Color("#D14D41"),
	ExerciseOnly:  lipgloss.Color("#6BA3D6"),
}

// Stout is a dark roast palette with a cream head for accents.
var Stout = Theme{
	Name:          "stout",
	Background:    lipgloss.Color("#120C08"),
	Surface:       lipgloss.Color("#1E1510"),
	SurfaceHover:  lipgloss.Color("#2C2019"),
	SurfaceBright: lipgloss.Color("#3A2B21"),
	Border:        lipgloss.Color("#4A382B"),
	BorderAccent:  lipgloss.Color("#E8D5B0"),
	TextDim:       lipgloss.Color("#5E4B3C"),
	TextMuted:     lipgloss.Color("#A08A72"),
	TextPrimary:   lipgloss.Color("#F5EBD9"),
	Accent:        lipgloss.Color("#E8D5B0"),
	AccentBright:  lipgloss.Color("#FFF1D6"),
	GreenBright:   lipgloss.Color("#9CC46B"),
	Orange:        lipgloss.Color("#E08A3C"),
	Red:           lipgloss.Color("#D9544A"),
	BlueBright:    lipgloss.Color("#7FB2D9"),
	Yellow:        lipgloss.Color("#E3B341"),
	Cyan:          lipgloss.Color("#6CB8A8"),

	Debt:   lipgloss.Color("#D9544A"),
	Credit: lipgloss.Color("#9CC46B"),
	Beer:   lipgloss.Color("#C8892E"),

	Rest:          lipgloss.Color("#9CC46B"),
	RestExercise:  lipgloss.Color("#7FA552"),
	PaidBack:      lipgloss.Color("#E8D5B0"),
	DrinkExercise: lipgloss.Color("#E08A3C"),
	Drink:         lipgloss.Color("#D9544A"),
	ExerciseOnly:  lipgloss.Color("#7FB2D9"),
}

// Terminal uses ANSI 16 colors only. Rank hex colors are mapped onto the
// same set.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceHover:  lipgloss.Color("8"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderAccent:  lipgloss.Color("6"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("6"),
	AccentBright:  lipgloss.Color("14"),
	GreenBright:   lipgloss.Color("10"),
	Orange:        lipgloss.Color("3"),
	Red:           lipgloss.Color("1"),
	BlueBright:    lipgloss.Color("12"),
	Yellow:        lipgloss.Color("3"),
	Cyan:          lipgloss.Color("6"),

	Debt:   lipgloss.Color("1"),
	Credit: lipgloss.Color("10"),
	Beer:   lipgloss.Color("3"),

	Rest:          lipgloss.Color("10"),
	RestExercise:  lipgloss.Color("2"),
	PaidBack:      lipgloss.Color("14"),
	DrinkExercise: lipgloss.Color("3"),
	Drink:         lipgloss.Color("1"),
	ExerciseOnly:  lipgloss.Color("12"),

	Ranks: map[string]lipgloss.Color{
		"S":      lipgloss.Color("5"),
		"A":      lipgloss.Color("4"),
		"B":      lipgloss.Color("2"),
		"C":      lipgloss.Color("1"),
		"Rookie": lipgloss.Color("3"),
	},
}

// All available themes.
var All = []Theme{FlexokiDark, Stout, Terminal}

// StatusColor returns the calendar color for a day status.
func (t Theme) StatusColor(s model.DayStatus) lipgloss.Color {
	switch s {
	case model.StatusRest:
		return t.Rest
	case model.StatusRestExercise:
		return t.RestExercise
	case model.StatusDrinkExerciseSuccess:
		return t.PaidBack
	case model.StatusDrinkExercise:
		return t.DrinkExercise
	case model.StatusDrink:
		return t.Drink
	case model.StatusExercise:
		return t.ExerciseOnly
	default:
		return t.TextDim
	}
}

// BalanceColor is Credit above zero, Debt below it and muted at zero.
func (t Theme) BalanceColor(kcal float64) lipgloss.Color {
	switch {
	case kcal > 0:
		return t.Credit
	case kcal < 0:
		return t.Debt
	default:
		return t.TextMuted
	}
}

// RankColor returns the theme's color for a rank, or hex when the theme
// has no override.
func (t Theme) RankColor(rank, hex string) lipgloss.Color {
	if c, ok := t.Ranks[rank]; ok {
		return c
	}
	return lipgloss.Color(hex)
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Known reports whether name is one of All.
func Known(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
