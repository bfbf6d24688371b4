package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. modeLabel names the
// drink style the tank is currently measured in.
func RenderStatusBar(width int, dataAge, modeLabel string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	modeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	left := " [?]help  [m]ode  [1-3]quick log  [q]uit"
	if modeLabel != "" {
		left += "   " + modeStyle.Render(modeLabel)
	}

	right := ""
	switch {
	case refreshing:
		right = "refreshing… "
	case dataAge != "":
		right = fmt.Sprintf("Loaded in %s ", dataAge)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
