package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
	"github.com/theirongolddev/kcaltank/internal/tui/components"
	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// historyState holds the history tab state.
type historyState struct {
	cursor    int
	offset    int // scroll offset for the list
	searching bool
	search    textinput.Model
	query     string
}

// clamp keeps the cursor inside a list of n rows.
func (h *historyState) clamp(n int) {
	if h.cursor >= n {
		h.cursor = n - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

func (h *historyState) move(d, n int) {
	h.cursor += d
	h.clamp(n)
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name, brewery, brand or memo"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

// historyRows returns the logs matching the current query, newest first.
func (a App) historyRows() []model.LogEntry {
	rows := pipeline.FilterByText(a.logs, a.hist.query)
	if a.hist.query == "" {
		// FilterByText hands back the loaded slice itself
		rows = append([]model.LogEntry(nil), rows...)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
	return rows
}

func (a App) updateHistorySearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.hist.searching = false
		a.hist.search.Blur()
		return a, nil
	case "esc":
		a.hist.searching = false
		a.hist.search.Blur()
		a.hist.search.SetValue("")
		a.hist.query = ""
		a.hist.cursor, a.hist.offset = 0, 0
		return a, nil
	}

	var cmd tea.Cmd
	a.hist.search, cmd = a.hist.search.Update(msg)
	if q := strings.TrimSpace(a.hist.search.Value()); q != a.hist.query {
		a.hist.query = q
		a.hist.cursor, a.hist.offset = 0, 0
	}
	return a, cmd
}

// updateHistoryKeys handles list navigation. ok is false for keys the
// history tab does not own.
func (a App) updateHistoryKeys(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.historyRows())
	switch key {
	case "j", "down":
		a.hist.move(1, n)
	case "k", "up":
		a.hist.move(-1, n)
	case "g", "home":
		a.hist.cursor, a.hist.offset = 0, 0
	case "G", "end":
		a.hist.move(n, n)
	case "pgdown", "ctrl+d":
		a.hist.move(10, n)
	case "pgup", "ctrl+u":
		a.hist.move(-10, n)
	case "/":
		a.hist.searching = true
		a.hist.search.SetValue(a.hist.query)
		a.hist.search.CursorEnd()
		return a, a.hist.search.Focus(), true
	case "esc":
		if a.hist.query == "" {
			return a, nil, false
		}
		a.hist.query = ""
		a.hist.search.SetValue("")
		a.hist.cursor, a.hist.offset = 0, 0
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderHistoryTab(cw, h int) string {
	t := theme.Active
	rows := a.historyRows()
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	searchLine := ""
	switch {
	case a.hist.searching:
		searchLine = a.hist.search.View()
	case a.hist.query != "":
		searchLine = mutedStyle.Render(fmt.Sprintf("filter %q  [/] edit  [Esc] clear", a.hist.query))
	}

	if len(rows) == 0 {
		body := mutedStyle.Render("No logs found")
		if searchLine != "" {
			body = searchLine + "\n\n" + body
		}
		return components.ContentCard("History", body, cw)
	}

	cursor := min(a.hist.cursor, len(rows)-1)

	leftW := max(cw*2/5, 36)
	rightW := cw - leftW
	leftInner := components.CardInnerWidth(leftW)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)

	visible := max(h-6, 5) // card border (2) + title (2) + hint (2)
	if searchLine != "" {
		visible = max(visible-2, 3)
	}

	offset := a.hist.offset
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+visible {
		offset = cursor - visible + 1
	}
	end := min(offset+visible, len(rows))

	var left strings.Builder
	if searchLine != "" {
		left.WriteString(searchLine)
		left.WriteString("\n\n")
	}
	for i := offset; i < end; i++ {
		l := rows[i]
		kcal := fmt.Sprintf("%+.0f", l.Kcal)
		what := truncStr(cli.DescribeLog(l), max(leftInner-20, 6))
		line := fmt.Sprintf("%-12s %s", l.Timestamp.Local().Format("Jan 02 15:04"), what)
		gap := max(leftInner-lipgloss.Width(line)-len(kcal), 1)
		line += strings.Repeat(" ", gap) + kcal

		if i == cursor {
			left.WriteString(selectedStyle.Render(line))
		} else {
			amount := lipgloss.NewStyle().Foreground(t.BalanceColor(l.Kcal)).Background(t.Surface)
			head := strings.TrimSuffix(line, kcal)
			left.WriteString(rowStyle.Render(head) + amount.Render(kcal))
		}
		left.WriteString("\n")
	}

	leftCard := components.ContentCard(fmt.Sprintf("History (%d)", len(rows)), left.String(), leftW)

	sel := rows[cursor]
	rightCard := components.ContentCard("Log "+shortID(sel.ID), a.renderLogDetail(sel, rightW), rightW)

	return components.CardRow([]string{leftCard, rightCard})
}

// renderLogDetail is the right pane of the history tab.
func (a App) renderLogDetail(l model.LogEntry, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	p := a.cfg.ModelProfile()
	tank := a.dash.Tank

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.BalanceColor(l.Kcal)).Background(t.Surface).Bold(true)

	var body strings.Builder
	body.WriteString(headerStyle.Render(truncStr(cli.DescribeLog(l), innerW)))
	body.WriteString("\n")
	body.WriteString(labelStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n\n")

	row := func(label string, value string) {
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", label)))
		body.WriteString(valueStyle.Render(truncStr(value, max(innerW-13, 4))))
		body.WriteString("\n")
	}

	row("When", l.Timestamp.Local().Format("Mon Jan 02 2006 15:04"))
	body.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", "Kcal")))
	body.WriteString(amountStyle.Render(cli.FormatKcal(l.Kcal)))
	body.WriteString("\n")
	if tank.UnitKcal > 0 {
		row("Cans", signedCans(l.Kcal/tank.UnitKcal)+" of "+tank.StyleLabel)
	}
	row(tank.BaseLabel, cli.FormatMinutes(pipeline.SignedMinutes(l.Kcal, tank.BaseExercise, p), true))

	if l.IsDebt() || l.Style != "" {
		body.WriteString("\n")
		style := catalog.ResolveStyle(l.Style)
		size := catalog.ResolveSize(l.Size)
		row("Style", style.Icon+" "+style.Label)
		row("Size", fmt.Sprintf("%s x%g", size.Label, l.Count))
		row("ABV", fmt.Sprintf("%.1f%%", l.ABV))
		if l.Brewery != "" {
			row("Brewery", l.Brewery)
		}
		if l.Brand != "" {
			row("Brand", l.Brand)
		}
		if l.Rating > 0 {
			row("Rating", cli.FormatRating(l.Rating))
		}
	} else {
		body.WriteString("\n")
		ex := catalog.ResolveExercise(l.ExerciseKey)
		row("Exercise", ex.Icon+" "+ex.Label)
		bonus := pipeline.MemoBonus(l.Memo)
		mins := pipeline.SignedMinutes(l.Kcal/bonus, string(ex.Key), p)
		row("Duration", cli.FormatMinutes(mins, false))
		if bonus > 1 {
			row("Streak bonus", fmt.Sprintf("x%.1f", bonus))
		}
	}

	if l.Memo != "" {
		body.WriteString("\n")
		row("Memo", l.Memo)
	}

	body.WriteString("\n")
	body.WriteString(labelStyle.Render("[j/k] navigate  [/] search  [g/G] top/bottom"))
	return body.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
