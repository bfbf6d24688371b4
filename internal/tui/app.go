// Package tui provides the interactive Bubble Tea dashboard for kcaltank.
package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/config"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
	"github.com/theirongolddev/kcaltank/internal/store"
	"github.com/theirongolddev/kcaltank/internal/tui/components"
	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the log database has been read.
type DataLoadedMsg struct {
	Logs     []model.LogEntry
	Checks   []model.CheckEntry
	Legacy   int
	LoadTime time.Duration
	Err      error
}

// RefreshDataMsg is sent when a background reload completes.
type RefreshDataMsg DataLoadedMsg

// LoggedMsg reports the outcome of a quick log from the dashboard.
type LoggedMsg struct {
	What string
	Kcal float64
	Err  error
}

// Tab indexes, in components.Tabs order.
const (
	tabOverview = iota
	tabCalendar
	tabHistory
	tabBreakdown
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	logs     []model.LogEntry
	checks   []model.CheckEntry
	legacy   int
	loaded   bool
	loadTime time.Duration
	loadErr  error

	refreshing  bool
	lastRefresh time.Time

	// Pre-computed for the current day and window
	day       time.Time
	dash      pipeline.Dashboard
	series    []model.DailyBalance
	styles    []model.StyleStats
	exercises []model.ExerciseStats
	hourly    []model.HourlyStats
	heatmap   model.HeatmapMonth

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string
	flashErr  bool

	// Filter state
	days      int
	calOffset int

	// Per-tab state
	hist     historyState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	spinner spinner.Model

	cfg    config.Config
	dbPath string
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height

	refreshInterval = time.Minute
)

// NewApp creates a new TUI app model.
func NewApp(cfg config.Config, dbPath string, days int) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if days <= 0 {
		days = cfg.General.DefaultDays
	}

	return App{
		cfg:       cfg,
		dbPath:    dbPath,
		days:      days,
		needSetup: !config.Exists(),
		spinner:   sp,
		hist:      historyState{search: newSearchInput()},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath, a.cfg.ModelProfile()),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a *App) recompute() {
	a.recomputeAt(time.Now())
}

func (a *App) recomputeAt(now time.Time) {
	opts := a.cfg.Options()
	since := startOfDay(now).AddDate(0, 0, -(a.days - 1))
	until := startOfDay(now).AddDate(0, 0, 1)

	a.day = startOfDay(now)
	a.dash = pipeline.BuildDashboard(now, a.logs, a.checks, opts)
	a.series = pipeline.DailySeries(a.logs, a.checks, opts.Tank.BaseExercise, opts.Profile, since, now)
	a.styles = pipeline.AggregateStyles(a.logs, since, until)
	a.exercises = pipeline.AggregateExercises(a.logs, since, until)
	a.hourly = pipeline.AggregateHourly(a.logs, since, until, now.Location())
	a.heatmap = pipeline.MonthHeatmap(now, a.calOffset, a.logs, a.checks)

	a.hist.clamp(len(a.historyRows()))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabHistory && !a.hist.searching {
				a.hist.move(-1, len(a.historyRows()))
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabHistory && !a.hist.searching {
				a.hist.move(1, len(a.historyRows()))
			}
			return a, nil

		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if a.activeTab == tabHistory && a.hist.searching {
			return a.updateHistorySearch(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.flash = ""

		switch a.activeTab {
		case tabHistory:
			if m, cmd, ok := a.updateHistoryKeys(key); ok {
				return m, cmd
			}
		case tabCalendar:
			switch key {
			case "[":
				a.calOffset--
				a.heatmap = pipeline.MonthHeatmap(time.Now(), a.calOffset, a.logs, a.checks)
				return a, nil
			case "]":
				if a.calOffset < 0 {
					a.calOffset++
					a.heatmap = pipeline.MonthHeatmap(time.Now(), a.calOffset, a.logs, a.checks)
				}
				return a, nil
			}
		case tabSettings:
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		switch key {
		case "q":
			return a, tea.Quit

		case "r":
			if !a.refreshing {
				a.refreshing = true
				return a, refreshDataCmd(a.dbPath, a.cfg.ModelProfile())
			}
			return a, nil

		case "m":
			// Persist best-effort; a read-only config still toggles for this session
			if a.cfg.ActiveMode() == model.Mode1 {
				a.cfg.Modes.Active = string(model.Mode2)
			} else {
				a.cfg.Modes.Active = string(model.Mode1)
			}
			if err := config.Save(a.cfg); err != nil {
				slog.Warn("saving mode", "err", err)
			}
			a.recompute()
			return a, nil

		case "1", "2", "3":
			n, _ := strconv.Atoi(key)
			raw, what := a.quickDrink(n-1, time.Now())
			return a, addLogCmd(a.dbPath, raw, what)

		case "+":
			raw, what := a.quickWorkout(time.Now())
			return a, addLogCmd(a.dbPath, raw, what)
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.applyData(msg)

		if a.needSetup {
			a.setupVals = SetupValuesFrom(a.cfg)
			a.setupForm = NewSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.applyData(DataLoadedMsg(msg))
		return a, nil

	case LoggedMsg:
		if msg.Err != nil {
			a.flash, a.flashErr = "Log failed: "+msg.Err.Error(), true
			return a, nil
		}
		a.flash, a.flashErr = fmt.Sprintf("Logged %s (%+.0f kcal)", msg.What, msg.Kcal), false
		a.refreshing = true
		return a, refreshDataCmd(a.dbPath, a.cfg.ModelProfile())

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		now := time.Time(msg)
		if a.loaded {
			switch {
			case !startOfDay(now).Equal(a.day):
				// Day rolled over: today's status, streak and stamps all move
				a.recomputeAt(now)
			case !a.refreshing && now.Sub(a.lastRefresh) >= refreshInterval:
				// Pick up logs added from the CLI meanwhile
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd(a.dbPath, a.cfg.ModelProfile()))
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) applyData(msg DataLoadedMsg) {
	a.lastRefresh = time.Now()
	a.loadTime = msg.LoadTime
	a.loadErr = msg.Err
	if msg.Err != nil {
		slog.Error("loading data", "db", a.dbPath, "err", msg.Err)
		return
	}
	a.logs = msg.Logs
	a.checks = msg.Checks
	a.legacy = msg.Legacy
	a.recompute()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			a.flash, a.flashErr = "Setup not saved: "+err.Error(), true
		}
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		// Profile changes alter legacy minute conversions
		a.refreshing = true
		return a, refreshDataCmd(a.dbPath, a.cfg.ModelProfile())
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// quickDrink builds the n-th usual drink, falling back to a can of the
// active mode's style when there are fewer shortcuts.
func (a App) quickDrink(n int, now time.Time) (model.RawLog, string) {
	style := catalog.ResolveStyle(a.dash.Tank.TargetStyle)
	size := catalog.Sizes[catalog.DefaultSize]
	if n >= 0 && n < len(a.dash.Shortcuts) {
		sc := a.dash.Shortcuts[n]
		style = catalog.ResolveStyle(sc.Style)
		size = catalog.ResolveSize(sc.Size)
	}
	return pipeline.NewDrinkLog(now, style, size, 1), fmt.Sprintf("%s %s", style.Label, size.Label)
}

// quickWorkout builds ten minutes of the base exercise with the current
// streak bonus.
func (a App) quickWorkout(now time.Time) (model.RawLog, string) {
	opts := a.cfg.Options()
	ex := catalog.ResolveExercise(opts.Tank.BaseExercise)
	mult := pipeline.BonusNow(now, a.logs, a.checks, opts.Bonuses)
	what := fmt.Sprintf("10 min %s", ex.Label)
	if mult > 1 {
		what += fmt.Sprintf(" x%.1f", mult)
	}
	return pipeline.NewExerciseLog(now, ex, 10, opts.Profile, mult), what
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  kcaltank needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.Beer).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("🍺 kcaltank"))
	b.WriteString(subtitleStyle.Render(" · drink now, sweat later"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Opening the tap..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o c h b x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in lists"},
			{"[ ]", "Previous / Next month (calendar)"},
		}},
		{"Logging", []struct{ key, desc string }{
			{"1 2 3", "Log one of your usual drinks"},
			{"+", "Log 10 min of your base exercise"},
			{"m", "Switch tank mode"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"/", "Search history"},
			{"Enter", "Edit setting"},
			{"Esc", "Back / Cancel"},
			{"r", "Reload from disk"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + filter pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	filterStr := pillStyle.Render(" ") + pillAccent.Render(fmt.Sprintf("%dd", a.days)) +
		pillStyle.Render(" │ ") + pillAccent.Render(a.dash.Tank.StyleLabel) +
		pillStyle.Render(" │ ") + pillStyle.Render(a.dash.Tank.BaseIcon+" "+a.dash.Tank.BaseLabel)
	if a.flash != "" {
		flashStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
		if a.flashErr {
			flashStyle = flashStyle.Foreground(t.Red)
		}
		filterStr += pillStyle.Render("   ") + flashStyle.Render(a.flash)
	}
	filterRow := lipgloss.NewStyle().Background(t.Surface).Width(w).Render(filterStr)

	header := components.RenderTabBar(a.activeTab, w) + "\n" + filterRow

	// 2. Status bar
	dataAge := fmt.Sprintf("%dms", a.loadTime.Milliseconds())
	modeLabel := fmt.Sprintf("%s %s", modeName(a.cfg.ActiveMode()), a.dash.Tank.StyleLabel)
	statusBar := components.RenderStatusBar(w, dataAge, modeLabel, a.refreshing)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch {
	case a.loadErr != nil:
		content = components.ContentCard("Error",
			lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(a.loadErr.Error()), cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabCalendar:
		content = a.renderCalendarTab(cw)
	case a.activeTab == tabHistory:
		content = a.renderHistoryTab(cw, contentH)
	case a.activeTab == tabBreakdown:
		content = a.renderBreakdownTab(cw)
	case a.activeTab == tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(15*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func readData(dbPath string, p model.Profile) DataLoadedMsg {
	start := time.Now()

	st, err := store.Open(dbPath)
	if err != nil {
		return DataLoadedMsg{Err: fmt.Errorf("opening log database: %w", err), LoadTime: time.Since(start)}
	}
	defer func() { _ = st.Close() }()

	result, err := pipeline.Load(st, p)
	if err != nil {
		return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
	}
	return DataLoadedMsg{
		Logs:     result.Logs,
		Checks:   result.Checks,
		Legacy:   result.LegacyLogs,
		LoadTime: time.Since(start),
	}
}

// loadDataCmd reads the database for the first view.
func loadDataCmd(dbPath string, p model.Profile) tea.Cmd {
	return func() tea.Msg {
		return readData(dbPath, p)
	}
}

// refreshDataCmd rereads the database in the background.
func refreshDataCmd(dbPath string, p model.Profile) tea.Cmd {
	return func() tea.Msg {
		return RefreshDataMsg(readData(dbPath, p))
	}
}

// addLogCmd stores raw and reports back with a LoggedMsg.
func addLogCmd(dbPath string, raw model.RawLog, what string) tea.Cmd {
	return func() tea.Msg {
		st, err := store.Open(dbPath)
		if err != nil {
			return LoggedMsg{Err: err}
		}
		defer func() { _ = st.Close() }()

		id, err := st.AddLog(raw)
		if err != nil {
			return LoggedMsg{Err: err}
		}
		slog.Info("log added", "id", id, "name", raw.Name, "kcal", *raw.Kcal, "via", "tui")
		return LoggedMsg{What: what, Kcal: *raw.Kcal}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func modeName(m model.Mode) string {
	if m == model.Mode2 {
		return "Mode 2"
	}
	return "Mode 1"
}

// chartDateLabels builds compact X-axis labels for a chronological series:
// month abbreviation at the start and at month boundaries, else the day.
func chartDateLabels(days []model.DailyBalance) []string {
	labels := make([]string, len(days))
	prevMonth := time.Month(0)
	for i, d := range days {
		if i == 0 || d.Date.Month() != prevMonth {
			labels[i] = d.Date.Format("Jan")
		} else {
			labels[i] = strconv.Itoa(d.Date.Day())
		}
		prevMonth = d.Date.Month()
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
