package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/config"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/tui/components"
	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldWeight = iota
	settingsFieldHeight
	settingsFieldAge
	settingsFieldGender
	settingsFieldMode1
	settingsFieldMode2
	settingsFieldBase
	settingsFieldTheme
	settingsFieldDays
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func keyList[K ~string](keys []K) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldWeight:
		ti.Placeholder = "kg"
		ti.SetValue(formatSetupNumber(cfg.Profile.WeightKg))
	case settingsFieldHeight:
		ti.Placeholder = "cm"
		ti.SetValue(formatSetupNumber(cfg.Profile.HeightCm))
	case settingsFieldAge:
		ti.Placeholder = "years"
		ti.SetValue(formatSetupNumber(cfg.Profile.AgeYears))
	case settingsFieldGender:
		ti.Placeholder = "male, female or other"
		ti.SetValue(cfg.Profile.Gender)
	case settingsFieldMode1:
		ti.Placeholder = keyList(catalog.StyleKeys())
		ti.SetValue(cfg.Modes.Mode1)
	case settingsFieldMode2:
		ti.Placeholder = keyList(catalog.StyleKeys())
		ti.SetValue(cfg.Modes.Mode2)
	case settingsFieldBase:
		ti.Placeholder = keyList(catalog.ExerciseKeys())
		ti.SetValue(cfg.Exercise.Base)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldDays:
		ti.Placeholder = "30"
		ti.SetValue(strconv.Itoa(cfg.General.DefaultDays))
	}
	ti.CursorEnd()

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		profileChanged := a.settings.cursor <= settingsFieldGender
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		if a.settings.saved && profileChanged {
			// Legacy minute logs convert with the profile
			a.refreshing = true
			return a, refreshDataCmd(a.dbPath, a.cfg.ModelProfile())
		}
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// applySetting validates val and writes it into cfg for the given field.
func applySetting(cfg *config.Config, field int, val string) error {
	var err error
	switch field {
	case settingsFieldWeight:
		cfg.Profile.WeightKg, err = parseSetupNumber(val)
	case settingsFieldHeight:
		cfg.Profile.HeightCm, err = parseSetupNumber(val)
	case settingsFieldAge:
		cfg.Profile.AgeYears, err = parseSetupNumber(val)
	case settingsFieldGender:
		switch g := model.Gender(strings.ToLower(val)); g {
		case model.GenderMale, model.GenderFemale, model.GenderOther:
			cfg.Profile.Gender = string(g)
		default:
			err = fmt.Errorf("unknown gender %q", val)
		}
	case settingsFieldMode1, settingsFieldMode2:
		key, ok := catalog.ParseStyleKey(val)
		if !ok {
			return fmt.Errorf("unknown style %q", val)
		}
		if field == settingsFieldMode1 {
			cfg.Modes.Mode1 = string(key)
		} else {
			cfg.Modes.Mode2 = string(key)
		}
	case settingsFieldBase:
		key, ok := catalog.ParseExerciseKey(val)
		if !ok {
			return fmt.Errorf("unknown exercise %q", val)
		}
		cfg.Exercise.Base = string(key)
	case settingsFieldTheme:
		if !theme.Known(val) {
			return fmt.Errorf("unknown theme %q", val)
		}
		cfg.Appearance.Theme = val
	case settingsFieldDays:
		d, convErr := strconv.Atoi(val)
		if convErr != nil || d <= 0 {
			return errors.New("days must be a positive whole number")
		}
		cfg.General.DefaultDays = d
	}
	return err
}

func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	if err := applySetting(&cfg, a.settings.cursor, val); err != nil {
		a.settings.saveErr = err
		return
	}

	theme.SetActive(cfg.Appearance.Theme)
	a.cfg = cfg
	a.days = cfg.General.DefaultDays
	a.recompute()
	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	orUnset := func(v float64, unit string) string {
		if v <= 0 {
			return "(not set)"
		}
		return formatSetupNumber(v) + " " + unit
	}
	styleLabel := func(k string) string {
		s := catalog.ResolveStyle(k)
		return fmt.Sprintf("%s %s (%.1f%%)", s.Icon, s.Label, s.ABV)
	}
	base := catalog.ResolveExercise(cfg.Exercise.Base)

	fields := []field{
		{"Weight", orUnset(cfg.Profile.WeightKg, "kg")},
		{"Height", orUnset(cfg.Profile.HeightCm, "cm")},
		{"Age", orUnset(cfg.Profile.AgeYears, "years")},
		{"Gender", cfg.Profile.Gender},
		{"Mode 1 drink", styleLabel(cfg.Modes.Mode1)},
		{"Mode 2 drink", styleLabel(cfg.Modes.Mode2)},
		{"Pay back in", fmt.Sprintf("%s %s (MET %.1f)", base.Icon, base.Label, base.METValue)},
		{"Theme", cfg.Appearance.Theme},
		{"Default days", strconv.Itoa(cfg.General.DefaultDays)},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}
	for _, w := range cfg.Warnings() {
		formBody.WriteString("\n")
		formBody.WriteString(lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).Render("! " + w))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	info := [][2]string{
		{"Database", a.dbPath},
		{"Config file", config.ConfigPath()},
		{"Log file", config.LogPath(cfg)},
		{"Logs loaded", cli.FormatNumber(int64(len(a.logs)))},
		{"Check-ins", cli.FormatNumber(int64(len(a.checks)))},
		{"Load time", fmt.Sprintf("%dms", a.loadTime.Milliseconds())},
	}
	for i, kv := range info {
		if i > 0 {
			infoBody.WriteString("\n")
		}
		infoBody.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", kv[0])))
		infoBody.WriteString(valueStyle.Render(truncStr(kv[1], max(innerW-13, 8))))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
