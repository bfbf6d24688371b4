package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/config"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup form. Numbers stay strings
// until Apply so the inputs can be validated as the user types.
type SetupValues struct {
	WeightKg string
	HeightCm string
	AgeYears string
	Gender   string
	Mode1    string
	Mode2    string
	Base     string
	Theme    string
	Days     int
}

// SetupValuesFrom prefills the form from cfg.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		WeightKg: formatSetupNumber(cfg.Profile.WeightKg),
		HeightCm: formatSetupNumber(cfg.Profile.HeightCm),
		AgeYears: formatSetupNumber(cfg.Profile.AgeYears),
		Gender:   cfg.Profile.Gender,
		Mode1:    cfg.Modes.Mode1,
		Mode2:    cfg.Modes.Mode2,
		Base:     cfg.Exercise.Base,
		Theme:    cfg.Appearance.Theme,
		Days:     cfg.General.DefaultDays,
	}
}

// NewSetupForm builds the profile and preferences form around vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	styleOpts := make([]huh.Option[string], 0, len(catalog.Styles))
	for _, k := range catalog.StyleKeys() {
		s := catalog.Styles[k]
		styleOpts = append(styleOpts, huh.NewOption(fmt.Sprintf("%s %s (%.1f%%)", s.Icon, s.Label, s.ABV), string(k)))
	}
	exOpts := make([]huh.Option[string], 0, len(catalog.Exercises))
	for _, k := range catalog.ExerciseKeys() {
		e := catalog.Exercises[k]
		exOpts = append(exOpts, huh.NewOption(fmt.Sprintf("%s %s (MET %.1f)", e.Icon, e.Label, e.METValue), string(k)))
	}
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to kcaltank").
				Description("Drinks put kcal on the tab, exercise pays it back.\nYour body profile sets how fast you burn."),
			huh.NewInput().Title("Weight (kg)").Value(&vals.WeightKg).Validate(positiveNumber),
			huh.NewInput().Title("Height (cm)").Value(&vals.HeightCm).Validate(positiveNumber),
			huh.NewInput().Title("Age").Value(&vals.AgeYears).Validate(positiveNumber),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Male", string(model.GenderMale)),
					huh.NewOption("Female", string(model.GenderFemale)),
					huh.NewOption("Other / prefer not to say", string(model.GenderOther)),
				).
				Value(&vals.Gender),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Mode 1 drink").Options(styleOpts...).Value(&vals.Mode1),
			huh.NewSelect[string]().Title("Mode 2 drink").Options(styleOpts...).Value(&vals.Mode2),
			huh.NewSelect[string]().Title("Pay back in").
				Description("Balances are shown as minutes of this exercise.").
				Options(exOpts...).Value(&vals.Base),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
				).
				Value(&vals.Days),
			huh.NewSelect[string]().Title("Color theme").Options(themeOpts...).Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeDracula())
}

// Apply writes the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	var err error
	if cfg.Profile.WeightKg, err = parseSetupNumber(v.WeightKg); err != nil {
		return fmt.Errorf("weight: %w", err)
	}
	if cfg.Profile.HeightCm, err = parseSetupNumber(v.HeightCm); err != nil {
		return fmt.Errorf("height: %w", err)
	}
	if cfg.Profile.AgeYears, err = parseSetupNumber(v.AgeYears); err != nil {
		return fmt.Errorf("age: %w", err)
	}
	cfg.Profile.Gender = v.Gender
	cfg.Modes.Mode1 = v.Mode1
	cfg.Modes.Mode2 = v.Mode2
	cfg.Exercise.Base = v.Base
	if v.Days > 0 {
		cfg.General.DefaultDays = v.Days
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return nil
}

func positiveNumber(s string) error {
	_, err := parseSetupNumber(s)
	return err
}

func parseSetupNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("enter a number")
	}
	if !(v > 0) || v > 1000 {
		return 0, errors.New("must be between 0 and 1000")
	}
	return v, nil
}

func formatSetupNumber(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (a *App) saveSetupConfig() error {
	cfg := a.cfg
	if err := a.setupVals.Apply(&cfg); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	a.cfg = cfg
	a.days = cfg.General.DefaultDays
	return config.Save(cfg)
}
