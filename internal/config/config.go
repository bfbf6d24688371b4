// Package config loads and saves kcaltank settings from an XDG TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
)

const appName = "kcaltank"

// Config holds all kcaltank configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Profile    ProfileConfig    `toml:"profile"`
	Modes      ModesConfig      `toml:"modes"`
	Exercise   ExerciseConfig   `toml:"exercise"`
	Streak     StreakConfig     `toml:"streak"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultDays int    `toml:"default_days"`
	DBPath      string `toml:"db_path,omitempty"`
}

// ProfileConfig is the body profile used for every energy conversion.
type ProfileConfig struct {
	WeightKg float64 `toml:"weight_kg"`
	HeightCm float64 `toml:"height_cm"`
	AgeYears float64 `toml:"age_years"`
	Gender   string  `toml:"gender"`
}

// ModesConfig binds a drink style to each tank mode.
type ModesConfig struct {
	Mode1  string `toml:"mode1"`
	Mode2  string `toml:"mode2"`
	Active string `toml:"active"`
}

// ExerciseConfig picks the exercise balances are shown in.
type ExerciseConfig struct {
	Base string `toml:"base"`
}

// StreakConfig holds the streak bonus table.
type StreakConfig struct {
	Bonuses []StreakBonus `toml:"bonuses"`
}

// StreakBonus unlocks Multiplier once a streak reaches Days.
type StreakBonus struct {
	Days       int     `toml:"days"`
	Multiplier float64 `toml:"multiplier"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	File  string `toml:"file,omitempty"`
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	cfg := Config{
		General: GeneralConfig{
			DefaultDays: 30,
		},
		Profile: ProfileConfig{
			WeightKg: model.DefaultProfile.WeightKg,
			HeightCm: model.DefaultProfile.HeightCm,
			AgeYears: model.DefaultProfile.AgeYears,
			Gender:   string(model.DefaultProfile.Gender),
		},
		Modes: ModesConfig{
			Mode1:  string(catalog.Pilsner),
			Mode2:  string(catalog.HazyIPA),
			Active: string(model.Mode1),
		},
		Exercise: ExerciseConfig{
			Base: string(catalog.DefaultExercise),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
	for _, b := range pipeline.DefaultStreakBonuses {
		cfg.Streak.Bonuses = append(cfg.Streak.Bonuses, StreakBonus{Days: b.Days, Multiplier: b.Multiplier})
	}
	return cfg
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the log database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// CacheDir returns the XDG-compliant cache directory used for diagnostic logs.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", appName)
}

// DBPath returns the database path: KCALTANK_DB, then the config value,
// then the default under DataDir.
func DBPath(cfg Config) string {
	if p := os.Getenv("KCALTANK_DB"); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "kcaltank.db")
}

// LogPath returns the diagnostic log path.
func LogPath(cfg Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(CacheDir(), "kcaltank.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path. Missing keys keep their defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's own config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ModelProfile converts the profile section. Invalid fields are left as-is;
// the energy model substitutes defaults.
func (c Config) ModelProfile() model.Profile {
	return model.Profile{
		WeightKg: c.Profile.WeightKg,
		HeightCm: c.Profile.HeightCm,
		AgeYears: c.Profile.AgeYears,
		Gender:   model.Gender(strings.ToLower(c.Profile.Gender)),
	}
}

// ActiveMode returns the configured tank mode, defaulting to mode1.
func (c Config) ActiveMode() model.Mode {
	if model.Mode(c.Modes.Active) == model.Mode2 {
		return model.Mode2
	}
	return model.Mode1
}

// Options converts the config into pipeline options.
func (c Config) Options() pipeline.Options {
	opts := pipeline.Options{
		Profile: c.ModelProfile(),
		Mode:    c.ActiveMode(),
		Tank: pipeline.TankSettings{
			Modes:        model.ModeSettings{Mode1: c.Modes.Mode1, Mode2: c.Modes.Mode2},
			BaseExercise: c.Exercise.Base,
		},
	}
	if c.Streak.Bonuses != nil {
		opts.Bonuses = make([]pipeline.StreakBonus, 0, len(c.Streak.Bonuses))
		for _, b := range c.Streak.Bonuses {
			opts.Bonuses = append(opts.Bonuses, pipeline.StreakBonus{Days: b.Days, Multiplier: b.Multiplier})
		}
	}
	return opts
}

// Warnings lists settings that will be replaced by defaults at use.
func (c Config) Warnings() []string {
	var w []string
	if !c.ModelProfile().Valid() {
		w = append(w, fmt.Sprintf("profile %+v is incomplete, defaults fill the gaps", c.Profile))
	}
	for _, m := range []struct{ name, key string }{{"mode1", c.Modes.Mode1}, {"mode2", c.Modes.Mode2}} {
		if _, ok := catalog.ParseStyleKey(m.key); !ok {
			w = append(w, fmt.Sprintf("unknown style %q for %s, using %s", m.key, m.name, catalog.DefaultStyle))
		}
	}
	if _, ok := catalog.ParseExerciseKey(c.Exercise.Base); !ok {
		w = append(w, fmt.Sprintf("unknown base exercise %q, using %s", c.Exercise.Base, catalog.DefaultExercise))
	}
	if a := c.Modes.Active; a != "" && a != string(model.Mode1) && a != string(model.Mode2) {
		w = append(w, fmt.Sprintf("unknown active mode %q, using %s", a, model.Mode1))
	}
	for _, b := range c.Streak.Bonuses {
		if b.Days <= 0 || b.Multiplier < 1 {
			w = append(w, fmt.Sprintf("streak bonus %d days x%.2f has no effect", b.Days, b.Multiplier))
		}
	}
	return w
}
