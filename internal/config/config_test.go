package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/kcaltank/internal/model"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.DefaultDays != 30 || cfg.Modes.Mode1 != "pilsner" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if len(cfg.Streak.Bonuses) != 2 {
		t.Fatalf("default bonuses = %+v", cfg.Streak.Bonuses)
	}
	if w := cfg.Warnings(); len(w) != 0 {
		t.Fatalf("default config has warnings: %v", w)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[profile]
weight_kg = 82.5
gender = "Male"

[modes]
mode2 = "stout"
active = "mode2"

[[streak.bonuses]]
days = 3
multiplier = 1.1
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	p := cfg.ModelProfile()
	if p.WeightKg != 82.5 || p.HeightCm != model.DefaultProfile.HeightCm || p.Gender != model.GenderMale {
		t.Fatalf("profile = %+v", p)
	}
	if cfg.ActiveMode() != model.Mode2 || cfg.Modes.Mode1 != "pilsner" {
		t.Fatalf("modes = %+v", cfg.Modes)
	}

	opts := cfg.Options()
	if len(opts.Bonuses) != 1 || opts.Bonuses[0].Days != 3 {
		t.Fatalf("bonuses = %+v, want the configured table only", opts.Bonuses)
	}
	if opts.Tank.Modes.StyleFor(opts.Mode) != "stout" {
		t.Fatalf("active style = %s, want stout", opts.Tank.Modes.StyleFor(opts.Mode))
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[profile\nweight_kg = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom accepted invalid TOML")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Profile.WeightKg = 71
	cfg.Exercise.Base = "running"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("config mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Profile.WeightKg != 71 || got.Exercise.Base != "running" {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Modes.Mode1 = "moonshine"
	cfg.Exercise.Base = "skydiving"
	cfg.Profile.WeightKg = -3
	cfg.Modes.Active = "mode9"
	cfg.Streak.Bonuses = append(cfg.Streak.Bonuses, StreakBonus{Days: 0, Multiplier: 2})

	if got := len(cfg.Warnings()); got != 5 {
		t.Fatalf("Warnings = %v, want 5 entries", cfg.Warnings())
	}
}

func TestDBPath_Precedence(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("KCALTANK_DB", "")

	if got := DBPath(cfg); got != filepath.Join("/xdg/data", "kcaltank", "kcaltank.db") {
		t.Fatalf("default DBPath = %s", got)
	}
	cfg.General.DBPath = "/from/config.db"
	if got := DBPath(cfg); got != "/from/config.db" {
		t.Fatalf("config DBPath = %s", got)
	}
	t.Setenv("KCALTANK_DB", "/from/env.db")
	if got := DBPath(cfg); got != "/from/env.db" {
		t.Fatalf("env DBPath = %s", got)
	}
}
