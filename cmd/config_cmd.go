package cmd

import (
	"fmt"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Database:    %s\n", dbPath())
	fmt.Printf("  Log file:    %s\n", config.LogPath(cfg))
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default days: %d\n", cfg.General.DefaultDays)
	fmt.Println()

	fmt.Println("  [Profile]")
	fmt.Printf("    Weight: %.1f kg\n", cfg.Profile.WeightKg)
	fmt.Printf("    Height: %.1f cm\n", cfg.Profile.HeightCm)
	fmt.Printf("    Age:    %.0f\n", cfg.Profile.AgeYears)
	fmt.Printf("    Gender: %s\n", cfg.Profile.Gender)
	fmt.Println()

	opts := options()
	fmt.Println("  [Modes]")
	for _, m := range []struct{ name, key string }{{"mode1", cfg.Modes.Mode1}, {"mode2", cfg.Modes.Mode2}} {
		s := catalog.ResolveStyle(m.key)
		active := ""
		if string(opts.Mode) == m.name {
			active = "  (active)"
		}
		fmt.Printf("    %s: %s %s, 1 can = %.0f kcal%s\n", m.name, s.Icon, s.Label, catalog.UnitKcal(s), active)
	}
	fmt.Println()

	ex := catalog.ResolveExercise(cfg.Exercise.Base)
	fmt.Println("  [Exercise]")
	fmt.Printf("    Base: %s %s (MET %.1f)\n", ex.Icon, ex.Label, ex.METValue)
	fmt.Println()

	fmt.Println("  [Streak]")
	if len(cfg.Streak.Bonuses) == 0 {
		fmt.Println("    Bonuses: none")
	}
	for _, b := range cfg.Streak.Bonuses {
		fmt.Printf("    %d days: x%.1f\n", b.Days, b.Multiplier)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	for _, w := range cfg.Warnings() {
		fmt.Printf("  %s\n", cli.Warn("! "+w))
	}
	fmt.Println("  Run `kcaltank setup` to reconfigure.")
	return nil
}
