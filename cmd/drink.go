package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var drinkCmd = &cobra.Command{
	Use:   "drink [style]",
	Short: "Log a drink (defaults to the active mode's style)",
	Long: "Log a drink as kcal debt. The style defaults to the one bound to the active mode.\n" +
		"Styles: " + joinKeys(catalog.StyleKeys()),
	Args: cobra.MaximumNArgs(1),
	RunE: runDrink,
}

var drinkFlags struct {
	size    string
	count   float64
	abv     float64
	kcal    float64
	name    string
	brewery string
	brand   string
	rating  int
	memo    string
	at      string
}

func init() {
	f := drinkCmd.Flags()
	f.StringVarP(&drinkFlags.size, "size", "s", string(catalog.DefaultSize), "Serving size key")
	f.Float64VarP(&drinkFlags.count, "count", "c", 1, "Number of servings")
	f.Float64Var(&drinkFlags.abv, "abv", 0, "ABV percent (default from style)")
	f.Float64Var(&drinkFlags.kcal, "kcal", 0, "Record this kcal instead of computing it")
	f.StringVar(&drinkFlags.name, "name", "", "Display name (default style label)")
	f.StringVar(&drinkFlags.brewery, "brewery", "", "Brewery")
	f.StringVar(&drinkFlags.brand, "brand", "", "Brand")
	f.IntVarP(&drinkFlags.rating, "rating", "r", 0, "Rating 0-5")
	f.StringVar(&drinkFlags.memo, "memo", "", "Free text memo")
	f.StringVar(&drinkFlags.at, "at", "", "When (15:04, 2006-01-02 or 2006-01-02 15:04)")
	rootCmd.AddCommand(drinkCmd)
}

func runDrink(cmd *cobra.Command, args []string) error {
	opts := options()
	styleRaw := opts.Tank.Modes.StyleFor(opts.Mode)
	if len(args) == 1 {
		styleRaw = args[0]
	}
	styleKey, ok := catalog.ParseStyleKey(styleRaw)
	if !ok {
		if len(args) == 1 {
			return fmt.Errorf("unknown style %q (styles: %s)", styleRaw, joinKeys(catalog.StyleKeys()))
		}
		slog.Warn("active mode style unknown, using default", "style", styleRaw)
		styleKey = catalog.DefaultStyle
	}
	style := catalog.Styles[styleKey]

	sizeKey, ok := catalog.ParseSizeKey(drinkFlags.size)
	if !ok {
		return fmt.Errorf("unknown size %q (sizes: %s)", drinkFlags.size, joinKeys(catalog.SizeKeys()))
	}
	size := catalog.Sizes[sizeKey]

	if !(drinkFlags.count > 0) || math.IsInf(drinkFlags.count, 0) {
		return fmt.Errorf("--count must be positive, got %v", drinkFlags.count)
	}
	if drinkFlags.rating < 0 || drinkFlags.rating > 5 {
		return fmt.Errorf("--rating must be 0-5, got %d", drinkFlags.rating)
	}
	abv := style.ABV
	if cmd.Flags().Changed("abv") {
		if drinkFlags.abv < 0 || drinkFlags.abv > 100 {
			return fmt.Errorf("--abv must be 0-100, got %v", drinkFlags.abv)
		}
		abv = drinkFlags.abv
	}

	now := time.Now()
	at, err := parseWhen(drinkFlags.at, now)
	if err != nil {
		return err
	}

	raw := pipeline.NewDrinkLog(at, style, size, drinkFlags.count)
	if abv != style.ABV {
		kcal := pipeline.DrinkDebt(size.ML, abv, drinkFlags.count)
		raw.Kcal, raw.ABV = &kcal, abv
	}
	if cmd.Flags().Changed("kcal") {
		kcal := -math.Abs(drinkFlags.kcal)
		raw.Kcal = &kcal
	}
	if name := strings.TrimSpace(drinkFlags.name); name != "" {
		raw.Name = name
	}
	raw.Brewery = strings.TrimSpace(drinkFlags.brewery)
	raw.Brand = strings.TrimSpace(drinkFlags.brand)
	raw.Rating = drinkFlags.rating
	raw.Memo = strings.TrimSpace(drinkFlags.memo)
	return saveAndReport(raw, fmt.Sprintf("%s %gx %s, %.1f%%", style.Icon, drinkFlags.count, size.Label, abv))
}

// saveAndReport stores a new log and prints the resulting tank.
func saveAndReport(raw model.RawLog, what string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := st.AddLog(raw)
	if err != nil {
		return err
	}
	slog.Info("log added", "id", id, "name", raw.Name, "kcal", *raw.Kcal)

	result, err := loadFrom(st)
	if err != nil {
		return err
	}
	opts := options()
	tank := pipeline.TankDisplayData(pipeline.Balance(result.Logs), opts.Mode, opts.Tank, opts.Profile)

	fmt.Println()
	fmt.Printf("  Logged %s  %s  %s\n", raw.Name, cli.Muted(what), cli.Signed(*raw.Kcal, cli.FormatKcal(*raw.Kcal)))
	fmt.Printf("  %s\n", cli.RenderTank(tank, 30))
	fmt.Printf("  %s  %s\n\n", cli.Muted(cli.TankMessage(tank)), cli.Muted("id "+shortID(id)))
	return nil
}

func joinKeys[K ~string](keys []K) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
