package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/energy"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a log (id or unique id prefix)",
	Long: "Edit a log in place. Changing the style, size, count or ABV of a drink, or the\n" +
		"minutes or type of an exercise, recomputes its kcal. Legacy minute-based logs\n" +
		"are rewritten in kcal.",
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editFlags struct {
	at      string
	name    string
	style   string
	size    string
	count   float64
	abv     float64
	kind    string
	minutes float64
	kcal    float64
	brewery string
	brand   string
	rating  int
	memo    string
}

func init() {
	f := editCmd.Flags()
	f.StringVar(&editFlags.at, "at", "", "New time")
	f.StringVar(&editFlags.name, "name", "", "Display name")
	f.StringVar(&editFlags.style, "style", "", "Drink style key")
	f.StringVarP(&editFlags.size, "size", "s", "", "Serving size key")
	f.Float64VarP(&editFlags.count, "count", "c", 0, "Number of servings")
	f.Float64Var(&editFlags.abv, "abv", 0, "ABV percent")
	f.StringVarP(&editFlags.kind, "type", "t", "", "Exercise key")
	f.Float64Var(&editFlags.minutes, "minutes", 0, "Exercise minutes")
	f.Float64Var(&editFlags.kcal, "kcal", 0, "Set kcal directly (sign follows the log kind)")
	f.StringVar(&editFlags.brewery, "brewery", "", "Brewery")
	f.StringVar(&editFlags.brand, "brand", "", "Brand")
	f.IntVarP(&editFlags.rating, "rating", "r", 0, "Rating 0-5")
	f.StringVar(&editFlags.memo, "memo", "", "Memo")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	changed := cmd.Flags().Changed

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := resolveID(st, args[0])
	if err != nil {
		return err
	}
	raw, err := st.GetLog(id)
	if err != nil {
		return err
	}
	p := appConfig.ModelProfile()
	before := pipeline.NormalizeOne(raw, p)
	entry := before
	isDrink := entry.IsDebt() || (entry.Kcal == 0 && entry.Style != "")

	if changed("at") {
		at, err := parseWhen(editFlags.at, time.Now())
		if err != nil {
			return err
		}
		entry.Timestamp = at
	}
	if changed("name") {
		entry.Name = strings.TrimSpace(editFlags.name)
	}
	if changed("memo") {
		entry.Memo = pipeline.WithBonusMemo(strings.TrimSpace(editFlags.memo), pipeline.MemoBonus(entry.Memo))
	}
	if changed("rating") {
		if editFlags.rating < 0 || editFlags.rating > 5 {
			return fmt.Errorf("--rating must be 0-5, got %d", editFlags.rating)
		}
		entry.Rating = editFlags.rating
	}
	if changed("brewery") {
		entry.Brewery = strings.TrimSpace(editFlags.brewery)
	}
	if changed("brand") {
		entry.Brand = strings.TrimSpace(editFlags.brand)
	}

	if isDrink {
		if changed("type") || changed("minutes") {
			return errors.New("--type and --minutes apply to exercise logs")
		}
		recompute := false
		if changed("style") {
			key, ok := catalog.ParseStyleKey(editFlags.style)
			if !ok {
				return fmt.Errorf("unknown style %q", editFlags.style)
			}
			entry.Style = string(key)
			if !changed("abv") {
				entry.ABV = catalog.Styles[key].ABV
			}
			recompute = true
		}
		if changed("size") {
			key, ok := catalog.ParseSizeKey(editFlags.size)
			if !ok {
				return fmt.Errorf("unknown size %q", editFlags.size)
			}
			entry.Size = string(key)
			recompute = true
		}
		if changed("count") {
			if !(editFlags.count > 0) || math.IsInf(editFlags.count, 0) {
				return fmt.Errorf("--count must be positive, got %v", editFlags.count)
			}
			entry.Count = editFlags.count
			recompute = true
		}
		if changed("abv") {
			if editFlags.abv < 0 || editFlags.abv > 100 {
				return fmt.Errorf("--abv must be 0-100, got %v", editFlags.abv)
			}
			entry.ABV = editFlags.abv
			recompute = true
		}
		if recompute {
			count := entry.Count
			if count <= 0 {
				count = 1
			}
			entry.Kcal = pipeline.DrinkDebt(catalog.ResolveSize(entry.Size).ML, entry.ABV, count)
		}
		if changed("kcal") {
			entry.Kcal = -math.Abs(editFlags.kcal)
		}
	} else {
		if changed("style") || changed("size") || changed("count") || changed("abv") {
			return errors.New("--style, --size, --count and --abv apply to drink logs")
		}
		if changed("type") {
			key, ok := catalog.ParseExerciseKey(editFlags.kind)
			if !ok {
				return fmt.Errorf("unknown exercise %q", editFlags.kind)
			}
			if !changed("minutes") {
				// keep the workout length, re-price it for the new exercise
				editFlags.minutes = energy.KcalToMinutes(entry.Kcal/pipeline.MemoBonus(entry.Memo), entry.ExerciseKey, p)
			}
			entry.ExerciseKey = string(key)
			if !changed("name") {
				entry.Name = catalog.Exercises[key].Label
			}
		}
		if changed("type") || changed("minutes") {
			if !(editFlags.minutes > 0) || math.IsInf(editFlags.minutes, 0) {
				return fmt.Errorf("--minutes must be positive, got %v", editFlags.minutes)
			}
			entry.Kcal = pipeline.ExerciseKcal(editFlags.minutes, entry.ExerciseKey, p, pipeline.MemoBonus(entry.Memo))
		}
		if changed("kcal") {
			entry.Kcal = math.Abs(editFlags.kcal)
		}
	}

	if err := st.ReplaceLog(entry.Raw()); err != nil {
		return err
	}
	slog.Info("log edited", "id", id, "kcal", entry.Kcal)

	fmt.Println()
	fmt.Printf("  Updated %s  %s  %s  %s\n", shortID(id), formatWhen(entry.Timestamp),
		cli.DescribeLog(entry), cli.Signed(entry.Kcal, cli.FormatKcal(entry.Kcal)))
	if entry.Kcal != before.Kcal {
		fmt.Printf("  %s\n", cli.Muted("was "+cli.FormatKcal(before.Kcal)))
	}
	fmt.Println()
	return nil
}
