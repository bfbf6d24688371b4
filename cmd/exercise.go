package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise <minutes>",
	Aliases: []string{"ex", "workout"},
	Short:   "Log exercise to pay back kcal debt",
	Long: "Log minutes of exercise as kcal credit. The current streak bonus is applied\n" +
		"unless --bonus=false.\n" +
		"Exercises: " + joinKeys(catalog.ExerciseKeys()),
	Args: cobra.ExactArgs(1),
	RunE: runExercise,
}

var exerciseFlags struct {
	kind  string
	kcal  float64
	bonus bool
	memo  string
	at    string
}

func init() {
	f := exerciseCmd.Flags()
	f.StringVarP(&exerciseFlags.kind, "type", "t", "", "Exercise key (default from config)")
	f.Float64Var(&exerciseFlags.kcal, "kcal", 0, "Record this kcal instead of computing it")
	f.BoolVar(&exerciseFlags.bonus, "bonus", true, "Apply the current streak multiplier")
	f.StringVar(&exerciseFlags.memo, "memo", "", "Free text memo")
	f.StringVar(&exerciseFlags.at, "at", "", "When (15:04, 2006-01-02 or 2006-01-02 15:04)")
	rootCmd.AddCommand(exerciseCmd)
}

func runExercise(cmd *cobra.Command, args []string) error {
	minutes, err := strconv.ParseFloat(args[0], 64)
	if err != nil || !(minutes > 0) || math.IsInf(minutes, 0) {
		return fmt.Errorf("minutes must be a positive number, got %q", args[0])
	}

	opts := options()
	kindRaw := opts.Tank.BaseExercise
	if exerciseFlags.kind != "" {
		kindRaw = exerciseFlags.kind
	}
	key, ok := catalog.ParseExerciseKey(kindRaw)
	if !ok {
		if exerciseFlags.kind != "" {
			return fmt.Errorf("unknown exercise %q (exercises: %s)", kindRaw, joinKeys(catalog.ExerciseKeys()))
		}
		key = catalog.DefaultExercise
	}
	ex := catalog.Exercises[key]

	now := time.Now()
	at, err := parseWhen(exerciseFlags.at, now)
	if err != nil {
		return err
	}

	multiplier := 1.0
	if exerciseFlags.bonus {
		result, err := loadData()
		if err != nil {
			return err
		}
		multiplier = pipeline.BonusNow(now, result.Logs, result.Checks, opts.Bonuses)
	}

	raw := pipeline.NewExerciseLog(at, ex, minutes, opts.Profile, multiplier)
	raw.Memo = pipeline.WithBonusMemo(strings.TrimSpace(exerciseFlags.memo), multiplier)
	if cmd.Flags().Changed("kcal") {
		kcal := math.Abs(exerciseFlags.kcal)
		raw.Kcal = &kcal
	}
	what := fmt.Sprintf("%s %g min", ex.Icon, minutes)
	if multiplier > 1 {
		what += fmt.Sprintf(" x%.1f", multiplier)
	}
	return saveAndReport(raw, what)
}
