package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
	"github.com/theirongolddev/kcaltank/internal/store"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Record today's body check (one per day, re-running updates it)",
	RunE:  runCheck,
}

var checkFlags struct {
	dry       bool
	waist     bool
	feet      bool
	water     bool
	fiber     bool
	exercised bool
	weight    float64
	yesterday bool
	clear     bool
}

func init() {
	f := checkCmd.Flags()
	f.BoolVar(&checkFlags.dry, "dry", false, "No alcohol today")
	f.BoolVar(&checkFlags.waist, "waist", false, "Waist feels easy")
	f.BoolVar(&checkFlags.feet, "feet", false, "Feet feel light")
	f.BoolVar(&checkFlags.water, "water", false, "Drank enough water")
	f.BoolVar(&checkFlags.fiber, "fiber", false, "Ate enough fiber")
	f.BoolVar(&checkFlags.exercised, "exercised", false, "Exercised (counts on dry days)")
	f.Float64Var(&checkFlags.weight, "weight", 0, "Body weight in kg")
	f.BoolVar(&checkFlags.yesterday, "yesterday", false, "Record the check for yesterday")
	f.BoolVar(&checkFlags.clear, "clear", false, "Delete the check for the day")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	now := time.Now()
	at := now
	if checkFlags.yesterday {
		at = now.AddDate(0, 0, -1)
	}

	existing, err := st.CheckForDay(at)
	found := err == nil
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if checkFlags.clear {
		if !found {
			fmt.Printf("\n  No check recorded for %s.\n\n", at.Format("Mon Jan 02"))
			return nil
		}
		if err := st.DeleteCheck(existing.ID); err != nil {
			return err
		}
		slog.Info("check deleted", "id", existing.ID)
		fmt.Printf("\n  Check for %s removed.\n\n", at.Format("Mon Jan 02"))
		return nil
	}

	c := model.CheckEntry{
		ID:            existing.ID,
		Timestamp:     at,
		IsDryDay:      checkFlags.dry,
		WaistEase:     checkFlags.waist,
		FootLightness: checkFlags.feet,
		WaterOk:       checkFlags.water,
		FiberOk:       checkFlags.fiber,
		Exercised:     checkFlags.exercised,
	}
	if found {
		// keep the original time so the check stays on its day
		c.Timestamp = existing.Timestamp
		if !cmd.Flags().Changed("weight") {
			c.Weight = existing.Weight
		}
	}
	if cmd.Flags().Changed("weight") {
		if !(checkFlags.weight > 0) {
			return fmt.Errorf("--weight must be positive, got %v", checkFlags.weight)
		}
		w := checkFlags.weight
		c.Weight = &w
	}

	id, err := st.SaveCheck(c)
	if err != nil {
		return err
	}
	slog.Info("check saved", "id", id, "updated", found)

	result, err := loadFrom(st)
	if err != nil {
		return err
	}
	c.ID = id

	verb := "Recorded"
	if found {
		verb = "Updated"
	}
	fmt.Println()
	fmt.Printf("  %s check for %s  %s\n", verb, c.Timestamp.Format("Mon Jan 02"), cli.Muted("weight "+cli.FormatWeight(c.Weight)))
	fmt.Printf("  %s\n", pipeline.CheckMessage(c, result.Logs))
	day := pipeline.DayStatusFor(c.Timestamp, result.Logs, result.Checks)
	fmt.Printf("  %s %s\n\n", cli.StatusGlyph(day), cli.StatusLabel(day))
	return nil
}
