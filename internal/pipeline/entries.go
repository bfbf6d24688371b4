package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/model"
)

const bonusTag = "Bonus x"

// NewDrinkLog builds a drink record priced from the style's ABV.
func NewDrinkLog(at time.Time, style catalog.Style, size catalog.Size, count float64) model.RawLog {
	kcal := DrinkDebt(size.ML, style.ABV, count)
	return model.RawLog{
		Timestamp: at,
		Kcal:      &kcal,
		Name:      style.Label,
		Style:     string(style.Key),
		Size:      string(size.Key),
		Count:     count,
		ABV:       style.ABV,
	}
}

// NewExerciseLog builds an exercise record. A multiplier above 1 is
// tagged in the memo so later edits can keep it.
func NewExerciseLog(at time.Time, ex catalog.Exercise, minutes float64, p model.Profile, multiplier float64) model.RawLog {
	kcal := ExerciseKcal(minutes, string(ex.Key), p, multiplier)
	return model.RawLog{
		Timestamp:   at,
		Kcal:        &kcal,
		Name:        ex.Label,
		ExerciseKey: string(ex.Key),
		Memo:        WithBonusMemo("", multiplier),
	}
}

// BonusNow is the streak multiplier a workout logged at now would earn.
func BonusNow(now time.Time, logs []model.LogEntry, checks []model.CheckEntry, bonuses []StreakBonus) float64 {
	if bonuses == nil {
		bonuses = DefaultStreakBonuses
	}
	return StreakMultiplier(CurrentStreak(now, logs, checks), bonuses)
}

// MemoBonus extracts the multiplier recorded as "Bonus xN" in a memo.
func MemoBonus(memo string) float64 {
	i := strings.Index(memo, bonusTag)
	if i < 0 {
		return 1
	}
	rest := memo[i+len(bonusTag):]
	end := strings.IndexFunc(rest, func(r rune) bool { return (r < '0' || r > '9') && r != '.' })
	if end >= 0 {
		rest = rest[:end]
	}
	// Longest numeric prefix: "x1.2." reads 1.2
	for ; rest != ""; rest = rest[:len(rest)-1] {
		if v, err := strconv.ParseFloat(rest, 64); err == nil {
			if v < 1 {
				return 1
			}
			return v
		}
	}
	return 1
}

// WithBonusMemo appends or replaces the bonus tag in memo. A multiplier
// of 1 removes it.
func WithBonusMemo(memo string, multiplier float64) string {
	if i := strings.Index(memo, bonusTag); i >= 0 {
		memo = strings.TrimSpace(memo[:i])
	}
	if multiplier <= 1 {
		return memo
	}
	tag := fmt.Sprintf("%s%.1f", bonusTag, multiplier)
	if memo == "" {
		return tag
	}
	return memo + " " + tag
}
