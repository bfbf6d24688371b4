package pipeline

import (
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// StreakBonus unlocks Multiplier once a streak reaches Days.
type StreakBonus struct {
	Days       int
	Multiplier float64
}

// DefaultStreakBonuses is used when no bonus table is configured.
var DefaultStreakBonuses = []StreakBonus{
	{Days: 7, Multiplier: 1.2},
	{Days: 14, Multiplier: 1.5},
}

// CurrentStreak counts consecutive qualifying days ending today. A day with no
// record breaks the streak; the walk never goes past the earliest recorded day.
func CurrentStreak(now time.Time, logs []model.LogEntry, checks []model.CheckEntry) int {
	loc := now.Location()
	idx := newDayIndex(logs, checks, loc)
	if idx.empty() {
		return 0
	}

	streak := 0
	for day := startOfDay(now, loc); !day.Before(idx.earliest); day = day.AddDate(0, 0, -1) {
		if !Qualifies(idx.status(day)) {
			break
		}
		streak++
	}
	return streak
}

// StreakMultiplier returns the largest multiplier unlocked by streak, never
// below 1.0. Taking the maximum keeps the result non-decreasing in streak
// regardless of the order of the bonus table.
func StreakMultiplier(streak int, bonuses []StreakBonus) float64 {
	m := 1.0
	for _, b := range bonuses {
		if streak >= b.Days && b.Multiplier > m {
			m = b.Multiplier
		}
	}
	return m
}
