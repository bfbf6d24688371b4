package pipeline

import (
	"math"
	"time"

	"github.com/theirongolddev/kcaltank/internal/energy"
	"github.com/theirongolddev/kcaltank/internal/model"
)

// Normalize converts persisted log records into canonical signed-kcal entries.
// Records written before kcal tracking carry stepper minutes instead; those are
// converted with the legacy MET for the given profile. Stored data is not touched.
func Normalize(raw []model.RawLog, p model.Profile) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeOne(r, p))
	}
	return out
}

// NormalizeOne converts a single persisted record.
func NormalizeOne(r model.RawLog, p model.Profile) model.LogEntry {
	var kcal float64
	switch {
	case r.Kcal != nil:
		kcal = finite(*r.Kcal)
	case r.Minutes != nil:
		kcal = energy.LegacyMinutesToKcal(finite(*r.Minutes), p)
	}

	rating := r.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	count := finite(r.Count)
	if count < 0 {
		count = 0
	}
	abv := finite(r.ABV)
	if abv < 0 {
		abv = 0
	}

	return model.LogEntry{
		ID:          r.ID,
		Timestamp:   r.Timestamp,
		Kcal:        kcal,
		Name:        r.Name,
		ExerciseKey: r.ExerciseKey,
		Style:       r.Style,
		Size:        r.Size,
		Count:       count,
		ABV:         abv,
		Brewery:     r.Brewery,
		Brand:       r.Brand,
		Rating:      rating,
		Memo:        r.Memo,
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// startOfDay returns local midnight of t in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return dayKey(a, loc) == dayKey(b, loc)
}
