// Package energy converts between kcal and minutes of exercise for a body profile.
package energy

import (
	"math"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/model"
)

// LegacyMET is the MET value that minute-based log records were written against.
const LegacyMET = 6.0

// ResolveProfile returns p with invalid fields replaced by the default profile.
func ResolveProfile(p model.Profile) model.Profile {
	return p.Resolved()
}

// BurnRate returns kcal burned per minute at met for the given profile,
// using the ACSM approximation met * kg * 3.5 / 200.
// Non-positive or NaN met yields 0.
func BurnRate(met float64, p model.Profile) float64 {
	if !(met > 0) || math.IsInf(met, 0) {
		return 0
	}
	weight := ResolveProfile(p).WeightKg
	return met * weight * 3.5 / 200
}

// ExerciseBurnRate returns the burn rate of the exercise named by key,
// falling back to the default exercise for unknown keys.
func ExerciseBurnRate(key string, p model.Profile) float64 {
	return BurnRate(catalog.ResolveExercise(key).METValue, p)
}

// KcalToMinutes converts an absolute kcal amount into minutes of the
// exercise named by key. The result is not rounded.
func KcalToMinutes(kcalAbs float64, key string, p model.Profile) float64 {
	if kcalAbs == 0 || math.IsNaN(kcalAbs) || math.IsInf(kcalAbs, 0) {
		return 0
	}
	rate := ExerciseBurnRate(key, p)
	if rate <= 0 {
		return 0
	}
	return kcalAbs / rate
}

// MinutesToKcal converts minutes of the exercise named by key into kcal.
func MinutesToKcal(minutes float64, key string, p model.Profile) float64 {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0
	}
	return minutes * ExerciseBurnRate(key, p)
}

// LegacyMinutesToKcal converts a minute-based legacy record into kcal.
func LegacyMinutesToKcal(minutes float64, p model.Profile) float64 {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0
	}
	return minutes * BurnRate(LegacyMET, p)
}
