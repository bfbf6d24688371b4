package pipeline

import (
	"math"
	"sort"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/energy"
	"github.com/theirongolddev/kcaltank/internal/model"
)

// TankSettings binds drink styles to modes and picks the exercise that
// balances are expressed in.
type TankSettings struct {
	Modes        model.ModeSettings
	BaseExercise string
}

// Balance sums all log kcal in timestamp order.
func Balance(logs []model.LogEntry) float64 {
	sorted := make([]model.LogEntry, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var sum float64
	for _, l := range sorted {
		sum += finite(l.Kcal)
	}
	return sum
}

// TankDisplayData expresses a kcal balance as cans of the active mode's style
// and minutes of the base exercise. Values are not clamped.
func TankDisplayData(balanceKcal float64, mode model.Mode, s TankSettings, p model.Profile) model.TankView {
	balanceKcal = finite(balanceKcal)

	style := catalog.ResolveStyle(s.Modes.StyleFor(mode))
	unit := catalog.UnitKcal(style)
	base := catalog.ResolveExercise(s.BaseExercise)

	cans := balanceKcal / unit
	if cans == 0 && balanceKcal != 0 {
		// keep the sign of balances too small to survive the division
		cans = math.Copysign(math.SmallestNonzeroFloat64, balanceKcal)
	}

	return model.TankView{
		BalanceKcal:    balanceKcal,
		CanCount:       cans,
		DisplayMinutes: SignedMinutes(balanceKcal, string(base.Key), p),
		OneCanMinutes:  energy.KcalToMinutes(unit, string(base.Key), p),
		UnitKcal:       unit,
		BaseExercise:   string(base.Key),
		BaseLabel:      base.Label,
		BaseIcon:       base.Icon,
		TargetStyle:    string(style.Key),
		StyleLabel:     style.Label,
		LiquidColor:    style.LiquidColor,
		IsHazy:         style.Hazy,
		Tier:           tankTier(balanceKcal, cans),
	}
}

func tankTier(balanceKcal, cans float64) model.TankTier {
	if balanceKcal > 0 {
		switch {
		case cans < 0.5:
			return model.TierHold
		case cans < 1.0:
			return model.TierAlmost
		case cans < 2.0:
			return model.TierOneCan
		default:
			return model.TierPlenty
		}
	}
	if math.Abs(cans) > 1.5 {
		return model.TierDebtPile
	}
	return model.TierRunningDry
}

// SignedMinutes converts kcal to minutes of the exercise named by key,
// keeping the sign.
func SignedMinutes(kcal float64, key string, p model.Profile) float64 {
	m := energy.KcalToMinutes(math.Abs(kcal), key, p)
	if kcal < 0 {
		return -m
	}
	return m
}

// ExerciseKcal returns the credit earned by minutes of the exercise named by
// key, scaled by a streak multiplier. Multipliers below 1 are ignored.
func ExerciseKcal(minutes float64, key string, p model.Profile, multiplier float64) float64 {
	if multiplier < 1 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		multiplier = 1
	}
	return energy.MinutesToKcal(math.Abs(finite(minutes)), key, p) * multiplier
}

// DrinkDebt returns the (negative) kcal of count servings of ml at abv percent.
func DrinkDebt(ml, abv, count float64) float64 {
	return -catalog.DrinkKcal(ml, abv, count)
}
