package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/model"
)

var testSettings = TankSettings{
	Modes:        model.ModeSettings{Mode1: "pilsner", Mode2: "hazy_ipa"},
	BaseExercise: "stepper",
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func TestBalance_SumsRegardlessOfOrder(t *testing.T) {
	logs := []model.LogEntry{
		workout(daysAgo(0), 120),
		drink(daysAgo(2), 98),
		workout(daysAgo(1), 30.5),
	}
	if got := Balance(logs); math.Abs(got-52.5) > 1e-9 {
		t.Fatalf("Balance = %v, want 52.5", got)
	}
	if got := Balance(nil); got != 0 {
		t.Fatalf("Balance(nil) = %v, want 0", got)
	}
}

func TestTankDisplayData_SignConsistency(t *testing.T) {
	p := model.DefaultProfile
	for _, bal := range []float64{-5000, -98, -0.001, 0, 1e-320, 0.001, 49, 98, 5000} {
		for _, mode := range []model.Mode{model.Mode1, model.Mode2} {
			v := TankDisplayData(bal, mode, testSettings, p)
			if sign(v.CanCount) != sign(bal) {
				t.Errorf("balance %v mode %s: CanCount %v has wrong sign", bal, mode, v.CanCount)
			}
			if (bal == 0 || math.Abs(bal) >= 0.001) && sign(v.DisplayMinutes) != sign(bal) {
				t.Errorf("balance %v: DisplayMinutes %v has wrong sign", bal, v.DisplayMinutes)
			}
			if math.IsNaN(v.CanCount) || math.IsInf(v.CanCount, 0) {
				t.Errorf("balance %v: CanCount not finite", bal)
			}
		}
	}
}

func TestTankDisplayData_ModeSelectsStyle(t *testing.T) {
	p := model.DefaultProfile

	v1 := TankDisplayData(196, model.Mode1, testSettings, p)
	unit := catalog.UnitKcal(catalog.Styles[catalog.Pilsner])
	if v1.TargetStyle != "pilsner" || v1.UnitKcal != unit {
		t.Fatalf("mode1 = %s/%v, want pilsner/%v", v1.TargetStyle, v1.UnitKcal, unit)
	}
	if math.Abs(v1.CanCount-196/unit) > 1e-9 {
		t.Fatalf("mode1 CanCount = %v, want %v", v1.CanCount, 196/unit)
	}

	v2 := TankDisplayData(196, model.Mode2, testSettings, p)
	if v2.TargetStyle != "hazy_ipa" || !v2.IsHazy {
		t.Fatalf("mode2 style = %s hazy=%v, want hazy_ipa hazy", v2.TargetStyle, v2.IsHazy)
	}
	if v2.CanCount >= v1.CanCount {
		t.Fatalf("stronger style should yield fewer cans: %v >= %v", v2.CanCount, v1.CanCount)
	}
}

func TestTankDisplayData_UnknownKeysFallBack(t *testing.T) {
	s := TankSettings{Modes: model.ModeSettings{Mode1: "moonshine"}, BaseExercise: "skydiving"}
	v := TankDisplayData(100, model.Mode1, s, model.Profile{})
	if v.TargetStyle != string(catalog.DefaultStyle) {
		t.Fatalf("TargetStyle = %s, want %s", v.TargetStyle, catalog.DefaultStyle)
	}
	if v.BaseExercise != string(catalog.DefaultExercise) {
		t.Fatalf("BaseExercise = %s, want %s", v.BaseExercise, catalog.DefaultExercise)
	}
}

func TestTankDisplayData_MinutesMonotonic(t *testing.T) {
	p := model.DefaultProfile
	prev := math.Inf(-1)
	for bal := -1000.0; bal <= 1000; bal += 37 {
		v := TankDisplayData(bal, model.Mode1, testSettings, p)
		if v.DisplayMinutes <= prev {
			t.Fatalf("DisplayMinutes not increasing at %v: %v <= %v", bal, v.DisplayMinutes, prev)
		}
		prev = v.DisplayMinutes
	}
}

func TestTankDisplayData_NonAlcoholicUnitStaysFinite(t *testing.T) {
	s := TankSettings{Modes: model.ModeSettings{Mode1: "non_alcoholic"}}
	v := TankDisplayData(-50, model.Mode1, s, model.DefaultProfile)
	if v.UnitKcal != catalog.MinUnitKcal {
		t.Fatalf("UnitKcal = %v, want %v", v.UnitKcal, catalog.MinUnitKcal)
	}
	if v.CanCount != -50 {
		t.Fatalf("CanCount = %v, want -50", v.CanCount)
	}
}

func TestTankDisplayData_Tiers(t *testing.T) {
	unit := catalog.UnitKcal(catalog.Styles[catalog.Pilsner])
	tests := []struct {
		cans float64
		want model.TankTier
	}{
		{0.2, model.TierHold},
		{0.5, model.TierAlmost},
		{0.99, model.TierAlmost},
		{1, model.TierOneCan},
		{1.9, model.TierOneCan},
		{2, model.TierPlenty},
		{0, model.TierRunningDry},
		{-1.5, model.TierRunningDry},
		{-1.6, model.TierDebtPile},
	}
	for _, tt := range tests {
		v := TankDisplayData(tt.cans*unit, model.Mode1, testSettings, model.DefaultProfile)
		if v.Tier != tt.want {
			t.Errorf("%v cans: tier %s, want %s", tt.cans, v.Tier, tt.want)
		}
	}
}

func TestExerciseKcal(t *testing.T) {
	p := model.DefaultProfile
	plain := ExerciseKcal(30, "stepper", p, 1)
	if plain <= 0 {
		t.Fatalf("ExerciseKcal = %v, want > 0", plain)
	}
	if got := ExerciseKcal(30, "stepper", p, 1.5); math.Abs(got-plain*1.5) > 1e-9 {
		t.Fatalf("bonus credit = %v, want %v", got, plain*1.5)
	}
	if got := ExerciseKcal(30, "stepper", p, 0.5); got != plain {
		t.Fatalf("multiplier below 1 applied: %v", got)
	}
	if got := ExerciseKcal(-30, "stepper", p, 1); got != plain {
		t.Fatalf("negative minutes = %v, want %v", got, plain)
	}
}

func TestDrinkDebt(t *testing.T) {
	if got := DrinkDebt(350, 5, 1); math.Abs(got+98) > 1e-9 {
		t.Fatalf("DrinkDebt(350ml, 5%%) = %v, want -98", got)
	}
	if got := DrinkDebt(350, 0, 2); got != 0 {
		t.Fatalf("non-alcoholic debt = %v, want 0", got)
	}
}
