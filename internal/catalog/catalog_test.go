package catalog

import (
	"math"
	"testing"
)

func TestParseExerciseKey(t *testing.T) {
	tests := []struct {
		raw  string
		want ExerciseKey
		ok   bool
	}{
		{"stepper", Stepper, true},
		{"  Running ", Running, true},
		{"brisk-walking", BriskWalking, true},
		{"brisk walking", BriskWalking, true},
		{"parkour", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseExerciseKey(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseExerciseKey(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	if got := ResolveExercise("unknown").Key; got != DefaultExercise {
		t.Errorf("ResolveExercise(unknown) = %q, want %q", got, DefaultExercise)
	}
	if got := ResolveStyle("mystery brew").Key; got != DefaultStyle {
		t.Errorf("ResolveStyle(unknown) = %q, want %q", got, DefaultStyle)
	}
	if got := ResolveSize("bucket").Key; got != DefaultSize {
		t.Errorf("ResolveSize(unknown) = %q, want %q", got, DefaultSize)
	}
}

func TestEveryExerciseHasPositiveMET(t *testing.T) {
	for key, ex := range Exercises {
		if ex.Key != key {
			t.Errorf("exercise %q has mismatched Key %q", key, ex.Key)
		}
		if ex.METValue <= 0 {
			t.Errorf("exercise %q has METValue %.2f, want > 0", key, ex.METValue)
		}
	}
}

func TestDrinkKcal(t *testing.T) {
	// 350ml at 5% -> 17.5ml ethanol -> 14g -> 98kcal
	if got := DrinkKcal(350, 5, 1); math.Abs(got-98) > 1e-9 {
		t.Fatalf("DrinkKcal(350, 5, 1) = %.4f, want 98", got)
	}
	if got := DrinkKcal(350, 5, 2); math.Abs(got-196) > 1e-9 {
		t.Fatalf("DrinkKcal(350, 5, 2) = %.4f, want 196", got)
	}
	for _, bad := range []float64{math.NaN(), -1, math.Inf(1)} {
		if got := DrinkKcal(bad, 5, 1); got != 0 {
			t.Errorf("DrinkKcal(%v, 5, 1) = %v, want 0", bad, got)
		}
	}
}

func TestUnitKcalNeverBelowMinimum(t *testing.T) {
	if got := UnitKcal(Styles[NonAlcoholic]); got != MinUnitKcal {
		t.Fatalf("UnitKcal(non-alcoholic) = %v, want %v", got, MinUnitKcal)
	}
	if got := UnitKcal(Style{ABV: math.NaN()}); got != MinUnitKcal {
		t.Fatalf("UnitKcal(NaN abv) = %v, want %v", got, MinUnitKcal)
	}
	if got := UnitKcal(Styles[Pilsner]); got <= MinUnitKcal {
		t.Fatalf("UnitKcal(pilsner) = %v, want > %v", got, MinUnitKcal)
	}
}

func TestExerciseKeysSortedByMET(t *testing.T) {
	keys := ExerciseKeys()
	if len(keys) != len(Exercises) {
		t.Fatalf("ExerciseKeys len = %d, want %d", len(keys), len(Exercises))
	}
	for i := 1; i < len(keys); i++ {
		if Exercises[keys[i-1]].METValue > Exercises[keys[i]].METValue {
			t.Fatalf("keys not sorted by MET at %d: %q > %q", i, keys[i-1], keys[i])
		}
	}
}

func TestSizeKeysSmallestFirst(t *testing.T) {
	keys := SizeKeys()
	if len(keys) != len(Sizes) {
		t.Fatalf("SizeKeys returned %d keys, want %d", len(keys), len(Sizes))
	}
	for i := 1; i < len(keys); i++ {
		if Sizes[keys[i]].ML < Sizes[keys[i-1]].ML {
			t.Errorf("%s (%vml) sorted after %s (%vml)", keys[i], Sizes[keys[i]].ML, keys[i-1], Sizes[keys[i-1]].ML)
		}
	}
}
