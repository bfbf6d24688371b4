package theme

import (
	"testing"

	"github.com/theirongolddev/kcaltank/internal/model"
)

var allStatuses = []model.DayStatus{
	model.StatusRest,
	model.StatusRestExercise,
	model.StatusDrinkExerciseSuccess,
	model.StatusDrinkExercise,
	model.StatusDrink,
	model.StatusExercise,
}

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Errorf("ByName(unknown) = %q, want %q", got.Name, FlexokiDark.Name)
	}
}

func TestNamesAreKnown(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Known(n) {
			t.Errorf("Known(%q) = false", n)
		}
		if ByName(n).Name != n {
			t.Errorf("ByName(%q) returned %q", n, ByName(n).Name)
		}
	}
	if Known("") {
		t.Error("empty name should not be known")
	}
}

func TestEveryThemeColorsTheLedger(t *testing.T) {
	for _, th := range All {
		if th.Debt == "" || th.Credit == "" || th.Beer == "" || th.Surface == "" {
			t.Errorf("%s: ledger colors missing", th.Name)
		}
		if th.Debt == th.Credit {
			t.Errorf("%s: debt and credit share %q", th.Name, th.Debt)
		}
		for _, s := range allStatuses {
			if th.StatusColor(s) == "" {
				t.Errorf("%s: no color for %s", th.Name, s)
			}
		}
	}
}

func TestStatusColorSeparatesDrinkingFromRest(t *testing.T) {
	th := FlexokiDark
	if th.StatusColor(model.StatusDrink) == th.StatusColor(model.StatusRest) {
		t.Error("drink and rest days render alike")
	}
	if th.StatusColor(model.StatusDrinkExerciseSuccess) == th.StatusColor(model.StatusDrinkExercise) {
		t.Error("paid-back days render like unpaid ones")
	}
	if got := th.StatusColor(model.StatusNone); got != th.TextDim {
		t.Errorf("StatusColor(none) = %q, want dim %q", got, th.TextDim)
	}
}

func TestBalanceColor(t *testing.T) {
	th := Stout
	tests := []struct {
		kcal float64
		want string
	}{
		{-140, string(th.Debt)},
		{0, string(th.TextMuted)},
		{85.5, string(th.Credit)},
	}
	for _, tt := range tests {
		if got := th.BalanceColor(tt.kcal); string(got) != tt.want {
			t.Errorf("BalanceColor(%v) = %q, want %q", tt.kcal, got, tt.want)
		}
	}
}

func TestRankColor(t *testing.T) {
	if got := FlexokiDark.RankColor("S", "#8B7EC8"); got != "#8B7EC8" {
		t.Errorf("hex theme RankColor = %q, want the tier hex", got)
	}
	if got := Terminal.RankColor("S", "#8B7EC8"); got != "5" {
		t.Errorf("terminal RankColor(S) = %q, want ANSI 5", got)
	}
	if got := Terminal.RankColor("Z", "#123456"); got != "#123456" {
		t.Errorf("unmapped rank = %q, want hex fallback", got)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)
	SetActive("stout")
	if Active.Name != "stout" {
		t.Errorf("Active = %q after SetActive", Active.Name)
	}
}
