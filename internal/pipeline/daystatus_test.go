package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

func TestDayStatusFor(t *testing.T) {
	day := mustTime(t, "2026-10-19 12:00")
	morning := mustTime(t, "2026-10-19 08:00")
	evening := mustTime(t, "2026-10-19 20:00")
	yesterday := mustTime(t, "2026-10-18 23:59")

	tests := []struct {
		name   string
		logs   []model.LogEntry
		checks []model.CheckEntry
		want   model.DayStatus
	}{
		{name: "nothing recorded", want: model.StatusNone},
		{name: "dry check", checks: []model.CheckEntry{dryCheck(morning, false)}, want: model.StatusRest},
		{name: "dry check with exercise signal", checks: []model.CheckEntry{dryCheck(morning, true)}, want: model.StatusRestExercise},
		{
			name:   "dry check with exercise log",
			logs:   []model.LogEntry{workout(evening, 150)},
			checks: []model.CheckEntry{dryCheck(morning, false)},
			want:   model.StatusRestExercise,
		},
		{name: "drink only", logs: []model.LogEntry{drink(evening, 98)}, want: model.StatusDrink},
		{
			name: "drink not paid back",
			logs: []model.LogEntry{drink(evening, 300), workout(morning, 100)},
			want: model.StatusDrinkExercise,
		},
		{
			name: "drink paid back exactly",
			logs: []model.LogEntry{drink(evening, 300), workout(morning, 300)},
			want: model.StatusDrinkExerciseSuccess,
		},
		{
			name: "drink paid back with surplus",
			logs: []model.LogEntry{drink(morning, 98), workout(evening, 200)},
			want: model.StatusDrinkExerciseSuccess,
		},
		{name: "exercise only", logs: []model.LogEntry{workout(evening, 80)}, want: model.StatusExercise},
		{
			name:   "dry check contradicted by drink",
			logs:   []model.LogEntry{drink(evening, 98)},
			checks: []model.CheckEntry{dryCheck(morning, true)},
			want:   model.StatusDrink,
		},
		{
			name:   "non-dry check alone",
			checks: []model.CheckEntry{{Timestamp: morning, WaistEase: true}},
			want:   model.StatusNone,
		},
		{
			name:   "last check of the day wins",
			checks: []model.CheckEntry{dryCheck(morning, false), {Timestamp: evening}},
			want:   model.StatusNone,
		},
		{
			name: "records on other days ignored",
			logs: []model.LogEntry{drink(yesterday, 500)},
			checks: []model.CheckEntry{
				dryCheck(morning, false),
			},
			want: model.StatusRest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayStatusFor(day, tt.logs, tt.checks); got != tt.want {
				t.Fatalf("DayStatusFor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDayStatusFor_UsesReferenceLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-10-19 20:00 UTC is already 2026-10-20 in Tokyo.
	logs := []model.LogEntry{drink(mustTime(t, "2026-10-19 20:00"), 98)}

	if got := DayStatusFor(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), logs, nil); got != model.StatusDrink {
		t.Fatalf("UTC day = %s, want drink", got)
	}
	if got := DayStatusFor(time.Date(2026, 10, 19, 12, 0, 0, 0, tokyo), logs, nil); got != model.StatusNone {
		t.Fatalf("Tokyo 19th = %s, want none", got)
	}
	if got := DayStatusFor(time.Date(2026, 10, 20, 12, 0, 0, 0, tokyo), logs, nil); got != model.StatusDrink {
		t.Fatalf("Tokyo 20th = %s, want drink", got)
	}
}

func TestHasAlcoholLog(t *testing.T) {
	logs := []model.LogEntry{
		workout(mustTime(t, "2026-10-18 09:00"), 100),
		drink(mustTime(t, "2026-10-17 22:00"), 98),
	}
	if HasAlcoholLog(logs, mustTime(t, "2026-10-18 10:00")) {
		t.Fatal("exercise-only day reported as drinking day")
	}
	if !HasAlcoholLog(logs, mustTime(t, "2026-10-17 01:00")) {
		t.Fatal("drinking day not detected")
	}
	if HasAlcoholLog(nil, testNow) {
		t.Fatal("empty logs reported a drink")
	}
}

func TestQualifies(t *testing.T) {
	want := map[model.DayStatus]bool{
		model.StatusNone:                 false,
		model.StatusRest:                 true,
		model.StatusRestExercise:         true,
		model.StatusDrink:                false,
		model.StatusDrinkExercise:        false,
		model.StatusDrinkExerciseSuccess: true,
		model.StatusExercise:             false,
	}
	for s, w := range want {
		if got := Qualifies(s); got != w {
			t.Errorf("Qualifies(%s) = %v, want %v", s, got, w)
		}
	}
}
