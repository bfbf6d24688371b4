package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

var testNow = time.Date(2026, 10, 19, 21, 30, 0, 0, time.UTC)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return d
}

// daysAgo returns noon n days before testNow.
func daysAgo(n int) time.Time {
	d := testNow.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}

func drink(ts time.Time, kcal float64) model.LogEntry {
	return model.LogEntry{ID: "d-" + ts.Format(time.RFC3339Nano), Timestamp: ts, Kcal: -kcal, Style: "pilsner", Size: "can350", Count: 1}
}

func workout(ts time.Time, kcal float64) model.LogEntry {
	return model.LogEntry{ID: "e-" + ts.Format(time.RFC3339Nano), Timestamp: ts, Kcal: kcal, ExerciseKey: "stepper"}
}

func dryCheck(ts time.Time, exercised bool) model.CheckEntry {
	return model.CheckEntry{ID: "c-" + ts.Format(time.RFC3339Nano), Timestamp: ts, IsDryDay: true, Exercised: exercised}
}

// restDays returns dry checks for each of the given days back from testNow.
func restDays(days ...int) []model.CheckEntry {
	var out []model.CheckEntry
	for _, n := range days {
		out = append(out, dryCheck(daysAgo(n), false))
	}
	return out
}

func intRange(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
