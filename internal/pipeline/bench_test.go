package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// syntheticHistory builds years of mixed records: a drink most evenings,
// a workout every other morning, and a check-in every day.
func syntheticHistory(days int) ([]model.LogEntry, []model.CheckEntry) {
	var logs []model.LogEntry
	var checks []model.CheckEntry
	for i := days - 1; i >= 0; i-- {
		d := testNow.AddDate(0, 0, -i)
		morning := time.Date(d.Year(), d.Month(), d.Day(), 7, 0, 0, 0, time.UTC)
		evening := time.Date(d.Year(), d.Month(), d.Day(), 20, 0, 0, 0, time.UTC)

		if i%2 == 0 {
			logs = append(logs, workout(morning, 180))
		}
		dry := i%3 == 0
		if !dry {
			logs = append(logs, drink(evening, 98), drink(evening.Add(time.Hour), 140))
		}
		checks = append(checks, model.CheckEntry{Timestamp: evening, IsDryDay: dry, WaterOk: true})
	}
	return logs, checks
}

func BenchmarkBuildDashboard(b *testing.B) {
	logs, checks := syntheticHistory(3 * 365)
	opts := Options{Profile: model.DefaultProfile, Mode: model.Mode1, Tank: testSettings}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildDashboard(testNow, logs, checks, opts)
	}
}

func BenchmarkDailySeries(b *testing.B) {
	logs, checks := syntheticHistory(3 * 365)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DailySeries(logs, checks, "stepper", model.DefaultProfile, testNow.AddDate(0, 0, -90), testNow)
	}
}

func BenchmarkNormalize(b *testing.B) {
	raw := make([]model.RawLog, 10000)
	for i := range raw {
		m := float64(i%60) - 30
		raw[i] = model.RawLog{Timestamp: testNow.Add(-time.Duration(i) * time.Hour), Minutes: &m}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Normalize(raw, model.DefaultProfile)
	}
}
