package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// mixedFixture is deliberately out of timestamp order with several records
// on the same day so that any in-place sort or aliasing shows up.
func mixedFixture() ([]model.LogEntry, []model.CheckEntry) {
	bonus := workout(daysAgo(1).Add(2*time.Hour), 264)
	bonus.Memo = "evening ride Bonus x1.2"

	ipa := drink(daysAgo(3), 210)
	ipa.Style, ipa.Size, ipa.Brewery, ipa.Rating = "ipa", "pint", "Baird", 4

	logs := []model.LogEntry{
		workout(daysAgo(0), 180),
		drink(daysAgo(5), 140),
		ipa,
		bonus,
		drink(daysAgo(1), 140),
		drink(daysAgo(12), 98),
		workout(daysAgo(3).Add(time.Hour), 150),
		drink(daysAgo(0).Add(-3*time.Hour), 140),
	}
	checks := []model.CheckEntry{
		dryCheck(daysAgo(2), true),
		dryCheck(daysAgo(0), false),
		dryCheck(daysAgo(4), false),
		{ID: "c-wet", Timestamp: daysAgo(1).Add(time.Hour), IsDryDay: false, Exercised: true},
		dryCheck(daysAgo(6), false),
	}
	return logs, checks
}

func TestEngine_Idempotent(t *testing.T) {
	logs, checks := mixedFixture()
	logsBefore := append([]model.LogEntry(nil), logs...)
	checksBefore := append([]model.CheckEntry(nil), checks...)

	opts := Options{Profile: model.DefaultProfile, Mode: model.Mode1, Tank: testSettings}
	first := BuildDashboard(testNow, logs, checks, opts)
	second := BuildDashboard(testNow, logs, checks, opts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("BuildDashboard differs between calls:\n%+v\n%+v", first, second)
	}

	since := testNow.AddDate(0, 0, -14)
	views := []struct {
		name string
		run  func() any
	}{
		{"Balance", func() any { return Balance(logs) }},
		{"CurrentStreak", func() any { return CurrentStreak(testNow, logs, checks) }},
		{"RecentGrade", func() any { return RecentGrade(testNow, checks, logs) }},
		{"DayStatusFor", func() any { return DayStatusFor(daysAgo(1), logs, checks) }},
		{"DailySeries", func() any { return DailySeries(logs, checks, "stepper", model.DefaultProfile, since, testNow) }},
		{"AggregateStyles", func() any { return AggregateStyles(logs, since, testNow) }},
		{"AggregateExercises", func() any { return AggregateExercises(logs, since, testNow) }},
		{"AggregateHourly", func() any { return AggregateHourly(logs, since, testNow, time.UTC) }},
		{"MonthHeatmap", func() any { return MonthHeatmap(testNow, 0, logs, checks) }},
		{"TopShortcuts", func() any { return TopShortcuts(logs, 3) }},
	}
	for _, v := range views {
		a, b := v.run(), v.run()
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s differs between calls: %+v vs %+v", v.name, a, b)
		}
	}

	if !reflect.DeepEqual(logs, logsBefore) {
		t.Errorf("logs were modified:\n got %+v\nwant %+v", logs, logsBefore)
	}
	if !reflect.DeepEqual(checks, checksBefore) {
		t.Errorf("checks were modified:\n got %+v\nwant %+v", checks, checksBefore)
	}
}
