package pipeline

import (
	"testing"

	"github.com/theirongolddev/kcaltank/internal/model"
)

func TestSelectCheck(t *testing.T) {
	today := model.CheckEntry{ID: "today", Timestamp: daysAgo(0)}
	yesterday := model.CheckEntry{ID: "yesterday", Timestamp: daysAgo(1)}
	older := model.CheckEntry{ID: "older", Timestamp: daysAgo(4)}

	tests := []struct {
		name    string
		checks  []model.CheckEntry
		wantID  string
		wantDay CheckDay
	}{
		{name: "none", wantDay: CheckNone},
		{name: "only old", checks: []model.CheckEntry{older}, wantDay: CheckNone},
		{name: "today", checks: []model.CheckEntry{older, yesterday, today}, wantID: "today", wantDay: CheckToday},
		{name: "today stored before yesterday", checks: []model.CheckEntry{today, yesterday}, wantID: "today", wantDay: CheckToday},
		{name: "yesterday fallback", checks: []model.CheckEntry{older, yesterday}, wantID: "yesterday", wantDay: CheckYesterday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, day := SelectCheck(testNow, tt.checks)
			if day != tt.wantDay || c.ID != tt.wantID {
				t.Fatalf("SelectCheck = %q/%d, want %q/%d", c.ID, day, tt.wantID, tt.wantDay)
			}
		})
	}
}

func TestSelectCheck_LatestOfTheDay(t *testing.T) {
	first := model.CheckEntry{ID: "first", Timestamp: mustTime(t, "2026-10-19 07:00")}
	second := model.CheckEntry{ID: "second", Timestamp: mustTime(t, "2026-10-19 08:00")}
	c, _ := SelectCheck(testNow, []model.CheckEntry{first, second})
	if c.ID != "second" {
		t.Fatalf("SelectCheck = %q, want second", c.ID)
	}
}

func TestCheckMessage(t *testing.T) {
	day := daysAgo(0)
	drinks := []model.LogEntry{drink(day, 98)}
	all := model.CheckEntry{Timestamp: day, WaistEase: true, FootLightness: true, WaterOk: true, FiberOk: true}
	some := model.CheckEntry{Timestamp: day, WaterOk: true, FiberOk: true}
	dryGood := model.CheckEntry{Timestamp: day, IsDryDay: true, WaistEase: true, FootLightness: true}
	drySoSo := model.CheckEntry{Timestamp: day, IsDryDay: true, WaistEase: true}

	tests := []struct {
		name  string
		check model.CheckEntry
		logs  []model.LogEntry
		want  string
	}{
		{name: "all signals", check: all, logs: drinks, want: "Metabolism running hot. All signals clear."},
		{name: "partial", check: some, want: "2/4 signals clear."},
		{name: "none", check: model.CheckEntry{Timestamp: day}, want: "Feeling heavy. Take it easy today."},
		{name: "dry and good", check: dryGood, want: "Dry day and in great shape."},
		{name: "dry so-so", check: drySoSo, want: "Dry day, not quite at 100%."},
		{name: "dry check but drank", check: dryGood, logs: drinks, want: "2/4 signals clear."},
	}
	for _, tt := range tests {
		if got := CheckMessage(tt.check, tt.logs); got != tt.want {
			t.Errorf("%s: CheckMessage = %q, want %q", tt.name, got, tt.want)
		}
	}
}
