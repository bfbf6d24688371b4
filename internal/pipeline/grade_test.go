package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/kcaltank/internal/model"
)

func drinkDays(days ...int) []model.LogEntry {
	var out []model.LogEntry
	for _, n := range days {
		out = append(out, drink(daysAgo(n), 98))
	}
	return out
}

func TestRecentGrade_Empty(t *testing.T) {
	g := RecentGrade(testNow, nil, nil)
	if !g.IsRookie || g.Label != "Rookie" {
		t.Fatalf("empty grade = %+v, want plain rookie", g)
	}
	if g.RawRate != 0 || g.Current != 0 {
		t.Fatalf("empty grade rate=%v current=%d, want 0/0", g.RawRate, g.Current)
	}
	if g.Next == nil || *g.Next != RookieMinDays {
		t.Fatalf("rookie Next = %v, want %d", g.Next, RookieMinDays)
	}
}

func TestRecentGrade_Rookies(t *testing.T) {
	// 3 recorded days, 2 qualifying
	rising := RecentGrade(testNow, restDays(0, 1), drinkDays(2))
	if !rising.IsRookie || rising.Label != "Rising Rookie" {
		t.Fatalf("grade = %+v, want Rising Rookie", rising)
	}
	if math.Abs(rising.RawRate-2.0/3.0) > 1e-9 {
		t.Fatalf("RawRate = %v, want 0.667", rising.RawRate)
	}
	if rising.TargetRate != RookieTargetRate {
		t.Fatalf("TargetRate = %v, want %v", rising.TargetRate, RookieTargetRate)
	}

	// 6 recorded days, 1 qualifying
	plain := RecentGrade(testNow, restDays(0), drinkDays(1, 2, 3, 4, 5))
	if !plain.IsRookie || plain.Label != "Rookie" {
		t.Fatalf("grade = %+v, want Rookie", plain)
	}
}

func TestRecentGrade_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		qualify   []int
		drinks    []int
		wantRank  string
		wantCount int
		wantNext  int // 0 means none
	}{
		{name: "S", qualify: intRange(0, 24), wantRank: "S", wantCount: 25},
		{name: "S boundary", qualify: intRange(0, 19), drinks: intRange(20, 29), wantRank: "S", wantCount: 20},
		{name: "A", qualify: intRange(0, 11), drinks: intRange(12, 19), wantRank: "A", wantCount: 12, wantNext: 20},
		{name: "B", qualify: intRange(0, 7), drinks: intRange(8, 15), wantRank: "B", wantCount: 8, wantNext: 12},
		{name: "C", qualify: intRange(0, 2), drinks: intRange(3, 9), wantRank: "C", wantCount: 3, wantNext: 8},
		{name: "old days fall out of window", qualify: intRange(30, 49), wantRank: "C", wantCount: 0, wantNext: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := RecentGrade(testNow, restDays(tt.qualify...), drinkDays(tt.drinks...))
			if g.IsRookie {
				t.Fatalf("unexpected rookie grade %+v", g)
			}
			if g.Rank != tt.wantRank || g.Current != tt.wantCount {
				t.Fatalf("grade = %s/%d, want %s/%d", g.Rank, g.Current, tt.wantRank, tt.wantCount)
			}
			switch {
			case tt.wantNext == 0 && g.Next != nil:
				t.Fatalf("Next = %d, want nil", *g.Next)
			case tt.wantNext != 0 && (g.Next == nil || *g.Next != tt.wantNext):
				t.Fatalf("Next = %v, want %d", g.Next, tt.wantNext)
			}
		})
	}
}

func TestRecentGrade_CountNeverExceedsWindow(t *testing.T) {
	g := RecentGrade(testNow, restDays(intRange(0, 90)...), nil)
	if g.Current > GradeWindowDays {
		t.Fatalf("Current = %d exceeds window %d", g.Current, GradeWindowDays)
	}
}

func TestGradeProgress(t *testing.T) {
	next12 := 12
	next7 := 7
	tests := []struct {
		name string
		g    model.Grade
		want float64
	}{
		{name: "top rank", g: model.Grade{Rank: "S", Current: 25}, want: 1},
		{name: "mid B", g: model.Grade{Rank: "B", Current: 10, Next: &next12}, want: 0.5},
		{name: "rookie half way", g: model.Grade{IsRookie: true, RawRate: 0.2, TargetRate: 0.4, Next: &next7}, want: 0.5},
		{name: "rookie past target", g: model.Grade{IsRookie: true, RawRate: 0.9, TargetRate: 0.4, Next: &next7}, want: 1},
	}
	for _, tt := range tests {
		if got := GradeProgress(tt.g); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: GradeProgress = %v, want %v", tt.name, got, tt.want)
		}
	}
}
