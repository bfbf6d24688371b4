package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/kcaltank/internal/model"
)

func TestFormatKcal(t *testing.T) {
	tests := map[float64]string{
		120:    "+120 kcal",
		-98.4:  "-98 kcal",
		0.3:    "0 kcal",
		1234.6: "+1,235 kcal",
	}
	for in, want := range tests {
		if got := FormatKcal(in); got != want {
			t.Errorf("FormatKcal(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in     float64
		signed bool
		want   string
	}{
		{45, false, "45 min"},
		{45, true, "+45 min"},
		{-45, true, "-45 min"},
		{-45, false, "45 min"},
		{125, false, "2h 5m"},
		{0.2, true, "0 min"},
		{-0.2, true, "0 min"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.in, tt.signed); got != tt.want {
			t.Errorf("FormatMinutes(%v, %v) = %q, want %q", tt.in, tt.signed, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRating(t *testing.T) {
	if got := FormatRating(3); got != "★★★☆☆" {
		t.Errorf("FormatRating(3) = %q", got)
	}
	if got := FormatRating(0); got != "" {
		t.Errorf("FormatRating(0) = %q, want empty", got)
	}
	if got := FormatRating(9); got != "★★★★★" {
		t.Errorf("FormatRating(9) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Yona Yona Ale", 6); got != "Yona …" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("IPA", 6); got != "IPA" {
		t.Errorf("Truncate short = %q", got)
	}
}

func TestTankFill(t *testing.T) {
	tests := []struct {
		balance, cans float64
		want          float64
	}{
		{-100, -1, 0},
		{0, 0, 0},
		{1, 0.01, TankMinFill},
		{147, 1.5, 0.5},
		{1000, 10, 1},
	}
	for _, tt := range tests {
		v := model.TankView{BalanceKcal: tt.balance, CanCount: tt.cans}
		if got := TankFill(v); got != tt.want {
			t.Errorf("TankFill(%v cans) = %v, want %v", tt.cans, got, tt.want)
		}
	}
}

func TestTankMessage_CoversTiers(t *testing.T) {
	tiers := []model.TankTier{
		model.TierHold, model.TierAlmost, model.TierOneCan,
		model.TierPlenty, model.TierRunningDry, model.TierDebtPile,
	}
	seen := make(map[string]bool)
	for _, tier := range tiers {
		msg := TankMessage(model.TankView{Tier: tier, StyleLabel: "Pilsner", CanCount: -1, OneCanMinutes: 20})
		if msg == "" || seen[msg] {
			t.Errorf("tier %s message %q empty or duplicated", tier, msg)
		}
		seen[msg] = true
	}
}

func TestRankMessage(t *testing.T) {
	next := 12
	if got := RankMessage(model.Grade{Current: 9, Next: &next}); got != "3 more days to rank up" {
		t.Errorf("RankMessage = %q", got)
	}
	if got := RankMessage(model.Grade{Rank: "S"}); !strings.Contains(got, "Top rank") {
		t.Errorf("RankMessage top = %q", got)
	}
}

func TestRenderTable_Separator(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Day", "Kcal"},
		Rows:    [][]string{{"Mon", "+120"}, {"---"}, {"Total", "+120"}},
	})
	if strings.Count(out, "├") != 2 {
		t.Fatalf("expected header and body separators:\n%s", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := []rune(RenderSparkline([]float64{-10, 0, 10}))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Fatalf("RenderSparkline = %q", string(got))
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("empty sparkline should be empty")
	}
}

func TestDescribeLog(t *testing.T) {
	tests := []struct {
		name string
		log  model.LogEntry
		want string
	}{
		{"style label", model.LogEntry{Kcal: -98, Style: "ipa", Count: 1}, "IPA"},
		{"brand and count", model.LogEntry{Kcal: -196, Style: "pilsner", Name: "Lunch", Brand: "Premium", Count: 2}, "Lunch / Premium x2"},
		{"exercise label", model.LogEntry{Kcal: 60, ExerciseKey: "running"}, "Running"},
		{"exercise name wins", model.LogEntry{Kcal: 60, ExerciseKey: "running", Name: "Park loop"}, "Park loop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeLog(tt.log)
			if !strings.HasSuffix(got, tt.want) {
				t.Errorf("DescribeLog() = %q, want suffix %q", got, tt.want)
			}
		})
	}
}
