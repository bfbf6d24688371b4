package pipeline

import (
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

const (
	// GradeWindowDays is the trailing window (today inclusive) counted for rank.
	GradeWindowDays = 30
	// RookieMinDays is the number of recorded days needed to leave rookie ranks.
	RookieMinDays = 7
	// RookieTargetRate is the qualifying-day rate that marks a promising rookie.
	RookieTargetRate = 0.4
)

type gradeTier struct {
	Min   int
	Rank  string
	Label string
	Color string
	Bg    string
}

// gradeTiers is evaluated top-down; lower bounds are inclusive.
var gradeTiers = []gradeTier{
	{Min: 20, Rank: "S", Label: "Liver Legend", Color: "#8B7EC8", Bg: "#2A2540"},
	{Min: 12, Rank: "A", Label: "Iron Liver", Color: "#4385BE", Bg: "#1B2A3A"},
	{Min: 8, Rank: "B", Label: "Healthy Liver", Color: "#879A39", Bg: "#25301A"},
	{Min: 0, Rank: "C", Label: "Tired Liver", Color: "#D14D41", Bg: "#3A1E1B"},
}

var (
	rookieRising = gradeTier{Rank: "Rookie", Label: "Rising Rookie", Color: "#DA702C", Bg: "#3A2A1B"}
	rookieNew    = gradeTier{Rank: "Rookie", Label: "Rookie", Color: "#878580", Bg: "#282726"}
)

// RecentGrade ranks the user by qualifying days over the trailing window.
// Users with fewer than RookieMinDays recorded days get a rookie rank based on
// their overall qualifying rate instead.
func RecentGrade(now time.Time, checks []model.CheckEntry, logs []model.LogEntry) model.Grade {
	loc := now.Location()
	idx := newDayIndex(logs, checks, loc)

	today := startOfDay(now, loc)
	current := 0
	for i := 0; i < GradeWindowDays; i++ {
		if Qualifies(idx.status(today.AddDate(0, 0, -i))) {
			current++
		}
	}

	recorded := len(idx.days)
	if recorded < RookieMinDays {
		qualifying := 0
		for _, rec := range idx.days {
			if Qualifies(rec.status()) {
				qualifying++
			}
		}
		var rate float64
		if recorded > 0 {
			rate = float64(qualifying) / float64(recorded)
		}
		tier := rookieNew
		if recorded > 0 && rate >= RookieTargetRate {
			tier = rookieRising
		}
		next := RookieMinDays
		return model.Grade{
			Rank:       tier.Rank,
			Label:      tier.Label,
			Color:      tier.Color,
			Bg:         tier.Bg,
			Current:    current,
			Next:       &next,
			RawRate:    rate,
			TargetRate: RookieTargetRate,
			IsRookie:   true,
		}
	}

	for i, tier := range gradeTiers {
		if current < tier.Min {
			continue
		}
		g := model.Grade{
			Rank:    tier.Rank,
			Label:   tier.Label,
			Color:   tier.Color,
			Bg:      tier.Bg,
			Current: current,
		}
		if i > 0 {
			next := gradeTiers[i-1].Min
			g.Next = &next
		}
		return g
	}
	// unreachable while the last tier has Min 0
	return model.Grade{Current: current}
}

// GradeProgress returns the 0..1 progress toward the next rank.
func GradeProgress(g model.Grade) float64 {
	if g.Next == nil {
		return 1
	}
	var pct float64
	if g.IsRookie {
		if g.TargetRate > 0 {
			pct = g.RawRate / g.TargetRate
		}
	} else {
		floor := 0
		for _, tier := range gradeTiers {
			if tier.Rank == g.Rank {
				floor = tier.Min
				break
			}
		}
		if span := *g.Next - floor; span > 0 {
			pct = float64(g.Current-floor) / float64(span)
		}
	}
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
