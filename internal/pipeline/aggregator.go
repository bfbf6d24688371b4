// Package pipeline turns stored logs and checks into balances, day statuses,
// streaks, ranks and chart data.
package pipeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/model"
)

// DailySeries computes per-day plus/minus totals and the running balance,
// expressed in kcal and in minutes of baseExercise. The running balance
// includes every log before since. Days inside [since, until] with no
// records are filled in so charts show gaps. Result is oldest first.
// With no records at all a single zero entry for until is returned.
func DailySeries(logs []model.LogEntry, checks []model.CheckEntry, baseExercise string, p model.Profile, since, until time.Time) []model.DailyBalance {
	loc := until.Location()

	dayMap := make(map[string]*model.DailyBalance)
	get := func(ts time.Time) *model.DailyBalance {
		k := dayKey(ts, loc)
		db, ok := dayMap[k]
		if !ok {
			db = &model.DailyBalance{Date: startOfDay(ts, loc)}
			dayMap[k] = db
		}
		return db
	}

	for _, l := range logs {
		db := get(l.Timestamp)
		switch {
		case l.IsCredit():
			db.PlusKcal += l.Kcal
		case l.IsDebt():
			db.MinusKcal += l.Kcal
		}
	}
	for _, c := range checks {
		if c.Weight == nil || !positiveFinite(*c.Weight) {
			continue
		}
		w := *c.Weight
		get(c.Timestamp).Weight = &w
	}

	if len(dayMap) == 0 {
		return []model.DailyBalance{{Date: startOfDay(until, loc)}}
	}

	if !since.IsZero() {
		end := startOfDay(until, loc)
		for day := startOfDay(since, loc); !day.After(end); day = day.AddDate(0, 0, 1) {
			get(day)
		}
	}

	days := make([]model.DailyBalance, 0, len(dayMap))
	for _, db := range dayMap {
		days = append(days, *db)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	base := string(catalog.ResolveExercise(baseExercise).Key)
	var running float64
	out := days[:0]
	for _, d := range days {
		running += d.PlusKcal + d.MinusKcal
		d.BalanceKcal = running
		d.PlusMinutes = SignedMinutes(d.PlusKcal, base, p)
		d.MinusMinutes = SignedMinutes(d.MinusKcal, base, p)
		d.BalanceMins = SignedMinutes(running, base, p)
		if !since.IsZero() && d.Date.Before(startOfDay(since, loc)) {
			continue
		}
		if d.Date.After(until) {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return []model.DailyBalance{{Date: startOfDay(until, loc), BalanceKcal: running, BalanceMins: SignedMinutes(running, base, p)}}
	}
	return out
}

// AggregateStyles computes per-style drink totals, sorted by kcal descending.
func AggregateStyles(logs []model.LogEntry, since, until time.Time) []model.StyleStats {
	filtered := FilterByTime(logs, since, until)

	styleMap := make(map[string]*model.StyleStats)
	var total float64
	for _, l := range filtered {
		if !l.IsDebt() {
			continue
		}
		key := l.Style
		if key == "" {
			key = string(catalog.DefaultStyle)
		}
		ss, ok := styleMap[key]
		if !ok {
			ss = &model.StyleStats{Style: key}
			styleMap[key] = ss
		}
		ss.Drinks++
		ss.Cans += l.Count
		ss.Kcal += math.Abs(l.Kcal)
		total += math.Abs(l.Kcal)
	}

	styles := make([]model.StyleStats, 0, len(styleMap))
	for _, ss := range styleMap {
		if total > 0 {
			ss.SharePercent = ss.Kcal / total * 100
		}
		styles = append(styles, *ss)
	}
	sort.Slice(styles, func(i, j int) bool {
		if styles[i].Kcal != styles[j].Kcal {
			return styles[i].Kcal > styles[j].Kcal
		}
		return styles[i].Style < styles[j].Style
	})
	return styles
}

// AggregateExercises computes per-exercise credit totals, sorted by kcal descending.
func AggregateExercises(logs []model.LogEntry, since, until time.Time) []model.ExerciseStats {
	filtered := FilterByTime(logs, since, until)

	exMap := make(map[string]*model.ExerciseStats)
	for _, l := range filtered {
		if !l.IsCredit() {
			continue
		}
		key := l.ExerciseKey
		if key == "" {
			key = string(catalog.DefaultExercise)
		}
		es, ok := exMap[key]
		if !ok {
			es = &model.ExerciseStats{Exercise: key}
			exMap[key] = es
		}
		es.Sessions++
		es.Kcal += l.Kcal
	}

	out := make([]model.ExerciseStats, 0, len(exMap))
	for _, es := range exMap {
		out = append(out, *es)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kcal != out[j].Kcal {
			return out[i].Kcal > out[j].Kcal
		}
		return out[i].Exercise < out[j].Exercise
	})
	return out
}

// AggregateHourly counts drinks and exercise sessions by local hour of day.
func AggregateHourly(logs []model.LogEntry, since, until time.Time, loc *time.Location) []model.HourlyStats {
	filtered := FilterByTime(logs, since, until)

	hours := make([]model.HourlyStats, 24)
	for i := range hours {
		hours[i].Hour = i
	}
	for _, l := range filtered {
		h := l.Timestamp.In(loc).Hour()
		switch {
		case l.IsDebt():
			hours[h].Drinks++
		case l.IsCredit():
			hours[h].Exercises++
		}
	}
	return hours
}

// FilterByTime returns logs whose timestamp falls within [since, until).
// A zero bound is open.
func FilterByTime(logs []model.LogEntry, since, until time.Time) []model.LogEntry {
	if since.IsZero() && until.IsZero() {
		return logs
	}

	var result []model.LogEntry
	for _, l := range logs {
		if !since.IsZero() && l.Timestamp.Before(since) {
			continue
		}
		if !until.IsZero() && !l.Timestamp.Before(until) {
			continue
		}
		result = append(result, l)
	}
	return result
}

// FilterByText returns logs whose name, brewery, brand or memo contains text.
func FilterByText(logs []model.LogEntry, text string) []model.LogEntry {
	if text == "" {
		return logs
	}
	var result []model.LogEntry
	for _, l := range logs {
		if containsIgnoreCase(l.Name, text) || containsIgnoreCase(l.Brewery, text) ||
			containsIgnoreCase(l.Brand, text) || containsIgnoreCase(l.Memo, text) {
			result = append(result, l)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
