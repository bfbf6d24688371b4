package pipeline

import (
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// HasAlcoholLog reports whether any drink was logged on the calendar day of ts.
func HasAlcoholLog(logs []model.LogEntry, ts time.Time) bool {
	loc := ts.Location()
	key := dayKey(ts, loc)
	for _, l := range logs {
		if l.IsDebt() && dayKey(l.Timestamp, loc) == key {
			return true
		}
	}
	return false
}

// DayStatusFor classifies the calendar day of date, evaluated in date's location.
func DayStatusFor(date time.Time, logs []model.LogEntry, checks []model.CheckEntry) model.DayStatus {
	loc := date.Location()
	key := dayKey(date, loc)

	var rec dayRecord
	for _, l := range logs {
		if dayKey(l.Timestamp, loc) == key {
			rec.logs = append(rec.logs, l)
		}
	}
	for i := range checks {
		if dayKey(checks[i].Timestamp, loc) == key {
			rec.check = &checks[i]
		}
	}
	return rec.status()
}

// Qualifies reports whether a day counts toward streaks and ranks: a dry day,
// or a drinking day whose debt was fully paid back the same day.
func Qualifies(s model.DayStatus) bool {
	switch s {
	case model.StatusRest, model.StatusRestExercise, model.StatusDrinkExerciseSuccess:
		return true
	}
	return false
}

// dayRecord holds one calendar day's logs and its meaningful check
// (the last one in input order).
type dayRecord struct {
	logs  []model.LogEntry
	check *model.CheckEntry
}

func (r dayRecord) status() model.DayStatus {
	if len(r.logs) == 0 && r.check == nil {
		return model.StatusNone
	}

	var (
		hasDrink    bool
		hasExercise bool
		net         float64
	)
	for _, l := range r.logs {
		switch {
		case l.IsDebt():
			hasDrink = true
		case l.IsCredit():
			hasExercise = true
		}
		net += finite(l.Kcal)
	}

	isDry := r.check != nil && r.check.IsDryDay && !hasDrink
	if isDry && r.check.Exercised {
		hasExercise = true
	}

	switch {
	case isDry && hasExercise:
		return model.StatusRestExercise
	case isDry:
		return model.StatusRest
	case hasDrink && hasExercise:
		if net >= 0 {
			return model.StatusDrinkExerciseSuccess
		}
		return model.StatusDrinkExercise
	case hasDrink:
		return model.StatusDrink
	case hasExercise:
		return model.StatusExercise
	default:
		return model.StatusNone
	}
}

// dayIndex buckets logs and checks by calendar day so multi-day walks stay
// linear in the number of records.
type dayIndex struct {
	loc      *time.Location
	days     map[string]*dayRecord
	earliest time.Time
}

func newDayIndex(logs []model.LogEntry, checks []model.CheckEntry, loc *time.Location) dayIndex {
	idx := dayIndex{loc: loc, days: make(map[string]*dayRecord)}

	touch := func(ts time.Time) *dayRecord {
		k := dayKey(ts, loc)
		rec, ok := idx.days[k]
		if !ok {
			rec = &dayRecord{}
			idx.days[k] = rec
		}
		if d := startOfDay(ts, loc); idx.earliest.IsZero() || d.Before(idx.earliest) {
			idx.earliest = d
		}
		return rec
	}

	for _, l := range logs {
		rec := touch(l.Timestamp)
		rec.logs = append(rec.logs, l)
	}
	for i := range checks {
		rec := touch(checks[i].Timestamp)
		rec.check = &checks[i]
	}
	return idx
}

func (idx dayIndex) status(day time.Time) model.DayStatus {
	rec, ok := idx.days[dayKey(day, idx.loc)]
	if !ok {
		return model.StatusNone
	}
	return rec.status()
}

func (idx dayIndex) empty() bool {
	return len(idx.days) == 0
}
