package pipeline

import (
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// WeeklyStamps returns the last seven days (oldest first) with their statuses.
// DryCount counts rest days before today; today is still open.
func WeeklyStamps(now time.Time, logs []model.LogEntry, checks []model.CheckEntry) model.WeeklyStamps {
	loc := now.Location()
	idx := newDayIndex(logs, checks, loc)
	today := startOfDay(now, loc)

	var ws model.WeeklyStamps
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		s := idx.status(day)
		ws.Days = append(ws.Days, model.StampDay{Date: day, Status: s, IsToday: i == 0})
		if i > 0 && (s == model.StatusRest || s == model.StatusRestExercise) {
			ws.DryCount++
		}
	}

	switch {
	case ws.DryCount >= 4:
		ws.Message = "Excellent! Your liver thanks you."
	case ws.DryCount >= 2:
		ws.Message = "Good pace. Keep it up."
	default:
		ws.Message = "Time for a rest day?"
	}
	return ws
}

// MonthHeatmap lays out the month offsetMonths before now (0 is the current
// month) Sunday-first, padding the first week with blank cells.
func MonthHeatmap(now time.Time, offsetMonths int, logs []model.LogEntry, checks []model.CheckEntry) model.HeatmapMonth {
	loc := now.Location()
	idx := newDayIndex(logs, checks, loc)
	local := now.In(loc)

	first := time.Date(local.Year(), local.Month()-time.Month(offsetMonths), 1, 0, 0, 0, 0, loc)
	hm := model.HeatmapMonth{Month: first}

	for i := 0; i < int(first.Weekday()); i++ {
		hm.Cells = append(hm.Cells, model.HeatmapCell{Blank: true})
	}
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		hm.Cells = append(hm.Cells, model.HeatmapCell{
			Date:    day,
			Day:     day.Day(),
			Status:  idx.status(day),
			IsToday: SameDay(day, local, loc),
		})
	}
	return hm
}
