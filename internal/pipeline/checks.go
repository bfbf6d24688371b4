package pipeline

import (
	"fmt"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// CheckDay tells which day a selected check belongs to.
type CheckDay int

// Check days.
const (
	CheckNone CheckDay = iota
	CheckToday
	CheckYesterday
)

// SelectCheck picks the check to show: the latest one for today, else the
// latest one for yesterday.
func SelectCheck(now time.Time, checks []model.CheckEntry) (model.CheckEntry, CheckDay) {
	loc := now.Location()
	today := dayKey(now, loc)
	yesterday := dayKey(startOfDay(now, loc).AddDate(0, 0, -1), loc)

	var (
		found model.CheckEntry
		day   = CheckNone
	)
	for i := len(checks) - 1; i >= 0; i-- {
		switch dayKey(checks[i].Timestamp, loc) {
		case today:
			return checks[i], CheckToday
		case yesterday:
			if day == CheckNone {
				found, day = checks[i], CheckYesterday
			}
		}
	}
	return found, day
}

// CheckMessage summarizes a check. Drinking days and non-dry checks are judged
// by the body signal score; dry days by waist and foot signals.
func CheckMessage(c model.CheckEntry, logs []model.LogEntry) string {
	drank := HasAlcoholLog(logs, c.Timestamp)
	if drank || !c.IsDryDay {
		score := c.SignalScore()
		switch {
		case score == 4:
			return "Metabolism running hot. All signals clear."
		case score >= 1:
			return fmt.Sprintf("%d/4 signals clear.", score)
		default:
			return "Feeling heavy. Take it easy today."
		}
	}
	if c.WaistEase && c.FootLightness {
		return "Dry day and in great shape."
	}
	return "Dry day, not quite at 100%."
}
