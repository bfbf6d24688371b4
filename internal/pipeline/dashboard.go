package pipeline

import (
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// Options carries the user settings every derived view depends on.
type Options struct {
	Profile model.Profile
	Mode    model.Mode
	Tank    TankSettings
	Bonuses []StreakBonus
}

// Dashboard is every headline figure for one point in time.
type Dashboard struct {
	Now          time.Time
	Tank         model.TankView
	Streak       int
	Multiplier   float64
	Grade        model.Grade
	Progress     float64
	Today        model.DayStatus
	Weekly       model.WeeklyStamps
	Check        model.CheckEntry
	CheckDay     CheckDay
	CheckMessage string
	Shortcuts    []model.Shortcut
}

// BuildDashboard computes the dashboard from normalized records.
func BuildDashboard(now time.Time, logs []model.LogEntry, checks []model.CheckEntry, opts Options) Dashboard {
	bonuses := opts.Bonuses
	if bonuses == nil {
		bonuses = DefaultStreakBonuses
	}

	d := Dashboard{
		Now:    now,
		Tank:   TankDisplayData(Balance(logs), opts.Mode, opts.Tank, opts.Profile),
		Streak: CurrentStreak(now, logs, checks),
		Grade:  RecentGrade(now, checks, logs),
		Today:  DayStatusFor(now, logs, checks),
		Weekly: WeeklyStamps(now, logs, checks),
	}
	d.Multiplier = StreakMultiplier(d.Streak, bonuses)
	d.Progress = GradeProgress(d.Grade)
	d.Check, d.CheckDay = SelectCheck(now, checks)
	if d.CheckDay != CheckNone {
		d.CheckMessage = CheckMessage(d.Check, logs)
	}
	d.Shortcuts = TopShortcuts(logs, 3)
	return d
}
