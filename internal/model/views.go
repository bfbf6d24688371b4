package model

import "time"

// DayStatus classifies one calendar day.
type DayStatus string

// Day statuses.
const (
	StatusNone                 DayStatus = "none"
	StatusRest                 DayStatus = "rest"
	StatusRestExercise         DayStatus = "rest_exercise"
	StatusDrink                DayStatus = "drink"
	StatusDrinkExercise        DayStatus = "drink_exercise"
	StatusDrinkExerciseSuccess DayStatus = "drink_exercise_success"
	StatusExercise             DayStatus = "exercise"
)

// TankTier selects the tank message.
type TankTier string

// Tank tiers, credit side first.
const (
	TierHold       TankTier = "hold"    // under half a can
	TierAlmost     TankTier = "almost"  // half to one can
	TierOneCan     TankTier = "one_can" // one to two cans
	TierPlenty     TankTier = "plenty"  // two cans or more
	TierRunningDry TankTier = "running_dry"
	TierDebtPile   TankTier = "debt_pile" // more than 1.5 cans owed
)

// TankView is the tank rendering of a kcal balance.
type TankView struct {
	BalanceKcal    float64
	CanCount       float64 // signed
	DisplayMinutes float64 // signed, in base exercise minutes
	OneCanMinutes  float64
	UnitKcal       float64
	BaseExercise   string
	BaseLabel      string
	BaseIcon       string
	TargetStyle    string
	StyleLabel     string
	LiquidColor    string
	IsHazy         bool
	Tier           TankTier
}

// Grade is the liver rank.
type Grade struct {
	Rank       string
	Label      string
	Color      string
	Bg         string
	Current    int
	Next       *int
	RawRate    float64
	TargetRate float64
	IsRookie   bool
}

// DailyBalance holds chart data for a single calendar day.
type DailyBalance struct {
	Date         time.Time
	PlusKcal     float64
	MinusKcal    float64
	BalanceKcal  float64 // running balance at end of day
	PlusMinutes  float64
	MinusMinutes float64
	BalanceMins  float64
	Weight       *float64
}

// StampDay is one cell of the weekly stamp row.
type StampDay struct {
	Date    time.Time
	Status  DayStatus
	IsToday bool
}

// WeeklyStamps summarizes the last seven days.
type WeeklyStamps struct {
	Days     []StampDay
	DryCount int
	Message  string
}

// HeatmapCell is one day of a monthly heatmap. Blank cells pad the first week.
type HeatmapCell struct {
	Date    time.Time
	Day     int
	Status  DayStatus
	IsToday bool
	Blank   bool
}

// HeatmapMonth is a calendar month laid out Sunday-first.
type HeatmapMonth struct {
	Month time.Time
	Cells []HeatmapCell
}

// Shortcut is a frequently logged style and size pair.
type Shortcut struct {
	Style string
	Size  string
	Count int
}

// StyleStats holds drink totals for one style.
type StyleStats struct {
	Style        string
	Drinks       int
	Cans         float64 // total count logged
	Kcal         float64 // absolute
	SharePercent float64
}

// ExerciseStats holds exercise totals for one activity.
type ExerciseStats struct {
	Exercise string
	Sessions int
	Kcal     float64
}

// HourlyStats holds drink and exercise counts for one hour of the day.
type HourlyStats struct {
	Hour      int
	Drinks    int
	Exercises int
}
