// Package model defines domain types for kcaltank logs, checks and derived views.
package model

import "time"

// RawLog is a log record exactly as persisted. Older records carry Minutes
// (of the stepper) instead of Kcal; both are optional here and are resolved
// into a LogEntry by the pipeline before any computation.
type RawLog struct {
	ID          string
	Timestamp   time.Time
	Kcal        *float64
	Minutes     *float64
	Name        string
	ExerciseKey string
	Style       string
	Size        string
	Count       float64
	ABV         float64
	Brewery     string
	Brand       string
	Rating      int
	Memo        string
}

// LogEntry is the canonical form of a log record. Kcal is signed:
// negative is drink debt, positive is exercise credit.
type LogEntry struct {
	ID          string
	Timestamp   time.Time
	Kcal        float64
	Name        string
	ExerciseKey string
	Style       string
	Size        string
	Count       float64
	ABV         float64
	Brewery     string
	Brand       string
	Rating      int // 0..5
	Memo        string
}

// IsDebt reports whether the entry is a drink.
func (l LogEntry) IsDebt() bool { return l.Kcal < 0 }

// IsCredit reports whether the entry is exercise.
func (l LogEntry) IsCredit() bool { return l.Kcal > 0 }

// Raw converts the entry back to its persisted shape.
func (l LogEntry) Raw() RawLog {
	kcal := l.Kcal
	return RawLog{
		ID:          l.ID,
		Timestamp:   l.Timestamp,
		Kcal:        &kcal,
		Name:        l.Name,
		ExerciseKey: l.ExerciseKey,
		Style:       l.Style,
		Size:        l.Size,
		Count:       l.Count,
		ABV:         l.ABV,
		Brewery:     l.Brewery,
		Brand:       l.Brand,
		Rating:      l.Rating,
		Memo:        l.Memo,
	}
}

// CheckEntry is a daily self check-in.
type CheckEntry struct {
	ID            string
	Timestamp     time.Time
	IsDryDay      bool
	WaistEase     bool
	FootLightness bool
	WaterOk       bool
	FiberOk       bool
	Exercised     bool
	Weight        *float64
}

// SignalScore counts the body signals that were reported as good (0..4).
func (c CheckEntry) SignalScore() int {
	n := 0
	for _, ok := range []bool{c.WaistEase, c.FootLightness, c.FiberOk, c.WaterOk} {
		if ok {
			n++
		}
	}
	return n
}
