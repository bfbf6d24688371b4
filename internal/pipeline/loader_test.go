package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/kcaltank/internal/energy"
	"github.com/theirongolddev/kcaltank/internal/model"
)

type fakeSource struct {
	logs   []model.RawLog
	checks []model.CheckEntry
	err    error
}

func (f fakeSource) LoadAllLogs() ([]model.RawLog, error)       { return f.logs, f.err }
func (f fakeSource) LoadAllChecks() ([]model.CheckEntry, error) { return f.checks, nil }

func ptr(v float64) *float64 { return &v }

func TestNormalizeOne(t *testing.T) {
	p := model.Profile{WeightKg: 80, HeightCm: 180, AgeYears: 40, Gender: model.GenderMale}

	kcalWins := NormalizeOne(model.RawLog{Kcal: ptr(-98), Minutes: ptr(30)}, p)
	if kcalWins.Kcal != -98 {
		t.Fatalf("Kcal = %v, want -98 when both fields are set", kcalWins.Kcal)
	}

	legacy := NormalizeOne(model.RawLog{Minutes: ptr(-20)}, p)
	if want := energy.LegacyMinutesToKcal(-20, p); math.Abs(legacy.Kcal-want) > 1e-9 {
		t.Fatalf("legacy Kcal = %v, want %v", legacy.Kcal, want)
	}
	if legacy.Kcal >= 0 {
		t.Fatalf("legacy drink should stay negative, got %v", legacy.Kcal)
	}

	empty := NormalizeOne(model.RawLog{Rating: 9, Count: math.NaN()}, p)
	if empty.Kcal != 0 || empty.Rating != 5 || empty.Count != 0 {
		t.Fatalf("sanitized = %+v", empty)
	}
	if nan := NormalizeOne(model.RawLog{Kcal: ptr(math.NaN())}, p); nan.Kcal != 0 {
		t.Fatalf("NaN kcal normalized to %v, want 0", nan.Kcal)
	}
}

func TestNormalize_LegacyDependsOnProfile(t *testing.T) {
	raw := []model.RawLog{{Minutes: ptr(30)}}
	light := Normalize(raw, model.Profile{WeightKg: 50, HeightCm: 160, AgeYears: 30, Gender: model.GenderFemale})
	heavy := Normalize(raw, model.Profile{WeightKg: 90, HeightCm: 160, AgeYears: 30, Gender: model.GenderFemale})
	if heavy[0].Kcal <= light[0].Kcal {
		t.Fatalf("heavier profile should burn more: %v <= %v", heavy[0].Kcal, light[0].Kcal)
	}
}

func TestLoad(t *testing.T) {
	src := fakeSource{
		logs: []model.RawLog{
			{ID: "b", Timestamp: daysAgo(1), Kcal: ptr(100)},
			{ID: "a", Timestamp: daysAgo(3), Minutes: ptr(-10)},
		},
		checks: []model.CheckEntry{
			{ID: "y", Timestamp: daysAgo(0)},
			{ID: "x", Timestamp: daysAgo(2)},
		},
	}
	res, err := Load(src, model.DefaultProfile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Logs[0].ID != "a" || res.Checks[0].ID != "x" {
		t.Fatalf("records not sorted oldest first: %s, %s", res.Logs[0].ID, res.Checks[0].ID)
	}
	if res.LegacyLogs != 1 {
		t.Fatalf("LegacyLogs = %d, want 1", res.LegacyLogs)
	}
}

func TestLoad_PropagatesErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Load(fakeSource{err: boom}, model.DefaultProfile)
	if !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want wrapped %v", err, boom)
	}
}
