package watch

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
)

var testNow = time.Date(2025, 6, 14, 20, 0, 0, 0, time.Local)

type fakeSource struct {
	logs []model.LogEntry
	err  error
}

func (f *fakeSource) load() (*pipeline.LoadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.LoadResult{Logs: append([]model.LogEntry(nil), f.logs...)}, nil
}

func newTestService(src *fakeSource) *Service {
	s := New(Config{Interval: time.Minute}, src.load)
	s.now = func() time.Time { return testNow }
	return s
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Logs: 3, BalanceKcal: -98, Streak: 2, Rank: "C", Today: model.StatusDrink}
	curr := Snapshot{Logs: 4, BalanceKcal: -38, Streak: 2, Rank: "C", Today: model.StatusDrinkExercise}

	delta := diffSnapshots(prev, curr)
	if delta.Logs != 1 {
		t.Fatalf("Logs delta = %d, want 1", delta.Logs)
	}
	if math.Abs(delta.BalanceKcal-60) > 1e-9 {
		t.Fatalf("Balance delta = %.2f, want 60", delta.BalanceKcal)
	}
	if delta.RankChanged {
		t.Fatal("rank unexpectedly changed")
	}
	if !delta.TodayChanged {
		t.Fatal("today status change missed")
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots produced a delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{Interval: 10 * time.Second, EventsBuffer: 2}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	events := s.Events()
	if len(events) != 2 {
		t.Fatalf("events len = %d, want 2", len(events))
	}
	if events[0].ID != 2 || events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", events[0].ID, events[1].ID)
	}
}

func TestPollPublishesOnlyChanges(t *testing.T) {
	src := &fakeSource{logs: []model.LogEntry{
		{ID: "d", Timestamp: testNow.Add(-time.Hour), Kcal: -98, Style: "pilsner"},
	}}
	s := newTestService(src)
	ch, cancel := s.Subscribe(4)
	defer cancel()

	s.pollOnce()
	ev := <-ch
	if ev.Type != EventSnapshot || ev.Snapshot.BalanceKcal != -98 {
		t.Fatalf("first event = %+v, want snapshot at -98", ev)
	}

	s.pollOnce()
	select {
	case ev := <-ch:
		t.Fatalf("unchanged poll published %+v", ev)
	default:
	}

	src.logs = append(src.logs, model.LogEntry{ID: "e", Timestamp: testNow.Add(-30 * time.Minute), Kcal: 60, ExerciseKey: "stepper"})
	s.pollOnce()
	ev = <-ch
	if ev.Type != EventChange || ev.Delta.Logs != 1 || ev.Delta.BalanceKcal != 60 {
		t.Fatalf("change event = %+v", ev)
	}
	if got := s.Status().PollCount; got != 3 {
		t.Errorf("PollCount = %d, want 3", got)
	}
}

func TestPollErrorKeepsLastSnapshot(t *testing.T) {
	src := &fakeSource{logs: []model.LogEntry{{ID: "d", Timestamp: testNow, Kcal: -98}}}
	s := newTestService(src)
	s.pollOnce()

	src.err = errors.New("database is locked")
	s.pollOnce()

	st := s.Status()
	if st.LastError == "" {
		t.Fatal("LastError not recorded")
	}
	if st.Current.BalanceKcal != -98 {
		t.Errorf("snapshot lost after error: %+v", st.Current)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newTestService(&fakeSource{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
