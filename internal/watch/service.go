// Package watch polls the log database and reports balance changes as
// they happen, for status bars and long-running terminals.
package watch

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"
)

// Loader reads the current logs and checks.
type Loader func() (*pipeline.LoadResult, error)

// Config controls the watcher runtime behavior.
type Config struct {
	Options      pipeline.Options
	Interval     time.Duration
	EventsBuffer int
}

// Snapshot is the headline state at one poll.
type Snapshot struct {
	At          time.Time       `json:"at"`
	Logs        int             `json:"logs"`
	Checks      int             `json:"checks"`
	BalanceKcal float64         `json:"balance_kcal"`
	Cans        float64         `json:"cans"`
	BaseMinutes float64         `json:"base_minutes"`
	Streak      int             `json:"streak"`
	Multiplier  float64         `json:"multiplier"`
	Rank        string          `json:"rank"`
	Today       model.DayStatus `json:"today"`
}

// Delta captures snapshot changes between polls.
type Delta struct {
	Logs         int     `json:"logs"`
	Checks       int     `json:"checks"`
	BalanceKcal  float64 `json:"balance_kcal"`
	Streak       int     `json:"streak"`
	RankChanged  bool    `json:"rank_changed,omitempty"`
	TodayChanged bool    `json:"today_changed,omitempty"`
}

func (d Delta) isZero() bool {
	return d.Logs == 0 &&
		d.Checks == 0 &&
		math.Abs(d.BalanceKcal) < 1e-9 &&
		d.Streak == 0 &&
		!d.RankChanged &&
		!d.TodayChanged
}

// Event types.
const (
	EventSnapshot = "snapshot"
	EventChange   = "change"
)

// Event is emitted on the first poll and whenever the snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status describes the watcher itself.
type Status struct {
	StartedAt  time.Time `json:"started_at"`
	LastPollAt time.Time `json:"last_poll_at"`
	PollCount  int64     `json:"poll_count"`
	Current    Snapshot  `json:"current"`
	LastError  string    `json:"last_error,omitempty"`
	EventCount int       `json:"event_count"`
}

// Service polls a Loader and fans events out to subscribers.
type Service struct {
	cfg  Config
	load Loader
	now  func() time.Time

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a watcher reading through load.
func New(cfg Config, load Loader) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 100
	}

	return &Service{
		cfg:       cfg,
		load:      load,
		now:       time.Now,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run polls until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.pollOnce()
		}
	}
}

func (s *Service) pollOnce() {
	now := s.now()
	result, err := s.load()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		slog.Warn("watch poll", "err", err)
		return
	}

	snap := takeSnapshot(now, result, s.cfg.Options)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventSnapshot, Timestamp: now, Snapshot: snap}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventChange, Timestamp: now, Snapshot: snap, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func takeSnapshot(now time.Time, r *pipeline.LoadResult, opts pipeline.Options) Snapshot {
	d := pipeline.BuildDashboard(now, r.Logs, r.Checks, opts)
	return Snapshot{
		At:          now,
		Logs:        len(r.Logs),
		Checks:      len(r.Checks),
		BalanceKcal: d.Tank.BalanceKcal,
		Cans:        d.Tank.CanCount,
		BaseMinutes: d.Tank.DisplayMinutes,
		Streak:      d.Streak,
		Multiplier:  d.Multiplier,
		Rank:        d.Grade.Rank,
		Today:       d.Today,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Logs:         curr.Logs - prev.Logs,
		Checks:       curr.Checks - prev.Checks,
		BalanceKcal:  curr.BalanceKcal - prev.BalanceKcal,
		Streak:       curr.Streak - prev.Streak,
		RankChanged:  curr.Rank != prev.Rank,
		TodayChanged: curr.Today != prev.Today,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

// Subscribe returns a channel of future events and a cancel func.
// Slow subscribers miss events rather than block the poller.
func (s *Service) Subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, max(buffer, 1))

	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Events returns the retained events, oldest first.
func (s *Service) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

// Status reports the watcher state.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:  s.startedAt,
		LastPollAt: s.lastPollAt,
		PollCount:  s.pollCount,
		Current:    s.snapshot,
		LastError:  s.lastError,
		EventCount: len(s.events),
	}
}
