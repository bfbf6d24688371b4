package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// Source supplies persisted logs and checks.
type Source interface {
	LoadAllLogs() ([]model.RawLog, error)
	LoadAllChecks() ([]model.CheckEntry, error)
}

// LoadResult holds normalized records ready for computation.
type LoadResult struct {
	Logs       []model.LogEntry
	Checks     []model.CheckEntry
	LegacyLogs int // records that were stored in minutes
	LoadTime   time.Duration
}

// Load reads every record from src and normalizes it for profile p.
// Logs and checks are returned oldest first; checks recorded at the same
// instant keep their stored order.
func Load(src Source, p model.Profile) (*LoadResult, error) {
	start := time.Now()

	raw, err := src.LoadAllLogs()
	if err != nil {
		return nil, fmt.Errorf("loading logs: %w", err)
	}
	checks, err := src.LoadAllChecks()
	if err != nil {
		return nil, fmt.Errorf("loading checks: %w", err)
	}

	result := &LoadResult{
		Logs:   Normalize(raw, p),
		Checks: checks,
	}
	for _, r := range raw {
		if r.Kcal == nil && r.Minutes != nil {
			result.LegacyLogs++
		}
	}

	sort.SliceStable(result.Logs, func(i, j int) bool {
		return result.Logs[i].Timestamp.Before(result.Logs[j].Timestamp)
	})
	sort.SliceStable(result.Checks, func(i, j int) bool {
		return result.Checks[i].Timestamp.Before(result.Checks[j].Timestamp)
	})

	result.LoadTime = time.Since(start)
	return result, nil
}
