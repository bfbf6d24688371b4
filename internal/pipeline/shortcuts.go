package pipeline

import (
	"sort"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// TopShortcuts returns the n most logged style and size pairs among drinks.
// Ties keep the pair that was logged most recently first.
func TopShortcuts(logs []model.LogEntry, n int) []model.Shortcut {
	if n <= 0 {
		return nil
	}

	counts := make(map[string]*model.Shortcut)
	last := make(map[string]int)
	for i, l := range logs {
		if !l.IsDebt() || l.Style == "" || l.Size == "" {
			continue
		}
		k := l.Style + "|" + l.Size
		sc, ok := counts[k]
		if !ok {
			sc = &model.Shortcut{Style: l.Style, Size: l.Size}
			counts[k] = sc
		}
		sc.Count++
		last[k] = i
	}

	out := make([]model.Shortcut, 0, len(counts))
	for _, sc := range counts {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return last[out[i].Style+"|"+out[i].Size] > last[out[j].Style+"|"+out[j].Size]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Suggestions returns distinct brewery and brand names seen in drink logs,
// sorted for completion.
func Suggestions(logs []model.LogEntry) (breweries, brands []string) {
	seenBrewery := make(map[string]struct{})
	seenBrand := make(map[string]struct{})
	for _, l := range logs {
		if !l.IsDebt() {
			continue
		}
		if b := strings.TrimSpace(l.Brewery); b != "" {
			if _, ok := seenBrewery[b]; !ok {
				seenBrewery[b] = struct{}{}
				breweries = append(breweries, b)
			}
		}
		if b := strings.TrimSpace(l.Brand); b != "" {
			if _, ok := seenBrand[b]; !ok {
				seenBrand[b] = struct{}{}
				brands = append(brands, b)
			}
		}
	}
	sort.Strings(breweries)
	sort.Strings(brands)
	return breweries, brands
}
