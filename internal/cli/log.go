package cli

import (
	"fmt"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/model"
)

// DescribeLog is the one-line label of a log in lists.
func DescribeLog(l model.LogEntry) string {
	if l.IsDebt() || l.Style != "" {
		s := catalog.ResolveStyle(l.Style)
		label := l.Name
		if label == "" {
			label = s.Label
		}
		if l.Brand != "" {
			label += " / " + l.Brand
		}
		if l.Count > 0 && l.Count != 1 {
			label = fmt.Sprintf("%s x%g", label, l.Count)
		}
		return s.Icon + " " + label
	}
	ex := catalog.ResolveExercise(l.ExerciseKey)
	label := l.Name
	if label == "" {
		label = ex.Label
	}
	return ex.Icon + " " + label
}
