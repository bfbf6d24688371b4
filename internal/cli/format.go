// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatKcal formats a signed kcal amount, e.g. "+120 kcal", "-98 kcal".
func FormatKcal(kcal float64) string {
	r := math.Round(kcal)
	switch {
	case r > 0:
		return "+" + FormatNumber(int64(r)) + " kcal"
	case r < 0:
		return FormatNumber(int64(r)) + " kcal"
	default:
		return "0 kcal"
	}
}

// FormatMinutes formats a minute count, e.g. 45 -> "45 min", 125 -> "2h 5m".
// The sign is kept when signed is true.
func FormatMinutes(minutes float64, signed bool) string {
	neg := minutes < 0
	total := int64(math.Round(math.Abs(minutes)))
	sign := ""
	if signed && total > 0 {
		sign = "+"
		if neg {
			sign = "-"
		}
	}

	if total < 60 {
		return fmt.Sprintf("%s%d min", sign, total)
	}
	return fmt.Sprintf("%s%dh %dm", sign, total/60, total%60)
}

// FormatCans formats a can count with one decimal.
func FormatCans(cans float64) string {
	return strconv.FormatFloat(cans, 'f', 1, 64)
}

// FormatRating renders a 0-5 rating as stars.
func FormatRating(rating int) string {
	if rating <= 0 {
		return ""
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// FormatWeight formats an optional body weight.
func FormatWeight(w *float64) string {
	if w == nil {
		return "-"
	}
	return strconv.FormatFloat(*w, 'f', 1, 64) + "kg"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatDelta formats the kcal change between two balances.
func FormatDelta(current, previous float64) string {
	return FormatKcal(current - previous)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// Truncate shortens s to max runes, marking the cut with "…".
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
