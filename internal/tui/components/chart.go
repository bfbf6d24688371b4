package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/kcaltank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values. Signed series are
// scaled from their minimum so a running balance keeps its shape.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > 0 {
		lo = 0
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := 1 + int((v-lo)/span*float64(len(blocks)-2))
		idx = min(max(idx, 1), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BarChart renders a bar chart of non-negative values with a y axis and
// sparse x labels.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)

	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	values, labels, barW, gap := fitBars(values, labels, width-yLabelW-1)
	n := len(values)
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)
		rowPct := float64(row) / float64(chartH)

		// Brighter toward the top of the chart
		barColor := t.Accent
		switch {
		case rowPct > 0.8:
			barColor = t.AccentBright
		case rowPct > 0.5:
			barColor = color
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			b.WriteString(barStyle.Render(strings.Repeat(string(cellBlock(v, rowBottom, rowTop)), barW)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))
	b.WriteString(xAxisLabels(labels, n, barW, gap, yLabelW))

	return b.String()
}

// BalanceChart renders signed daily values around a zero axis: credit
// grows up in green, debt hangs down in red.
func BalanceChart(values []float64, labels []string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 4 {
		return Sparkline(values, t.Accent)
	}

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		peak = 1
	}
	half := height / 2

	top := formatChartLabel(peak)
	yLabelW := max(len(top)+2, 4)

	values, labels, barW, gap := fitBars(values, labels, width-yLabelW-1)
	n := len(values)
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	upStyle := lipgloss.NewStyle().Foreground(t.Credit).Background(t.Surface)
	downStyle := lipgloss.NewStyle().Foreground(t.Debt).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	row := func(label string, cell func(v float64) (rune, lipgloss.Style)) string {
		var b strings.Builder
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			r, st := cell(v)
			b.WriteString(st.Render(strings.Repeat(string(r), barW)))
		}
		return b.String()
	}

	lines := make([]string, 0, 2*half+1)
	for r := half; r >= 1; r-- {
		lo := peak * float64(r-1) / float64(half)
		hi := peak * float64(r) / float64(half)
		label := ""
		if r == half {
			label = top
		}
		lines = append(lines, row(label, func(v float64) (rune, lipgloss.Style) {
			if v <= 0 {
				return ' ', blank
			}
			return cellBlock(v, lo, hi), upStyle
		}))
	}

	lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0"))+
		axisStyle.Render("┼")+axisStyle.Render(strings.Repeat("─", axisLen)))

	for r := 1; r <= half; r++ {
		lo := peak * float64(r-1) / float64(half)
		hi := peak * float64(r) / float64(half)
		label := ""
		if r == half {
			label = "-" + top
		}
		lines = append(lines, row(label, func(v float64) (rune, lipgloss.Style) {
			// Eighth blocks only grow upward, so debt uses full and half cells
			switch a := -v; {
			case a >= hi:
				return '█', downStyle
			case a > lo+(hi-lo)/2:
				return '▀', downStyle
			}
			return ' ', blank
		}))
	}

	return strings.Join(lines, "\n") + xAxisLabels(labels, n, barW, gap, yLabelW)
}

// cellBlock picks the block for value v in a row spanning lo..hi.
func cellBlock(v, lo, hi float64) rune {
	switch {
	case v >= hi:
		return '█'
	case v > lo:
		idx := int((v - lo) / (hi - lo) * 8)
		return blocks[min(max(idx, 1), 8)]
	}
	return ' '
}

// fitBars sizes bars to the chart width, sampling the series down when
// there are more values than two-column bars can show.
func fitBars(values []float64, labels []string, chartW int) ([]float64, []string, int, int) {
	chartW = max(chartW, 5)
	n := len(values)
	if n == 1 {
		return values, labels, min(chartW, 6), 0
	}

	barW := (chartW - (n - 1)) / n
	if barW < 2 {
		maxN := max((chartW+1)/3, 2)
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			src := i * (n - 1) / (maxN - 1)
			sampled[i] = values[src]
			if sampledLabels != nil {
				sampledLabels[i] = labels[src]
			}
		}
		values, labels, barW = sampled, sampledLabels, 2
	}
	return values, labels, min(barW, 6), 1
}

// xAxisLabels renders the label row under a chart, keeping the last
// label when it fits.
func xAxisLabels(labels []string, n, barW, gap, indent int) string {
	if len(labels) != n || n == 0 {
		return ""
	}
	t := theme.Active
	axisLen := n*barW + max(0, n-1)*gap

	buf := []byte(strings.Repeat(" ", axisLen))
	labelStep := max(1, (n*8)/(axisLen+1))

	lastEnd := -1
	for i := 0; i < n; i += labelStep {
		pos := i * (barW + gap)
		lbl := labels[i]
		end := pos + len(lbl)
		if pos <= lastEnd {
			continue
		}
		if end > axisLen {
			end = axisLen
			if end-pos < 3 {
				continue
			}
			lbl = lbl[:end-pos]
		}
		copy(buf[pos:end], lbl)
		lastEnd = end + 1
	}
	if n > 1 {
		lbl := labels[n-1]
		pos := (n - 1) * (barW + gap)
		end := pos + len(lbl)
		if end > axisLen {
			pos = axisLen - len(lbl)
			end = axisLen
		}
		if pos >= 0 && pos > lastEnd {
			copy(buf[pos:end], lbl)
		}
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return "\n" + lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", indent+1)) +
		labelStyle.Render(strings.TrimRight(string(buf), " "))
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e4:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
