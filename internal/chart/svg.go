package chart

// svg.go - hand-rolled SVG output for the four chart kinds. Fixed
// viewport, left/bottom axes, sampled X labels.

import (
	"fmt"
	"html"
	"math"
	"strings"
)

const (
	svgWidth   = 640.0
	svgHeight  = 320.0
	marginLeft = 56.0
	marginTop  = 16.0
	marginBot  = 40.0
	marginRt   = 16.0

	maxXLabels = 8
)

var (
	plotWidth  = svgWidth - marginLeft - marginRt
	plotHeight = svgHeight - marginTop - marginBot
)

type scale struct {
	min, max float64
}

func newScale(values []float64, includeZero bool) scale {
	s := scale{min: math.Inf(1), max: math.Inf(-1)}
	for _, v := range values {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	if includeZero && s.min > 0 {
		s.min = 0
	}
	if s.min == s.max {
		s.min--
		s.max++
	}
	return s
}

// y maps a value to a pixel Y coordinate (origin at top).
func (s scale) y(v float64) float64 {
	return marginTop + plotHeight*(1-(v-s.min)/(s.max-s.min))
}

// x maps a value to a pixel X coordinate.
func (s scale) x(v float64) float64 {
	return marginLeft + plotWidth*(v-s.min)/(s.max-s.min)
}

// slotX returns the center X coordinate of slot i out of n.
func slotX(i, n int) float64 {
	return marginLeft + plotWidth*(float64(i)+0.5)/float64(n)
}

func renderLine(labels []string, ys []float64, xName, yName string) string {
	sc := newScale(ys, false)

	var points strings.Builder
	for i, y := range ys {
		if i > 0 {
			points.WriteByte(' ')
		}
		fmt.Fprintf(&points, "%.1f,%.1f", slotX(i, len(ys)), sc.y(y))
	}

	var b strings.Builder
	openSVG(&b)
	axes(&b, sc, xName, yName)
	fmt.Fprintf(&b, `<polyline class="chart-line" fill="none" stroke="currentColor" stroke-width="2" points="%s"/>`, points.String())
	xLabels(&b, labels)
	b.WriteString("</svg>")
	return b.String()
}

func renderArea(labels []string, ys []float64, xName, yName string) string {
	sc := newScale(ys, true)

	var points strings.Builder
	fmt.Fprintf(&points, "%.1f,%.1f", slotX(0, len(ys)), sc.y(sc.min))
	for i, y := range ys {
		fmt.Fprintf(&points, " %.1f,%.1f", slotX(i, len(ys)), sc.y(y))
	}
	fmt.Fprintf(&points, " %.1f,%.1f", slotX(len(ys)-1, len(ys)), sc.y(sc.min))

	var b strings.Builder
	openSVG(&b)
	axes(&b, sc, xName, yName)
	fmt.Fprintf(&b, `<polygon class="chart-area" fill="currentColor" fill-opacity="0.25" stroke="currentColor" stroke-width="1.5" points="%s"/>`, points.String())
	xLabels(&b, labels)
	b.WriteString("</svg>")
	return b.String()
}

func renderBar(labels []string, ys []float64, xName, yName string) string {
	sc := newScale(ys, true)
	slot := plotWidth / float64(len(ys))
	barW := slot * 0.7

	var b strings.Builder
	openSVG(&b)
	axes(&b, sc, xName, yName)
	base := sc.y(math.Max(sc.min, 0))
	for i, y := range ys {
		top := sc.y(y)
		yPos, h := top, base-top
		if h < 0 {
			yPos, h = base, -h
		}
		fmt.Fprintf(&b, `<rect class="chart-bar" fill="currentColor" fill-opacity="0.8" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`,
			slotX(i, len(ys))-barW/2, yPos, barW, h)
	}
	xLabels(&b, labels)
	b.WriteString("</svg>")
	return b.String()
}

func renderScatter(xs, ys []float64, xName, yName string) string {
	scX := newScale(xs, false)
	scY := newScale(ys, false)

	var b strings.Builder
	openSVG(&b)
	axes(&b, scY, xName, yName)
	for i := range xs {
		fmt.Fprintf(&b, `<circle class="chart-point" fill="currentColor" cx="%.1f" cy="%.1f" r="3.5"/>`,
			scX.x(xs[i]), scY.y(ys[i]))
	}
	// Numeric X tick labels at min/mid/max.
	mid := (scX.min + scX.max) / 2
	for _, v := range []float64{scX.min, mid, scX.max} {
		fmt.Fprintf(&b, `<text class="chart-label" x="%.1f" y="%.1f" text-anchor="middle" font-size="10">%s</text>`,
			scX.x(v), svgHeight-marginBot+16, formatTick(v))
	}
	b.WriteString("</svg>")
	return b.String()
}

func openSVG(b *strings.Builder) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" role="img">`,
		svgWidth, svgHeight, svgWidth, svgHeight)
}

func axes(b *strings.Builder, sc scale, xName, yName string) {
	// Axis lines.
	fmt.Fprintf(b, `<line class="chart-axis" stroke="currentColor" stroke-opacity="0.4" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`,
		marginLeft, marginTop, marginLeft, svgHeight-marginBot)
	fmt.Fprintf(b, `<line class="chart-axis" stroke="currentColor" stroke-opacity="0.4" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`,
		marginLeft, svgHeight-marginBot, svgWidth-marginRt, svgHeight-marginBot)

	// Y ticks at min/mid/max.
	mid := (sc.min + sc.max) / 2
	for _, v := range []float64{sc.min, mid, sc.max} {
		fmt.Fprintf(b, `<text class="chart-label" x="%.1f" y="%.1f" text-anchor="end" font-size="10">%s</text>`,
			marginLeft-6, sc.y(v)+3, formatTick(v))
	}

	// Axis titles.
	fmt.Fprintf(b, `<text class="chart-title" x="%.1f" y="%.1f" text-anchor="middle" font-size="11">%s</text>`,
		marginLeft+plotWidth/2, svgHeight-4, html.EscapeString(xName))
	fmt.Fprintf(b, `<text class="chart-title" x="12" y="%.1f" text-anchor="middle" font-size="11" transform="rotate(-90 12 %.1f)">%s</text>`,
		marginTop+plotHeight/2, marginTop+plotHeight/2, html.EscapeString(yName))
}

// xLabels writes categorical labels under the X axis, sampling when
// there are too many to fit.
func xLabels(b *strings.Builder, labels []string) {
	step := 1
	if len(labels) > maxXLabels {
		step = (len(labels) + maxXLabels - 1) / maxXLabels
	}
	for i := 0; i < len(labels); i += step {
		fmt.Fprintf(b, `<text class="chart-label" x="%.1f" y="%.1f" text-anchor="middle" font-size="10">%s</text>`,
			slotX(i, len(labels)), svgHeight-marginBot+16, html.EscapeString(truncateLabel(labels[i])))
	}
}

func truncateLabel(s string) string {
	const maxLen = 12
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
