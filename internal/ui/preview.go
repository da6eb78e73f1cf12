package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/backdrop/internal/preset"
)

// A terminal cannot show CSS, so the preview approximates each variant on a
// grid of cells: gradients are blended in Lab space, grids and patterns are
// drawn as ink on the base colour.

var fallbackColor = colorful.Color{R: 1, G: 1, B: 1}

func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return fallbackColor
	}
	return c
}

func presetColors(p preset.Preset) []colorful.Color {
	out := make([]colorful.Color, 0, len(p.Parameters.Colors))
	for _, hex := range p.Parameters.Colors {
		out = append(out, parseColor(hex))
	}
	switch len(out) {
	case 0:
		out = append(out, fallbackColor, parseColor("#e2e8f0"))
	case 1:
		out = append(out, out[0])
	}
	return out
}

// gradientAt blends evenly spaced stops at t in [0,1].
func gradientAt(stops []colorful.Color, t float64) colorful.Color {
	if len(stops) == 1 {
		return stops[0]
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	if pos == float64(i) {
		return stops[i]
	}
	return stops[i].BlendLab(stops[i+1], pos-float64(i)).Clamped()
}

// linearT maps a cell to its position along a CSS direction keyword.
func linearT(direction string, x, y, w, h int) float64 {
	fx := ratio(x, w)
	fy := ratio(y, h)
	d := strings.ToLower(direction)
	var parts []float64
	if strings.Contains(d, "right") {
		parts = append(parts, fx)
	} else if strings.Contains(d, "left") {
		parts = append(parts, 1-fx)
	}
	if strings.Contains(d, "bottom") {
		parts = append(parts, fy)
	} else if strings.Contains(d, "top") {
		parts = append(parts, 1-fy)
	}
	if len(parts) == 0 {
		return fy
	}
	sum := 0.0
	for _, v := range parts {
		sum += v
	}
	return sum / float64(len(parts))
}

func ratio(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// percentPair parses "50% 90%" style positions, returning fallback on
// anything else.
func percentPair(value string, fx, fy float64) (float64, float64) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return fx, fy
	}
	x, errX := strconv.ParseFloat(strings.TrimSuffix(fields[0], "%"), 64)
	y, errY := strconv.ParseFloat(strings.TrimSuffix(fields[1], "%"), 64)
	if errX != nil || errY != nil {
		return fx, fy
	}
	return x / 100, y / 100
}

func opacity(value string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v < 0 || v > 1 {
		return fallback
	}
	return v
}

// swatchColor returns the approximate colour of cell (x, y) in a w×h
// preview of p.
func swatchColor(p preset.Preset, x, y, w, h int) colorful.Color {
	colors := presetColors(p)
	params := p.Parameters
	switch p.Variant {
	case preset.VariantLinearGradient:
		return gradientAt(colors, linearT(params.Direction, x, y, w, h))
	case preset.VariantRadialGradient:
		cx, cy := percentPair(params.Position, 0.5, 0.9)
		dx, dy := ratio(x, w)-cx, ratio(y, h)-cy
		d := math.Min(1, math.Hypot(dx, dy))
		if d <= 0.4 {
			return colors[0]
		}
		return colors[0].BlendLab(colors[1], (d-0.4)/0.6).Clamped()
	case preset.VariantGrid:
		if x%4 == 0 || y%2 == 0 {
			return colors[0].BlendRgb(colors[1], opacity(params.GridOpacity, 0.15)).Clamped()
		}
		return colors[0]
	case preset.VariantPattern:
		if (x+y)%3 == 0 {
			return colors[0].BlendRgb(colors[1], 0.35).Clamped()
		}
		return colors[0]
	default:
		return colors[0]
	}
}

// renderSwatch draws a w×h block approximating p. Each cell is two columns
// wide so it looks roughly square.
func renderSwatch(p preset.Preset, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := swatchColor(p, x, y, w, h)
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  "))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}
