package ui

import (
	"testing"

	"github.com/five82/backdrop/internal/preset"
)

func TestSwatchColor_Solid(t *testing.T) {
	p := preset.Preset{Variant: preset.VariantSolid, Parameters: preset.Parameters{Colors: []string{"#123456"}}}
	for _, cell := range [][2]int{{0, 0}, {5, 3}} {
		if got := swatchColor(p, cell[0], cell[1], 10, 6).Hex(); got != "#123456" {
			t.Fatalf("swatchColor%v = %s, want #123456", cell, got)
		}
	}
}

func TestSwatchColor_LinearGradientEnds(t *testing.T) {
	p := preset.Preset{Variant: preset.VariantLinearGradient, Parameters: preset.Parameters{Colors: []string{"#000000", "#ffffff"}}}
	if got := swatchColor(p, 0, 0, 4, 5).Hex(); got != "#000000" {
		t.Fatalf("top = %s, want #000000", got)
	}
	if got := swatchColor(p, 0, 4, 4, 5).Hex(); got != "#ffffff" {
		t.Fatalf("bottom = %s, want #ffffff", got)
	}

	p.Parameters.Direction = "to left"
	if got := swatchColor(p, 3, 0, 4, 5).Hex(); got != "#000000" {
		t.Fatalf("right edge going left = %s, want #000000", got)
	}
}

func TestSwatchColor_BadHexFallsBack(t *testing.T) {
	p := preset.Preset{Variant: preset.VariantSolid, Parameters: preset.Parameters{Colors: []string{"tomato"}}}
	if got := swatchColor(p, 0, 0, 1, 1).Hex(); got != "#ffffff" {
		t.Fatalf("fallback = %s, want #ffffff", got)
	}
}

func TestRenderSwatch_EveryBuiltIn(t *testing.T) {
	for _, p := range preset.BuiltIns() {
		if renderSwatch(p, 6, 3) == "" {
			t.Fatalf("renderSwatch(%s) empty", p.ID)
		}
	}
	if renderSwatch(preset.Default(), 0, 3) != "" {
		t.Fatalf("zero-width swatch not empty")
	}
}

func TestPercentPair(t *testing.T) {
	x, y := percentPair("25% 75%", 0.5, 0.9)
	if x != 0.25 || y != 0.75 {
		t.Fatalf("percentPair = %v,%v, want 0.25,0.75", x, y)
	}
	x, y = percentPair("center", 0.5, 0.9)
	if x != 0.5 || y != 0.9 {
		t.Fatalf("percentPair fallback = %v,%v", x, y)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("truncate = %q, want abc…", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Fatalf("truncate = %q, want abc", got)
	}
	// Wide runes count as two cells.
	if got := truncate("日本語です", 5); got != "日本…" {
		t.Fatalf("truncate = %q, want 日本…", got)
	}
}
