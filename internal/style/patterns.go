package style

import (
	"fmt"
	"strings"

	"github.com/five82/backdrop/internal/preset"
)

// recipe renders one pattern from a base fill colour and an ink colour.
type recipe func(base, ink string) Declaration

// patternRecipes must hold an entry for every preset.PatternTypes() value;
// patterns_test.go enforces that.
var patternRecipes = map[preset.PatternType]recipe{
	preset.PatternDiagonalGridSpotlight:    diagonalGridSpotlight,
	preset.PatternCircuitBoard:             circuitBoard,
	preset.PatternNoiseTexture:             noiseTexture,
	preset.PatternCrosshatchArt:            crosshatchArt,
	preset.PatternDiagonalStripes:          diagonalStripes,
	preset.PatternDiagonalCrossCenter:      diagonalCrossCenter,
	preset.PatternDiagonalCrossBottomRight: diagonalCrossBottomRight,
	preset.PatternDiagonalCrossGrid:        diagonalCrossGrid,
}

func layers(parts ...string) string {
	return strings.Join(parts, ", ")
}

func repeat(size string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = size
	}
	return strings.Join(parts, ", ")
}

func diagonalLines(angle, color, period string) string {
	return fmt.Sprintf("repeating-linear-gradient(%s, %s 0 1px, transparent 1px %s)", angle, color, period)
}

func diagonalGridSpotlight(base, ink string) Declaration {
	line := HexToRGBA(ink, "0.08")
	return Declaration{
		BackgroundColor: base,
		BackgroundImage: layers(
			fmt.Sprintf("radial-gradient(circle at 50%% 0%%, %s 0%%, transparent 60%%)", HexToRGBA(ink, "0.18")),
			diagonalLines("45deg", line, "32px"),
			diagonalLines("-45deg", line, "32px"),
		),
		BackgroundSize: "100% 100%, 32px 32px, 32px 32px",
	}
}

func circuitBoard(base, ink string) Declaration {
	trace := HexToRGBA(ink, "0.07")
	return Declaration{
		BackgroundColor: base,
		BackgroundImage: layers(
			fmt.Sprintf("linear-gradient(90deg, %s 1px, transparent 1px)", trace),
			fmt.Sprintf("linear-gradient(0deg, %s 1px, transparent 1px)", trace),
			fmt.Sprintf("radial-gradient(circle at 1px 1px, %s 1.5px, transparent 2px)", HexToRGBA(ink, "0.35")),
			fmt.Sprintf("linear-gradient(90deg, transparent 19px, %s 19px 21px, transparent 21px)", HexToRGBA(ink, "0.12")),
		),
		BackgroundSize: "40px 40px, 40px 40px, 40px 40px, 80px 40px",
	}
}

func noiseTexture(base, ink string) Declaration {
	return Declaration{
		BackgroundColor: base,
		BackgroundImage: layers(
			fmt.Sprintf("radial-gradient(circle at 1px 1px, %s 0.5px, transparent 1px)", HexToRGBA(ink, "0.10")),
			fmt.Sprintf("radial-gradient(circle at 3px 3px, %s 0.5px, transparent 1px)", HexToRGBA(ink, "0.06")),
		),
		BackgroundSize: "4px 4px, 6px 6px",
	}
}

func crosshatchArt(base, ink string) Declaration {
	strong := HexToRGBA(ink, "0.06")
	soft := HexToRGBA(ink, "0.05")
	return Declaration{
		BackgroundColor: base,
		BackgroundImage: layers(
			diagonalLines("22.5deg", strong, "12px"),
			diagonalLines("67.5deg", soft, "12px"),
			diagonalLines("112.5deg", strong, "12px"),
			diagonalLines("157.5deg", soft, "12px"),
		),
	}
}

func diagonalStripes(base, ink string) Declaration {
	return Declaration{
		BackgroundColor: base,
		BackgroundImage: fmt.Sprintf("repeating-linear-gradient(45deg, transparent 0 10px, %s 10px 20px)", HexToRGBA(ink, "0.10")),
	}
}

func diagonalCross(base, ink, mask string) Declaration {
	line := HexToRGBA(ink, "0.12")
	return Declaration{
		BackgroundColor: base,
		BackgroundImage: layers(
			diagonalLines("45deg", line, "40px"),
			diagonalLines("-45deg", line, "40px"),
		),
		BackgroundSize: repeat("40px 40px", 2),
		MaskImage:      mask,
	}
}

func diagonalCrossCenter(base, ink string) Declaration {
	return diagonalCross(base, ink, "radial-gradient(ellipse 60% 60% at 50% 50%, #000 30%, transparent 70%)")
}

// diagonalCrossBottomRight fades out from the bottom-right corner (100% 100%),
// the corner its name refers to, not the bottom-left.
func diagonalCrossBottomRight(base, ink string) Declaration {
	return diagonalCross(base, ink, "radial-gradient(ellipse 80% 80% at 100% 100%, #000 40%, transparent 80%)")
}

func diagonalCrossGrid(base, ink string) Declaration {
	grid := HexToRGBA(ink, "0.08")
	diag := HexToRGBA(ink, "0.05")
	return Declaration{
		BackgroundColor: base,
		BackgroundImage: layers(
			fmt.Sprintf("linear-gradient(to right, %s 1px, transparent 1px)", grid),
			fmt.Sprintf("linear-gradient(to bottom, %s 1px, transparent 1px)", grid),
			diagonalLines("45deg", diag, "40px"),
			diagonalLines("-45deg", diag, "40px"),
		),
		BackgroundSize: repeat("40px 40px", 4),
	}
}
