package preset

// builtIns is the shipped catalog. The first entry is the default selection.
var builtIns = []Preset{
	{
		ID:      "paper",
		Name:    "Paper",
		Variant: VariantSolid,
		Parameters: Parameters{
			Colors: []string{"#f8fafc"}, // slate-50
		},
	},
	{
		ID:      "ocean-breeze",
		Name:    "Ocean Breeze",
		Variant: VariantLinearGradient,
		Parameters: Parameters{
			Direction: "to bottom right",
			Colors:    []string{"#e0f2fe", "#bae6fd", "#7dd3fc"}, // sky-100..300
		},
	},
	{
		ID:      "sunset",
		Name:    "Sunset",
		Variant: VariantLinearGradient,
		Parameters: Parameters{
			Colors: []string{"#fde68a", "#fca5a5", "#c084fc"},
		},
	},
	{
		ID:      "aurora",
		Name:    "Aurora",
		Variant: VariantRadialGradient,
		Parameters: Parameters{
			Colors: []string{"#ffffff", "#6366f1"}, // indigo-500
		},
	},
	{
		ID:      "midnight-glow",
		Name:    "Midnight Glow",
		Variant: VariantRadialGradient,
		Parameters: Parameters{
			Position: "50% 0%",
			Size:     "140% 100%",
			Colors:   []string{"#1e3a8a", "#020617"},
		},
	},
	{
		ID:      "blueprint",
		Name:    "Blueprint",
		Variant: VariantGrid,
		Parameters: Parameters{
			Colors:      []string{"#ffffff", "#3b82f6"}, // blue-500 lines
			GridOpacity: "0.15",
		},
	},
	{
		ID:      "graph-paper",
		Name:    "Graph Paper",
		Variant: VariantGrid,
		Parameters: Parameters{
			Colors:        []string{"#fefce8", "#a16207"},
			GridSize:      "32px",
			GridLineWidth: "1px",
			GridOpacity:   "0.2",
		},
	},
	patternPreset(PatternDiagonalGridSpotlight, "Diagonal Grid Spotlight", "#0b1120", "#38bdf8"),
	patternPreset(PatternCircuitBoard, "Circuit Board", "#052e16", "#22c55e"),
	patternPreset(PatternNoiseTexture, "Noise Texture", "#fafaf9", "#1c1917"),
	patternPreset(PatternCrosshatchArt, "Crosshatch Art", "#fffbeb", "#78350f"),
	patternPreset(PatternDiagonalStripes, "Diagonal Stripes", "#ffffff", "#64748b"),
	patternPreset(PatternDiagonalCrossCenter, "Diagonal Cross (Center Fade)", "#ffffff", "#0f172a"),
	patternPreset(PatternDiagonalCrossBottomRight, "Diagonal Cross (Corner Fade)", "#ffffff", "#0f172a"),
	patternPreset(PatternDiagonalCrossGrid, "Diagonal Cross Grid", "#f1f5f9", "#334155"),
}

func patternPreset(t PatternType, name, base, ink string) Preset {
	return Preset{
		ID:      string(t),
		Name:    name,
		Variant: VariantPattern,
		Parameters: Parameters{
			PatternType: t,
			Colors:      []string{base, ink},
		},
	}
}

// BuiltIns returns a copy of the shipped catalog in display order.
func BuiltIns() []Preset {
	return ClonePresets(builtIns)
}

// Default returns the first built-in preset, used whenever a selection
// cannot be resolved.
func Default() Preset {
	return builtIns[0].Clone()
}

// IsBuiltIn reports whether id is reserved by the shipped catalog.
func IsBuiltIn(id string) bool {
	for _, p := range builtIns {
		if p.ID == id {
			return true
		}
	}
	return false
}
