package preset

// Variant tags the rendering algorithm a preset uses.
type Variant string

const (
	VariantSolid          Variant = "solid"
	VariantLinearGradient Variant = "linearGradient"
	VariantRadialGradient Variant = "radialGradient"
	VariantGrid           Variant = "grid"
	VariantPattern        Variant = "pattern"
)

// Variants returns every variant in declaration order.
func Variants() []Variant {
	return []Variant{
		VariantSolid,
		VariantLinearGradient,
		VariantRadialGradient,
		VariantGrid,
		VariantPattern,
	}
}

// Known reports whether v is one of the declared variants.
func (v Variant) Known() bool {
	for _, known := range Variants() {
		if v == known {
			return true
		}
	}
	return false
}

// PatternType selects one of the procedural pattern recipes.
type PatternType string

const (
	PatternDiagonalGridSpotlight    PatternType = "diagonal-grid-spotlight"
	PatternCircuitBoard             PatternType = "circuit-board"
	PatternNoiseTexture             PatternType = "noise-texture"
	PatternCrosshatchArt            PatternType = "crosshatch-art"
	PatternDiagonalStripes          PatternType = "diagonal-stripes"
	PatternDiagonalCrossCenter      PatternType = "diagonal-cross-center"
	PatternDiagonalCrossBottomRight PatternType = "diagonal-cross-bottom-right"
	PatternDiagonalCrossGrid        PatternType = "diagonal-cross-grid"
)

// PatternTypes returns every pattern recipe in declaration order.
func PatternTypes() []PatternType {
	return []PatternType{
		PatternDiagonalGridSpotlight,
		PatternCircuitBoard,
		PatternNoiseTexture,
		PatternCrosshatchArt,
		PatternDiagonalStripes,
		PatternDiagonalCrossCenter,
		PatternDiagonalCrossBottomRight,
		PatternDiagonalCrossGrid,
	}
}

// Known reports whether t names a declared recipe.
func (t PatternType) Known() bool {
	for _, known := range PatternTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Parameters holds variant-specific fields. Every field is optional; the
// style compiler fills in defaults for anything left empty.
type Parameters struct {
	Colors        []string    `json:"colors,omitempty" validate:"omitempty,dive,required"`
	Direction     string      `json:"direction,omitempty"`
	Position      string      `json:"position,omitempty"`
	Size          string      `json:"size,omitempty"`
	GridSize      string      `json:"gridSize,omitempty"`
	GridLineWidth string      `json:"gridLineWidth,omitempty"`
	GridOpacity   string      `json:"gridOpacity,omitempty" validate:"omitempty,opacity"`
	PatternType   PatternType `json:"patternType,omitempty"`
}

// Preset describes one visual background. Values are treated as immutable:
// callers receive copies and replace whole presets rather than editing them.
type Preset struct {
	ID         string     `json:"id" validate:"required,max=128"`
	Name       string     `json:"name" validate:"required"`
	Variant    Variant    `json:"variant" validate:"required,oneof=solid linearGradient radialGradient grid pattern"`
	Parameters Parameters `json:"parameters"`
}

// Clone returns a deep copy of p.
func (p Preset) Clone() Preset {
	dup := p
	if p.Parameters.Colors != nil {
		dup.Parameters.Colors = append([]string(nil), p.Parameters.Colors...)
	}
	return dup
}

// Equal reports whether p and other describe the same preset field by field.
func (p Preset) Equal(other Preset) bool {
	if p.ID != other.ID || p.Name != other.Name || p.Variant != other.Variant {
		return false
	}
	a, b := p.Parameters, other.Parameters
	if a.Direction != b.Direction ||
		a.Position != b.Position ||
		a.Size != b.Size ||
		a.GridSize != b.GridSize ||
		a.GridLineWidth != b.GridLineWidth ||
		a.GridOpacity != b.GridOpacity ||
		a.PatternType != b.PatternType {
		return false
	}
	if len(a.Colors) != len(b.Colors) {
		return false
	}
	for i := range a.Colors {
		if a.Colors[i] != b.Colors[i] {
			return false
		}
	}
	return true
}

// ClonePresets deep-copies a preset list. A nil or empty input yields nil.
func ClonePresets(list []Preset) []Preset {
	if len(list) == 0 {
		return nil
	}
	dup := make([]Preset, len(list))
	for i, p := range list {
		dup[i] = p.Clone()
	}
	return dup
}

// EqualPresets compares two preset lists by value, in order.
func EqualPresets(a, b []Preset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
