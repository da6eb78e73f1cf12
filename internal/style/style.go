package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/backdrop/internal/preset"
)

// Declaration is the flat, data-only result of compiling a preset. The UI
// layer applies it to a surface; nothing here carries behaviour.
type Declaration struct {
	BackgroundColor    string `json:"backgroundColor,omitempty"`
	BackgroundImage    string `json:"backgroundImage,omitempty"`
	BackgroundSize     string `json:"backgroundSize,omitempty"`
	BackgroundPosition string `json:"backgroundPosition,omitempty"`
	MaskImage          string `json:"maskImage,omitempty"`
}

// Property is a single CSS property/value pair.
type Property struct {
	Name  string
	Value string
}

// Properties returns the non-empty declarations as CSS properties in a
// stable order.
func (d Declaration) Properties() []Property {
	var props []Property
	add := func(name, value string) {
		if value != "" {
			props = append(props, Property{Name: name, Value: value})
		}
	}
	add("background-color", d.BackgroundColor)
	add("background-image", d.BackgroundImage)
	add("background-size", d.BackgroundSize)
	add("background-position", d.BackgroundPosition)
	add("-webkit-mask-image", d.MaskImage)
	add("mask-image", d.MaskImage)
	return props
}

// CSS renders the declaration as a rule block for selector. A blank selector,
// or one ValidSelector rejects, renders as body.
func (d Declaration) CSS(selector string) string {
	if !ValidSelector(selector) {
		selector = "body"
	}
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, p := range d.Properties() {
		fmt.Fprintf(&b, "  %s: %s;\n", p.Name, p.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// Empty reports whether the declaration sets nothing at all.
func (d Declaration) Empty() bool {
	return d == Declaration{}
}

// Compiler turns presets into declarations. The zero value is ready to use
// and logs fallbacks through log.Default().
type Compiler struct {
	Logger *log.Logger
}

var defaultCompiler Compiler

// Compile compiles p with the default compiler.
func Compile(p preset.Preset) Declaration {
	return defaultCompiler.Compile(p)
}

// Compile maps p to a declaration. It never fails: unknown variants and
// unknown pattern types fall back to a flat fill of the first colour.
func (c Compiler) Compile(p preset.Preset) Declaration {
	params := p.Parameters
	compile, ok := variantCompilers[p.Variant]
	if !ok {
		c.logger().Warn("unknown preset variant, using flat fill", "preset", p.ID, "variant", p.Variant)
		return flatFill(params)
	}
	if p.Variant == preset.VariantPattern && !params.PatternType.Known() {
		c.logger().Warn("unknown pattern type, using flat fill", "preset", p.ID, "pattern", params.PatternType)
		return flatFill(params)
	}
	return compile(params)
}

func (c Compiler) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

var variantCompilers = map[preset.Variant]func(preset.Parameters) Declaration{
	preset.VariantSolid:          compileSolid,
	preset.VariantLinearGradient: compileLinearGradient,
	preset.VariantRadialGradient: compileRadialGradient,
	preset.VariantGrid:           compileGrid,
	preset.VariantPattern:        compilePattern,
}

const (
	defaultDirection     = "to bottom"
	defaultPosition      = "50% 90%"
	defaultRadialSize    = "125% 125%"
	defaultGridSize      = "20px"
	defaultGridLineWidth = "1px"
	defaultGridOpacity   = "0.15"
)

// Fallback colours used when a preset omits colours[0] or colours[1].
var defaultColors = [2]string{"#ffffff", "#e2e8f0"}

func colorAt(params preset.Parameters, i int) string {
	if i < len(params.Colors) {
		if c := strings.TrimSpace(params.Colors[i]); c != "" {
			return c
		}
	}
	return defaultColors[i%len(defaultColors)]
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func flatFill(params preset.Parameters) Declaration {
	return Declaration{BackgroundColor: colorAt(params, 0)}
}

func compileSolid(params preset.Parameters) Declaration {
	return flatFill(params)
}

func compileLinearGradient(params preset.Parameters) Declaration {
	n := len(params.Colors)
	if n < 2 {
		n = 2
	}
	stops := make([]string, n)
	for i := range stops {
		stops[i] = colorAt(params, i)
	}
	return Declaration{
		BackgroundImage: fmt.Sprintf("linear-gradient(%s, %s)",
			orDefault(params.Direction, defaultDirection), strings.Join(stops, ", ")),
	}
}

func compileRadialGradient(params preset.Parameters) Declaration {
	return Declaration{
		BackgroundImage: fmt.Sprintf("radial-gradient(%s at %s, %s 40%%, %s 100%%)",
			orDefault(params.Size, defaultRadialSize),
			orDefault(params.Position, defaultPosition),
			colorAt(params, 0),
			colorAt(params, 1)),
		BackgroundSize: "100% 100%",
	}
}

func compileGrid(params preset.Parameters) Declaration {
	size := orDefault(params.GridSize, defaultGridSize)
	width := orDefault(params.GridLineWidth, defaultGridLineWidth)
	line := HexToRGBA(colorAt(params, 1), orDefault(params.GridOpacity, defaultGridOpacity))
	return Declaration{
		BackgroundColor: colorAt(params, 0),
		BackgroundImage: fmt.Sprintf(
			"linear-gradient(to right, %[1]s %[2]s, transparent %[2]s), linear-gradient(to bottom, %[1]s %[2]s, transparent %[2]s)",
			line, width),
		BackgroundSize: size + " " + size,
	}
}

func compilePattern(params preset.Parameters) Declaration {
	recipe, ok := patternRecipes[params.PatternType]
	if !ok {
		return flatFill(params)
	}
	return recipe(colorAt(params, 0), colorAt(params, 1))
}
