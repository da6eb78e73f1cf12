package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/backdrop/internal/preset"
)

// presetFlags collects a preset definition from the command line, either
// field by field or as a JSON document.
type presetFlags struct {
	id            string
	name          string
	variant       string
	colors        []string
	direction     string
	position      string
	size          string
	gridSize      string
	gridLineWidth string
	gridOpacity   string
	pattern       string
	fromJSON      string
}

func (f *presetFlags) bind(cmd *cobra.Command, withID bool) {
	flags := cmd.Flags()
	if withID {
		flags.StringVar(&f.id, "id", "", "preset id (generated when blank)")
	}
	flags.StringVar(&f.name, "name", "", "display name")
	flags.StringVar(&f.variant, "variant", "", "solid, linearGradient, radialGradient, grid or pattern")
	flags.StringArrayVar(&f.colors, "color", nil, "color stop, repeat for each stop")
	flags.StringVar(&f.direction, "direction", "", "linear gradient direction, e.g. \"to right\"")
	flags.StringVar(&f.position, "position", "", "radial gradient position, e.g. \"circle at top\"")
	flags.StringVar(&f.size, "size", "", "background size")
	flags.StringVar(&f.gridSize, "grid-size", "", "grid cell size")
	flags.StringVar(&f.gridLineWidth, "grid-line-width", "", "grid line width")
	flags.StringVar(&f.gridOpacity, "grid-opacity", "", "grid line opacity between 0 and 1")
	flags.StringVar(&f.pattern, "pattern", "", "pattern recipe for the pattern variant")
	flags.StringVar(&f.fromJSON, "from-json", "", "read the preset from a JSON file, - for stdin")
}

// build returns the preset described by the flags. Field flags override
// values read with --from-json.
func (f *presetFlags) build(stdin io.Reader) (preset.Preset, error) {
	var p preset.Preset
	if f.fromJSON != "" {
		var err error
		if p, err = readPresetJSON(f.fromJSON, stdin); err != nil {
			return preset.Preset{}, err
		}
	}

	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&p.ID, f.id)
	set(&p.Name, f.name)
	if v := strings.TrimSpace(f.variant); v != "" {
		p.Variant = preset.Variant(v)
	}
	if len(f.colors) > 0 {
		colors := make([]string, 0, len(f.colors))
		for _, c := range f.colors {
			if c = strings.TrimSpace(c); c != "" {
				colors = append(colors, c)
			}
		}
		p.Parameters.Colors = colors
	}
	set(&p.Parameters.Direction, f.direction)
	set(&p.Parameters.Position, f.position)
	set(&p.Parameters.Size, f.size)
	set(&p.Parameters.GridSize, f.gridSize)
	set(&p.Parameters.GridLineWidth, f.gridLineWidth)
	set(&p.Parameters.GridOpacity, f.gridOpacity)
	if v := strings.TrimSpace(f.pattern); v != "" {
		p.Parameters.PatternType = preset.PatternType(v)
	}

	if p.Variant == "" {
		return preset.Preset{}, fmt.Errorf("--variant is required")
	}
	if !p.Variant.Known() {
		return preset.Preset{}, fmt.Errorf("unknown variant %q", p.Variant)
	}
	return p, nil
}

func readPresetJSON(path string, stdin io.Reader) (preset.Preset, error) {
	var r io.Reader = stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return preset.Preset{}, fmt.Errorf("open preset: %w", err)
		}
		defer file.Close()
		r = file
	}
	var p preset.Preset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return preset.Preset{}, fmt.Errorf("decode preset: %w", err)
	}
	return p, nil
}
