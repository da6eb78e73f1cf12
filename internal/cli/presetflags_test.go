package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/backdrop/internal/preset"
)

func TestPresetFlags_BuildFromFields(t *testing.T) {
	f := presetFlags{
		id:          " dusk ",
		name:        "Dusk",
		variant:     "linearGradient",
		colors:      []string{"#111111", " ", "#222222"},
		direction:   "to right",
		gridOpacity: "0.3",
	}
	p, err := f.build(strings.NewReader(""))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.ID != "dusk" || p.Name != "Dusk" || p.Variant != preset.VariantLinearGradient {
		t.Fatalf("preset = %+v", p)
	}
	if len(p.Parameters.Colors) != 2 || p.Parameters.Colors[1] != "#222222" {
		t.Fatalf("colors = %v, want blanks dropped", p.Parameters.Colors)
	}
	if p.Parameters.Direction != "to right" || p.Parameters.GridOpacity != "0.3" {
		t.Fatalf("parameters = %+v", p.Parameters)
	}
}

func TestPresetFlags_FieldsOverrideJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	doc := `{"id":"tiles","name":"Tiles","variant":"pattern","parameters":{"patternType":"circuit-board","colors":["#000000"]}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f := presetFlags{fromJSON: path, name: "Renamed"}
	p, err := f.build(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.Name != "Renamed" || p.ID != "tiles" {
		t.Fatalf("preset = %+v, want name overridden and id kept", p)
	}
	if p.Parameters.PatternType != preset.PatternCircuitBoard {
		t.Fatalf("pattern = %q", p.Parameters.PatternType)
	}
}

func TestPresetFlags_JSONFromStdin(t *testing.T) {
	f := presetFlags{fromJSON: "-"}
	p, err := f.build(strings.NewReader(`{"name":"Plain","variant":"solid"}`))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.Variant != preset.VariantSolid || p.ID != "" {
		t.Fatalf("preset = %+v", p)
	}

	f = presetFlags{fromJSON: "-"}
	if _, err := f.build(strings.NewReader(`{"name":"x","variant":"solid","colour":"red"}`)); err == nil {
		t.Fatal("build accepted an unknown JSON field")
	}
}

func TestPresetFlags_VariantErrors(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		want    string
	}{
		{name: "missing", variant: "", want: "--variant is required"},
		{name: "unknown", variant: "plaid", want: "unknown variant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := presetFlags{name: "x", variant: tt.variant}
			_, err := f.build(nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
