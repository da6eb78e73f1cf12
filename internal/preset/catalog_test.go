package preset

import (
	"errors"
	"testing"
)

func TestBuiltIns_UniqueIDsAndDefaultFirst(t *testing.T) {
	list := BuiltIns()
	if len(list) == 0 {
		t.Fatal("BuiltIns() returned no presets")
	}
	if list[0].ID != Default().ID {
		t.Fatalf("BuiltIns()[0].ID = %q, want default %q", list[0].ID, Default().ID)
	}
	seen := make(map[string]bool)
	for _, p := range list {
		if seen[p.ID] {
			t.Fatalf("duplicate built-in id %q", p.ID)
		}
		seen[p.ID] = true
		if err := Validate(p, true); err != nil {
			t.Fatalf("built-in %q invalid: %v", p.ID, err)
		}
	}
}

func TestBuiltIns_CoverEveryVariantAndPattern(t *testing.T) {
	variants := make(map[Variant]bool)
	patterns := make(map[PatternType]bool)
	for _, p := range BuiltIns() {
		variants[p.Variant] = true
		if p.Variant == VariantPattern {
			patterns[p.Parameters.PatternType] = true
		}
	}
	for _, v := range Variants() {
		if !variants[v] {
			t.Errorf("no built-in uses variant %q", v)
		}
	}
	for _, pt := range PatternTypes() {
		if !patterns[pt] {
			t.Errorf("no built-in uses pattern %q", pt)
		}
	}
}

func TestBuiltIns_ReturnsCopy(t *testing.T) {
	list := BuiltIns()
	list[0].Parameters.Colors[0] = "#000000"
	list[0].Name = "mutated"

	again := BuiltIns()
	if again[0].Name == "mutated" || again[0].Parameters.Colors[0] == "#000000" {
		t.Fatalf("BuiltIns() leaked internal state: %#v", again[0])
	}
}

func TestMerge_BuiltInsFirst(t *testing.T) {
	custom := []Preset{{ID: "c1", Name: "Mine", Variant: VariantSolid}}
	merged := Merge(custom)
	if len(merged) != len(BuiltIns())+1 {
		t.Fatalf("len(Merge) = %d, want %d", len(merged), len(BuiltIns())+1)
	}
	if merged[0].ID != Default().ID {
		t.Fatalf("Merge()[0].ID = %q, want %q", merged[0].ID, Default().ID)
	}
	if merged[len(merged)-1].ID != "c1" {
		t.Fatalf("last merged id = %q, want c1", merged[len(merged)-1].ID)
	}
}

func TestResolve(t *testing.T) {
	custom := []Preset{{ID: "c1", Name: "Mine", Variant: VariantSolid}}

	p, err := Resolve("c1", custom)
	if err != nil {
		t.Fatalf("Resolve(c1) returned error: %v", err)
	}
	if p.Name != "Mine" {
		t.Fatalf("Resolve(c1).Name = %q, want Mine", p.Name)
	}

	if _, err := Resolve("nope", custom); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("Resolve(nope) error = %v, want ErrUnknownPreset", err)
	}
}

func TestResolve_BuiltInWinsOnCollision(t *testing.T) {
	shadow := []Preset{{ID: "paper", Name: "Shadow", Variant: VariantSolid}}
	p, err := Resolve("paper", shadow)
	if err != nil {
		t.Fatalf("Resolve(paper) returned error: %v", err)
	}
	if p.Name != "Paper" {
		t.Fatalf("Resolve(paper).Name = %q, want built-in Paper", p.Name)
	}
}

func TestResolveOrDefault(t *testing.T) {
	p, ok := ResolveOrDefault("missing", nil)
	if ok {
		t.Fatal("ResolveOrDefault(missing) ok = true, want false")
	}
	if p.ID != Default().ID {
		t.Fatalf("ResolveOrDefault(missing).ID = %q, want %q", p.ID, Default().ID)
	}
}

func TestIsBuiltIn(t *testing.T) {
	if !IsBuiltIn("blueprint") {
		t.Fatal("IsBuiltIn(blueprint) = false, want true")
	}
	if IsBuiltIn("c1") {
		t.Fatal("IsBuiltIn(c1) = true, want false")
	}
}

func TestEqualPresets(t *testing.T) {
	a := []Preset{{ID: "x", Name: "X", Variant: VariantSolid, Parameters: Parameters{Colors: []string{"#fff"}}}}
	b := ClonePresets(a)
	if !EqualPresets(a, b) {
		t.Fatal("EqualPresets(clone) = false, want true")
	}
	b[0].Parameters.Colors[0] = "#000"
	if EqualPresets(a, b) {
		t.Fatal("EqualPresets after colour change = true, want false")
	}
	if a[0].Parameters.Colors[0] != "#fff" {
		t.Fatal("ClonePresets shared the colours slice")
	}
}
