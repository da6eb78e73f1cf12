package prefs

import (
	"errors"
	"testing"

	"github.com/five82/backdrop/internal/preset"
)

func custom(id string) preset.Preset {
	return preset.Preset{
		ID:         id,
		Name:       "Custom " + id,
		Variant:    preset.VariantSolid,
		Parameters: preset.Parameters{Colors: []string{"#123456"}},
	}
}

func TestDecode_EmptyUsesDefaults(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("  \n")} {
		s, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", raw, err)
		}
		if !s.Equal(Default()) {
			t.Fatalf("Decode(%q) = %#v, want default", raw, s)
		}
	}
}

func TestDecode_MalformedFallsBackToDefault(t *testing.T) {
	for _, raw := range []string{"not json {{{", `[1,2,3]`, `"hello"`, `{"selectedId": 7}`} {
		s, err := Decode([]byte(raw))
		if !errors.Is(err, ErrCorruptStorage) {
			t.Fatalf("Decode(%q) error = %v, want ErrCorruptStorage", raw, err)
		}
		if !s.Equal(Default()) {
			t.Fatalf("Decode(%q) = %#v, want default", raw, s)
		}
	}
}

func TestEncodeDecode_PreservesState(t *testing.T) {
	in := State{SelectedID: "c2", CustomPresets: []preset.Preset{custom("c1"), custom("c2")}}
	raw, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	out, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("Decode(Encode(s)) = %#v, want %#v", out, in)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	s := State{SelectedID: "c1", CustomPresets: []preset.Preset{custom("c1")}}
	a, _ := Encode(s)
	b, _ := Encode(s.Clone())
	if string(a) != string(b) {
		t.Fatalf("Encode not deterministic:\n%s\n%s", a, b)
	}
}

func TestNormalize(t *testing.T) {
	s := State{
		SelectedID: "gone",
		CustomPresets: []preset.Preset{
			custom("c1"),
			custom("c1"),
			custom("paper"),
			{ID: "bad"},
		},
	}
	got := Normalize(s)
	if got.SelectedID != preset.Default().ID {
		t.Fatalf("SelectedID = %q, want %q", got.SelectedID, preset.Default().ID)
	}
	if len(got.CustomPresets) != 1 || got.CustomPresets[0].ID != "c1" {
		t.Fatalf("CustomPresets = %#v, want just c1", got.CustomPresets)
	}
}

func TestState_Current(t *testing.T) {
	s := State{SelectedID: "c1", CustomPresets: []preset.Preset{custom("c1")}}
	if got := s.Current().ID; got != "c1" {
		t.Fatalf("Current().ID = %q, want c1", got)
	}
	s.SelectedID = "missing"
	if got := s.Current().ID; got != preset.Default().ID {
		t.Fatalf("Current().ID = %q, want default", got)
	}
}

func TestState_EqualIsStructural(t *testing.T) {
	a := State{SelectedID: "c1", CustomPresets: []preset.Preset{custom("c1")}}
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("Equal(clone) = false, want true")
	}
	b.CustomPresets[0].Name = "Renamed"
	if a.Equal(b) {
		t.Fatal("Equal after rename = true, want false")
	}
}
