package preset

import "fmt"

// Merge returns the built-ins followed by the custom presets. Built-ins are
// always present and always first.
func Merge(custom []Preset) []Preset {
	merged := make([]Preset, 0, len(builtIns)+len(custom))
	merged = append(merged, BuiltIns()...)
	for _, p := range custom {
		merged = append(merged, p.Clone())
	}
	return merged
}

// Resolve looks id up in the merged catalog. Built-ins are scanned first so
// a custom preset can never shadow a reserved id.
func Resolve(id string, custom []Preset) (Preset, error) {
	for _, p := range builtIns {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	for _, p := range custom {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
}

// ResolveOrDefault resolves id, falling back to Default when it is missing.
// The boolean reports whether id itself resolved.
func ResolveOrDefault(id string, custom []Preset) (Preset, bool) {
	p, err := Resolve(id, custom)
	if err != nil {
		return Default(), false
	}
	return p, true
}

// IndexOf returns the position of id within custom, or -1.
func IndexOf(custom []Preset, id string) int {
	for i, p := range custom {
		if p.ID == id {
			return i
		}
	}
	return -1
}
