// Package prefs defines the persisted preference payload and its codec.
// The payload is the unit written to a durable slot:
//
//	{"selectedId": "...", "customPresets": [...]}
package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/five82/backdrop/internal/preset"
)

// ErrCorruptStorage marks a slot payload that could not be decoded. It is
// recovered locally by falling back to Default and is never surfaced to
// consumers.
var ErrCorruptStorage = errors.New("corrupt preference payload")

// State is the persisted preference: the current selection and the user's
// custom presets in display order.
type State struct {
	SelectedID    string          `json:"selectedId"`
	CustomPresets []preset.Preset `json:"customPresets"`
}

// Default returns the state used on first run or after unreadable data.
func Default() State {
	return State{SelectedID: preset.Default().ID}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		SelectedID:    s.SelectedID,
		CustomPresets: preset.ClonePresets(s.CustomPresets),
	}
}

// Equal compares two states by value, including every custom preset.
func (s State) Equal(other State) bool {
	return s.SelectedID == other.SelectedID &&
		preset.EqualPresets(s.CustomPresets, other.CustomPresets)
}

// Current resolves the selection, falling back to the default built-in.
func (s State) Current() preset.Preset {
	p, _ := preset.ResolveOrDefault(s.SelectedID, s.CustomPresets)
	return p
}

// Normalize enforces the state invariants without failing: custom presets
// that are malformed, shadow a built-in, or repeat an earlier id are dropped,
// and a selection that no longer resolves is reset to the default built-in.
func Normalize(s State) State {
	out := State{SelectedID: s.SelectedID}
	seen := make(map[string]bool, len(s.CustomPresets))
	for _, p := range s.CustomPresets {
		if preset.Validate(p, false) != nil || preset.IsBuiltIn(p.ID) || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out.CustomPresets = append(out.CustomPresets, p.Clone())
	}
	if _, err := preset.Resolve(out.SelectedID, out.CustomPresets); err != nil {
		out.SelectedID = preset.Default().ID
	}
	return out
}

// Decode parses a slot payload. Absent or blank payloads yield Default with
// no error. Malformed payloads yield Default and an error wrapping
// ErrCorruptStorage so the caller can log it.
func Decode(raw []byte) (State, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Default(), nil
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrCorruptStorage, err)
	}
	return Normalize(s), nil
}

// Encode serialises s for the slot. The output is deterministic for equal
// states, which lets the sync layer fingerprint its own writes.
func Encode(s State) ([]byte, error) {
	if s.CustomPresets == nil {
		s.CustomPresets = []preset.Preset{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	return data, nil
}
