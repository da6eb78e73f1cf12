package client

import (
	"github.com/five82/backdrop/internal/prefs"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/style"
)

// Preference mirrors the body of GET /api/preference.
type Preference struct {
	State   prefs.State       `json:"state"`
	Current preset.Preset     `json:"current"`
	Style   style.Declaration `json:"style"`
}

type selectionRequest struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}
