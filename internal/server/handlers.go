package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/five82/backdrop/internal/prefs"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/style"
)

// PreferenceResponse is the body of GET /api/preference.
type PreferenceResponse struct {
	State   prefs.State       `json:"state"`
	Current preset.Preset     `json:"current"`
	Style   style.Declaration `json:"style"`
}

// SelectionRequest is the body of PUT /api/preference/selection.
type SelectionRequest struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const maxBodyBytes = 1 << 20

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.prefs.Catalog())
}

func (s *Server) createPreset(w http.ResponseWriter, r *http.Request) {
	var p preset.Preset
	if !decodeBody(w, r, &p) {
		return
	}
	created, err := s.prefs.AddCustom(r.Context(), p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updatePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p preset.Preset
	if !decodeBody(w, r, &p) {
		return
	}
	if err := s.prefs.UpdateCustom(r.Context(), id, p); err != nil {
		s.writeError(w, err)
		return
	}
	updated, err := preset.Resolve(id, s.prefs.State().CustomPresets)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePreset(w http.ResponseWriter, r *http.Request) {
	if err := s.prefs.DeleteCustom(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) presetStyle(w http.ResponseWriter, r *http.Request) {
	decl, err := s.prefs.StyleOf(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decl)
}

func (s *Server) getPreference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.preference())
}

func (s *Server) putSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.prefs.Select(r.Context(), req.ID); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.preference())
}

func (s *Server) currentStyle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.prefs.Style())
}

func (s *Server) currentCSS(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("selector")
	if selector != "" && !style.ValidSelector(selector) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid selector"})
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.prefs.Style().CSS(selector)))
}

// preference derives everything from one State snapshot so the parts agree
// even while another request is mutating the store.
func (s *Server) preference() PreferenceResponse {
	st := s.prefs.State()
	current := st.Current()
	return PreferenceResponse{
		State:   st,
		Current: current,
		Style:   style.Compiler{Logger: s.logger}.Compile(current),
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, preset.ErrUnknownPreset), errors.Is(err, preset.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, preset.ErrReservedID), errors.Is(err, preset.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, preset.ErrInvalidPreset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
