package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/five82/backdrop/internal/prefs"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/style"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultListen {
		t.Fatalf("host = %q, want %q", u.Host, defaultListen)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_Endpoints(t *testing.T) {
	t.Parallel()

	var gotSelection selectionRequest
	var gotUserAgent string
	var gotMethods []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotMethods = append(gotMethods, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/preference":
			_ = json.NewEncoder(w).Encode(Preference{State: prefs.State{SelectedID: "paper"}, Current: preset.Default()})
		case "/api/presets":
			_ = json.NewEncoder(w).Encode(preset.BuiltIns())
		case "/api/style":
			_ = json.NewEncoder(w).Encode(style.Declaration{BackgroundColor: "#f8fafc"})
		case "/api/presets/aurora/style":
			_ = json.NewEncoder(w).Encode(style.Declaration{BackgroundImage: "radial-gradient(x)"})
		case "/api/preference/selection":
			_ = json.NewDecoder(r.Body).Decode(&gotSelection)
			_ = json.NewEncoder(w).Encode(Preference{State: prefs.State{SelectedID: gotSelection.ID}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	pref, err := c.FetchPreference(ctx)
	if err != nil {
		t.Fatalf("FetchPreference returned error: %v", err)
	}
	if pref.State.SelectedID != "paper" || pref.Current.ID != "paper" {
		t.Fatalf("FetchPreference = %+v, want paper", pref)
	}

	catalog, err := c.FetchCatalog(ctx)
	if err != nil {
		t.Fatalf("FetchCatalog returned error: %v", err)
	}
	if len(catalog) != len(preset.BuiltIns()) {
		t.Fatalf("len(catalog) = %d, want %d", len(catalog), len(preset.BuiltIns()))
	}

	decl, err := c.FetchStyle(ctx, "")
	if err != nil {
		t.Fatalf("FetchStyle returned error: %v", err)
	}
	if decl.BackgroundColor != "#f8fafc" {
		t.Fatalf("BackgroundColor = %q, want #f8fafc", decl.BackgroundColor)
	}
	decl, err = c.FetchStyle(ctx, "aurora")
	if err != nil {
		t.Fatalf("FetchStyle(aurora) returned error: %v", err)
	}
	if decl.BackgroundImage != "radial-gradient(x)" {
		t.Fatalf("BackgroundImage = %q", decl.BackgroundImage)
	}

	pref, err = c.Select(ctx, "sunset")
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if gotSelection.ID != "sunset" || pref.State.SelectedID != "sunset" {
		t.Fatalf("selection sent %q, response %q; want sunset", gotSelection.ID, pref.State.SelectedID)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	if gotMethods[len(gotMethods)-1] != "PUT /api/preference/selection" {
		t.Fatalf("last request = %q, want PUT selection", gotMethods[len(gotMethods)-1])
	}
}

func TestClient_MapsErrorStatuses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusNotFound
		switch r.Method {
		case http.MethodPost:
			status = http.StatusConflict
		case http.MethodPut:
			status = http.StatusBadRequest
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "nope"})
	}))
	t.Cleanup(server.Close)

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := context.Background()

	err = c.DeleteCustom(ctx, "x")
	if !errors.Is(err, preset.ErrNotFound) {
		t.Fatalf("DeleteCustom error = %v, want ErrNotFound", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "nope" {
		t.Fatalf("error = %#v, want APIError with message", err)
	}

	_, err = c.AddCustom(ctx, preset.Preset{ID: "paper"})
	if !errors.Is(err, preset.ErrReservedID) {
		t.Fatalf("AddCustom error = %v, want ErrReservedID", err)
	}

	err = c.UpdateCustom(ctx, "x", preset.Preset{})
	if !errors.Is(err, preset.ErrInvalidPreset) {
		t.Fatalf("UpdateCustom error = %v, want ErrInvalidPreset", err)
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchPreference(context.Background()); err == nil {
		t.Fatalf("FetchPreference on nil client returned nil error")
	}
}
