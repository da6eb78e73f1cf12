package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/style"
)

// Client talks to a running `backdrop serve`.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultListen    = "127.0.0.1:7488"
	defaultUserAgent = "backdrop/0.1"
	requestTimeout   = 5 * time.Second
)

// New builds a Client for the given host:port or URL. Blank uses the
// default listen address.
func New(addr string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchPreference returns the state, the current preset and its style.
func (c *Client) FetchPreference(ctx context.Context) (Preference, error) {
	var payload Preference
	if err := c.do(ctx, http.MethodGet, "/api/preference", nil, &payload); err != nil {
		return Preference{}, err
	}
	return payload, nil
}

// FetchCatalog returns the merged catalog.
func (c *Client) FetchCatalog(ctx context.Context) ([]preset.Preset, error) {
	var payload []preset.Preset
	if err := c.do(ctx, http.MethodGet, "/api/presets", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchStyle returns the compiled declaration of the current preset, or of
// id when it is not blank.
func (c *Client) FetchStyle(ctx context.Context, id string) (style.Declaration, error) {
	path := "/api/style"
	if id = strings.TrimSpace(id); id != "" {
		path = "/api/presets/" + url.PathEscape(id) + "/style"
	}
	var payload style.Declaration
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return style.Declaration{}, err
	}
	return payload, nil
}

// Select changes the selection and returns the resulting preference.
func (c *Client) Select(ctx context.Context, id string) (Preference, error) {
	var payload Preference
	if err := c.do(ctx, http.MethodPut, "/api/preference/selection", selectionRequest{ID: id}, &payload); err != nil {
		return Preference{}, err
	}
	return payload, nil
}

// AddCustom creates a custom preset and returns it as stored.
func (c *Client) AddCustom(ctx context.Context, p preset.Preset) (preset.Preset, error) {
	var payload preset.Preset
	if err := c.do(ctx, http.MethodPost, "/api/presets", p, &payload); err != nil {
		return preset.Preset{}, err
	}
	return payload, nil
}

// UpdateCustom replaces the custom preset id.
func (c *Client) UpdateCustom(ctx context.Context, id string, p preset.Preset) error {
	return c.do(ctx, http.MethodPut, "/api/presets/"+url.PathEscape(id), p, nil)
}

// DeleteCustom removes the custom preset id.
func (c *Client) DeleteCustom(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/presets/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Path: rel.Path, Status: resp.StatusCode}
		var e errorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError is returned for non-2xx responses. It matches the preset
// sentinel errors the server maps to the same status, so callers can use
// errors.Is as they would against a local store.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// Is reports whether target is a preset sentinel for this status.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusNotFound:
		return errors.Is(target, preset.ErrNotFound) || errors.Is(target, preset.ErrUnknownPreset)
	case http.StatusConflict:
		return errors.Is(target, preset.ErrReservedID) || errors.Is(target, preset.ErrDuplicateID)
	case http.StatusBadRequest:
		return errors.Is(target, preset.ErrInvalidPreset)
	}
	return false
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		trimmed = defaultListen
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server address %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
