package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/five82/backdrop/internal/prefs"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/store"
	"github.com/five82/backdrop/internal/style"
)

// Preferences is the part of *store.Store the server uses.
type Preferences interface {
	State() prefs.State
	Catalog() []preset.Preset
	Style() style.Declaration
	StyleOf(id string) (style.Declaration, error)
	Select(ctx context.Context, id string) error
	AddCustom(ctx context.Context, p preset.Preset) (preset.Preset, error)
	UpdateCustom(ctx context.Context, id string, p preset.Preset) error
	DeleteCustom(ctx context.Context, id string) error
	Subscribe(fn func(store.Event)) (cancel func())
}

// Server exposes a preference store over HTTP.
type Server struct {
	prefs  Preferences
	logger *log.Logger
}

// New returns a server for p. A nil logger uses log.Default().
func New(p Preferences, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{prefs: p, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.listPresets)
		r.Post("/presets", s.createPreset)
		r.Put("/presets/{id}", s.updatePreset)
		r.Delete("/presets/{id}", s.deletePreset)
		r.Get("/presets/{id}/style", s.presetStyle)

		r.Get("/preference", s.getPreference)
		r.Put("/preference/selection", s.putSelection)

		r.Get("/style", s.currentStyle)
		r.Get("/style.css", s.currentCSS)

		r.Get("/events", s.events)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving preferences", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
