package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/five82/backdrop/internal/config"
	"github.com/five82/backdrop/internal/server"
	"github.com/five82/backdrop/internal/slot"
	"github.com/five82/backdrop/internal/store"
	"github.com/five82/backdrop/internal/ui"
)

// Options configure how the preference store is opened.
type Options struct {
	ConfigPath string
	Logger     *log.Logger
	// Watch keeps the store in step with other processes. One-shot commands
	// leave it off.
	Watch bool
}

// Env is an opened configuration, slot and store.
type Env struct {
	Config config.Config
	Logger *log.Logger
	Slot   slot.Slot
	Store  *store.Store
}

// Open loads the config and opens the configured slot and store.
func Open(ctx context.Context, opts Options) (*Env, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return OpenWithConfig(ctx, cfg, logger, opts.Watch)
}

// OpenWithConfig is Open with an already loaded config.
func OpenWithConfig(ctx context.Context, cfg config.Config, logger *log.Logger, watch bool) (*Env, error) {
	if logger == nil {
		logger = log.Default()
	}
	sl, err := OpenSlot(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, sl, store.Options{
		Logger:         logger,
		StrictPatterns: cfg.Style.StrictPatterns,
		NoWatch:        !watch,
	})
	if err != nil {
		_ = sl.Close()
		return nil, err
	}
	return &Env{Config: cfg, Logger: logger, Slot: sl, Store: st}, nil
}

// OpenSlot opens the backend named by cfg.Slot.Backend.
func OpenSlot(ctx context.Context, cfg config.Config, logger *log.Logger) (slot.Slot, error) {
	switch cfg.Slot.Backend {
	case config.BackendFile, "":
		s, err := slot.NewFileSlot(slot.FileOptions{
			Dir:      cfg.Slot.Dir,
			Key:      cfg.Slot.Key,
			Debounce: cfg.Slot.Debounce,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open file slot: %w", err)
		}
		logger.Debug("using file slot", "path", s.Path())
		return s, nil
	case config.BackendSQLite:
		s, err := slot.NewSQLiteSlot(ctx, slot.SQLiteOptions{
			Path:     cfg.SQLitePath(),
			Key:      cfg.Slot.Key,
			Debounce: cfg.Slot.Debounce,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open sqlite slot: %w", err)
		}
		logger.Debug("using sqlite slot", "path", cfg.SQLitePath())
		return s, nil
	case config.BackendRedis:
		s, err := slot.NewRedisSlot(ctx, slot.RedisOptions{
			Addr:   cfg.Slot.RedisAddr,
			DB:     cfg.Slot.RedisDB,
			Key:    cfg.Slot.Key,
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis slot: %w", err)
		}
		logger.Debug("using redis slot", "addr", cfg.Slot.RedisAddr, "db", cfg.Slot.RedisDB)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown slot backend %q", cfg.Slot.Backend)
	}
}

// Close stops the store and releases the slot.
func (e *Env) Close() error {
	return errors.Join(e.Store.Close(), e.Slot.Close())
}

// Serve runs the HTTP server with periodic resync until ctx is cancelled.
func (e *Env) Serve(ctx context.Context, listen string) error {
	if listen == "" {
		listen = e.Config.Server.Listen
	}
	StartResync(ctx, e.Store, e.Config.Sync.ResyncInterval, e.Logger)
	return server.New(e.Store, e.Logger).ListenAndServe(ctx, listen)
}

// Pick runs the interactive picker with periodic resync.
func (e *Env) Pick(ctx context.Context, themeName string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartResync(ctx, e.Store, e.Config.Sync.ResyncInterval, e.Logger)
	return ui.Run(ctx, ui.Options{Store: e.Store, Logger: e.Logger, ThemeName: themeName})
}
