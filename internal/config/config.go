package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/backdrop/internal/slot"
)

// Slot backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config is the resolved backdrop configuration.
type Config struct {
	Slot   SlotConfig
	Server ServerConfig
	Sync   SyncConfig
	Style  StyleConfig
}

// SlotConfig selects and configures the durable slot backend.
type SlotConfig struct {
	Backend   string
	Key       string
	Dir       string
	RedisAddr string
	RedisDB   int
	Debounce  time.Duration
}

// ServerConfig configures `backdrop serve` and the client that talks to it.
type ServerConfig struct {
	Listen string
}

// SyncConfig configures the periodic resync.
type SyncConfig struct {
	// ResyncInterval is how often a long-running process re-reads the slot.
	// Zero disables resync.
	ResyncInterval time.Duration
}

// StyleConfig configures preset validation.
type StyleConfig struct {
	StrictPatterns bool
}

const (
	defaultConfigPath     = "~/.config/backdrop/config.toml"
	defaultDir            = "~/.config/backdrop"
	defaultListen         = "127.0.0.1:7488"
	defaultRedisAddr      = "127.0.0.1:6379"
	defaultDebounce       = 100 * time.Millisecond
	defaultResyncInterval = 30 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Slot: SlotConfig{
			Backend:   BackendFile,
			Key:       slot.DefaultKey,
			Dir:       mustExpand(defaultDir),
			RedisAddr: defaultRedisAddr,
			Debounce:  defaultDebounce,
		},
		Server: ServerConfig{Listen: defaultListen},
		Sync:   SyncConfig{ResyncInterval: defaultResyncInterval},
	}
}

type rawConfig struct {
	Slot struct {
		Backend   string `toml:"backend"`
		Key       string `toml:"key"`
		Dir       string `toml:"dir"`
		RedisAddr string `toml:"redis_addr"`
		RedisDB   int    `toml:"redis_db"`
		Debounce  string `toml:"debounce"`
	} `toml:"slot"`
	Server struct {
		Listen string `toml:"listen"`
	} `toml:"server"`
	Sync struct {
		ResyncInterval string `toml:"resync_interval"`
	} `toml:"sync"`
	Style struct {
		StrictPatterns bool `toml:"strict_patterns"`
	} `toml:"style"`
}

// Load reads the config at path (or the default location when path is
// blank), falling back to defaults when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.ToLower(strings.TrimSpace(raw.Slot.Backend)); v != "" {
		cfg.Slot.Backend = v
	}
	if v := strings.TrimSpace(raw.Slot.Key); v != "" {
		cfg.Slot.Key = v
	}
	if v := strings.TrimSpace(raw.Slot.Dir); v != "" {
		if cfg.Slot.Dir, err = expandPath(v); err != nil {
			return Config{}, fmt.Errorf("slot.dir: %w", err)
		}
	}
	if v := strings.TrimSpace(raw.Slot.RedisAddr); v != "" {
		cfg.Slot.RedisAddr = v
	}
	cfg.Slot.RedisDB = raw.Slot.RedisDB
	if cfg.Slot.Debounce, err = parseDuration(raw.Slot.Debounce, defaultDebounce); err != nil {
		return Config{}, fmt.Errorf("slot.debounce: %w", err)
	}
	if v := strings.TrimSpace(raw.Server.Listen); v != "" {
		cfg.Server.Listen = v
	}
	if cfg.Sync.ResyncInterval, err = parseDuration(raw.Sync.ResyncInterval, defaultResyncInterval); err != nil {
		return Config{}, fmt.Errorf("sync.resync_interval: %w", err)
	}
	cfg.Style.StrictPatterns = raw.Style.StrictPatterns

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch c.Slot.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown slot backend %q", c.Slot.Backend)
	}
	if !slot.ValidKey(c.Slot.Key) {
		return fmt.Errorf("invalid slot key %q", c.Slot.Key)
	}
	if c.Slot.RedisDB < 0 {
		return fmt.Errorf("slot.redis_db must not be negative")
	}
	return nil
}

// SQLitePath is the database used by the sqlite backend.
func (c Config) SQLitePath() string {
	dir := c.Slot.Dir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultDir)
	}
	return filepath.Join(dir, "backdrop.db")
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q is negative", value)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
