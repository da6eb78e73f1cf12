package slot

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteSlot keeps the payload in a SQLite database so several slots can
// share one file. Other processes are noticed through changes to the
// database and its WAL file.
type SQLiteSlot struct {
	db       *sql.DB
	key      string
	path     string
	debounce time.Duration
	logger   *log.Logger
}

// SQLiteOptions configure a SQLiteSlot.
type SQLiteOptions struct {
	Path     string
	Key      string
	Debounce time.Duration
	Logger   *log.Logger
}

// NewSQLiteSlot opens (and if needed creates) the database at opts.Path.
func NewSQLiteSlot(ctx context.Context, opts SQLiteOptions) (*SQLiteSlot, error) {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	if !ValidKey(key) {
		return nil, fmt.Errorf("invalid slot key %q", key)
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		sqliteSchema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
	}

	return &SQLiteSlot{
		db:       db,
		key:      key,
		path:     path,
		debounce: opts.Debounce,
		logger:   loggerOrDefault(opts.Logger),
	}, nil
}

// Key implements Slot.
func (s *SQLiteSlot) Key() string { return s.key }

// Read implements Slot.
func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}
	return value, nil
}

// Write implements Slot.
func (s *SQLiteSlot) Write(ctx context.Context, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// Delete removes the slot row.
func (s *SQLiteSlot) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

// Watch implements Slot. WAL checkpoints and writes to unrelated keys touch
// the same files, so a change is only reported when this key's row differs
// from the last one seen.
func (s *SQLiteSlot) Watch(ctx context.Context) (<-chan Change, error) {
	var mu sync.Mutex
	last, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	present := last != nil

	return watchFiles(ctx, s.logger, filepath.Dir(s.path), []string{s.path, s.path + "-wal"}, s.debounce, func() (Change, bool) {
		mu.Lock()
		defer mu.Unlock()

		value, err := s.Read(ctx)
		if err != nil {
			s.logger.Warn("read slot after change", "path", s.path, "err", err)
			return Change{}, false
		}
		if value == nil {
			if !present {
				return Change{}, false
			}
			present, last = false, nil
			return Change{Key: s.key, Deleted: true}, true
		}
		if present && bytes.Equal(value, last) {
			return Change{}, false
		}
		present, last = true, value
		return Change{Key: s.key, Value: value}, true
	})
}

// Close implements Slot.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
