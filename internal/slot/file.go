package slot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// FileSlot stores the payload in <dir>/<key>.json. Every process that opens
// the same directory and key shares the slot.
type FileSlot struct {
	mu       sync.Mutex
	key      string
	path     string
	debounce time.Duration
	logger   *log.Logger
}

// FileOptions configure a FileSlot.
type FileOptions struct {
	Dir      string
	Key      string
	Debounce time.Duration // zero uses 100ms
	Logger   *log.Logger
}

// NewFileSlot creates the slot directory if needed.
func NewFileSlot(opts FileOptions) (*FileSlot, error) {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	if !ValidKey(key) {
		return nil, fmt.Errorf("invalid slot key %q", key)
	}
	if opts.Dir == "" {
		return nil, fmt.Errorf("slot dir is empty")
	}
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve slot dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &FileSlot{
		key:      key,
		path:     filepath.Join(dir, key+".json"),
		debounce: opts.Debounce,
		logger:   loggerOrDefault(opts.Logger),
	}, nil
}

// Key implements Slot.
func (s *FileSlot) Key() string { return s.key }

// Path returns the payload file location.
func (s *FileSlot) Path() string { return s.path }

// Read implements Slot.
func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}
	return data, nil
}

// Write implements Slot. The payload goes to a temp file that is renamed
// over the target, so readers never see a partial write.
func (s *FileSlot) Write(ctx context.Context, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+s.key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp slot: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp slot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}

// Watch implements Slot. Writes made through this FileSlot are echoed back
// like any other write.
func (s *FileSlot) Watch(ctx context.Context) (<-chan Change, error) {
	return watchFiles(ctx, s.logger, filepath.Dir(s.path), []string{s.path}, s.debounce, func() (Change, bool) {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Change{Key: s.key, Deleted: true}, true
			}
			s.logger.Warn("read slot after change", "path", s.path, "err", err)
			return Change{}, false
		}
		return Change{Key: s.key, Value: data}, true
	})
}

// Close implements Slot.
func (s *FileSlot) Close() error { return nil }
