package slot

import (
	"context"
	"regexp"
)

// Change reports that another context wrote (or cleared) a slot.
type Change struct {
	Key     string
	Value   []byte
	Deleted bool
}

// Slot is a single named durable record shared by every context that opens
// the same key.
type Slot interface {
	// Key returns the slot name.
	Key() string
	// Read returns the stored payload, or nil when the slot is empty.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored payload.
	Write(ctx context.Context, value []byte) error
	// Watch delivers changes to the slot until ctx is cancelled. Backends that
	// cannot tell their own writes apart may echo them; consumers must
	// tolerate that.
	Watch(ctx context.Context) (<-chan Change, error)
	// Close releases backend resources.
	Close() error
}

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "backdrop.background"

var keyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidKey reports whether key is usable as a slot name on every backend
// (it doubles as a file name for the file backend).
func ValidKey(key string) bool {
	return keyRegex.MatchString(key)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
