package preset

import "errors"

var (
	// ErrUnknownPreset is returned when an id does not resolve in the merged catalog.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrReservedID is returned when a custom preset reuses a built-in id.
	ErrReservedID = errors.New("preset id is reserved")
	// ErrDuplicateID is returned when a custom preset reuses another custom id.
	ErrDuplicateID = errors.New("preset id already exists")
	// ErrNotFound is returned when updating or deleting a custom preset that does not exist.
	ErrNotFound = errors.New("custom preset not found")
	// ErrInvalidPreset is returned when a preset fails validation.
	ErrInvalidPreset = errors.New("invalid preset")
)
