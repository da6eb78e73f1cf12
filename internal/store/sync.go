package store

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/five82/backdrop/internal/prefs"
	"github.com/five82/backdrop/internal/slot"
)

// mutate applies fn to a copy of the state and, when the result differs,
// persists the whole snapshot, swaps it in and notifies subscribers. A failed
// write leaves the state untouched.
func (s *Store) mutate(ctx context.Context, fn func(prefs.State) (prefs.State, error)) error {
	s.mu.Lock()
	next, err := fn(s.state.Clone())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if next.Equal(s.state) {
		s.mu.Unlock()
		return nil
	}

	data, err := prefs.Encode(next)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.echo, s.echoSet = xxhash.Sum64(data), true
	if err := s.slot.Write(ctx, data); err != nil {
		s.echoSet = false
		s.mu.Unlock()
		return fmt.Errorf("persist preferences: %w", err)
	}

	s.state = next
	s.seq++
	ev := Event{State: next.Clone(), Origin: OriginLocal, Seq: s.seq}
	s.mu.Unlock()

	s.logger.Debug("preferences saved", "key", s.slot.Key(), "selected", next.SelectedID)
	s.publish(ev)
	return nil
}

// Observe applies a change written to the slot by another context and
// reports whether the state changed. The echo of this Store's own last
// write is dropped once; anything else is decoded, normalised and applied
// only when it differs from the current state. Observed changes are never
// written back.
func (s *Store) Observe(change slot.Change) bool {
	if change.Key != s.slot.Key() {
		return false
	}

	s.mu.Lock()
	if s.echoSet {
		s.echoSet = false
		if !change.Deleted && xxhash.Sum64(change.Value) == s.echo {
			s.mu.Unlock()
			s.logger.Debug("ignoring echo of own write", "key", change.Key)
			return false
		}
	}
	var raw []byte
	if !change.Deleted {
		raw = change.Value
	}
	return s.applyExternalLocked(raw)
}

// Reload re-reads the slot and applies it like an observed change. It is
// used to catch up after missed notifications.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	raw, err := s.slot.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("reload preferences: %w", err)
	}
	s.mu.Lock()
	return s.applyExternalLocked(raw), nil
}

// applyExternalLocked must be called with s.mu held and releases it. Once
// the slot has been read back, the pending echo token no longer describes
// it and is dropped.
func (s *Store) applyExternalLocked(raw []byte) bool {
	s.echoSet = false
	next := s.decode(raw)
	if next.Equal(s.state) {
		s.mu.Unlock()
		return false
	}
	s.state = next
	s.seq++
	ev := Event{State: next.Clone(), Origin: OriginExternal, Seq: s.seq}
	s.mu.Unlock()

	s.logger.Info("preferences changed elsewhere", "key", s.slot.Key(), "selected", next.SelectedID)
	s.publish(ev)
	return true
}
