package store

import "github.com/five82/backdrop/internal/prefs"

// Origin tells subscribers where a state change came from.
type Origin string

const (
	// OriginLocal marks a mutation made through this Store.
	OriginLocal Origin = "local"
	// OriginExternal marks a change written by another context and observed
	// through the slot.
	OriginExternal Origin = "external"
)

// Event is delivered to subscribers after every state change.
type Event struct {
	State  prefs.State `json:"state"`
	Origin Origin      `json:"origin"`
	// Seq increases with every change applied by this Store. Subscribers
	// that hand events to other goroutines can use it to drop stale ones.
	Seq uint64 `json:"seq"`
}

// Subscribe registers fn for every subsequent Event and returns a function
// that removes it. fn runs on the goroutine that made the change, after the
// Store has released its lock, so it may read from or mutate the Store. It
// should not block.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(Event{State: ev.State.Clone(), Origin: ev.Origin, Seq: ev.Seq})
	}
}
