package slot

import (
	"context"
	"sync"
)

// Hub is an in-process stand-in for shared durable storage. Each Open call
// returns a separate context; a write through one context is delivered to
// the watchers of every other context on the same key, in write order, and
// never to the writer itself.
type Hub struct {
	mu       sync.Mutex
	values   map[string][]byte
	watchers map[*MemorySlot][]*memWatcher
}

// memWatcher is one Watch registration. done is closed before ch, and send
// holds mu for the whole send, so ch is never closed under a pending send.
type memWatcher struct {
	mu     sync.Mutex
	ch     chan Change
	done   chan struct{}
	closed bool
}

func (w *memWatcher) send(change Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.ch <- change:
	case <-w.done:
	}
}

func (w *memWatcher) stop() {
	close(w.done)
	w.mu.Lock()
	w.closed = true
	close(w.ch)
	w.mu.Unlock()
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		values:   make(map[string][]byte),
		watchers: make(map[*MemorySlot][]*memWatcher),
	}
}

// Open returns a new context attached to key.
func (h *Hub) Open(key string) *MemorySlot {
	if key == "" {
		key = DefaultKey
	}
	return &MemorySlot{hub: h, key: key}
}

// Delete clears key and notifies every watching context.
func (h *Hub) Delete(key string) {
	h.mu.Lock()
	delete(h.values, key)
	targets := h.targets(key, nil)
	h.mu.Unlock()
	deliver(targets, Change{Key: key, Deleted: true})
}

func (h *Hub) targets(key string, except *MemorySlot) []*memWatcher {
	var out []*memWatcher
	for s, ws := range h.watchers {
		if s == except || s.key != key {
			continue
		}
		out = append(out, ws...)
	}
	return out
}

func deliver(targets []*memWatcher, change Change) {
	for _, w := range targets {
		w.send(Change{Key: change.Key, Value: cloneBytes(change.Value), Deleted: change.Deleted})
	}
}

// MemorySlot is one context's handle on a Hub key.
type MemorySlot struct {
	hub *Hub
	key string
	// writeMu keeps deliveries from one context in write order.
	writeMu sync.Mutex
}

// Key implements Slot.
func (s *MemorySlot) Key() string { return s.key }

// Read implements Slot.
func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return cloneBytes(s.hub.values[s.key]), nil
}

// Write implements Slot.
func (s *MemorySlot) Write(ctx context.Context, value []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.hub.mu.Lock()
	s.hub.values[s.key] = cloneBytes(value)
	targets := s.hub.targets(s.key, s)
	s.hub.mu.Unlock()

	deliver(targets, Change{Key: s.key, Value: value})
	return nil
}

// Watch implements Slot.
func (s *MemorySlot) Watch(ctx context.Context) (<-chan Change, error) {
	w := &memWatcher{ch: make(chan Change, 64), done: make(chan struct{})}
	s.hub.mu.Lock()
	s.hub.watchers[s] = append(s.hub.watchers[s], w)
	s.hub.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.hub.mu.Lock()
		ws := s.hub.watchers[s]
		for i, c := range ws {
			if c == w {
				ws = append(ws[:i], ws[i+1:]...)
				break
			}
		}
		if len(ws) == 0 {
			delete(s.hub.watchers, s)
		} else {
			s.hub.watchers[s] = ws
		}
		s.hub.mu.Unlock()
		w.stop()
	}()
	return w.ch, nil
}

// Close implements Slot.
func (s *MemorySlot) Close() error { return nil }
