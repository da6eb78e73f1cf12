package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/five82/backdrop/internal/prefs"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/slot"
	"github.com/five82/backdrop/internal/style"
)

// Options configure a Store.
type Options struct {
	Logger *log.Logger
	// StrictPatterns rejects custom presets with an unknown pattern type
	// instead of letting them compile to a flat fill.
	StrictPatterns bool
	// NoWatch skips watching the slot. One-shot commands use it; the Store
	// then only sees other contexts' writes through Reload.
	NoWatch bool
}

// Store owns the preference state of one context. It is safe for
// concurrent use.
type Store struct {
	slot     slot.Slot
	logger   *log.Logger
	compiler style.Compiler
	strict   bool

	mu    sync.RWMutex
	state prefs.State
	seq   uint64
	// echo is the fingerprint of the last payload this Store wrote and has
	// not yet seen come back through the slot.
	echo    uint64
	echoSet bool

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Open loads the persisted state from sl, or the default state when the
// slot is empty or unreadable, and starts watching the slot for writes from
// other contexts. Loading never writes back. ctx bounds the initial load
// only; watching continues until Close.
func Open(ctx context.Context, sl slot.Slot, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		slot:     sl,
		logger:   logger,
		compiler: style.Compiler{Logger: logger},
		strict:   opts.StrictPatterns,
		subs:     make(map[int]func(Event)),
	}

	raw, err := sl.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	s.state = s.decode(raw)
	logger.Debug("preferences loaded", "key", sl.Key(), "selected", s.state.SelectedID, "custom", len(s.state.CustomPresets))

	if opts.NoWatch {
		s.cancel = func() {}
		return s, nil
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	changes, err := sl.Watch(watchCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("watch preferences: %w", err)
	}
	s.cancel = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for change := range changes {
			s.Observe(change)
		}
	}()
	return s, nil
}

// Close stops watching the slot. It does not close the slot itself.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
	return nil
}

// Key returns the slot key this Store persists to.
func (s *Store) Key() string { return s.slot.Key() }

// State returns a copy of the current preference state.
func (s *Store) State() prefs.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Current returns the selected preset. A selection that does not resolve
// (which completed mutations never leave behind) yields the default
// built-in.
func (s *Store) Current() preset.Preset {
	s.mu.RLock()
	st := s.state
	p, ok := preset.ResolveOrDefault(st.SelectedID, st.CustomPresets)
	s.mu.RUnlock()
	if !ok {
		s.logger.Warn("selected preset does not resolve, using default", "selected", st.SelectedID, "default", p.ID)
	}
	return p
}

// Catalog returns the built-ins followed by the custom presets.
func (s *Store) Catalog() []preset.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return preset.Merge(s.state.CustomPresets)
}

// Style compiles the selected preset.
func (s *Store) Style() style.Declaration {
	return s.compiler.Compile(s.Current())
}

// StyleOf compiles the preset with the given id.
func (s *Store) StyleOf(id string) (style.Declaration, error) {
	s.mu.RLock()
	p, err := preset.Resolve(id, s.state.CustomPresets)
	s.mu.RUnlock()
	if err != nil {
		return style.Declaration{}, err
	}
	return s.compiler.Compile(p), nil
}

// Select makes id the active preset. Selecting the current preset is a
// no-op; an id missing from the catalog fails with preset.ErrUnknownPreset.
func (s *Store) Select(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st prefs.State) (prefs.State, error) {
		if _, err := preset.Resolve(id, st.CustomPresets); err != nil {
			return st, err
		}
		st.SelectedID = id
		return st, nil
	})
}

// AddCustom appends p to the custom presets and selects it. An empty id is
// replaced with a generated one; the stored preset is returned.
func (s *Store) AddCustom(ctx context.Context, p preset.Preset) (preset.Preset, error) {
	p = p.Clone()
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = "custom-" + uuid.NewString()
	}
	if preset.IsBuiltIn(p.ID) {
		return preset.Preset{}, fmt.Errorf("%w: %q", preset.ErrReservedID, p.ID)
	}
	if err := preset.Validate(p, s.strict); err != nil {
		return preset.Preset{}, err
	}

	err := s.mutate(ctx, func(st prefs.State) (prefs.State, error) {
		if preset.IndexOf(st.CustomPresets, p.ID) >= 0 {
			return st, fmt.Errorf("%w: %q", preset.ErrDuplicateID, p.ID)
		}
		st.CustomPresets = append(st.CustomPresets, p)
		st.SelectedID = p.ID
		return st, nil
	})
	if err != nil {
		return preset.Preset{}, err
	}
	return p.Clone(), nil
}

// UpdateCustom replaces the custom preset id with p, keeping its id and
// position. Built-ins cannot be updated and report preset.ErrNotFound like
// any other missing id.
func (s *Store) UpdateCustom(ctx context.Context, id string, p preset.Preset) error {
	p = p.Clone()
	p.ID = id
	if err := preset.Validate(p, s.strict); err != nil {
		return err
	}
	return s.mutate(ctx, func(st prefs.State) (prefs.State, error) {
		idx := preset.IndexOf(st.CustomPresets, id)
		if idx < 0 {
			return st, fmt.Errorf("%w: %q", preset.ErrNotFound, id)
		}
		st.CustomPresets[idx] = p
		return st, nil
	})
}

// DeleteCustom removes the custom preset id. Deleting the selected preset
// selects the default built-in in the same change.
func (s *Store) DeleteCustom(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st prefs.State) (prefs.State, error) {
		idx := preset.IndexOf(st.CustomPresets, id)
		if idx < 0 {
			return st, fmt.Errorf("%w: %q", preset.ErrNotFound, id)
		}
		st.CustomPresets = append(st.CustomPresets[:idx], st.CustomPresets[idx+1:]...)
		if st.SelectedID == id {
			st.SelectedID = preset.Default().ID
		}
		return st, nil
	})
}

func (s *Store) decode(raw []byte) prefs.State {
	st, err := prefs.Decode(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable preferences", "key", s.slot.Key(), "err", err)
	}
	return st
}
