package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/backdrop/internal/prefs"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/store"
	"github.com/five82/backdrop/internal/style"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Preferences is the part of *store.Store the picker uses.
type Preferences interface {
	State() prefs.State
	Catalog() []preset.Preset
	Select(ctx context.Context, id string) error
	DeleteCustom(ctx context.Context, id string) error
	Subscribe(fn func(store.Event)) (cancel func())
}

// Options configure the picker.
type Options struct {
	Context   context.Context
	Store     Preferences
	Logger    *log.Logger
	ThemeName string
}

// Model is the Bubble Tea model of the preset picker.
type Model struct {
	ctx    context.Context
	store  Preferences
	logger *log.Logger

	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	showHelp bool

	catalog  []preset.Preset
	selected string
	cursor   int
	lastSeq  uint64

	status    string
	statusErr bool
}

// eventMsg carries a store event into the program.
type eventMsg store.Event

// actionDoneMsg reports the result of a store call made from a key press.
type actionDoneMsg struct {
	verb string
	id   string
	err  error
}

// New creates the picker model from the store's current state.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	m := Model{
		ctx:    ctx,
		store:  opts.Store,
		logger: logger,
		theme:  GetTheme(opts.ThemeName),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if opts.Store != nil {
		m.catalog = opts.Store.Catalog()
		m.selected = opts.Store.State().SelectedID
		m.cursor = m.indexOf(m.selected)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		if msg.Seq <= m.lastSeq {
			return m, nil
		}
		m.lastSeq = msg.Seq
		m.applyState(msg.State)
		if msg.Origin == store.OriginExternal {
			m.setStatus(fmt.Sprintf("Changed elsewhere: now %s", m.selected), false)
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("%s %s: %v", msg.verb, msg.id, msg.err), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s %s", msg.verb, msg.id), false)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), msg.String() == "esc", msg.String() == "q":
			m.showHelp = false
			return m, nil
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.catalog)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(0, len(m.catalog)-1)
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.setStatus("Theme: "+m.theme.Name, false)
	case key.Matches(msg, m.keys.Select):
		if p, ok := m.highlighted(); ok {
			return m, m.selectCmd(p.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		p, ok := m.highlighted()
		if !ok {
			return m, nil
		}
		if preset.IsBuiltIn(p.ID) {
			m.setStatus("Built-in presets cannot be deleted", true)
			return m, nil
		}
		return m, m.deleteCmd(p.ID)
	case key.Matches(msg, m.keys.Copy):
		if p, ok := m.highlighted(); ok {
			return m, copyCmd(p)
		}
	}
	return m, nil
}

func copyCmd(p preset.Preset) tea.Cmd {
	return func() tea.Msg {
		css := style.Compile(p).CSS("body")
		return actionDoneMsg{verb: "Copied CSS of", id: p.ID, err: writeClipboard(css)}
	}
}

func (m Model) selectCmd(id string) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		return actionDoneMsg{verb: "Selected", id: id, err: st.Select(ctx, id)}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		return actionDoneMsg{verb: "Deleted", id: id, err: st.DeleteCustom(ctx, id)}
	}
}

// applyState refreshes the list, keeping the cursor on the same preset when
// it still exists.
func (m *Model) applyState(st prefs.State) {
	var keep string
	if p, ok := m.highlighted(); ok {
		keep = p.ID
	}
	m.catalog = preset.Merge(st.CustomPresets)
	m.selected = st.SelectedID
	if idx := m.indexOf(keep); keep != "" && idx >= 0 {
		m.cursor = idx
	} else if m.cursor >= len(m.catalog) {
		m.cursor = max(0, len(m.catalog)-1)
	}
}

func (m Model) highlighted() (preset.Preset, bool) {
	if m.cursor < 0 || m.cursor >= len(m.catalog) {
		return preset.Preset{}, false
	}
	return m.catalog[m.cursor], true
}

func (m Model) indexOf(id string) int {
	for i, p := range m.catalog {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	if isErr {
		m.logger.Warn("picker action failed", "msg", text)
	}
}

// Run starts the picker and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("picker requires a preference store")
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	cancel := opts.Store.Subscribe(func(ev store.Event) {
		p.Send(eventMsg(ev))
	})
	defer cancel()

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
