package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/backdrop/internal/prefs"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/store"
)

type fakePrefs struct {
	state    prefs.State
	selected []string
	deleted  []string
}

func (f *fakePrefs) State() prefs.State { return f.state.Clone() }
func (f *fakePrefs) Catalog() []preset.Preset { return preset.Merge(f.state.CustomPresets) }
func (f *fakePrefs) Subscribe(func(store.Event)) func() { return func() {} }

func (f *fakePrefs) Select(_ context.Context, id string) error {
	f.selected = append(f.selected, id)
	f.state.SelectedID = id
	return nil
}

func (f *fakePrefs) DeleteCustom(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestModel(t *testing.T, st prefs.State) (Model, *fakePrefs) {
	t.Helper()
	f := &fakePrefs{state: st}
	m := New(Options{Store: f, Logger: log.New(io.Discard)})
	return m, f
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m, cmd
}

func TestNew_CursorStartsOnSelection(t *testing.T) {
	m, _ := newTestModel(t, prefs.State{SelectedID: "aurora"})
	p, ok := m.highlighted()
	if !ok || p.ID != "aurora" {
		t.Fatalf("highlighted = %q, want aurora", p.ID)
	}
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t, prefs.Default())
	n := len(preset.BuiltIns())

	m, _ = press(t, m, "j", "j")
	if m.cursor != 2 {
		t.Fatalf("cursor after jj = %d, want 2", m.cursor)
	}
	m, _ = press(t, m, "k", "up", "up")
	if m.cursor != 0 {
		t.Fatalf("cursor after moving up past top = %d, want 0", m.cursor)
	}
	m, _ = press(t, m, "G")
	if m.cursor != n-1 {
		t.Fatalf("cursor after G = %d, want %d", m.cursor, n-1)
	}
	m, _ = press(t, m, "down")
	if m.cursor != n-1 {
		t.Fatalf("cursor moved past bottom: %d", m.cursor)
	}
	m, _ = press(t, m, "g")
	if m.cursor != 0 {
		t.Fatalf("cursor after g = %d, want 0", m.cursor)
	}
}

func TestEnterSelectsHighlighted(t *testing.T) {
	m, f := newTestModel(t, prefs.Default())
	m, cmd := press(t, m, "j", "enter")
	if cmd == nil {
		t.Fatalf("enter returned no command")
	}
	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("command result = %#v, want successful actionDoneMsg", msg)
	}
	want := preset.BuiltIns()[1].ID
	if len(f.selected) != 1 || f.selected[0] != want {
		t.Fatalf("selected = %v, want [%s]", f.selected, want)
	}
	next, _ := m.Update(done)
	if s := next.(Model).status; !strings.Contains(s, want) {
		t.Fatalf("status = %q, want it to mention %q", s, want)
	}
}

func TestDeleteRefusesBuiltIn(t *testing.T) {
	m, f := newTestModel(t, prefs.Default())
	m, cmd := press(t, m, "d")
	if cmd != nil {
		t.Fatalf("delete of built-in returned a command")
	}
	if !m.statusErr || len(f.deleted) != 0 {
		t.Fatalf("status = %q (err=%v), deleted = %v", m.status, m.statusErr, f.deleted)
	}
}

func TestDeleteCustom(t *testing.T) {
	custom := preset.Preset{ID: "mine", Name: "Mine", Variant: preset.VariantSolid, Parameters: preset.Parameters{Colors: []string{"#123456"}}}
	m, f := newTestModel(t, prefs.State{SelectedID: "mine", CustomPresets: []preset.Preset{custom}})
	_, cmd := press(t, m, "d")
	if cmd == nil {
		t.Fatalf("delete returned no command")
	}
	cmd()
	if len(f.deleted) != 1 || f.deleted[0] != "mine" {
		t.Fatalf("deleted = %v, want [mine]", f.deleted)
	}
}

func TestCopyWritesCSS(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	custom := preset.Preset{ID: "mine", Name: "Mine", Variant: preset.VariantSolid, Parameters: preset.Parameters{Colors: []string{"#123456"}}}
	m, _ := newTestModel(t, prefs.State{SelectedID: "mine", CustomPresets: []preset.Preset{custom}})
	_, cmd := press(t, m, "y")
	if cmd == nil {
		t.Fatalf("copy returned no command")
	}
	msg, ok := cmd().(actionDoneMsg)
	if !ok || msg.err != nil || msg.id != "mine" {
		t.Fatalf("copy msg = %#v", msg)
	}
	if !strings.Contains(copied, "background-color: #123456;") {
		t.Fatalf("clipboard = %q", copied)
	}
}

func TestEventUpdatesListAndDropsStale(t *testing.T) {
	m, _ := newTestModel(t, prefs.Default())
	custom := preset.Preset{ID: "mine", Name: "Mine", Variant: preset.VariantSolid}

	next, _ := m.Update(eventMsg(store.Event{
		State:  prefs.State{SelectedID: "mine", CustomPresets: []preset.Preset{custom}},
		Origin: store.OriginExternal,
		Seq:    2,
	}))
	m = next.(Model)
	if m.selected != "mine" || len(m.catalog) != len(preset.BuiltIns())+1 {
		t.Fatalf("selected = %q, catalog = %d entries", m.selected, len(m.catalog))
	}
	if !strings.Contains(m.status, "elsewhere") {
		t.Fatalf("status = %q, want external change notice", m.status)
	}

	next, _ = m.Update(eventMsg(store.Event{State: prefs.Default(), Origin: store.OriginLocal, Seq: 1}))
	m = next.(Model)
	if m.selected != "mine" {
		t.Fatalf("stale event applied: selected = %q", m.selected)
	}
}

func TestCycleThemeAndHelp(t *testing.T) {
	m, _ := newTestModel(t, prefs.Default())
	first := m.theme.Name
	m, _ = press(t, m, "T")
	if m.theme.Name == first {
		t.Fatalf("theme did not change from %q", first)
	}
	m, _ = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	// Navigation keys are ignored while help is open.
	m, _ = press(t, m, "j")
	if m.cursor != 0 {
		t.Fatalf("cursor moved under help overlay")
	}
	m, _ = press(t, m, "?")
	if m.showHelp {
		t.Fatalf("help not dismissed")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, prefs.Default())
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestView_RendersCatalogAndPreview(t *testing.T) {
	m, _ := newTestModel(t, prefs.State{SelectedID: "blueprint"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := next.(Model).View()
	for _, want := range []string{"Blueprint", "Paper", "background-image"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}
