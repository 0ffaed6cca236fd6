package helpbindings

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopmark/internal/ui/action"
	"github.com/llehouerou/loopmark/internal/ui/testutil"
)

func bindings(n int) []key.Binding {
	out := make([]key.Binding, n)
	for i := range out {
		k := fmt.Sprintf("F%d", i+1)
		out[i] = key.NewBinding(key.WithKeys(k), key.WithHelp(k, fmt.Sprintf("Action %d", i+1)))
	}
	return out
}

func newTestHelpPopup(n, height int) *testutil.PopupHarness {
	m := New()
	m.SetSections([]Section{{Title: "Player", Bindings: bindings(n)}})
	m.SetSize(80, height)
	return testutil.NewPopupHarness(&m)
}

func assertClosed(t *testing.T, h *testutil.PopupHarness) {
	t.Helper()
	msg := testutil.ExecuteCmd(h.LastCommand())
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	if _, ok := actionMsg.Action.(Close); !ok {
		t.Fatalf("expected Close, got %T", actionMsg.Action)
	}
}

func TestHelpBindings_Close(t *testing.T) {
	for _, k := range []string{"q", "?"} {
		t.Run(k, func(t *testing.T) {
			h := newTestHelpPopup(3, 24)
			h.SendKey(k)
			assertClosed(t, h)
		})
	}
	t.Run("esc", func(t *testing.T) {
		h := newTestHelpPopup(3, 24)
		h.SendEscape()
		assertClosed(t, h)
	})
}

func TestHelpBindings_Scroll(t *testing.T) {
	h := newTestHelpPopup(40, 20)
	m, ok := h.Popup().(*Model)
	if !ok {
		t.Fatal("expected *Model")
	}

	h.SendKey("j")
	h.SendSpecialKey(tea.KeyDown)
	if m.scrollOffset != 2 {
		t.Errorf("scrollOffset = %d, want 2", m.scrollOffset)
	}
	h.SendKey("k")
	if m.scrollOffset != 1 {
		t.Errorf("scrollOffset = %d, want 1", m.scrollOffset)
	}
	for range 100 {
		h.SendKey("j")
	}
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scrollOffset = %d, want clamp at %d", m.scrollOffset, m.maxScroll())
	}
	if err := h.AssertViewContains("j/k scroll"); err != "" {
		t.Error(err)
	}
}

func TestHelpBindings_NoScrollWhenFits(t *testing.T) {
	h := newTestHelpPopup(3, 40)
	m, _ := h.Popup().(*Model)

	h.SendKey("j")

	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d, want 0", m.scrollOffset)
	}
}

func TestHelpBindings_View(t *testing.T) {
	m := New()
	disabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("X", "Hidden"), key.WithDisabled())
	m.SetSections([]Section{
		{Title: "Player", Bindings: append(bindings(2), disabled)},
		{Title: "Shell", Bindings: []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Quit"))}},
	})
	m.SetSize(80, 40)
	h := testutil.NewPopupHarness(&m)

	for _, want := range []string{"Keybinds", "Player", "F1", "Action 2", "Shell", "Quit"} {
		if err := h.AssertViewContains(want); err != "" {
			t.Error(err)
		}
	}
	if err := h.AssertViewContains("Hidden"); err == "" {
		t.Error("disabled binding should not be listed")
	}
}
