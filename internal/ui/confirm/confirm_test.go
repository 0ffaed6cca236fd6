package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopmark/internal/ui/action"
	"github.com/llehouerou/loopmark/internal/ui/testutil"
)

const testContext = "ctx"

func newTestConfirm(title, message string, context any) *testutil.PopupHarness {
	m := New()
	m.Show(title, message, context, 80, 24)
	return testutil.NewPopupHarness(&m)
}

func getResult(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	cmd := h.LastCommand()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	msg := testutil.ExecuteCmd(cmd)
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	result, ok := actionMsg.Action.(Result)
	if !ok {
		t.Fatalf("expected Result, got %T", actionMsg.Action)
	}
	return result
}

func TestAnswers(t *testing.T) {
	tests := []struct {
		name string
		send func(h *testutil.PopupHarness)
		want bool
	}{
		{"enter", func(h *testutil.PopupHarness) { h.SendEnter() }, true},
		{"y", func(h *testutil.PopupHarness) { h.SendKey("y") }, true},
		{"Y", func(h *testutil.PopupHarness) { h.SendKey("Y") }, true},
		{"escape", func(h *testutil.PopupHarness) { h.SendEscape() }, false},
		{"n", func(h *testutil.PopupHarness) { h.SendKey("n") }, false},
		{"N", func(h *testutil.PopupHarness) { h.SendKey("N") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestConfirm("Delete?", "Are you sure?", testContext)

			tt.send(h)

			result := getResult(t, h)
			if result.Confirmed != tt.want {
				t.Errorf("Confirmed = %v, want %v", result.Confirmed, tt.want)
			}
			if result.Context != testContext {
				t.Errorf("Context = %v, want %q", result.Context, testContext)
			}
			m, ok := h.Popup().(*Model)
			if !ok || m.Active() {
				t.Error("popup should close after an answer")
			}
		})
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	h := newTestConfirm("Delete?", "Are you sure?", nil)

	if cmd := h.SendKey("x"); cmd != nil {
		t.Error("expected no command for an unrelated key")
	}
	if cmd := h.SendSpecialKey(tea.KeyTab); cmd != nil {
		t.Error("expected no command for tab")
	}
}

func TestInactiveIgnoresKeys(t *testing.T) {
	m := New()
	h := testutil.NewPopupHarness(&m)

	if cmd := h.SendEnter(); cmd != nil {
		t.Error("inactive popup must not answer")
	}
	if h.View() != "" {
		t.Error("inactive popup renders nothing")
	}
}

func TestView(t *testing.T) {
	h := newTestConfirm("Unsaved states", "Group 1 has unsaved changes.", nil)

	for _, want := range []string{"Unsaved states", "Group 1 has unsaved changes.", "Enter/Y: confirm"} {
		if err := h.AssertViewContains(want); err != "" {
			t.Error(err)
		}
	}
}
