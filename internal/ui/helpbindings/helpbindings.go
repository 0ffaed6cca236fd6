// Package helpbindings provides a scrollable popup listing the keybinds.
package helpbindings

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/loopmark/internal/ui"
	"github.com/llehouerou/loopmark/internal/ui/popup"
	"github.com/llehouerou/loopmark/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Section is a titled group of bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	sections     []Section
	scrollOffset int
}

// New creates a new help bindings model.
func New() Model {
	return Model{}
}

// SetSections replaces the listed bindings and scrolls back to the top.
// Disabled bindings are skipped.
func (m *Model) SetSections(sections []Section) {
	m.sections = sections
	m.scrollOffset = 0
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	lines := m.lines()

	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}
	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	visible := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		visible = append(visible, line+strings.Repeat(" ", width-lipgloss.Width(line)))
	}

	s := styles.T().S()
	footer := "?/esc close"
	if len(lines) > m.visibleHeight() {
		footer = "j/k scroll · ?/esc close"
	}
	return s.Title.Render("Keybinds") + "\n\n" +
		strings.Join(visible, "\n") + "\n\n" +
		s.Subtle.Render(footer)
}

func (m Model) lines() []string {
	s := styles.T().S()
	header := lipgloss.NewStyle().Foreground(styles.T().Secondary).Bold(true)

	keyWidth := 0
	for _, sec := range m.sections {
		for _, b := range sec.Bindings {
			if b.Enabled() {
				keyWidth = max(keyWidth, lipgloss.Width(b.Help().Key))
			}
		}
	}

	var out []string
	for _, sec := range m.sections {
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out,
			header.Render(sec.Title),
			s.Subtle.Render(strings.Repeat("─", keyWidth+20)))
		for _, b := range sec.Bindings {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(h.Key))
			out = append(out, s.Key.Render(h.Key+pad)+"  "+s.Base.Render(h.Desc))
		}
	}
	return out
}

func (m Model) visibleHeight() int {
	return max(m.Height()-ui.PopupChrome, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines())-m.visibleHeight(), 0)
}
