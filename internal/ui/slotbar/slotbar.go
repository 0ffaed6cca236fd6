// Package slotbar renders the twelve slots of the active group as a row of
// cells labelled with their recall keys.
package slotbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/slots"
	"github.com/llehouerou/loopmark/internal/ui/playerbar"
	"github.com/llehouerou/loopmark/internal/ui/styles"
)

// State holds what the bar shows.
type State struct {
	Group   slots.Group
	Active  int // active group, 0-based
	Tracked int // loop slot, or -1
	Dirty   bool
	// Labels are the recall keys of the slots. Missing entries fall back to
	// the physical slot key.
	Labels []string
}

// Render draws the group title, the slot row and, under each occupied slot,
// its start time. A trailing ↻ marks loop ranges.
func Render(s State) string {
	st := styles.T().S()
	cells := make([]string, 0, slots.SlotCount)
	marks := make([]string, 0, slots.SlotCount)
	for i, slot := range s.Group {
		style := st.SlotEmpty
		switch {
		case i == s.Tracked && slot.Valid:
			style = st.SlotTracked
		case slot.IsLoop():
			style = st.SlotLoop
		case slot.Valid:
			style = st.SlotSaved
		}
		cell := style.Render(label(s.Labels, i))
		mark := ""
		if slot.Valid {
			mark = playerbar.FormatDuration(slot.Start)
			if slot.IsLoop() {
				mark += "↻"
			}
		}

		w := max(lipgloss.Width(cell), lipgloss.Width(mark))
		cells = append(cells, lipgloss.PlaceHorizontal(w, lipgloss.Center, cell))
		marks = append(marks, lipgloss.PlaceHorizontal(w, lipgloss.Center, st.Subtle.Render(mark)))
	}

	title := fmt.Sprintf("Group %d", s.Active+1)
	if s.Dirty {
		title = st.Title.Render(title) + st.Warning.Render(" * unsaved")
	} else {
		title = st.Title.Render(title)
	}
	return title + "\n" + strings.Join(cells, " ") + "\n" + strings.Join(marks, " ")
}

func label(labels []string, i int) string {
	if i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return string(keymap.SlotKeys[i])
}
