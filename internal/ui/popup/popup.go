package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/loopmark/internal/ui/styles"
)

// RenderBordered wraps content in a rounded border and centers it on a
// screenW x screenH canvas. Lines wider than the screen are cut with an
// ellipsis, escape sequences included.
func RenderBordered(content string, screenW, screenH int) string {
	maxInner := max(screenW-8, 10)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > maxInner {
			lines[i] = ansi.Truncate(line, maxInner, "…")
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return Center(box, screenW, screenH)
}

// Center places pre-rendered content in the middle of the screen.
func Center(content string, screenW, screenH int) string {
	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, content)
}
