package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/loopmark/internal/ui/styles"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
	loopBlock   = "═"
	headBlock   = "●"
)

// RenderProgressBar renders width cells: played part, then the rest, with
// the tracked loop range drawn over both.
func RenderProgressBar(s State, width int) string {
	if width <= 0 {
		return ""
	}
	t := styles.T()
	played := lipglossStyle(t.Primary)
	rest := lipglossStyle(t.FgSubtle)
	loop := lipglossStyle(t.Secondary)

	head := cell(s.Position, s.Duration, width)
	loopFrom, loopTo := -1, -1
	if s.HasLoop && s.Duration > 0 {
		loopFrom = cell(s.LoopStart, s.Duration, width)
		loopTo = cell(s.LoopEnd, s.Duration, width)
	}

	var b strings.Builder
	for i := range width {
		switch {
		case i == head:
			b.WriteString(played.Render(headBlock))
		case i >= loopFrom && i <= loopTo:
			b.WriteString(loop.Render(loopBlock))
		case i < head:
			b.WriteString(played.Render(filledBlock))
		default:
			b.WriteString(rest.Render(emptyBlock))
		}
	}
	return b.String()
}

// cell returns the bar cell holding pos.
func cell(pos, duration time.Duration, width int) int {
	if duration <= 0 {
		return 0
	}
	ratio := float64(min(max(pos, 0), duration)) / float64(duration)
	return min(int(ratio*float64(width)), width-1)
}
