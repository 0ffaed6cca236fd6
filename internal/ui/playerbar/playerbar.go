// Package playerbar renders the transport bar: title, playback settings
// and a progress bar with the tracked loop range.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/loopmark/internal/ui"
	"github.com/llehouerou/loopmark/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
)

// Height is the rendered height: two content rows and the border.
const Height = 2 + ui.BorderHeight

// State holds everything needed to render the player bar.
type State struct {
	Title    string
	Playing  bool
	Stopped  bool
	Position time.Duration
	Duration time.Duration
	Rate     float64
	Volume   int
	Group    int // 0-based
	LoopMode string
	// LoopStart and LoopEnd mark the tracked loop range when HasLoop is set.
	LoopStart, LoopEnd time.Duration
	HasLoop            bool
	LoadSpeed          bool
}

// Render returns the bar for the given total width.
func Render(s State, width int) string {
	inner := max(width-6, ui.MinProgressBarWidth+20)
	t := styles.T()
	st := t.S()

	status := playSymbol
	switch {
	case s.Stopped:
		status = stopSymbol
	case !s.Playing:
		status = pauseSymbol
	}

	info := []string{
		fmt.Sprintf("Group %d", s.Group+1),
		s.LoopMode,
		humanize.FtoaWithDigits(s.Rate, 2) + "x",
		fmt.Sprintf("Vol %d%%", s.Volume),
	}
	if s.LoadSpeed {
		info = append(info, "load speed")
	}
	infoText := strings.Join(info, " · ")

	title := s.Title
	if title == "" {
		title = "No video"
	}
	titleWidth := max(inner-lipgloss.Width(infoText)-lipgloss.Width(status)-4, 5)
	title = runewidth.Truncate(title, titleWidth, "…")
	gap := max(inner-lipgloss.Width(status)-1-runewidth.StringWidth(title)-lipgloss.Width(infoText), 1)

	top := st.Key.Render(status) + " " + st.Title.Render(title) +
		strings.Repeat(" ", gap) + st.Muted.Render(infoText)

	bottom := RenderProgressBar(s, BarWidth(s, width)) + "  " + st.Muted.Render(timeString(s))

	return barStyle().Width(width - 2).Render(top + "\n" + bottom)
}

// BarOffset is the column of the first progress bar cell, and BarRow the
// row of the bar inside the rendered player bar.
const (
	BarOffset = 3
	BarRow    = 2
)

// BarWidth returns the number of progress bar cells Render draws.
func BarWidth(s State, width int) int {
	inner := max(width-6, ui.MinProgressBarWidth+20)
	return max(inner-lipgloss.Width(timeString(s))-2, ui.MinProgressBarWidth)
}

func timeString(s State) string {
	return FormatDuration(s.Position) + " / " + FormatDuration(s.Duration)
}

// PositionAt maps a column inside a progress bar of barWidth cells to a
// media position.
func PositionAt(col, barWidth int, duration time.Duration) time.Duration {
	if barWidth <= 0 || duration <= 0 {
		return 0
	}
	col = min(max(col, 0), barWidth-1)
	return time.Duration(float64(duration) * float64(col) / float64(barWidth))
}

// FormatDuration renders d as m:ss, or h:mm:ss from one hour on.
func FormatDuration(d time.Duration) string {
	d = max(d, 0)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
