package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/loopmark/internal/ui/testutil"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{65 * time.Second, "1:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in))
	}
}

func TestPositionAt(t *testing.T) {
	d := 100 * time.Second
	assert.Equal(t, time.Duration(0), PositionAt(0, 50, d))
	assert.Equal(t, 50*time.Second, PositionAt(25, 50, d))
	assert.Equal(t, 98*time.Second, PositionAt(99, 50, d), "clamped to the last cell")
	assert.Equal(t, time.Duration(0), PositionAt(-3, 50, d))
	assert.Equal(t, time.Duration(0), PositionAt(10, 0, d))
	assert.Equal(t, time.Duration(0), PositionAt(10, 50, 0))
}

func TestRender(t *testing.T) {
	s := State{
		Title:    "lesson",
		Playing:  true,
		Position: 65 * time.Second,
		Duration: 10 * time.Minute,
		Rate:     0.75,
		Volume:   80,
		Group:    2,
		LoopMode: "Loop Single",
	}
	out := Render(s, 100)
	plain := testutil.StripANSI(out)

	assert.Contains(t, plain, playSymbol)
	assert.Contains(t, plain, "lesson")
	assert.Contains(t, plain, "Group 3")
	assert.Contains(t, plain, "Loop Single")
	assert.Contains(t, plain, "0.75x")
	assert.Contains(t, plain, "Vol 80%")
	assert.Contains(t, plain, "1:05 / 10:00")
	assert.Equal(t, Height, lipgloss.Height(out))
}

func TestRender_NoVideo(t *testing.T) {
	plain := testutil.StripANSI(Render(State{Stopped: true, Rate: 1}, 80))
	assert.Contains(t, plain, "No video")
	assert.Contains(t, plain, stopSymbol)
}

func TestRenderProgressBar(t *testing.T) {
	s := State{
		Position:  50 * time.Second,
		Duration:  100 * time.Second,
		HasLoop:   true,
		LoopStart: 70 * time.Second,
		LoopEnd:   90 * time.Second,
	}
	plain := testutil.StripANSI(RenderProgressBar(s, 10))

	assert.Equal(t, 10, lipgloss.Width(plain))
	assert.Equal(t, strings.Repeat(filledBlock, 5)+headBlock+emptyBlock+
		strings.Repeat(loopBlock, 3), plain)
	assert.Empty(t, RenderProgressBar(s, 0))
}
