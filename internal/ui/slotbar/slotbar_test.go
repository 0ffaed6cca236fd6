package slotbar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/loopmark/internal/slots"
	"github.com/llehouerou/loopmark/internal/ui/testutil"
)

func TestRender(t *testing.T) {
	g := slots.NewGroup()
	g[0] = slots.PlaybackState{Start: 5 * time.Second, Speed: 1, Valid: true}
	g[3] = slots.PlaybackState{Start: 65 * time.Second, End: 70 * time.Second, Speed: 1, Valid: true, HasEnd: true}

	out := testutil.StripANSI(Render(State{Group: g, Active: 1, Tracked: 3}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Group 2", lines[0])
	for _, k := range []string{"1", "9", "0", "-", "="} {
		assert.Contains(t, lines[1], k)
	}
	assert.Contains(t, lines[2], "0:05")
	assert.Contains(t, lines[2], "1:05↻")
}

func TestRender_DirtyAndLabels(t *testing.T) {
	labels := []string{"Q", "W"}
	out := testutil.StripANSI(Render(State{Group: slots.NewGroup(), Tracked: -1, Dirty: true, Labels: labels}))

	assert.Contains(t, out, "Group 1 * unsaved")
	assert.Contains(t, out, "Q")
	assert.Contains(t, out, "W")
	assert.Contains(t, out, "=", "missing labels fall back to the slot key")
}
