package preview

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/loopmark/internal/ui/testutil"
)

func TestRender_Size(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 36))
	for x := range 64 {
		for y := range 36 {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 7), B: 90, A: 255})
		}
	}

	out := Render(img, 16, 4)

	assert.Equal(t, 4, lipgloss.Height(out))
	for _, line := range strings.Split(testutil.StripANSI(out), "\n") {
		assert.Equal(t, strings.Repeat(upperHalf, 16), line)
	}
}

func TestRender_NilImageIsBlank(t *testing.T) {
	out := Render(nil, 5, 2)
	assert.Equal(t, "     \n     ", out)
}

func TestRender_EmptySize(t *testing.T) {
	assert.Empty(t, Render(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0, 3))
}
