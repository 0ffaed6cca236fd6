// Package preview draws a slot thumbnail with half-block characters, two
// pixel rows per terminal row.
package preview

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

const upperHalf = "▀"

// Render scales img to cols x rows cells and returns the cell art. A nil
// image renders as blank space of the same size.
func Render(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	if img == nil {
		line := strings.Repeat(" ", cols)
		return strings.TrimSuffix(strings.Repeat(line+"\n", rows), "\n")
	}

	scaled := resize.Resize(uint(cols), uint(rows*2), img, resize.Bilinear)
	b := scaled.Bounds()
	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top := hex(scaled.At(b.Min.X+x, b.Min.Y+2*y))
			bottom := hex(scaled.At(b.Min.X+x, b.Min.Y+2*y+1))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(upperHalf))
		}
	}
	return sb.String()
}

func hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent pixels have no color.
		return "#000000"
	}
	return cf.Hex()
}
