package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/hexwave/internal/colormap"
)

// halfBlock shows the upper pixel in the foreground and the lower one in
// the background.
const halfBlock = "▀"

// Canvas holds two pixel rows per terminal line.
type Canvas struct {
	Width, Height int
	Pixels        [][]colormap.RGB
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Pixels: make([][]colormap.RGB, 2*h),
	}
	for i := range c.Pixels {
		c.Pixels[i] = make([]colormap.RGB, w)
	}
	return c
}

// FitCanvas sizes a canvas for a rows×cols grid within maxW×maxH
// characters. Small grids are drawn one cell per pixel.
func FitCanvas(rows, cols, maxW, maxH int) *Canvas {
	return NewCanvas(min(cols, maxW), min((rows+1)/2, maxH))
}

// Paint samples a row-major RGB frame of rows×cols cells onto the canvas.
func (c *Canvas) Paint(frame []byte, rows, cols int) {
	if len(frame) < rows*cols*3 {
		return
	}
	ph := len(c.Pixels)
	for py := 0; py < ph; py++ {
		gr := py * rows / ph
		for x := 0; x < c.Width; x++ {
			gc := x * cols / c.Width
			i := (gr*cols + gc) * 3
			c.Pixels[py][x] = colormap.RGB{frame[i], frame[i+1], frame[i+2]}
		}
	}
}

// Relative converts a character position inside the canvas to a relative
// position in [0,1]², taken at the centre of the character.
func (c *Canvas) Relative(x, y int) (float64, float64, bool) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0, 0, false
	}
	return (float64(x) + 0.5) / float64(c.Width), (float64(y) + 0.5) / float64(c.Height), true
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.Height; row++ {
		top, bottom := c.Pixels[2*row], c.Pixels[2*row+1]
		for x := 0; x < c.Width; x++ {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(rgbHex(top[x]))).
				Background(lipgloss.Color(rgbHex(bottom[x])))
			sb.WriteString(style.Render(halfBlock))
		}
		if row < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func rgbHex(c colormap.RGB) string {
	return hexColor(int(c[0]), int(c[1]), int(c[2]))
}
