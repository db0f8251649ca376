package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/hexwave/internal/lattice"
)

var tagFill = map[lattice.Tag]string{
	lattice.Interior: "#2b6cb0",
	lattice.Boundary: "#f6ad55",
}

// GridSVG draws every non-outside cell as a hexagon of circumradius
// size. With a frame buffer the cells take its colours; otherwise they
// are coloured by tag.
func GridSVG(grid *lattice.Grid, pixels []byte, size float64) string {
	if grid == nil {
		return ""
	}
	if len(pixels) < grid.Rows*grid.Cols*3 {
		pixels = nil
	}

	dx := size * math.Sqrt(3)
	dy := size * 1.5
	width := float64(grid.Cols)*dx + dx/2 + size
	height := float64(grid.Rows)*dy + size

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			tag := grid.At(r, c)
			if tag == lattice.Outside {
				continue
			}
			fill := tagFill[tag]
			if pixels != nil {
				i := (r*grid.Cols + c) * 3
				fill = fmt.Sprintf("#%02x%02x%02x", pixels[i], pixels[i+1], pixels[i+2])
			}
			cx := float64(c)*dx + dx/2 + size/2
			if r&1 == 1 {
				cx += dx / 2
			}
			cy := float64(r)*dy + size
			sb.WriteString(`<polygon points="`)
			sb.WriteString(hexPoints(cx, cy, size))
			sb.WriteString(fmt.Sprintf("\" fill=\"%s\"/>\n", fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// hexPoints lists the corners of a pointy-top hexagon.
func hexPoints(cx, cy, size float64) string {
	pts := make([]string, 6)
	for i := range pts {
		a := math.Pi/6 + float64(i)*math.Pi/3
		pts[i] = fmt.Sprintf("%.1f,%.1f", cx+size*math.Cos(a), cy+size*math.Sin(a))
	}
	return strings.Join(pts, " ")
}

// TraceSVG plots one metric of a run as a polyline.
func TraceSVG(values []float64, width, height int, stroke string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke))

	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
