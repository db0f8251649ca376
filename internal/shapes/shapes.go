// Package shapes generates closed polygons centred on the origin, for
// runs that do not supply an edge list file.
package shapes

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/hexwave/internal/lattice"
)

// Polygon closes the vertex loop into an edge set.
func Polygon(pts [][2]float64) lattice.EdgeSet {
	edges := make(lattice.EdgeSet, 0, len(pts))
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		edges = append(edges, lattice.Segment{X1: p[0], Y1: p[1], X2: q[0], Y2: q[1]})
	}
	return edges
}

func Rectangle(w, h float64) lattice.EdgeSet {
	hw, hh := w/2, h/2
	return Polygon([][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}})
}

// RegularPolygon has n vertices on a circle of radius r. The first vertex
// is rotated off the x axis by half a step so no edge is horizontal for
// even n.
func RegularPolygon(n int, r float64) lattice.EdgeSet {
	if n < 3 {
		n = 3
	}
	pts := make([][2]float64, n)
	for i := range pts {
		a := (float64(i) + 0.5) * 2 * math.Pi / float64(n)
		pts[i] = [2]float64{r * math.Cos(a), r * math.Sin(a)}
	}
	return Polygon(pts)
}

// LShape is a square of side size with its top-right quadrant removed.
func LShape(size float64) lattice.EdgeSet {
	h := size / 2
	return Polygon([][2]float64{{-h, -h}, {h, -h}, {h, 0}, {0, 0}, {0, h}, {-h, h}})
}

var builders = map[string]func() lattice.EdgeSet{
	"square":  func() lattice.EdgeSet { return Rectangle(0.5, 0.5) },
	"room":    func() lattice.EdgeSet { return Rectangle(0.8, 0.5) },
	"hexagon": func() lattice.EdgeSet { return RegularPolygon(6, 0.3) },
	"disc":    func() lattice.EdgeSet { return RegularPolygon(48, 0.3) },
	"l":       func() lattice.EdgeSet { return LShape(0.6) },
}

func ByName(name string) (lattice.EdgeSet, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown shape: %s (available: %v)", name, Names())
	}
	return b(), nil
}

func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
