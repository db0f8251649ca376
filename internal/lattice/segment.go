package lattice

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrNoEdges     = errors.New("lattice: edge set is empty")
	ErrBadEdgeData = errors.New("lattice: edge coordinate is NaN or Inf")
)

// Segment is one polygon edge in continuous space.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Horizontal reports whether the segment has zero slope.
func (s Segment) Horizontal() bool { return s.Y1 == s.Y2 }

// Spans reports whether y lies between the segment's endpoints, inclusive
// on both ends and independent of endpoint order.
func (s Segment) Spans(y float64) bool {
	return (s.Y1 <= y && y <= s.Y2) || (s.Y2 <= y && y <= s.Y1)
}

// EdgeSet is an unordered collection of polygon edges.
type EdgeSet []Segment

// Validate rejects empty sets and non-finite coordinates.
func (e EdgeSet) Validate() error {
	if len(e) == 0 {
		return ErrNoEdges
	}
	for i, s := range e {
		for _, v := range [4]float64{s.X1, s.Y1, s.X2, s.Y2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("segment %d: %w", i, ErrBadEdgeData)
			}
		}
	}
	return nil
}

// Extent returns the bounding box of all segment endpoints.
func (e EdgeSet) Extent() (minX, minY, maxX, maxY float64) {
	if len(e) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range e {
		minX = math.Min(minX, math.Min(s.X1, s.X2))
		maxX = math.Max(maxX, math.Max(s.X1, s.X2))
		minY = math.Min(minY, math.Min(s.Y1, s.Y2))
		maxY = math.Max(maxY, math.Max(s.Y1, s.Y2))
	}
	return minX, minY, maxX, maxY
}

// LineIntersect intersects the segment's supporting line with the
// horizontal line at y. A horizontal segment has no single intersection
// and reports ok=false; callers skip it.
func LineIntersect(s Segment, y float64) (float64, float64, bool) {
	if s.Horizontal() {
		return 0, 0, false
	}
	if s.X1 == s.X2 {
		return s.X1, y, true
	}
	a := (s.Y2 - s.Y1) / (s.X2 - s.X1)
	b := s.Y1 - a*s.X1
	return (y - b) / a, y, true
}

// upperEnd reports whether y is the higher endpoint of a sloped segment.
func (s Segment) upperEnd(y float64) bool {
	return y == math.Max(s.Y1, s.Y2) && s.Y1 != s.Y2
}

// ScanlineIntersections returns, sorted ascending, the x of every
// crossing between the scanline at y and a segment whose y-span holds y.
// A vertex on the scanline is counted at the lower end of each edge only,
// so a vertex the boundary passes through yields one crossing and a local
// extremum yields zero or two.
func ScanlineIntersections(y float64, edges EdgeSet) []float64 {
	xs := make([]float64, 0, 4)
	for _, s := range edges {
		if !s.Spans(y) || s.upperEnd(y) {
			continue
		}
		x, _, ok := LineIntersect(s, y)
		if !ok {
			continue
		}
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	return xs
}

// CountGreater counts the intersections strictly to the right of x.
func CountGreater(x float64, xs []float64) int {
	// xs is sorted, so everything after the first element > x counts.
	i := sort.Search(len(xs), func(i int) bool { return xs[i] > x })
	return len(xs) - i
}
