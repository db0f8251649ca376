package lattice

import "math"

const (
	DefaultSpacing = 0.01
	Sin60          = 0.8660254037844386
	Cos60          = 0.5
)

// Geometry converts lattice indices to continuous coordinates.
type Geometry struct {
	Spacing float64
}

// Default is the geometry with DefaultSpacing.
var Default = Geometry{Spacing: DefaultSpacing}

// RowStep is the vertical distance between two lattice rows.
func (g Geometry) RowStep() float64 { return g.Spacing * Sin60 }

// Coord returns the continuous position of cell (col, row). The offsets
// move the lattice origin so that negative polygon coordinates map to
// non-negative indices.
func (g Geometry) Coord(col, row, colOffset, rowOffset int) (x, y float64) {
	x = float64(col-colOffset) * g.Spacing
	if row%2 != 0 {
		x += Cos60 * g.Spacing
	}
	y = float64(row-rowOffset) * g.RowStep()
	return x, y
}

// RowY is the y coordinate shared by every cell of a row.
func (g Geometry) RowY(row, rowOffset int) float64 {
	return float64(row-rowOffset) * g.RowStep()
}

// Coord maps indices with the default geometry.
func Coord(col, row, colOffset, rowOffset int) (float64, float64) {
	return Default.Coord(col, row, colOffset, rowOffset)
}

// Valid reports whether the spacing can address a lattice.
func (g Geometry) Valid() bool {
	return g.Spacing > 0 && !math.IsInf(g.Spacing, 0) && !math.IsNaN(g.Spacing)
}
