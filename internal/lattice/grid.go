package lattice

import "math"

// Tag classifies a lattice cell.
type Tag uint8

const (
	Outside  Tag = 0
	Interior Tag = 1
	Boundary Tag = 2
)

func (t Tag) String() string {
	switch t {
	case Outside:
		return "outside"
	case Interior:
		return "interior"
	case Boundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Grid holds one Tag per cell, row-major.
type Grid struct {
	Rows, Cols int
	Tags       []Tag
}

func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Tags: make([]Tag, rows*cols)}
}

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns Outside for indices off the grid.
func (g *Grid) At(row, col int) Tag {
	if !g.InBounds(row, col) {
		return Outside
	}
	return g.Tags[row*g.Cols+col]
}

func (g *Grid) Set(row, col int, t Tag) {
	g.Tags[row*g.Cols+col] = t
}

func (g *Grid) Clone() *Grid {
	c := &Grid{Rows: g.Rows, Cols: g.Cols, Tags: make([]Tag, len(g.Tags))}
	copy(c.Tags, g.Tags)
	return c
}

func (g *Grid) Count(t Tag) int {
	n := 0
	for _, v := range g.Tags {
		if v == t {
			n++
		}
	}
	return n
}

// TagSum adds the numeric tag values of the six neighbours of (row, col).
func (g *Grid) TagSum(row, col int) int {
	sum := 0
	for _, o := range Neighbors(row) {
		sum += int(g.At(row+o.DRow, col+o.DCol))
	}
	return sum
}

// Field is a scalar amplitude per cell, row-major.
type Field struct {
	Rows, Cols int
	Values     []float64
}

func NewField(rows, cols int) *Field {
	return &Field{Rows: rows, Cols: cols, Values: make([]float64, rows*cols)}
}

func (f *Field) At(row, col int) float64 { return f.Values[row*f.Cols+col] }

func (f *Field) Set(row, col int, v float64) { f.Values[row*f.Cols+col] = v }

func (f *Field) Zero() {
	for i := range f.Values {
		f.Values[i] = 0
	}
}

func (f *Field) CopyFrom(src *Field) {
	copy(f.Values, src.Values)
}

// SameShape reports whether the field matches the grid dimensions.
func (f *Field) SameShape(g *Grid) bool {
	return f.Rows == g.Rows && f.Cols == g.Cols && len(f.Values) == len(g.Tags)
}

// MaxAbs is the largest absolute amplitude in the field, or NaN if any
// value is NaN.
func (f *Field) MaxAbs() float64 {
	m := 0.0
	for _, v := range f.Values {
		if math.IsNaN(v) {
			return v
		}
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// NeighborSum adds the values of the six neighbours of (row, col); cells
// off the field contribute zero.
func NeighborSum(f *Field, row, col int) float64 {
	sum := 0.0
	for _, o := range Neighbors(row) {
		r, c := row+o.DRow, col+o.DCol
		if r < 0 || r >= f.Rows || c < 0 || c >= f.Cols {
			continue
		}
		sum += f.Values[r*f.Cols+c]
	}
	return sum
}
