package lattice

// Offset is a relative (row, col) step to a neighbouring cell.
type Offset struct {
	DRow, DCol int
}

// Odd rows sit half a cell to the right, so the rows above and below an
// even cell are reached at col-1 and col, and those of an odd cell at col
// and col+1.
var neighborTable = [2][6]Offset{
	{{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 0}},
	{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}, {1, 1}},
}

// Neighbors returns the six neighbour offsets for cells in row.
func Neighbors(row int) *[6]Offset {
	return &neighborTable[row&1]
}
