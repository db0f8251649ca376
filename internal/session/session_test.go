package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/san-kum/hexwave/internal/colormap"
	"github.com/san-kum/hexwave/internal/lattice"
	"github.com/san-kum/hexwave/internal/raster"
	"github.com/san-kum/hexwave/internal/shapes"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// discGrid is the 7×7 layout: interior inside, a boundary ring on the
// perimeter and the four corners outside.
func discGrid() *lattice.Grid {
	const n = 7
	g := lattice.NewGrid(n, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			edgeRow, edgeCol := r == 0 || r == n-1, c == 0 || c == n-1
			switch {
			case edgeRow && edgeCol:
				g.Set(r, c, lattice.Outside)
			case edgeRow || edgeCol:
				g.Set(r, c, lattice.Boundary)
			default:
				g.Set(r, c, lattice.Interior)
			}
		}
	}
	return g
}

func TestOneStepFromCentreImpulse(t *testing.T) {
	s, err := New(discGrid(), colormap.Grayscale(), WithImpulse(0.5, 0.5), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if s.Current().At(3, 3) != 1 {
		t.Fatalf("impulse not applied at centre")
	}
	if !s.Advance() {
		t.Fatal("advance refused")
	}

	k := s.Params().Courant()
	k2 := k * k
	cur := s.Current()

	neighbors := map[[2]int]bool{}
	for _, o := range lattice.Neighbors(3) {
		neighbors[[2]int{3 + o.DRow, 3 + o.DCol}] = true
	}
	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			got := cur.At(r, c)
			switch {
			case r == 3 && c == 3:
				if got != 2-4*k2 {
					t.Errorf("centre = %g, expected %g", got, 2-4*k2)
				}
			case neighbors[[2]int{r, c}]:
				if got != k2*(2.0/3.0) {
					t.Errorf("neighbour (%d,%d) = %g, expected %g", r, c, got, k2*2/3)
				}
			default:
				if got != 0 {
					t.Errorf("(%d,%d) = %g, expected 0", r, c, got)
				}
			}
		}
	}
	if s.Step() != 1 {
		t.Errorf("step = %d, expected 1", s.Step())
	}
}

func TestLocate(t *testing.T) {
	s, err := New(discGrid(), nil, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y     float64
		row, col int
		ok       bool
	}{
		{0, 0, 0, 0, true},
		{0.5, 0.5, 3, 3, true},
		{1, 1, 6, 6, true},
		{0.99, 0.14, 0, 6, true},
		{-0.1, 0.5, 0, 0, false},
		{0.5, 1.5, 0, 0, false},
	}
	for _, tt := range tests {
		row, col, ok := s.Locate(tt.x, tt.y)
		if ok != tt.ok || (ok && (row != tt.row || col != tt.col)) {
			t.Errorf("Locate(%g,%g) = (%d,%d,%v), expected (%d,%d,%v)", tt.x, tt.y, row, col, ok, tt.row, tt.col, tt.ok)
		}
	}
}

func TestImpulseRejectedOnStorageRing(t *testing.T) {
	// A frame cropped inside the polygon has no margin, so interior cells
	// reach the edge of storage.
	frame := raster.Frame{Rows: 6, Cols: 6, ColOffset: 3, RowOffset: 3}
	grid, err := raster.Classify(shapes.Rectangle(2, 2), frame, raster.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if grid.At(0, 2) != lattice.Interior {
		t.Fatalf("edge cell tagged %s, expected interior", grid.At(0, 2))
	}

	s, err := New(grid, colormap.Grayscale(), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	for _, cell := range [][2]int{{0, 2}, {5, 3}, {2, 0}, {3, 5}} {
		if s.InjectAt(cell[0], cell[1]) {
			t.Errorf("impulse accepted at edge cell %v", cell)
		}
	}
	if s.InjectImpulse(0, 0) {
		t.Error("impulse accepted at relative (0,0)")
	}
	if !s.InjectAt(2, 2) {
		t.Fatal("impulse rejected at inner cell")
	}

	for i := 0; i < 4; i++ {
		s.Advance()
		for col := 0; col < grid.Cols; col++ {
			if v := s.Current().At(0, col); v != 0 {
				t.Fatalf("step %d: edge cell (0,%d) = %g, expected 0", s.Step(), col, v)
			}
		}
	}
}
