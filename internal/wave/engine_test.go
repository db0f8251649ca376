package wave

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hexwave/internal/lattice"
)

// ringGrid is Interior everywhere except a Boundary ring on the perimeter.
func ringGrid(n int) *lattice.Grid {
	g := lattice.NewGrid(n, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if r == 0 || c == 0 || r == n-1 || c == n-1 {
				g.Set(r, c, lattice.Boundary)
			} else {
				g.Set(r, c, lattice.Interior)
			}
		}
	}
	return g
}

func fields(n int) (prev, cur, next *lattice.Field) {
	return lattice.NewField(n, n), lattice.NewField(n, n), lattice.NewField(n, n)
}

func TestDefaultCourant(t *testing.T) {
	k := DefaultParams().Courant()
	if math.Abs(k-0.7) > 1e-12 {
		t.Errorf("courant = %f, expected 0.7", k)
	}
	if k > CourantLimit {
		t.Errorf("default parameters exceed the stability limit")
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want error
	}{
		{"default", DefaultParams(), nil},
		{"unstable", Params{Speed: 0.9, TimeStep: 0.01, Spacing: 0.01}, ErrUnstable},
		{"zero spacing", Params{Speed: 0.7, TimeStep: 0.01, Spacing: 0}, ErrParameterBounds},
		{"negative speed", Params{Speed: -1, TimeStep: 0.01, Spacing: 0.01}, ErrParameterBounds},
		{"nan step", Params{Speed: 0.7, TimeStep: math.NaN(), Spacing: 0.01}, ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
		})
	}

	if _, err := New(Params{Speed: 2, TimeStep: 0.01, Spacing: 0.01}); err == nil {
		t.Error("New accepted unstable parameters")
	}
}

func TestStepIsotropicImpulse(t *testing.T) {
	const n = 9
	grid := ringGrid(n)
	prev, cur, next := fields(n)
	for _, center := range [][2]int{{4, 4}, {3, 4}} {
		prev.Zero()
		cur.Zero()
		next.Zero()
		row, col := center[0], center[1]
		cur.Set(row, col, 1)

		e, err := New(DefaultParams())
		if err != nil {
			t.Fatal(err)
		}
		if err := e.Step(grid, prev, cur, next); err != nil {
			t.Fatal(err)
		}

		k2 := e.K2()
		wantNeighbor := k2 * (2.0 / 3.0)
		isNeighbor := map[[2]int]bool{}
		for _, o := range lattice.Neighbors(row) {
			r, c := row+o.DRow, col+o.DCol
			isNeighbor[[2]int{r, c}] = true
			if got := next.At(r, c); got != wantNeighbor {
				t.Errorf("centre %v: neighbour (%d,%d) = %g, expected %g", center, r, c, got, wantNeighbor)
			}
		}

		if got, want := next.At(row, col), 2-4*k2; got != want {
			t.Errorf("centre %v: value %g, expected %g", center, got, want)
		}

		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				if (r == row && c == col) || isNeighbor[[2]int{r, c}] {
					continue
				}
				if next.At(r, c) != 0 {
					t.Errorf("centre %v: cell (%d,%d) = %g, expected 0", center, r, c, next.At(r, c))
				}
			}
		}
	}
}

func TestStepLeavesNonInteriorUntouched(t *testing.T) {
	const n = 7
	grid := ringGrid(n)
	prev, cur, next := fields(n)
	next.Set(0, 3, 42)
	cur.Set(1, 3, 1)

	e, _ := New(DefaultParams())
	if err := e.Step(grid, prev, cur, next); err != nil {
		t.Fatal(err)
	}
	if next.At(0, 3) != 42 {
		t.Errorf("boundary cell overwritten: %g", next.At(0, 3))
	}
}

func TestStepDimensionMismatch(t *testing.T) {
	grid := ringGrid(5)
	e, _ := New(DefaultParams())
	err := e.Step(grid, lattice.NewField(5, 5), lattice.NewField(5, 4), lattice.NewField(5, 5))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestStepWorkersMatchSequential(t *testing.T) {
	const n, steps = 31, 40
	grid := ringGrid(n)

	run := func(workers int) *lattice.Field {
		e, err := New(DefaultParams(), WithWorkers(workers))
		if err != nil {
			t.Fatal(err)
		}
		prev, cur, next := fields(n)
		cur.Set(15, 15, 1)
		cur.Set(7, 20, -0.5)
		for i := 0; i < steps; i++ {
			if err := e.Step(grid, prev, cur, next); err != nil {
				t.Fatal(err)
			}
			prev, cur, next = cur, next, prev
		}
		return cur
	}

	seq, par := run(1), run(4)
	for i := range seq.Values {
		if seq.Values[i] != par.Values[i] {
			t.Fatalf("cell %d: %g vs %g", i, seq.Values[i], par.Values[i])
		}
	}
}

func TestStepStaysBounded(t *testing.T) {
	const n = 41
	grid := ringGrid(n)
	prev, cur, next := fields(n)
	cur.Set(20, 20, 1)

	e, _ := New(DefaultParams())
	for i := 0; i < 500; i++ {
		if err := e.Step(grid, prev, cur, next); err != nil {
			t.Fatal(err)
		}
		prev, cur, next = cur, next, prev
		if m := cur.MaxAbs(); m > 10 || math.IsNaN(m) {
			t.Fatalf("step %d: amplitude %g diverged", i, m)
		}
	}
}
