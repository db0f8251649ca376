package metrics

import "github.com/san-kum/hexwave/internal/lattice"

// Energy is the sum of squared amplitudes over interior cells at the
// latest observed step.
type Energy struct {
	name    string
	current float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(step int, grid *lattice.Grid, f *lattice.Field) {
	e.current = FieldEnergy(grid, f)
}

func (e *Energy) Value() float64 {
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
}

// FieldEnergy sums u² over the interior.
func FieldEnergy(grid *lattice.Grid, f *lattice.Field) float64 {
	sum := 0.0
	for i, tag := range grid.Tags {
		if tag == lattice.Interior {
			v := f.Values[i]
			sum += v * v
		}
	}
	return sum
}
