// Package metrics observes the height field once per step.
package metrics

import "github.com/san-kum/hexwave/internal/lattice"

type Metric interface {
	Name() string
	Observe(step int, grid *lattice.Grid, field *lattice.Field)
	Value() float64
	Reset()
}

// DefaultSet is what the runner and the live view record.
func DefaultSet() []Metric {
	return []Metric{
		NewEnergy(),
		NewPeak(),
		NewStability(10),
	}
}
