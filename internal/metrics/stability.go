package metrics

import (
	"math"

	"github.com/san-kum/hexwave/internal/lattice"
)

// Stability is the fraction of observed steps whose peak amplitude stayed
// finite and below the threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(step int, grid *lattice.Grid, f *lattice.Field) {
	s.samples++
	m := f.MaxAbs()
	if m > s.threshold || math.IsNaN(m) || math.IsInf(m, 0) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
