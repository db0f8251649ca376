package metrics

import (
	"math"

	"github.com/san-kum/hexwave/internal/lattice"
)

// Peak tracks the largest absolute amplitude seen since the last reset.
// A NaN field sticks.
type Peak struct {
	max float64
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(step int, grid *lattice.Grid, f *lattice.Field) {
	if math.IsNaN(p.max) {
		return
	}
	if m := f.MaxAbs(); m > p.max || math.IsNaN(m) {
		p.max = m
	}
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() { p.max = 0 }

// Probe records the amplitude of one cell.
type Probe struct {
	Row, Col int
	value    float64
}

func NewProbe(row, col int) *Probe { return &Probe{Row: row, Col: col} }

func (p *Probe) Name() string { return "probe" }

func (p *Probe) Observe(step int, grid *lattice.Grid, f *lattice.Field) {
	if grid.InBounds(p.Row, p.Col) {
		p.value = f.At(p.Row, p.Col)
	}
}

func (p *Probe) Value() float64 { return p.value }

func (p *Probe) Reset() { p.value = 0 }
