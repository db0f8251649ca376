package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/hexwave/internal/lattice"
)

func testGrid() (*lattice.Grid, *lattice.Field) {
	g := lattice.NewGrid(3, 3)
	g.Set(1, 1, lattice.Interior)
	g.Set(1, 2, lattice.Interior)
	g.Set(0, 0, lattice.Boundary)
	f := lattice.NewField(3, 3)
	f.Set(1, 1, 2)
	f.Set(1, 2, -1)
	f.Set(0, 0, 100)
	return g, f
}

func TestEnergyCountsInteriorOnly(t *testing.T) {
	g, f := testGrid()
	m := NewEnergy()
	m.Observe(0, g, f)
	if m.Value() != 5 {
		t.Errorf("expected energy 5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestPeakAndProbe(t *testing.T) {
	g, f := testGrid()
	p := NewPeak()
	p.Observe(0, g, f)
	if p.Value() != 100 {
		t.Errorf("peak = %f, expected 100", p.Value())
	}
	f.Set(0, 0, 0)
	p.Observe(1, g, f)
	if p.Value() != 100 {
		t.Errorf("peak should be a running max, got %f", p.Value())
	}

	probe := NewProbe(1, 2)
	probe.Observe(0, g, f)
	if probe.Value() != -1 {
		t.Errorf("probe = %f, expected -1", probe.Value())
	}
}

func TestStability(t *testing.T) {
	g, f := testGrid()
	s := NewStability(10)
	if s.Value() != 1 {
		t.Errorf("empty stability = %f, expected 1", s.Value())
	}
	s.Observe(0, g, f) // 100 > 10
	f.Set(0, 0, 0)
	s.Observe(1, g, f)
	if math.Abs(s.Value()-0.5) > 1e-12 {
		t.Errorf("stability = %f, expected 0.5", s.Value())
	}
	f.Set(1, 1, math.NaN())
	s.Observe(2, g, f)
	if math.Abs(s.Value()-1.0/3.0) > 1e-12 {
		t.Errorf("stability = %f, expected 1/3", s.Value())
	}
}

func TestPeakKeepsNaN(t *testing.T) {
	g, f := testGrid()
	p := NewPeak()
	f.Set(1, 1, math.NaN())
	p.Observe(0, g, f)
	f.Set(1, 1, 2)
	p.Observe(1, g, f)
	if !math.IsNaN(p.Value()) {
		t.Errorf("peak = %f, expected NaN once the field diverged", p.Value())
	}
	p.Reset()
	if p.Value() != 0 {
		t.Errorf("peak after reset = %f", p.Value())
	}
}
