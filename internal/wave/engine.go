// Package wave advances a height field over the interior of a classified
// hexagonal lattice with an explicit leap-frog scheme.
package wave

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/hexwave/internal/lattice"
)

const (
	DefaultSpeed    = 0.7
	DefaultTimeStep = 0.01
)

// CourantLimit is the largest stable Courant number for the six-point
// stencil: the discrete Laplacian's largest eigenvalue is 6/h², and the
// leap-frog scheme needs k²·6 ≤ 4.
var CourantLimit = math.Sqrt(2.0 / 3.0)

type Params struct {
	Speed    float64 `yaml:"speed"`
	TimeStep float64 `yaml:"time_step"`
	Spacing  float64 `yaml:"spacing"`
}

func DefaultParams() Params {
	return Params{
		Speed:    DefaultSpeed,
		TimeStep: DefaultTimeStep,
		Spacing:  lattice.DefaultSpacing,
	}
}

// Courant returns speed*timeStep/spacing.
func (p Params) Courant() float64 {
	return p.Speed * p.TimeStep / p.Spacing
}

func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"speed", p.Speed},
		{"time_step", p.TimeStep},
		{"spacing", p.Spacing},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return &ConfigError{Field: f.name, Value: f.v, Wrapped: ErrParameterBounds}
		}
	}
	if k := p.Courant(); k > CourantLimit {
		return &ConfigError{Field: "courant", Value: k, Wrapped: ErrUnstable}
	}
	return nil
}

type Engine struct {
	params  Params
	k2      float64
	workers int
}

type Option func(*Engine)

// WithWorkers steps row bands concurrently. n <= 1 keeps the engine
// single-threaded.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func New(p Params, opts ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	k := p.Courant()
	e := &Engine{params: p, k2: k * k, workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Params() Params { return e.params }

// K2 is the squared Courant number used by Step.
func (e *Engine) K2() float64 { return e.k2 }

// Step writes the next time slice of every Interior cell into next. Cells
// of any other tag, and cells on the outermost storage ring, are not
// written and keep whatever next already holds.
func (e *Engine) Step(grid *lattice.Grid, prev, cur, next *lattice.Field) error {
	for _, f := range []*lattice.Field{prev, cur, next} {
		if f == nil || !f.SameShape(grid) {
			return ErrDimensionMismatch
		}
	}

	last := grid.Rows - 1
	if e.workers <= 1 || last < 2 {
		e.stepRows(grid, prev, cur, next, 1, last)
		return nil
	}

	band := (last - 1 + e.workers - 1) / e.workers
	eg, _ := errgroup.WithContext(context.Background())
	eg.SetLimit(e.workers)
	for start := 1; start < last; start += band {
		end := min(start+band, last)
		eg.Go(func() error {
			e.stepRows(grid, prev, cur, next, start, end)
			return nil
		})
	}
	return eg.Wait()
}

func (e *Engine) stepRows(grid *lattice.Grid, prev, cur, next *lattice.Field, from, to int) {
	cols := grid.Cols
	for row := from; row < to; row++ {
		base := row * cols
		for col := 1; col < cols-1; col++ {
			idx := base + col
			if grid.Tags[idx] != lattice.Interior {
				continue
			}
			u := cur.Values[idx]
			lap := 2.0/3.0*lattice.NeighborSum(cur, row, col) - 4*u
			next.Values[idx] = 2*u - prev.Values[idx] + e.k2*lap
		}
	}
}
