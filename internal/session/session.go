// Package session owns the height-field buffers of one simulation run and
// exposes the operations an external driver calls: advance, inject an
// impulse, reset, and render a frame.
//
// A Session is not safe for concurrent use. The driver must serialize
// calls; the classification grid and colormap it holds are never mutated
// and may be shared freely.
package session

import (
	"errors"
	"log/slog"
	"math"

	"github.com/san-kum/hexwave/internal/colormap"
	"github.com/san-kum/hexwave/internal/lattice"
	"github.com/san-kum/hexwave/internal/wave"
)

const (
	DefaultMaxSteps  = 3000
	DefaultAmplitude = 1.0
)

var ErrNoGrid = errors.New("session: classification grid is empty")

type impulse struct {
	relX, relY float64
}

type Session struct {
	grid   *lattice.Grid
	cmap   *colormap.Colormap
	engine *wave.Engine

	prev, cur, next *lattice.Field

	n, nMax int

	params     wave.Params
	workers    int
	initial    []impulse
	amplitude  float64
	headroom   float64
	background colormap.RGB
	logger     *slog.Logger
}

// New builds a session over grid. A nil colormap selects the built-in
// diverging map. Initial impulses given with WithImpulse are applied now
// and again on every Reset.
func New(grid *lattice.Grid, cmap *colormap.Colormap, opts ...Option) (*Session, error) {
	if grid == nil || grid.Rows <= 0 || grid.Cols <= 0 || len(grid.Tags) != grid.Rows*grid.Cols {
		return nil, ErrNoGrid
	}
	if cmap == nil {
		cmap = colormap.Diverging()
	}

	s := &Session{
		grid:      grid,
		cmap:      cmap,
		nMax:      DefaultMaxSteps,
		params:    wave.DefaultParams(),
		workers:   1,
		amplitude: DefaultAmplitude,
		headroom:  1,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.nMax < 0 {
		s.nMax = 0
	}

	engine, err := wave.New(s.params, wave.WithWorkers(s.workers))
	if err != nil {
		return nil, err
	}
	s.engine = engine

	s.prev = lattice.NewField(grid.Rows, grid.Cols)
	s.cur = lattice.NewField(grid.Rows, grid.Cols)
	s.next = lattice.NewField(grid.Rows, grid.Cols)
	s.applyInitial()
	return s, nil
}

// Advance runs one step of the wave engine and rotates the buffers. Once
// the step limit is reached it does nothing and returns false.
func (s *Session) Advance() bool {
	if s.n >= s.nMax {
		return false
	}
	if err := s.engine.Step(s.grid, s.prev, s.cur, s.next); err != nil {
		s.logger.Error("step failed", "step", s.n, "error", err)
		return false
	}
	s.prev, s.cur, s.next = s.cur, s.next, s.prev
	s.n++
	return true
}

// Reset zeroes all buffers, reapplies the initial impulses and rewinds
// the step counter.
func (s *Session) Reset() {
	s.prev.Zero()
	s.cur.Zero()
	s.next.Zero()
	s.n = 0
	s.applyInitial()
}

func (s *Session) applyInitial() {
	for _, imp := range s.initial {
		s.InjectImpulse(imp.relX, imp.relY)
	}
}

// InjectImpulse sets the cell at the relative position (x, y) in [0,1]²
// to the impulse amplitude. Positions off the grid, on a non-interior cell
// or on the grid's outermost ring are logged and ignored.
func (s *Session) InjectImpulse(relX, relY float64) bool {
	row, col, ok := s.Locate(relX, relY)
	if !ok {
		s.logger.Info("impulse outside grid", "x", relX, "y", relY)
		return false
	}
	return s.InjectAt(row, col)
}

// InjectAt is InjectImpulse addressed by lattice indices.
func (s *Session) InjectAt(row, col int) bool {
	if tag := s.grid.At(row, col); tag != lattice.Interior {
		s.logger.Info("impulse outside interior", "row", row, "col", col, "tag", tag.String())
		return false
	}
	// The stepper never writes the outermost ring of storage.
	if row == 0 || col == 0 || row == s.grid.Rows-1 || col == s.grid.Cols-1 {
		s.logger.Info("impulse on grid edge", "row", row, "col", col)
		return false
	}
	s.cur.Set(row, col, s.amplitude)
	return true
}

// Locate converts a relative position to lattice indices by scaling
// against the grid dimensions and flooring.
func (s *Session) Locate(relX, relY float64) (row, col int, ok bool) {
	if math.IsNaN(relX) || math.IsNaN(relY) || relX < 0 || relX > 1 || relY < 0 || relY > 1 {
		return 0, 0, false
	}
	col = min(int(math.Floor(relX*float64(s.grid.Cols))), s.grid.Cols-1)
	row = min(int(math.Floor(relY*float64(s.grid.Rows))), s.grid.Rows-1)
	return row, col, true
}

func (s *Session) IsDone() bool { return s.n >= s.nMax }

func (s *Session) Step() int { return s.n }

func (s *Session) MaxSteps() int { return s.nMax }

func (s *Session) Grid() *lattice.Grid { return s.grid }

func (s *Session) Colormap() *colormap.Colormap { return s.cmap }

func (s *Session) Params() wave.Params { return s.params }

func (s *Session) Background() colormap.RGB { return s.background }

// Current is the latest height field. Callers must not modify it.
func (s *Session) Current() *lattice.Field { return s.cur }
