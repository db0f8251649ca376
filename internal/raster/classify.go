// Package raster classifies lattice cells against a closed polygon.
package raster

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/hexwave/internal/lattice"
)

const (
	DefaultMargin = 20
	DefaultRing   = 1
)

var ErrEmptyGrid = errors.New("raster: grid has no cells")

// Frame fixes the grid dimensions and the lattice index of the origin.
type Frame struct {
	Rows, Cols           int
	ColOffset, RowOffset int
}

type Options struct {
	Geometry lattice.Geometry
	// Ring is the number of outermost rows and columns left out of
	// boundary marking.
	Ring int
	// Workers > 1 classifies rows concurrently.
	Workers int
}

func DefaultOptions() Options {
	return Options{Geometry: lattice.Default, Ring: DefaultRing, Workers: 1}
}

// FrameFor sizes a grid that bounds the edge set with margin cells of
// padding on every side.
func FrameFor(edges lattice.EdgeSet, geom lattice.Geometry, margin int) Frame {
	minX, minY, maxX, maxY := edges.Extent()
	if margin < 0 {
		margin = 0
	}

	lowCol := int(math.Floor(minX / geom.Spacing))
	highCol := int(math.Ceil(maxX / geom.Spacing))
	lowRow := int(math.Floor(minY / geom.RowStep()))
	highRow := int(math.Ceil(maxY / geom.RowStep()))

	return Frame{
		Rows:      highRow - lowRow + 2*margin + 1,
		Cols:      highCol - lowCol + 2*margin + 1,
		ColOffset: margin - lowCol,
		RowOffset: margin - lowRow,
	}
}

// Classify tags every cell of the frame as Interior (odd number of
// crossings to its right), Boundary (outside but touching the interior),
// or Outside.
func Classify(edges lattice.EdgeSet, frame Frame, opts Options) (*lattice.Grid, error) {
	if err := edges.Validate(); err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}
	if frame.Rows <= 0 || frame.Cols <= 0 {
		return nil, ErrEmptyGrid
	}
	if !opts.Geometry.Valid() {
		opts.Geometry = lattice.Default
	}

	inside := lattice.NewGrid(frame.Rows, frame.Cols)
	if err := fillInterior(inside, edges, frame, opts); err != nil {
		return nil, err
	}
	return markBoundary(inside, opts.Ring), nil
}

// ClassifyEdges sizes the frame with DefaultMargin and classifies.
func ClassifyEdges(edges lattice.EdgeSet, opts Options) (*lattice.Grid, Frame, error) {
	if err := edges.Validate(); err != nil {
		return nil, Frame{}, fmt.Errorf("raster: %w", err)
	}
	if !opts.Geometry.Valid() {
		opts.Geometry = lattice.Default
	}
	frame := FrameFor(edges, opts.Geometry, DefaultMargin)
	grid, err := Classify(edges, frame, opts)
	return grid, frame, err
}

func fillInterior(g *lattice.Grid, edges lattice.EdgeSet, frame Frame, opts Options) error {
	fillRow := func(row int) {
		y := opts.Geometry.RowY(row, frame.RowOffset)
		xs := lattice.ScanlineIntersections(y, edges)
		if len(xs) == 0 {
			return
		}
		for col := 0; col < frame.Cols; col++ {
			x, _ := opts.Geometry.Coord(col, row, frame.ColOffset, frame.RowOffset)
			if lattice.CountGreater(x, xs)%2 == 1 {
				g.Set(row, col, lattice.Interior)
			}
		}
	}

	if opts.Workers <= 1 {
		for row := 0; row < frame.Rows; row++ {
			fillRow(row)
		}
		return nil
	}

	// Rows write disjoint slices of g.Tags.
	eg, _ := errgroup.WithContext(context.Background())
	eg.SetLimit(opts.Workers)
	for row := 0; row < frame.Rows; row++ {
		eg.Go(func() error {
			fillRow(row)
			return nil
		})
	}
	return eg.Wait()
}

// markBoundary reads only src and writes only the copy, so the result does
// not depend on visiting order.
func markBoundary(src *lattice.Grid, ring int) *lattice.Grid {
	if ring < 0 {
		ring = 0
	}
	dst := src.Clone()
	for row := ring; row < src.Rows-ring; row++ {
		for col := ring; col < src.Cols-ring; col++ {
			if src.At(row, col) != lattice.Outside {
				continue
			}
			if src.TagSum(row, col) != 0 {
				dst.Set(row, col, lattice.Boundary)
			}
		}
	}
	return dst
}
