// Package colormap maps normalized scalar values to 8-bit RGB colors
// through a fixed 256-entry lookup table.
package colormap

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/hexwave/internal/lattice"
)

const Size = 256

var ErrIndexRange = errors.New("colormap: entry index out of range")

type RGB [3]uint8

// Colormap is immutable once built and safe to share between readers.
type Colormap [Size]RGB

// Entry is one table row with channels in [0,1].
type Entry struct {
	Index   int
	R, G, B float64
}

// Build scales each channel to [0,255]. Indices without an entry stay black.
func Build(entries []Entry) (*Colormap, error) {
	var cm Colormap
	for _, e := range entries {
		if e.Index < 0 || e.Index >= Size {
			return nil, fmt.Errorf("%w: %d", ErrIndexRange, e.Index)
		}
		cm[e.Index] = RGB{channel(e.R), channel(e.G), channel(e.B)}
	}
	return &cm, nil
}

func channel(v float64) uint8 {
	c := math.Round(v * 255)
	switch {
	case math.IsNaN(c) || c < 0:
		return 0
	case c > 255:
		return 255
	}
	return uint8(c)
}

// Index maps value to a table position. A non-positive or NaN range has
// no scale, so every value lands on the midpoint.
func Index(value, baseLevel, rng float64) int {
	if !(rng > 0) || math.IsInf(rng, 0) {
		return Size / 2
	}
	norm := (value-baseLevel)/rng + 0.5
	idx := math.Round(norm * 255)
	switch {
	case math.IsNaN(idx):
		return Size / 2
	case idx < 0:
		return 0
	case idx > Size-1:
		return Size - 1
	}
	return int(idx)
}

func (c *Colormap) Colorize(value, baseLevel, rng float64) RGB {
	return c[Index(value, baseLevel, rng)]
}

// Midpoint is the color that zero maps to under a symmetric range.
func (c *Colormap) Midpoint() RGB { return c[Size/2] }

// RangeFor is the symmetric normalization range for a field: twice its
// peak absolute amplitude, widened by headroom.
func RangeFor(f *lattice.Field, headroom float64) float64 {
	if headroom <= 0 {
		headroom = 1
	}
	return 2 * f.MaxAbs() * headroom
}
