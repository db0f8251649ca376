package session

import (
	"github.com/san-kum/hexwave/internal/colormap"
	"github.com/san-kum/hexwave/internal/lattice"
)

// FrameSize is the length of a rendered RGB buffer.
func (s *Session) FrameSize() int { return s.grid.Rows * s.grid.Cols * 3 }

// RenderFrame colours the current field into a new row-major RGB buffer.
func (s *Session) RenderFrame() []byte {
	buf := make([]byte, s.FrameSize())
	s.RenderInto(buf)
	return buf
}

// RenderInto reuses buf when it is large enough. The range is recomputed
// for every frame so zero always lands on the colormap midpoint.
func (s *Session) RenderInto(buf []byte) []byte {
	if len(buf) < s.FrameSize() {
		buf = make([]byte, s.FrameSize())
	}
	rng := colormap.RangeFor(s.cur, s.headroom)
	for i, tag := range s.grid.Tags {
		px := buf[i*3 : i*3+3]
		if tag == lattice.Outside {
			copy(px, s.background[:])
			continue
		}
		c := s.cmap.Colorize(s.cur.Values[i], 0, rng)
		copy(px, c[:])
	}
	return buf
}
