package session

import (
	"bytes"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hexwave/internal/colormap"
	"github.com/san-kum/hexwave/internal/lattice"
	"github.com/san-kum/hexwave/internal/wave"
)

func snapshot(f *lattice.Field) []float64 {
	out := make([]float64, len(f.Values))
	copy(out, f.Values)
	return out
}

var _ = Describe("Session", func() {
	var (
		grid *lattice.Grid
		logs *bytes.Buffer
		s    *Session
	)

	BeforeEach(func() {
		grid = discGrid()
		logs = &bytes.Buffer{}
		var err error
		s, err = New(grid, colormap.Grayscale(),
			WithMaxSteps(5),
			WithImpulse(0.5, 0.5),
			WithBackground(colormap.RGB{7, 8, 9}),
			WithLogger(slog.New(slog.NewTextHandler(logs, nil))),
		)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects an empty grid", func() {
			_, err := New(nil, nil)
			Expect(err).To(MatchError(ErrNoGrid))
		})

		It("rejects parameters beyond the stability limit", func() {
			_, err := New(grid, nil, WithParams(wave.Params{Speed: 1, TimeStep: 0.01, Spacing: 0.01}))
			Expect(err).To(MatchError(wave.ErrUnstable))
		})

		It("starts at step zero with the configured limit", func() {
			Expect(s.Step()).To(Equal(0))
			Expect(s.MaxSteps()).To(Equal(5))
			Expect(s.IsDone()).To(BeFalse())
		})
	})

	Describe("Advance", func() {
		It("stops after n_max steps and leaves the buffers untouched", func() {
			for i := 0; i < 5; i++ {
				Expect(s.Advance()).To(BeTrue())
			}
			Expect(s.IsDone()).To(BeTrue())

			before := snapshot(s.Current())
			Expect(s.Advance()).To(BeFalse())
			Expect(s.Step()).To(Equal(5))
			Expect(snapshot(s.Current())).To(Equal(before))
		})

		It("never writes non-interior cells", func() {
			for s.Advance() {
			}
			for i, tag := range grid.Tags {
				if tag != lattice.Interior {
					Expect(s.Current().Values[i]).To(BeZero())
				}
			}
		})
	})

	Describe("Reset", func() {
		It("reproduces the same sequence of frames", func() {
			var first [][]byte
			for s.Advance() {
				first = append(first, s.RenderFrame())
			}

			s.Reset()
			Expect(s.Step()).To(Equal(0))
			Expect(s.IsDone()).To(BeFalse())

			var second [][]byte
			for s.Advance() {
				second = append(second, s.RenderFrame())
			}
			Expect(second).To(Equal(first))
		})

		It("reapplies the initial impulse", func() {
			s.Advance()
			s.Reset()
			Expect(s.Current().At(3, 3)).To(Equal(1.0))
			Expect(s.Current().MaxAbs()).To(Equal(1.0))
		})
	})

	Describe("InjectImpulse", func() {
		It("writes the amplitude into an interior cell", func() {
			Expect(s.InjectImpulse(0.3, 0.3)).To(BeTrue())
			Expect(s.Current().At(2, 2)).To(Equal(1.0))
		})

		It("ignores boundary cells and logs a notice", func() {
			before := snapshot(s.Current())
			Expect(s.InjectImpulse(0.5, 0.01)).To(BeFalse())
			Expect(snapshot(s.Current())).To(Equal(before))
			Expect(logs.String()).To(ContainSubstring("impulse outside interior"))
			Expect(logs.String()).To(ContainSubstring("tag=boundary"))
		})

		It("ignores positions off the grid", func() {
			before := snapshot(s.Current())
			Expect(s.InjectImpulse(1.2, 0.5)).To(BeFalse())
			Expect(snapshot(s.Current())).To(Equal(before))
			Expect(logs.String()).To(ContainSubstring("impulse outside grid"))
		})
	})

	Describe("RenderFrame", func() {
		It("produces one RGB triple per cell", func() {
			Expect(s.RenderFrame()).To(HaveLen(7 * 7 * 3))
		})

		It("fills outside cells with the background", func() {
			frame := s.RenderFrame()
			Expect(frame[0:3]).To(Equal([]byte{7, 8, 9}))
		})

		It("maps zero amplitude to the colormap midpoint", func() {
			frame := s.RenderFrame()
			mid := colormap.Grayscale().Midpoint()
			// (0,3) is a boundary cell, which is never written.
			idx := (0*7 + 3) * 3
			Expect(frame[idx : idx+3]).To(Equal(mid[:]))
		})

		It("maps the peak amplitude to the top of the colormap", func() {
			frame := s.RenderFrame()
			top := colormap.Grayscale()[255]
			idx := (3*7 + 3) * 3
			Expect(frame[idx : idx+3]).To(Equal(top[:]))
		})

		It("reuses a caller buffer", func() {
			buf := make([]byte, s.FrameSize())
			out := s.RenderInto(buf)
			Expect(&out[0]).To(BeIdenticalTo(&buf[0]))
		})
	})
})
