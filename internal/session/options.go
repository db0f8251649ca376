package session

import (
	"log/slog"

	"github.com/san-kum/hexwave/internal/colormap"
	"github.com/san-kum/hexwave/internal/wave"
)

type Option func(*Session)

// WithMaxSteps sets n_max.
func WithMaxSteps(n int) Option {
	return func(s *Session) { s.nMax = n }
}

func WithParams(p wave.Params) Option {
	return func(s *Session) { s.params = p }
}

func WithWorkers(n int) Option {
	return func(s *Session) { s.workers = n }
}

// WithImpulse adds an impulse at a relative grid position, applied at
// construction and on every Reset.
func WithImpulse(relX, relY float64) Option {
	return func(s *Session) { s.initial = append(s.initial, impulse{relX, relY}) }
}

func WithAmplitude(a float64) Option {
	return func(s *Session) { s.amplitude = a }
}

// WithHeadroom widens the per-frame colour range by a factor.
func WithHeadroom(h float64) Option {
	return func(s *Session) {
		if h > 0 {
			s.headroom = h
		}
	}
}

// WithBackground sets the colour of Outside cells in rendered frames.
func WithBackground(c colormap.RGB) Option {
	return func(s *Session) { s.background = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}
