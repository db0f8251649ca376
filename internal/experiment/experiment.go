// Package experiment builds a session from a configuration and runs it
// headless, recording metrics and captured frames.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/hexwave/internal/config"
	"github.com/san-kum/hexwave/internal/lattice"
	"github.com/san-kum/hexwave/internal/metrics"
	"github.com/san-kum/hexwave/internal/raster"
	"github.com/san-kum/hexwave/internal/session"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Sample holds every metric value after one step.
type Sample struct {
	Step   int
	Values map[string]float64
}

type Result struct {
	Steps   int
	Trace   []Sample
	Metrics map[string]float64
	// Frames are RGB buffers captured every Render.CaptureEvery steps,
	// starting with the initial state.
	Frames  [][]byte
	Elapsed time.Duration
}

// Observer is called after every completed step.
type Observer func(step int, s *session.Session)

type Experiment struct {
	cfg       *config.Config
	logger    *slog.Logger
	source    string
	grid      *lattice.Grid
	frame     raster.Frame
	session   *session.Session
	metrics   []metrics.Metric
	observers []Observer
}

func New(cfg *config.Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Experiment{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.DefaultSet(),
	}
}

func (e *Experiment) AddMetric(m metrics.Metric) { e.metrics = append(e.metrics, m) }
func (e *Experiment) AddObserver(o Observer)     { e.observers = append(e.observers, o) }

// Setup validates the configuration, classifies the geometry and builds
// the session. Any failure here is fatal for the run.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	edges, source, err := ResolveEdges(e.cfg)
	if err != nil {
		return err
	}
	cmap, err := ResolveColormap(e.cfg.Colormap)
	if err != nil {
		return err
	}

	opts := raster.Options{
		Geometry: lattice.Geometry{Spacing: e.cfg.Spacing},
		Ring:     e.cfg.Ring,
		Workers:  e.cfg.Workers,
	}
	frame := raster.FrameFor(edges, opts.Geometry, e.cfg.Margin)
	grid, err := raster.Classify(edges, frame, opts)
	if err != nil {
		return err
	}
	e.logger.Debug("classified",
		"source", source,
		"rows", grid.Rows,
		"cols", grid.Cols,
		"interior", grid.Count(lattice.Interior),
		"boundary", grid.Count(lattice.Boundary))

	s, err := session.New(grid, cmap,
		session.WithParams(e.cfg.Params()),
		session.WithMaxSteps(e.cfg.Steps),
		session.WithWorkers(e.cfg.Workers),
		session.WithAmplitude(e.cfg.Impulse.Amplitude),
		session.WithImpulse(e.cfg.Impulse.X, e.cfg.Impulse.Y),
		session.WithHeadroom(e.cfg.Render.Headroom),
		session.WithLogger(e.logger),
	)
	if err != nil {
		return fmt.Errorf("experiment: %w", err)
	}

	// The probe sits on the impulse cell so the trace carries the
	// interior response for spectral analysis.
	if row, col, ok := s.Locate(e.cfg.Impulse.X, e.cfg.Impulse.Y); ok {
		e.metrics = append(e.metrics, metrics.NewProbe(row, col))
	}

	e.source = source
	e.grid = grid
	e.frame = frame
	e.session = s
	return nil
}

// Run advances the session until it reaches its step limit or ctx is
// cancelled. On cancellation the partial result is returned with the
// context error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.session == nil {
		return nil, ErrNotSetup
	}

	s := e.session
	result := &Result{
		Trace:   make([]Sample, 0, s.MaxSteps()-s.Step()),
		Metrics: make(map[string]float64),
	}
	for _, m := range e.metrics {
		m.Reset()
	}

	every := e.cfg.Render.CaptureEvery
	if every > 0 {
		result.Frames = append(result.Frames, s.RenderFrame())
	}

	start := time.Now()
	for !s.IsDone() {
		select {
		case <-ctx.Done():
			e.finish(result, start)
			return result, ctx.Err()
		default:
		}

		if !s.Advance() {
			break
		}
		step := s.Step()

		sample := Sample{Step: step, Values: make(map[string]float64, len(e.metrics))}
		for _, m := range e.metrics {
			m.Observe(step, e.grid, s.Current())
			sample.Values[m.Name()] = m.Value()
		}
		result.Trace = append(result.Trace, sample)

		if every > 0 && step%every == 0 {
			result.Frames = append(result.Frames, s.RenderFrame())
		}
		for _, obs := range e.observers {
			obs(step, s)
		}
	}

	e.finish(result, start)
	e.logger.Info("run complete",
		"steps", result.Steps,
		"frames", len(result.Frames),
		"elapsed", result.Elapsed)
	return result, nil
}

func (e *Experiment) finish(r *Result, start time.Time) {
	r.Elapsed = time.Since(start)
	r.Steps = e.session.Step()
	for _, m := range e.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

func (e *Experiment) Session() *session.Session { return e.session }

func (e *Experiment) Grid() *lattice.Grid { return e.grid }

func (e *Experiment) Frame() raster.Frame { return e.frame }

// Source names where the geometry came from: a file path or a shape.
func (e *Experiment) Source() string { return e.source }

func (e *Experiment) Config() *config.Config { return e.cfg }
