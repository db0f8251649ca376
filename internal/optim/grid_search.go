// Package optim sweeps configuration parameters over a grid of values,
// running one headless experiment per combination.
package optim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/hexwave/internal/config"
	"github.com/san-kum/hexwave/internal/experiment"
)

var setters = map[string]func(*config.Config, float64){
	"speed":     func(c *config.Config, v float64) { c.Speed = v },
	"time_step": func(c *config.Config, v float64) { c.TimeStep = v },
	"spacing":   func(c *config.Config, v float64) { c.Spacing = v },
	"x":         func(c *config.Config, v float64) { c.Impulse.X = v },
	"y":         func(c *config.Config, v float64) { c.Impulse.Y = v },
	"amplitude": func(c *config.Config, v float64) { c.Impulse.Amplitude = v },
}

// Params lists the names a grid search can vary.
func Params() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Point is one combination and its outcome. Err is set when the
// combination could not be run, for example above the stability limit.
type Point struct {
	Params  map[string]float64
	Metrics map[string]float64
	Err     error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
	logger     *slog.Logger
}

func NewGridSearch(params []string, ranges [][]float64, workers int) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	for _, p := range params {
		if _, ok := setters[p]; !ok {
			return nil, fmt.Errorf("optim: unknown parameter %q (available: %v)", p, Params())
		}
	}
	return &GridSearch{
		paramNames: params,
		ranges:     ranges,
		workers:    max(workers, 1),
		logger:     slog.Default(),
	}, nil
}

func (g *GridSearch) SetLogger(l *slog.Logger) { g.logger = l }

// combinations expands the grid in row-major order.
func (g *GridSearch) combinations() []map[string]float64 {
	combos := []map[string]float64{{}}
	for i, name := range g.paramNames {
		next := make([]map[string]float64, 0, len(combos)*len(g.ranges[i]))
		for _, c := range combos {
			for _, v := range g.ranges[i] {
				m := make(map[string]float64, len(c)+1)
				for k, cv := range c {
					m[k] = cv
				}
				m[name] = v
				next = append(next, m)
			}
		}
		combos = next
	}
	return combos
}

// Run evaluates every combination on a copy of base.
func (g *GridSearch) Run(ctx context.Context, base *config.Config) ([]Point, error) {
	combos := g.combinations()
	points := make([]Point, len(combos))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, params := range combos {
		eg.Go(func() error {
			cfg := base.Clone()
			for name, v := range params {
				setters[name](cfg, v)
			}
			points[i] = Point{Params: params}

			exp := experiment.New(cfg, g.logger)
			if err := exp.Setup(); err != nil {
				points[i].Err = err
				return nil
			}
			result, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			points[i].Metrics = result.Metrics
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Best returns the successful point with the smallest (or, with maximize,
// largest) value of metric.
func Best(points []Point, metric string, maximize bool) (Point, bool) {
	best := math.Inf(1)
	if maximize {
		best = math.Inf(-1)
	}
	var found Point
	ok := false
	for _, p := range points {
		if p.Err != nil {
			continue
		}
		v, has := p.Metrics[metric]
		if !has || math.IsNaN(v) {
			continue
		}
		if (!maximize && v < best) || (maximize && v > best) {
			best, found, ok = v, p, true
		}
	}
	return found, ok
}
