// Package config holds the YAML run description shared by the CLI
// commands.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hexwave/internal/raster"
	"github.com/san-kum/hexwave/internal/session"
	"github.com/san-kum/hexwave/internal/wave"
)

const (
	DefaultShape        = "disc"
	DefaultColormap     = "diverging"
	DefaultHeadroom     = 1.0
	DefaultCaptureEvery = 10
	DefaultScale        = 2
)

var (
	ErrNoGeometry = errors.New("config: neither edges nor shape given")
	ErrBadSteps   = errors.New("config: steps must not be negative")
)

type Config struct {
	// Edges is a path to an edge list file. It wins over Shape.
	Edges    string  `yaml:"edges,omitempty"`
	Shape    string  `yaml:"shape,omitempty"`
	Colormap string  `yaml:"colormap"`
	Spacing  float64 `yaml:"spacing"`
	Speed    float64 `yaml:"speed"`
	TimeStep float64 `yaml:"time_step"`
	Steps    int     `yaml:"steps"`
	Margin   int     `yaml:"margin"`
	Ring     int     `yaml:"ring"`
	Workers  int     `yaml:"workers"`

	Impulse ImpulseConfig `yaml:"impulse"`
	Render  RenderConfig  `yaml:"render"`
}

// ImpulseConfig places the initial disturbance at a relative grid
// position in [0,1]².
type ImpulseConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Amplitude float64 `yaml:"amplitude"`
}

type RenderConfig struct {
	Headroom     float64 `yaml:"headroom"`
	CaptureEvery int     `yaml:"capture_every"`
	Scale        int     `yaml:"scale"`
}

func DefaultConfig() *Config {
	p := wave.DefaultParams()
	return &Config{
		Shape:    DefaultShape,
		Colormap: DefaultColormap,
		Spacing:  p.Spacing,
		Speed:    p.Speed,
		TimeStep: p.TimeStep,
		Steps:    session.DefaultMaxSteps,
		Margin:   raster.DefaultMargin,
		Ring:     raster.DefaultRing,
		Workers:  1,
		Impulse: ImpulseConfig{
			X:         0.5,
			Y:         0.5,
			Amplitude: session.DefaultAmplitude,
		},
		Render: RenderConfig{
			Headroom:     DefaultHeadroom,
			CaptureEvery: DefaultCaptureEvery,
			Scale:        DefaultScale,
		},
	}
}

// Load overlays the file at path on DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay applies the fields present in the file at path to cfg.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() wave.Params {
	return wave.Params{
		Speed:    c.Speed,
		TimeStep: c.TimeStep,
		Spacing:  c.Spacing,
	}
}

// Validate rejects configurations that cannot produce a run. Stability
// of the scheme is checked by the wave parameters.
func (c *Config) Validate() error {
	if c.Edges == "" && c.Shape == "" {
		return ErrNoGeometry
	}
	if c.Steps < 0 {
		return ErrBadSteps
	}
	return c.Params().Validate()
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
