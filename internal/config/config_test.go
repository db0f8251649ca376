package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/hexwave/internal/shapes"
	"github.com/san-kum/hexwave/internal/wave"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Shape != "disc" {
		t.Errorf("expected shape disc, got %s", cfg.Shape)
	}
	if cfg.Steps != 3000 {
		t.Errorf("expected 3000 steps, got %d", cfg.Steps)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no geometry", func(c *Config) { c.Shape = "" }, ErrNoGeometry},
		{"negative steps", func(c *Config) { c.Steps = -1 }, ErrBadSteps},
		{"unstable", func(c *Config) { c.Speed = 1 }, wave.ErrUnstable},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }, wave.ErrParameterBounds},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "shape: square\nsteps: 200\nimpulse:\n  x: 0.25\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Shape != "square" || cfg.Steps != 200 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Impulse.X != 0.25 || cfg.Impulse.Y != 0.5 {
		t.Errorf("impulse = %+v", cfg.Impulse)
	}
	if cfg.Speed != wave.DefaultSpeed {
		t.Errorf("speed default lost: %f", cfg.Speed)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("room")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n%+v\n%+v", got, cfg)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("corner")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Impulse.X != 0.3 {
		t.Errorf("expected impulse x 0.3, got %f", cfg.Impulse.X)
	}
	if cfg.Impulse.Amplitude != 1 {
		t.Errorf("amplitude not defaulted: %f", cfg.Impulse.Amplitude)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreRunnable(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if _, err := shapes.ByName(cfg.Shape); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestOverlayKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("steps: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := GetPreset("room")
	if err := Overlay(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Steps != 10 || cfg.Shape != "room" || cfg.Colormap != "gray" {
		t.Errorf("overlay lost preset fields: %+v", cfg)
	}
	if err := Overlay(filepath.Join(t.TempDir(), "missing.yaml"), cfg); err == nil {
		t.Error("expected error for missing file")
	}
}
