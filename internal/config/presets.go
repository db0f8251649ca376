package config

import "sort"

// Presets are named starting points; fields left zero are filled from
// DefaultConfig by GetPreset.
var Presets = map[string]*Config{
	"disc": {
		Shape: "disc", Steps: 3000,
		Impulse: ImpulseConfig{X: 0.5, Y: 0.5},
	},
	"square": {
		Shape: "square", Steps: 3000,
		Impulse: ImpulseConfig{X: 0.5, Y: 0.5},
	},
	"corner": {
		Shape: "square", Steps: 4000,
		Impulse: ImpulseConfig{X: 0.3, Y: 0.3},
	},
	"room": {
		Shape: "room", Steps: 5000, Colormap: "gray",
		Impulse: ImpulseConfig{X: 0.25, Y: 0.5},
	},
	"hexagon": {
		Shape: "hexagon", Steps: 3000,
		Impulse: ImpulseConfig{X: 0.5, Y: 0.5},
	},
	"l": {
		Shape: "l", Steps: 4000,
		Impulse: ImpulseConfig{X: 0.3, Y: 0.3},
	},
	"fast": {
		Shape: "disc", Steps: 1500, Speed: 0.8,
		Impulse: ImpulseConfig{X: 0.5, Y: 0.5},
	},
}

// GetPreset returns a full configuration for name, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Shape = p.Shape
	cfg.Steps = p.Steps
	cfg.Impulse.X = p.Impulse.X
	cfg.Impulse.Y = p.Impulse.Y
	if p.Colormap != "" {
		cfg.Colormap = p.Colormap
	}
	if p.Speed > 0 {
		cfg.Speed = p.Speed
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
