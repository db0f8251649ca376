package experiment

import (
	"fmt"

	"github.com/san-kum/hexwave/internal/colormap"
	"github.com/san-kum/hexwave/internal/config"
	"github.com/san-kum/hexwave/internal/input"
	"github.com/san-kum/hexwave/internal/lattice"
	"github.com/san-kum/hexwave/internal/shapes"
)

// ResolveEdges reads the edge list file when one is configured, else
// builds the named shape.
func ResolveEdges(cfg *config.Config) (lattice.EdgeSet, string, error) {
	if cfg.Edges != "" {
		edges, err := input.LoadEdges(cfg.Edges)
		if err != nil {
			return nil, "", err
		}
		return edges, cfg.Edges, nil
	}
	edges, err := shapes.ByName(cfg.Shape)
	if err != nil {
		return nil, "", err
	}
	return edges, cfg.Shape, nil
}

// ResolveColormap accepts a built-in name or a path to a colour table.
func ResolveColormap(name string) (*colormap.Colormap, error) {
	if cm, ok := colormap.Builtin(name); ok {
		return cm, nil
	}
	cm, err := input.LoadColormap(name)
	if err != nil {
		return nil, fmt.Errorf("colormap %q: %w", name, err)
	}
	return cm, nil
}
