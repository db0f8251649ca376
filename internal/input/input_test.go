package input

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/hexwave/internal/colormap"
)

func TestParseEdges(t *testing.T) {
	src := `# square
-1 -1 1 -1
1 -1	1 1
1,1,-1,1

-1;1;-1;-1
`
	edges, err := ParseEdges(strings.NewReader(src), "square.txt")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(edges))
	}
	if edges[2].X1 != 1 || edges[2].Y2 != 1 || edges[2].X2 != -1 {
		t.Errorf("edge 2 = %+v", edges[2])
	}
}

func TestParseEdgesErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		line     int
		sentinel error
	}{
		{"too few fields", "0 0 1 1\n0 0 1\n", 2, ErrFieldCount},
		{"too many fields", "0 0 1 1 1\n", 1, ErrFieldCount},
		{"non numeric", "0 0 1 1\n0 x 1 1\n", 2, strconv.ErrSyntax},
		{"empty", "# nothing\n\n", 0, ErrNoRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, err := ParseEdges(strings.NewReader(tt.src), "edges.txt")
			if edges != nil {
				t.Errorf("expected no partial result, got %d edges", len(edges))
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T (%v)", err, err)
			}
			if pe.Path != "edges.txt" {
				t.Errorf("path = %q", pe.Path)
			}
			if pe.Line != tt.line {
				t.Errorf("line = %d, expected %d", pe.Line, tt.line)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v in chain, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestParseColormap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < colormap.Size; i++ {
		v := float64(i) / 255
		b.WriteString(strconv.Itoa(i) + "," + strconv.FormatFloat(v, 'f', 6, 64) + ",0, 1\n")
	}
	entries, err := ParseColormap(strings.NewReader(b.String()), "ramp.csv")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(entries) != colormap.Size {
		t.Fatalf("expected 256 entries, got %d", len(entries))
	}
	cm, err := colormap.Build(entries)
	if err != nil {
		t.Fatal(err)
	}
	if cm[255] != (colormap.RGB{255, 0, 255}) || cm[0] != (colormap.RGB{0, 0, 255}) {
		t.Errorf("ends = %v %v", cm[0], cm[255])
	}
}

func TestParseColormapErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"short row", "0,0,0,0\n1,0.5,0.5\n", 2},
		{"bad channel", "0,0,0,zero\n", 1},
		{"fractional index", "0.5,0,0,0\n", 1},
		{"index out of range", "300,0,0,0\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseColormap(strings.NewReader(tt.src), "cmap.csv")
			if entries != nil {
				t.Errorf("expected no partial result, got %d entries", len(entries))
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T (%v)", err, err)
			}
			if pe.Line != tt.line {
				t.Errorf("line = %d, expected %d", pe.Line, tt.line)
			}
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	edgePath := filepath.Join(dir, "edges.txt")
	if err := os.WriteFile(edgePath, []byte("0 0 1 0\n1 0 0 1\n0 1 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	edges, err := LoadEdges(edgePath)
	if err != nil {
		t.Fatalf("load edges: %v", err)
	}
	if len(edges) != 3 {
		t.Errorf("expected 3 edges, got %d", len(edges))
	}

	cmapPath := filepath.Join(dir, "cmap.csv")
	if err := os.WriteFile(cmapPath, []byte("0,1,0,0\n128,0,1,0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cm, err := LoadColormap(cmapPath)
	if err != nil {
		t.Fatalf("load colormap: %v", err)
	}
	if cm.Midpoint() != (colormap.RGB{0, 255, 0}) {
		t.Errorf("midpoint = %v", cm.Midpoint())
	}

	_, err = LoadEdges(filepath.Join(dir, "missing.txt"))
	var pe *ParseError
	if !errors.As(err, &pe) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ParseError wrapping ErrNotExist, got %v", err)
	}
}
