package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/hexwave/internal/lattice"
)

// LoadEdges reads an edge list file.
func LoadEdges(path string) (lattice.EdgeSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Wrapped: err}
	}
	defer f.Close()
	return ParseEdges(f, path)
}

// ParseEdges reads one segment "x1 y1 x2 y2" per row. Fields may be
// separated by whitespace, commas or semicolons; blank lines and lines
// starting with '#' are skipped.
func ParseEdges(r io.Reader, path string) (lattice.EdgeSet, error) {
	var edges lattice.EdgeSet
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, isSeparator)
		if len(fields) != 4 {
			return nil, &ParseError{Path: path, Line: line,
				Wrapped: fmt.Errorf("%w: got %d, want 4", ErrFieldCount, len(fields))}
		}
		var v [4]float64
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Path: path, Line: line, Wrapped: err}
			}
			v[i] = x
		}
		edges = append(edges, lattice.Segment{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]})
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: line, Wrapped: err}
	}
	if len(edges) == 0 {
		return nil, &ParseError{Path: path, Wrapped: ErrNoRows}
	}
	return edges, nil
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', ',', ';', '\r':
		return true
	}
	return false
}
