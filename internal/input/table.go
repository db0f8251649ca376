package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/hexwave/internal/colormap"
)

// LoadColormap reads an "index,r,g,b" table and builds the lookup map.
func LoadColormap(path string) (*colormap.Colormap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Wrapped: err}
	}
	defer f.Close()

	entries, err := ParseColormap(f, path)
	if err != nil {
		return nil, err
	}
	cm, err := colormap.Build(entries)
	if err != nil {
		return nil, &ParseError{Path: path, Wrapped: err}
	}
	return cm, nil
}

// ParseColormap reads comma-separated rows of an integer index followed by
// three channels in [0,1].
func ParseColormap(r io.Reader, path string) ([]colormap.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var entries []colormap.Entry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			line := 0
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, &ParseError{Path: path, Line: line, Wrapped: err}
		}
		line, _ := cr.FieldPos(0)
		if len(record) != 4 {
			return nil, &ParseError{Path: path, Line: line,
				Wrapped: fmt.Errorf("%w: got %d, want 4", ErrFieldCount, len(record))}
		}

		idx, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Wrapped: err}
		}
		if idx != math.Trunc(idx) || idx < 0 || idx >= colormap.Size {
			return nil, &ParseError{Path: path, Line: line,
				Wrapped: fmt.Errorf("%w: %v", colormap.ErrIndexRange, record[0])}
		}
		var ch [3]float64
		for i := range ch {
			ch[i], err = strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return nil, &ParseError{Path: path, Line: line, Wrapped: err}
			}
		}
		entries = append(entries, colormap.Entry{Index: int(idx), R: ch[0], G: ch[1], B: ch[2]})
	}
	if len(entries) == 0 {
		return nil, &ParseError{Path: path, Wrapped: ErrNoRows}
	}
	return entries, nil
}
