// Package input reads edge lists and colormap tables from text files.
// A malformed row aborts the whole load; no partial result is returned.
package input

import (
	"errors"
	"fmt"
)

var (
	ErrFieldCount = errors.New("input: wrong number of fields")
	ErrNoRows     = errors.New("input: no data rows")
)

// ParseError identifies the source and line of a rejected row.
type ParseError struct {
	Path    string
	Line    int
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Wrapped)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Wrapped)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}
