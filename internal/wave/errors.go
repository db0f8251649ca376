package wave

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates buffers that do not match the grid.
	ErrDimensionMismatch = errors.New("wave: dimension mismatch between grid and field")

	// ErrUnstable indicates parameters beyond the Courant limit.
	ErrUnstable = errors.New("wave: courant number exceeds stability limit")

	// ErrParameterBounds indicates a non-positive or non-finite parameter.
	ErrParameterBounds = errors.New("wave: parameter out of valid bounds")
)

// ConfigError reports a rejected engine parameter.
type ConfigError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%g: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
