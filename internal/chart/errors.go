package chart

import (
	"errors"
	"fmt"
)

// ErrEmptyFigure is returned when asked to render a figure with no panels.
var ErrEmptyFigure = errors.New("figure has no panels")

// OutputError reports a failure to write a rendered chart.
type OutputError struct {
	Path   string
	Format string // "png" or "html"
	Err    error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing %s chart %s: %v", e.Format, e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// IsOutputError reports whether err wraps an *OutputError.
func IsOutputError(err error) bool {
	var oe *OutputError
	return errors.As(err, &oe)
}
