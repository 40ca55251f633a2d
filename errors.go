package xyplot

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownScale  = errors.New("xyplot: unknown scale type")
	ErrUnknownSeries = errors.New("xyplot: unknown series kind")
	ErrBadData       = errors.New("xyplot: unsupported data")
)

// DataError reports a problem with a single point of a series.
type DataError struct {
	Series string // title of the series, may be empty
	Index  int    // index of the offending point, -1 for the whole series
	Err    error
}

func (e *DataError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("series %q: %v", e.Series, e.Err)
	}
	return fmt.Sprintf("series %q, point %d: %v", e.Series, e.Index, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
