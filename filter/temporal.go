package filter

import (
	"fmt"
	"math"

	"github.com/hupe1980/obsview/indexset"
)

// TimeWindow is an inclusive interval over the dataset's native time values.
// A nil bound leaves that side unconstrained.
type TimeWindow struct {
	Min *float64
	Max *float64
}

// Validate rejects NaN bounds.
func (w TimeWindow) Validate() error {
	if w.Min != nil && math.IsNaN(*w.Min) {
		return fmt.Errorf("%w: time_min is NaN", ErrInvalidBound)
	}
	if w.Max != nil && math.IsNaN(*w.Max) {
		return fmt.Errorf("%w: time_max is NaN", ErrInvalidBound)
	}
	return nil
}

// Contains reports whether t lies inside the window.
func (w TimeWindow) Contains(t float64) bool {
	return within(t, w.Min, w.Max)
}

// Temporal keeps the indices whose time lies inside w. Values are compared as
// stored; no calendar or timezone conversion takes place.
func Temporal(in *indexset.Set, times []float64, w TimeWindow) *indexset.Set {
	return in.Retain(func(id int) bool {
		return id < len(times) && w.Contains(times[id])
	})
}
