package filter

import (
	"fmt"
	"math"

	"github.com/hupe1980/obsview/indexset"
)

// Bound returns a pointer to v, for filling optional bounds.
func Bound(v float64) *float64 {
	return &v
}

// BoundingBox is a latitude/longitude rectangle. A nil bound leaves that side
// unconstrained. Bounds are inclusive.
type BoundingBox struct {
	LatMin *float64
	LatMax *float64
	LonMin *float64
	LonMax *float64
}

// Validate rejects NaN bounds.
func (b BoundingBox) Validate() error {
	for _, v := range []struct {
		name string
		p    *float64
	}{{"lat_min", b.LatMin}, {"lat_max", b.LatMax}, {"lon_min", b.LonMin}, {"lon_max", b.LonMax}} {
		if v.p != nil && math.IsNaN(*v.p) {
			return fmt.Errorf("%w: %s is NaN", ErrInvalidBound, v.name)
		}
	}
	return nil
}

// Contains reports whether (lat, lon) lies inside the box. An unconstrained side
// always passes, even for NaN coordinates.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return within(lat, b.LatMin, b.LatMax) && within(lon, b.LonMin, b.LonMax)
}

// Spatial keeps the indices whose coordinates lie inside box. The latitude and
// longitude constraints are evaluated as one conjunction per observation.
// Indices outside the coordinate arrays are dropped.
func Spatial(in *indexset.Set, lat, lon []float64, box BoundingBox) *indexset.Set {
	return in.Retain(func(id int) bool {
		if id >= len(lat) || id >= len(lon) {
			return false
		}
		return box.Contains(lat[id], lon[id])
	})
}

func within(v float64, lo, hi *float64) bool {
	if lo != nil && !(*lo <= v) {
		return false
	}
	if hi != nil && !(v <= *hi) {
		return false
	}
	return true
}
