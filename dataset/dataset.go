package dataset

import (
	"fmt"
	"slices"

	"github.com/hupe1980/obsview/indexset"
)

// QCUnassigned is the quality-control code meaning "no QC assigned".
const QCUnassigned = 8

// Columns are the raw per-observation arrays used to build a Dataset.
// Lat, Lon, Time and QC are required. Vertical and Variables are optional.
type Columns struct {
	Lat      []float64
	Lon      []float64
	Vertical []float64
	Time     []float64
	QC       []int32

	// Variables holds additional per-observation values by name (e.g. "observation").
	Variables map[string][]float64
}

// Dataset is an immutable view over N observations.
//
// Accessors return the backing slices; callers must treat them as read-only.
type Dataset struct {
	n        int
	lat      []float64
	lon      []float64
	vertical []float64
	time     []float64
	qc       []int32
	vars     map[string][]float64
	names    []string
}

// New validates the columns and creates a Dataset. The observation count N is
// len(c.Lat). The column slices are retained, not copied.
func New(c Columns) (*Dataset, error) {
	n := len(c.Lat)
	if uint64(n) > uint64(indexset.MaxIndex)+1 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyObservations, n)
	}

	if err := checkColumn("lon", c.Lon, n); err != nil {
		return nil, err
	}
	if err := checkColumn("time", c.Time, n); err != nil {
		return nil, err
	}
	if err := checkColumn("qc", c.QC, n); err != nil {
		return nil, err
	}
	if c.Vertical != nil && len(c.Vertical) != n {
		return nil, fmt.Errorf("%w: vertical has %d entries, want %d", ErrLengthMismatch, len(c.Vertical), n)
	}

	names := make([]string, 0, len(c.Variables))
	for name, v := range c.Variables {
		if len(v) != n {
			return nil, fmt.Errorf("%w: %s has %d entries, want %d", ErrLengthMismatch, name, len(v), n)
		}
		names = append(names, name)
	}
	slices.Sort(names)

	return &Dataset{
		n:        n,
		lat:      c.Lat,
		lon:      c.Lon,
		vertical: c.Vertical,
		time:     c.Time,
		qc:       c.QC,
		vars:     c.Variables,
		names:    names,
	}, nil
}

// Empty returns a dataset with zero observations.
func Empty() *Dataset {
	return &Dataset{
		lat:  []float64{},
		lon:  []float64{},
		time: []float64{},
		qc:   []int32{},
	}
}

// Len returns the observation count N.
func (d *Dataset) Len() int { return d.n }

// Lat returns the latitude column.
func (d *Dataset) Lat() []float64 { return d.lat }

// Lon returns the longitude column.
func (d *Dataset) Lon() []float64 { return d.lon }

// Vertical returns the vertical coordinate column, or nil.
func (d *Dataset) Vertical() []float64 { return d.vertical }

// Time returns the time column in the file's native units.
func (d *Dataset) Time() []float64 { return d.time }

// QC returns the quality-control code column.
func (d *Dataset) QC() []int32 { return d.qc }

// Variable returns an additional per-observation variable by name.
func (d *Dataset) Variable(name string) ([]float64, bool) {
	v, ok := d.vars[name]
	return v, ok
}

// VariableNames returns the names of the additional variables, sorted.
func (d *Dataset) VariableNames() []string {
	return slices.Clone(d.names)
}

// All returns the full index set [0, N).
func (d *Dataset) All() *indexset.Set {
	return indexset.Range(d.n)
}

// Subset returns a new Dataset holding only the given observations, in the order
// given. Indices outside [0, N) are skipped. All columns are copied.
func (d *Dataset) Subset(indices []int) *Dataset {
	keep := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < d.n {
			keep = append(keep, i)
		}
	}

	out := &Dataset{
		n:     len(keep),
		lat:   gather(d.lat, keep),
		lon:   gather(d.lon, keep),
		time:  gather(d.time, keep),
		qc:    gather(d.qc, keep),
		names: slices.Clone(d.names),
	}
	if d.vertical != nil {
		out.vertical = gather(d.vertical, keep)
	}
	if len(d.vars) > 0 {
		out.vars = make(map[string][]float64, len(d.vars))
		for name, v := range d.vars {
			out.vars[name] = gather(v, keep)
		}
	}
	return out
}

func checkColumn[T any](name string, col []T, n int) error {
	if col == nil && n > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	if len(col) != n {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrLengthMismatch, name, len(col), n)
	}
	return nil
}

func gather[T any](src []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}
