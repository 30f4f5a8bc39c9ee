package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/obsview/dataset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64Range returns a pseudo-random number in [minVal, maxVal).
func (r *RNG) Float64Range(minVal, maxVal float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return minVal + r.rand.Float64()*(maxVal-minVal)
}

// Observations generates n observations spread over the globe: latitude in
// [-90, 90), longitude in [0, 360), vertical in [0, 1000) hPa, time in
// [0, 30) days and QC codes in 0..8.
func (r *RNG) Observations(n int) dataset.Columns {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := dataset.Columns{
		Lat:      make([]float64, n),
		Lon:      make([]float64, n),
		Vertical: make([]float64, n),
		Time:     make([]float64, n),
		QC:       make([]int32, n),
		Variables: map[string][]float64{
			"observation": make([]float64, n),
		},
	}
	for i := range n {
		c.Lat[i] = -90 + r.rand.Float64()*180
		c.Lon[i] = r.rand.Float64() * 360
		c.Vertical[i] = r.rand.Float64() * 1000
		c.Time[i] = r.rand.Float64() * 30
		c.QC[i] = int32(r.rand.Intn(9))
		c.Variables["observation"][i] = r.rand.NormFloat64()
	}
	return c
}

// Groups generates a hierarchy of width top-level groups nested depth levels
// deep. Leaves carry random obs_id arrays over [0, n) with about a quarter of
// the observations each, plus masked entries (fill -999 and out-of-range ids).
func (r *RNG) Groups(n, width, depth int) []dataset.MapGroup {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.groups("G", n, width, depth)
}

const fillValue int64 = -999

func (r *RNG) groups(prefix string, n, width, depth int) []dataset.MapGroup {
	out := make([]dataset.MapGroup, width)
	for i := range out {
		name := fmt.Sprintf("%s%d", prefix, i)
		if depth <= 1 {
			ids := make([]int64, 0, n/4+2)
			for id := range n {
				if r.rand.Intn(4) == 0 {
					ids = append(ids, int64(id))
				}
			}
			ids = append(ids, fillValue, int64(n)+int64(r.rand.Intn(10)))
			r.rand.Shuffle(len(ids), func(a, b int) { ids[a], ids[b] = ids[b], ids[a] })
			fill := fillValue
			out[i] = dataset.MapGroup{Name: name, ObsIDs: ids, Fill: &fill}
			continue
		}
		out[i] = dataset.Parent(name, r.groups(name+"_", n, width, depth-1)...)
	}
	return out
}

// Predicate is a brute-force description of the spatial, temporal and QC
// stages. Nil bounds are unconstrained; an empty QC list keeps every code.
type Predicate struct {
	LatMin, LatMax, LonMin, LonMax *float64
	TimeMin, TimeMax               *float64
	QC                             []int32
}

func within(v float64, lo, hi *float64) bool {
	return (lo == nil || v >= *lo) && (hi == nil || v <= *hi)
}

// Match reports whether observation i of c satisfies p.
func (p Predicate) Match(c dataset.Columns, i int) bool {
	if !within(c.Lat[i], p.LatMin, p.LatMax) || !within(c.Lon[i], p.LonMin, p.LonMax) {
		return false
	}
	if !within(c.Time[i], p.TimeMin, p.TimeMax) {
		return false
	}
	if len(p.QC) == 0 {
		return true
	}
	for _, q := range p.QC {
		if q == dataset.QCUnassigned || q == c.QC[i] {
			return true
		}
	}
	return false
}

// ExactSubset returns, in ascending order, every observation that is in
// members (nil means all) and matches p.
func ExactSubset(c dataset.Columns, members map[int]bool, p Predicate) []int {
	out := []int{}
	for i := range c.Lat {
		if members != nil && !members[i] {
			continue
		}
		if p.Match(c, i) {
			out = append(out, i)
		}
	}
	return out
}

// Members collects the valid (unmasked, in-range) ids of a raw obs_id array.
func Members(g dataset.MapGroup, n int) map[int]bool {
	m := make(map[int]bool)
	for _, v := range g.ObsIDs {
		if g.Fill != nil && v == *g.Fill {
			continue
		}
		if v >= 0 && v < int64(n) {
			m[int(v)] = true
		}
	}
	return m
}
