package indexset

import (
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// MaxIndex is the largest observation index a Set can hold.
const MaxIndex = math.MaxUint32

// Set is an immutable-by-convention set of observation indices.
// The zero value is not usable; use New, Range or FromSlice.
type Set struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Range returns the set [0, n).
func Range(n int) *Set {
	s := New()
	if n > 0 {
		s.rb.AddRange(0, uint64(n))
	}
	return s
}

// FromSlice builds a set from arbitrary indices.
// Negative indices and indices above MaxIndex are ignored.
func FromSlice(ids []int) *Set {
	buf := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if !valid(id) {
			continue
		}
		buf = append(buf, uint32(id))
	}
	s := New()
	s.rb.AddMany(buf)
	return s
}

// Of is a convenience constructor, mostly useful in tests.
func Of(ids ...int) *Set {
	return FromSlice(ids)
}

// Add inserts an index. Out-of-range indices are ignored.
func (s *Set) Add(id int) {
	if !valid(id) {
		return
	}
	s.rb.Add(uint32(id))
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id int) bool {
	if s == nil || !valid(id) {
		return false
	}
	return s.rb.Contains(uint32(id))
}

// Len returns the number of indices in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set holds no indices.
func (s *Set) IsEmpty() bool {
	return s == nil || s.rb.IsEmpty()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	if s == nil {
		return New()
	}
	return &Set{rb: s.rb.Clone()}
}

// Equal reports whether both sets hold the same indices.
func (s *Set) Equal(other *Set) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() && other.IsEmpty()
	}
	return s.rb.Equals(other.rb)
}

// ContainsAll reports whether other ⊆ s.
func (s *Set) ContainsAll(other *Set) bool {
	if other.IsEmpty() {
		return true
	}
	if s.IsEmpty() {
		return false
	}
	return s.rb.AndCardinality(other.rb) == other.rb.GetCardinality()
}

// Indices returns the indices in ascending order.
func (s *Set) Indices() []int {
	if s.IsEmpty() {
		return []int{}
	}
	out := make([]int, 0, s.rb.GetCardinality())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// ForEach calls fn for every index in ascending order until fn returns false.
func (s *Set) ForEach(fn func(id int) bool) {
	if s.IsEmpty() {
		return
	}
	it := s.rb.Iterator()
	for it.HasNext() {
		if !fn(int(it.Next())) {
			break
		}
	}
}

// All returns an ascending iterator over the set.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		s.ForEach(yield)
	}
}

// Retain returns a new set with the indices for which keep returns true.
func (s *Set) Retain(keep func(id int) bool) *Set {
	out := New()
	if s.IsEmpty() {
		return out
	}
	buf := make([]uint32, 0, 1024)
	it := s.rb.Iterator()
	for it.HasNext() {
		id := it.Next()
		if !keep(int(id)) {
			continue
		}
		buf = append(buf, id)
		if len(buf) == cap(buf) {
			out.rb.AddMany(buf)
			buf = buf[:0]
		}
	}
	out.rb.AddMany(buf)
	return out
}

func valid(id int) bool {
	return id >= 0 && uint64(id) <= MaxIndex
}

func (s *Set) bitmap() *roaring.Bitmap {
	if s == nil {
		return roaring.New()
	}
	return s.rb
}
