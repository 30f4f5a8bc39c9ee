package indexset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrInvalidFilter is returned when a combination is structurally invalid.
var ErrInvalidFilter = errors.New("invalid filter")

// Mode selects how group index sets are combined.
type Mode uint8

const (
	// Union keeps indices present in any operand.
	Union Mode = iota
	// Intersection keeps indices present in every operand.
	Intersection
)

func (m Mode) String() string {
	switch m {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "union"/"or" and "intersection"/"and" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "union", "or":
		return Union, nil
	case "intersection", "and":
		return Intersection, nil
	default:
		return 0, fmt.Errorf("%w: unknown combination mode %q", ErrInvalidFilter, s)
	}
}

// Combine merges the given sets according to mode and returns a new set.
//
// Union of zero sets is empty. Intersection requires at least two sets.
// A nil operand behaves like an empty set.
func Combine(sets []*Set, mode Mode) (*Set, error) {
	bms := make([]*roaring.Bitmap, len(sets))
	for i, s := range sets {
		bms[i] = s.bitmap()
	}

	switch mode {
	case Union:
		if len(bms) == 0 {
			return New(), nil
		}
		return &Set{rb: roaring.FastOr(bms...)}, nil
	case Intersection:
		if len(bms) < 2 {
			return nil, fmt.Errorf("%w: intersection requires at least 2 sets, got %d", ErrInvalidFilter, len(bms))
		}
		return &Set{rb: roaring.FastAnd(bms...)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown combination mode %d", ErrInvalidFilter, mode)
	}
}

// Intersect returns a ∩ b as a new set.
func Intersect(a, b *Set) *Set {
	return &Set{rb: roaring.And(a.bitmap(), b.bitmap())}
}
