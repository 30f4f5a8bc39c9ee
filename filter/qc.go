package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/obsview/indexset"
)

// QCAll is the code that disables QC filtering when selected ("unassigned/all").
const QCAll = 8

// QCSelection is the set of retained quality-control codes.
//
// The zero value is the empty selection, which like any selection containing
// QCAll passes every observation through.
type QCSelection struct {
	mask uint16
}

// NewQCSelection builds a selection from codes in [0, 8].
func NewQCSelection(codes ...int) (QCSelection, error) {
	var s QCSelection
	for _, c := range codes {
		if c < 0 || c > QCAll {
			return QCSelection{}, fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidQCCode, c, QCAll)
		}
		s.mask |= 1 << uint(c)
	}
	return s, nil
}

// ParseQCSelection parses a comma separated code list such as "0,1,2".
func ParseQCSelection(s string) (QCSelection, error) {
	var codes []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		c, err := strconv.Atoi(f)
		if err != nil {
			return QCSelection{}, fmt.Errorf("%w: %q", ErrInvalidQCCode, f)
		}
		codes = append(codes, c)
	}
	return NewQCSelection(codes...)
}

// PassThrough reports whether the selection disables QC filtering.
func (s QCSelection) PassThrough() bool {
	return s.mask == 0 || s.mask&(1<<QCAll) != 0
}

// Has reports whether code is retained by a non-pass-through selection.
func (s QCSelection) Has(code int32) bool {
	if code < 0 || code > QCAll {
		return false
	}
	return s.mask&(1<<uint(code)) != 0
}

// Codes returns the selected codes in ascending order.
func (s QCSelection) Codes() []int {
	var out []int
	for c := 0; c <= QCAll; c++ {
		if s.mask&(1<<uint(c)) != 0 {
			out = append(out, c)
		}
	}
	return out
}

func (s QCSelection) String() string {
	if s.mask == 0 {
		return "{}"
	}
	parts := make([]string, 0, QCAll+1)
	for _, c := range s.Codes() {
		parts = append(parts, strconv.Itoa(c))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// QualityCode keeps the indices whose QC code is in sel. An empty selection or
// one containing QCAll returns a copy of in.
func QualityCode(in *indexset.Set, qc []int32, sel QCSelection) *indexset.Set {
	if sel.PassThrough() {
		return in.Clone()
	}
	return in.Retain(func(id int) bool {
		return id < len(qc) && sel.Has(qc[id])
	})
}
