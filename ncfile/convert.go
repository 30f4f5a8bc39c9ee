package ncfile

import (
	"fmt"
	"math"
)

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func convert[T, U number](in []T) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = U(v)
	}
	return out
}

// firstColumn takes element 0 of every row, e.g. the first copy of a
// (obs, copy) shaped DART observation variable.
func firstColumn[T number](rows [][]T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		if len(r) > 0 {
			out[i] = r[0]
		}
	}
	return out
}

func toFloat64s(name string, values any) ([]float64, error) {
	switch v := values.(type) {
	case []float64:
		return v, nil
	case []float32:
		return convert[float32, float64](v), nil
	case []int8:
		return convert[int8, float64](v), nil
	case []int16:
		return convert[int16, float64](v), nil
	case []int32:
		return convert[int32, float64](v), nil
	case []int64:
		return convert[int64, float64](v), nil
	case []uint8:
		return convert[uint8, float64](v), nil
	case []uint16:
		return convert[uint16, float64](v), nil
	case []uint32:
		return convert[uint32, float64](v), nil
	case []uint64:
		return convert[uint64, float64](v), nil
	case [][]float64:
		return firstColumn(v), nil
	case [][]float32:
		return convert[float32, float64](firstColumn(v)), nil
	case [][]int32:
		return convert[int32, float64](firstColumn(v)), nil
	case [][]int64:
		return convert[int64, float64](firstColumn(v)), nil
	default:
		return nil, fmt.Errorf("%w: %s has type %T", ErrUnsupportedType, name, values)
	}
}

func toInt64s(name string, values any) ([]int64, error) {
	switch v := values.(type) {
	case []int64:
		return v, nil
	case []int8:
		return convert[int8, int64](v), nil
	case []int16:
		return convert[int16, int64](v), nil
	case []int32:
		return convert[int32, int64](v), nil
	case []uint8:
		return convert[uint8, int64](v), nil
	case []uint16:
		return convert[uint16, int64](v), nil
	case []uint32:
		return convert[uint32, int64](v), nil
	case []uint64:
		return clampUint64s(v), nil
	case [][]int32:
		return convert[int32, int64](firstColumn(v)), nil
	case [][]int64:
		return firstColumn(v), nil
	default:
		return nil, fmt.Errorf("%w: %s has type %T", ErrUnsupportedType, name, values)
	}
}

// clampUint64s maps values beyond MaxInt64 to -1 so that compaction drops them.
func clampUint64s(in []uint64) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		if v > math.MaxInt64 {
			out[i] = -1
			continue
		}
		out[i] = int64(v)
	}
	return out
}

func toInt32s(name string, values any) ([]int32, error) {
	switch v := values.(type) {
	case []int32:
		return v, nil
	case [][]int32:
		return firstColumn(v), nil
	}
	wide, err := toFloat64s(name, values)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(wide))
	for i, f := range wide {
		switch {
		case math.IsNaN(f), f > math.MaxInt32, f < math.MinInt32:
			// Unrepresentable codes never match a QC selection.
			out[i] = -1
		default:
			out[i] = int32(f)
		}
	}
	return out, nil
}

// scalarInt64 reads a _FillValue attribute, which the decoder returns either
// as a scalar or as a one-element slice.
func scalarInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float32:
		return int64(x), true
	case float64:
		return int64(x), true
	}
	if vals, err := toInt64s("_FillValue", v); err == nil && len(vals) == 1 {
		return vals[0], true
	}
	return 0, false
}
