package filter

import (
	"math"
	"math/rand"
	"testing"

	"github.com/hupe1980/obsview/indexset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpatial(t *testing.T) {
	lat := []float64{-20, -5, 0, 5, 20}
	lon := []float64{0, 0, 0, 0, 0}

	tests := []struct {
		name string
		box  BoundingBox
		want []int
	}{
		{
			name: "LatOnly",
			box:  BoundingBox{LatMin: Bound(-10), LatMax: Bound(10)},
			want: []int{1, 2, 3},
		},
		{
			name: "InclusiveEdges",
			box:  BoundingBox{LatMin: Bound(-5), LatMax: Bound(5)},
			want: []int{1, 2, 3},
		},
		{
			name: "Unbounded",
			box:  BoundingBox{},
			want: []int{0, 1, 2, 3, 4},
		},
		{
			name: "LowerOnly",
			box:  BoundingBox{LatMin: Bound(0)},
			want: []int{2, 3, 4},
		},
		{
			name: "ExplicitInfinity",
			box:  BoundingBox{LatMin: Bound(math.Inf(-1)), LatMax: Bound(math.Inf(1))},
			want: []int{0, 1, 2, 3, 4},
		},
		{
			name: "LonExcludesAll",
			box:  BoundingBox{LonMin: Bound(1)},
			want: []int{},
		},
		{
			name: "Inverted",
			box:  BoundingBox{LatMin: Bound(10), LatMax: Bound(-10)},
			want: []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Spatial(indexset.Range(5), lat, lon, tt.box)
			assert.Equal(t, tt.want, got.Indices())
		})
	}
}

func TestSpatial_NaNCoordinates(t *testing.T) {
	lat := []float64{math.NaN(), 1}
	lon := []float64{0, 0}

	got := Spatial(indexset.Range(2), lat, lon, BoundingBox{LonMin: Bound(-1)})
	assert.Equal(t, []int{0, 1}, got.Indices(), "unconstrained side passes NaN")

	got = Spatial(indexset.Range(2), lat, lon, BoundingBox{LatMin: Bound(-1)})
	assert.Equal(t, []int{1}, got.Indices(), "NaN never satisfies a finite bound")
}

func TestSpatial_DropsOutOfRange(t *testing.T) {
	got := Spatial(indexset.Of(0, 1, 7), []float64{0, 0}, []float64{0, 0}, BoundingBox{})
	assert.Equal(t, []int{0, 1}, got.Indices())
}

func TestSpatial_InputUntouched(t *testing.T) {
	in := indexset.Range(5)
	_ = Spatial(in, []float64{-20, -5, 0, 5, 20}, make([]float64, 5), BoundingBox{LatMax: Bound(0)})
	assert.Equal(t, 5, in.Len())
}

func TestBoundingBox_Validate(t *testing.T) {
	require.NoError(t, BoundingBox{LatMin: Bound(1)}.Validate())
	require.ErrorIs(t, BoundingBox{LonMax: Bound(math.NaN())}.Validate(), ErrInvalidBound)
}

func TestTemporal(t *testing.T) {
	times := []float64{100, 200, 300, 400, 500}

	tests := []struct {
		name string
		w    TimeWindow
		want []int
	}{
		{name: "Closed", w: TimeWindow{Min: Bound(200), Max: Bound(400)}, want: []int{1, 2, 3}},
		{name: "MinOnly", w: TimeWindow{Min: Bound(450)}, want: []int{4}},
		{name: "MaxOnly", w: TimeWindow{Max: Bound(100)}, want: []int{0}},
		{name: "Unbounded", w: TimeWindow{}, want: []int{0, 1, 2, 3, 4}},
		{name: "Point", w: TimeWindow{Min: Bound(300), Max: Bound(300)}, want: []int{2}},
		{name: "Gap", w: TimeWindow{Min: Bound(301), Max: Bound(399)}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Temporal(indexset.Range(5), times, tt.w)
			assert.Equal(t, tt.want, got.Indices())
		})
	}

	require.ErrorIs(t, TimeWindow{Min: Bound(math.NaN())}.Validate(), ErrInvalidBound)
}

func TestQualityCode(t *testing.T) {
	qc := []int32{0, 1, 2, 8, 0}

	sel, err := NewQCSelection(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4}, QualityCode(indexset.Range(5), qc, sel).Indices())

	t.Run("EmptyIsIdentity", func(t *testing.T) {
		got := QualityCode(indexset.Range(5), qc, QCSelection{})
		assert.Equal(t, []int{0, 1, 2, 3, 4}, got.Indices())
	})

	t.Run("AllIsIdentity", func(t *testing.T) {
		all, err := NewQCSelection(QCAll)
		require.NoError(t, err)
		got := QualityCode(indexset.Range(5), qc, all)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, got.Indices())

		mixed, err := NewQCSelection(1, QCAll)
		require.NoError(t, err)
		assert.True(t, mixed.PassThrough())
	})

	t.Run("PassThroughReturnsFreshSet", func(t *testing.T) {
		in := indexset.Range(5)
		out := QualityCode(in, qc, QCSelection{})
		out.Add(99)
		assert.False(t, in.Contains(99))
	})

	t.Run("OutOfRangeCodesNeverMatch", func(t *testing.T) {
		sel, err := NewQCSelection(7)
		require.NoError(t, err)
		got := QualityCode(indexset.Range(3), []int32{-1, 7, 99}, sel)
		assert.Equal(t, []int{1}, got.Indices())
	})
}

func TestNewQCSelection_Invalid(t *testing.T) {
	_, err := NewQCSelection(9)
	require.ErrorIs(t, err, ErrInvalidQCCode)

	_, err = NewQCSelection(-1)
	require.ErrorIs(t, err, ErrInvalidQCCode)
}

func TestParseQCSelection(t *testing.T) {
	sel, err := ParseQCSelection(" 2, 0 ,,1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, sel.Codes())
	assert.Equal(t, "{0,1,2}", sel.String())

	empty, err := ParseQCSelection("")
	require.NoError(t, err)
	assert.True(t, empty.PassThrough())
	assert.Equal(t, "{}", empty.String())

	_, err = ParseQCSelection("1,x")
	require.ErrorIs(t, err, ErrInvalidQCCode)
}

func TestFilters_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 2000

	lat := make([]float64, n)
	lon := make([]float64, n)
	times := make([]float64, n)
	qc := make([]int32, n)
	for i := range n {
		lat[i] = rng.Float64()*180 - 90
		lon[i] = rng.Float64() * 360
		times[i] = rng.Float64() * 1000
		qc[i] = int32(rng.Intn(9))
	}

	box := BoundingBox{LatMin: Bound(-30), LatMax: Bound(45), LonMax: Bound(270)}
	window := TimeWindow{Min: Bound(100), Max: Bound(800)}
	sel, err := NewQCSelection(0, 1, 2, 3)
	require.NoError(t, err)

	stages := []func(*indexset.Set) *indexset.Set{
		func(s *indexset.Set) *indexset.Set { return Spatial(s, lat, lon, box) },
		func(s *indexset.Set) *indexset.Set { return Temporal(s, times, window) },
		func(s *indexset.Set) *indexset.Set { return QualityCode(s, qc, sel) },
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	start := indexset.Range(n)
	var want *indexset.Set
	for _, p := range perms {
		s := start
		for _, i := range p {
			s = stages[i](s)
		}
		if want == nil {
			want = s
			require.False(t, want.IsEmpty())
			continue
		}
		assert.True(t, want.Equal(s), "perm %v", p)
	}

	// Matches a single conjunctive pass.
	single := start.Retain(func(i int) bool {
		return box.Contains(lat[i], lon[i]) && window.Contains(times[i]) && sel.Has(qc[i])
	})
	assert.True(t, want.Equal(single))
}
