package obsview

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/obsview/indexset"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordSubset(10, 4, 2*time.Millisecond, nil)
	m.RecordSubset(10, 0, 4*time.Millisecond, nil)
	m.RecordSubset(10, 0, 0, errors.New("boom"))
	m.RecordStage(StageSpatial, 10, 4, time.Millisecond)
	m.RecordStage(Stage(99), 10, 4, time.Millisecond)
	m.RecordLoad(1024, time.Second, nil)
	m.RecordLoad(0, time.Second, errors.New("missing"))

	s := m.GetStats()
	assert.Equal(t, int64(3), s.SubsetCount)
	assert.Equal(t, int64(1), s.SubsetErrors)
	assert.Equal(t, int64(1), s.SubsetEmpty)
	assert.Equal(t, int64(20), s.ObservationsIn)
	assert.Equal(t, int64(4), s.ObservationsOut)
	assert.Equal(t, (2 * time.Millisecond).Nanoseconds(), s.SubsetAvgNanos)
	assert.Equal(t, int64(1), s.StageCount[StageSpatial])
	assert.Equal(t, int64(6), s.StageRemoved[StageSpatial])
	assert.Equal(t, int64(2), s.LoadCount)
	assert.Equal(t, int64(1), s.LoadErrors)
	assert.Equal(t, int64(1024), s.LoadBytes)
}

func TestEngine_RecordsMetrics(t *testing.T) {
	ds, tree := tenObs(t)
	m := &BasicMetricsCollector{}
	eng := New(WithMetricsCollector(m))

	_, err := eng.ComputeSubset(ds, tree, groups(indexset.Intersection, "A", "B"))
	require.NoError(t, err)
	_, err = eng.ComputeSubset(ds, tree, groups(indexset.Intersection, "A"))
	require.Error(t, err)
	_, err = eng.ComputeSubset(ds, tree, groups(indexset.Intersection, "A", "Argo"))
	require.NoError(t, err)

	s := m.GetStats()
	assert.Equal(t, int64(3), s.SubsetCount)
	assert.Equal(t, int64(1), s.SubsetErrors)
	assert.Equal(t, int64(1), s.SubsetEmpty)
	assert.Equal(t, int64(2), s.ObservationsOut)
	assert.Equal(t, int64(2), s.StageCount[StageGroups])
	assert.Equal(t, int64(1), s.StageCount[StageQualityCode])
	assert.Equal(t, int64(8+10), s.StageRemoved[StageGroups])
}

func TestNilOptionsFallBackToNoop(t *testing.T) {
	ds, tree := tenObs(t)
	eng := New(WithLogger(nil), WithMetricsCollector(nil), nil)

	res, err := eng.ComputeSubset(ds, tree, SubsetRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Len())
}
