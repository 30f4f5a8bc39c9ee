package obsview

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/obsview/blobstore"
	"github.com/hupe1980/obsview/filter"
	"github.com/hupe1980/obsview/ncfile"
	"github.com/hupe1980/obsview/resource"
	"github.com/hupe1980/obsview/testutil"
)

func writeObsFile(t *testing.T, n int) (string, []byte) {
	t.Helper()
	cols := testutil.NewRNG(7).Observations(n)
	path := filepath.Join(t.TempDir(), "obs_seq.final.nc")
	require.NoError(t, testutil.WriteCDF(path, cols))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return path, raw
}

func TestEngine_OpenFile(t *testing.T) {
	path, raw := writeObsFile(t, 200)
	m := &BasicMetricsCollector{}
	eng := New(WithMetricsCollector(m))

	data, err := eng.OpenFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "obs_seq.final.nc", data.Name)
	assert.Equal(t, 200, data.Dataset.Len())
	assert.Equal(t, blobstore.CodecNone, data.Codec)
	assert.Equal(t, int64(len(raw)), data.Bytes)
	assert.Equal(t, 1, data.Tree.Len())

	_, ok := data.Dataset.Variable("observation")
	assert.True(t, ok)

	// Local uncompressed files are read in place and must survive the load.
	_, err = os.Stat(path)
	require.NoError(t, err)

	res, err := eng.Subset(data, SubsetRequest{
		Box: filter.BoundingBox{LatMin: filter.Bound(0)},
		QC:  mustQC(t, 0, 1),
	})
	require.NoError(t, err)
	for i, idx := range res.Indices {
		assert.GreaterOrEqual(t, data.Dataset.Lat()[idx], 0.0)
		assert.Contains(t, []int32{0, 1}, res.View.QC()[i])
	}

	s := m.GetStats()
	assert.Equal(t, int64(1), s.LoadCount)
	assert.Equal(t, int64(len(raw)), s.LoadBytes)
}

func TestEngine_LoadCompressed(t *testing.T) {
	_, raw := writeObsFile(t, 50)

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(raw)
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "obs_seq.final.nc.zst", buf.Bytes()))

	staging := t.TempDir()
	eng := New(
		WithStagingDir(staging),
		WithChunkSize(1024),
		WithResourceController(resource.NewController(resource.Config{MaxConcurrentFetches: 2})),
	)

	data, err := eng.Load(context.Background(), store, "obs_seq.final.nc.zst")
	require.NoError(t, err)
	assert.Equal(t, 50, data.Dataset.Len())
	assert.Equal(t, blobstore.CodecZstd, data.Codec)
	assert.Equal(t, int64(len(raw)), data.Bytes)

	entries, err := os.ReadDir(staging)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged files must be removed after load")
}

func TestEngine_LoadCustomNames(t *testing.T) {
	path, _ := writeObsFile(t, 5)

	eng := New(WithReadOptions(func(o *ncfile.Options) {
		o.Vertical = "altitude"
		o.Variables = []string{}
	}))
	data, err := eng.OpenFile(context.Background(), path)
	require.NoError(t, err)
	assert.Nil(t, data.Dataset.Vertical())
	assert.Empty(t, data.Dataset.VariableNames())
}

func TestEngine_LoadErrors(t *testing.T) {
	m := &BasicMetricsCollector{}
	eng := New(WithMetricsCollector(m))

	_, err := eng.Load(context.Background(), blobstore.NewMemoryStore(), "missing.nc")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "garbage.nc", []byte("not a netcdf file")))
	_, err = eng.Load(context.Background(), store, "garbage.nc")
	require.Error(t, err)

	assert.Equal(t, int64(2), m.GetStats().LoadErrors)
}

func TestEngine_SubsetNilData(t *testing.T) {
	_, err := New().Subset(nil, SubsetRequest{})
	require.ErrorIs(t, err, ErrNilDataset)
}
