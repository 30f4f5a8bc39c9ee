package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/obsview/dataset"
	"github.com/hupe1980/obsview/filter"
	"github.com/hupe1980/obsview/indexset"
	"github.com/hupe1980/obsview/testutil"
)

func writeFixture(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "obs.nc")
	require.NoError(t, testutil.WriteCDF(path, testutil.NewRNG(3).Observations(n)))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
		assert.Equal(t, int64(8<<20), cfg.Staging.ChunkSize)
		assert.Equal(t, int64(4), cfg.Staging.MaxConcurrentFetches)
		assert.Equal(t, "lat", cfg.Read.Lat)
		assert.Equal(t, "obs_id", cfg.Read.ObsID)
		assert.Equal(t, "union", cfg.Subset.Mode)
		assert.Equal(t, "localhost:9000", cfg.MinIO.Endpoint)
		assert.Nil(t, cfg.Subset.LatMin)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "obsview.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
read:
  vertical: altitude
subset:
  groups: [A, B]
  mode: intersection
  lat_min: -10
  time_max: 150000.5
  qc: [0, 1]
`), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, "altitude", cfg.Read.Vertical)
		assert.Equal(t, "lat", cfg.Read.Lat)

		req, err := cfg.Subset.Request()
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, req.Groups.Names)
		assert.Equal(t, indexset.Intersection, req.Groups.Mode)
		require.NotNil(t, req.Box.LatMin)
		assert.Equal(t, -10.0, *req.Box.LatMin)
		assert.Nil(t, req.Box.LatMax)
		require.NotNil(t, req.Window.Max)
		assert.Equal(t, 150000.5, *req.Window.Max)
		assert.Equal(t, []int{0, 1}, req.QC.Codes())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("BadMode", func(t *testing.T) {
		sc := SubsetConfig{Mode: "xor"}
		_, err := sc.Request()
		require.ErrorIs(t, err, indexset.ErrInvalidFilter)
	})

	t.Run("BadQC", func(t *testing.T) {
		sc := SubsetConfig{Mode: "union", QC: []int{9}}
		_, err := sc.Request()
		require.ErrorIs(t, err, filter.ErrInvalidQCCode)
	})

	t.Run("BadLogFormat", func(t *testing.T) {
		_, err := LoggingConfig{Level: "info", Format: "xml"}.Logger()
		require.ErrorIs(t, err, ErrUnknownLogFormat)
	})
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		ref                 string
		scheme, bucket, key string
		wantErr             bool
	}{
		{ref: "data/obs.nc", key: "data/obs.nc"},
		{ref: "file:///tmp/obs.nc", key: "/tmp/obs.nc"},
		{ref: "s3://bucket/dart/obs.nc.zst", scheme: "s3", bucket: "bucket", key: "dart/obs.nc.zst"},
		{ref: "minio://obs/2024/obs.nc", scheme: "minio", bucket: "obs", key: "2024/obs.nc"},
		{ref: "s3://bucket", wantErr: true},
		{ref: "gs://bucket/obs.nc", wantErr: true},
		{ref: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			scheme, bucket, key, err := parseSource(tt.ref)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, scheme)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func testTree(t *testing.T) *dataset.GroupTree {
	t.Helper()
	tree, err := dataset.BuildTree(dataset.NewMapSource(
		dataset.Leaf("A", 0, 1, 2, 3),
		dataset.Parent("Ocean",
			dataset.Leaf("Argo", 6, 7),
			dataset.Leaf("Buoy", 7, 8, 9),
		),
	), 10)
	require.NoError(t, err)
	return tree
}

func TestPrintGroups(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printGroups(&buf, testTree(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"GROUP", "PATH", "OBSERVATIONS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"root", "/", "10"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"A", "/A", "4"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Ocean", "/Ocean", "-"}, strings.Fields(lines[3]))
	assert.True(t, strings.HasPrefix(lines[4], "    Argo"))
	assert.Equal(t, []string{"Buoy", "/Ocean/Buoy", "3"}, strings.Fields(lines[5]))
}

func TestPrintParents(t *testing.T) {
	tree := testTree(t)

	var buf bytes.Buffer
	require.NoError(t, printParents(&buf, tree, 7))
	assert.Equal(t, "/Ocean/Argo\n/Ocean/Buoy\n", buf.String())

	buf.Reset()
	require.NoError(t, printParents(&buf, tree, 5))
	assert.Empty(t, buf.String())

	require.ErrorIs(t, printParents(&buf, tree, 10), ErrObservationOutOfRange)
	require.ErrorIs(t, printParents(&buf, tree, -1), ErrObservationOutOfRange)
}

func TestInfoCommand(t *testing.T) {
	path := writeFixture(t, 25)

	out, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "obs.nc")
	assert.Contains(t, out, "Observations:")
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "QC")
	assert.Contains(t, out, "observation")
}

func TestGroupsCommand(t *testing.T) {
	out, err := run(t, "groups", writeFixture(t, 12))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"root", "/", "12"}, strings.Fields(lines[1]))
}

func TestParentsCommand(t *testing.T) {
	path := writeFixture(t, 5)

	out, err := run(t, "parents", path, "2")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "parents", path, "x")
	require.Error(t, err)

	_, err = run(t, "parents", path, "5")
	require.ErrorIs(t, err, ErrObservationOutOfRange)
}

func TestSubsetCommand(t *testing.T) {
	path := writeFixture(t, 100)

	t.Run("Flags", func(t *testing.T) {
		out, err := run(t, "subset", path, "--lat-min", "0", "--qc", "0,1", "--indices")
		require.NoError(t, err)
		assert.Contains(t, out, "observations")
		for _, stage := range []string{"group", "spatial", "temporal", "qc"} {
			assert.Contains(t, out, stage)
		}
	})

	t.Run("Config", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "subset.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("subset:\n  time_min: 1.0e12\n"), 0o600))

		out, err := run(t, "subset", path, "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Selected 0 of 100 observations")
		assert.Contains(t, out, "Warning:")
		assert.Contains(t, out, "skipped")
	})

	t.Run("UnknownGroup", func(t *testing.T) {
		_, err := run(t, "subset", path, "--group", "Nope")
		require.ErrorIs(t, err, dataset.ErrGroupNotFound)
	})

	t.Run("BadQC", func(t *testing.T) {
		_, err := run(t, "subset", path, "--qc", "12")
		require.ErrorIs(t, err, filter.ErrInvalidQCCode)
	})
}

func TestSubsetFlagsOverride(t *testing.T) {
	f := newSubsetFlags()
	fs := pflag.NewFlagSet("subset", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--group", "A,B", "--mode", "and", "--time-max", "42", "--qc", "2,0"}))

	sc := SubsetConfig{Mode: "union", LatMin: filter.Bound(-5), QC: []int{3}}
	require.NoError(t, f.apply(fs, &sc))

	assert.Equal(t, []string{"A", "B"}, sc.Groups)
	assert.Equal(t, "and", sc.Mode)
	assert.Equal(t, []int{0, 2}, sc.QC)
	require.NotNil(t, sc.LatMin)
	assert.Equal(t, -5.0, *sc.LatMin, "unset flags keep the config value")
	require.NotNil(t, sc.TimeMax)
	assert.Equal(t, 42.0, *sc.TimeMax)
	assert.Nil(t, sc.TimeMin)
}
