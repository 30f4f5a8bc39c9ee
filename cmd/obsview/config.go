package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/obsview"
	"github.com/hupe1980/obsview/filter"
	"github.com/hupe1980/obsview/indexset"
	"github.com/hupe1980/obsview/ncfile"
	"github.com/hupe1980/obsview/resource"
)

// ErrUnknownLogFormat is returned for a logging format other than text or json.
var ErrUnknownLogFormat = errors.New("unknown log format")

// Config is the CLI configuration file.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Staging StagingConfig `yaml:"staging"`
	Read    ReadConfig    `yaml:"read"`
	S3      S3Config      `yaml:"s3"`
	MinIO   MinIOConfig   `yaml:"minio"`
	Subset  SubsetConfig  `yaml:"subset"`
}

// LoggingConfig selects the log handler.
type LoggingConfig struct {
	Level  string `yaml:"level" default:"warn"`
	Format string `yaml:"format" default:"text"`
}

// StagingConfig controls how remote and compressed files are staged locally.
type StagingConfig struct {
	Dir                  string `yaml:"dir"`
	ChunkSize            int64  `yaml:"chunk_size" default:"8388608"`
	MaxConcurrentFetches int64  `yaml:"max_concurrent_fetches" default:"4"`
	// MemoryLimitBytes bounds in-flight chunks and caps ChunkSize. S3 downloads
	// are bounded by s3.part_size and s3.concurrency instead.
	MemoryLimitBytes   int64 `yaml:"memory_limit_bytes"`
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec"`
}

// ReadConfig names the variables in the file.
type ReadConfig struct {
	Lat       string   `yaml:"lat" default:"lat"`
	Lon       string   `yaml:"lon" default:"lon"`
	Vertical  string   `yaml:"vertical" default:"vertical"`
	Time      string   `yaml:"time" default:"time"`
	QC        string   `yaml:"qc" default:"qc"`
	ObsID     string   `yaml:"obs_id" default:"obs_id"`
	Variables []string `yaml:"variables"`
}

// S3Config configures s3:// sources. Credentials come from the default AWS chain.
type S3Config struct {
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	UsePathStyle bool   `yaml:"use_path_style"`
	PartSize     int64  `yaml:"part_size"`
	Concurrency  int    `yaml:"concurrency" default:"5"`
}

// MinIOConfig configures minio:// sources.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" default:"localhost:9000"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// SubsetConfig is a subset request. Unset bounds leave that side open.
type SubsetConfig struct {
	Groups  []string `yaml:"groups"`
	Mode    string   `yaml:"mode" default:"union"`
	LatMin  *float64 `yaml:"lat_min"`
	LatMax  *float64 `yaml:"lat_max"`
	LonMin  *float64 `yaml:"lon_min"`
	LonMax  *float64 `yaml:"lon_max"`
	TimeMin *float64 `yaml:"time_min"`
	TimeMax *float64 `yaml:"time_max"`
	QC      []int    `yaml:"qc"`
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Logger builds the configured logger.
func (c LoggingConfig) Logger() (*obsview.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Format) {
	case "", "text":
		return obsview.NewTextLogger(level), nil
	case "json":
		return obsview.NewJSONLogger(level), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.Format)
	}
}

// Controller builds the staging resource controller.
func (c StagingConfig) Controller() *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes:     c.MemoryLimitBytes,
		MaxConcurrentFetches: c.MaxConcurrentFetches,
		IOLimitBytesPerSec:   c.IOLimitBytesPerSec,
	})
}

// Apply copies the configured names onto o.
func (c ReadConfig) Apply(o *ncfile.Options) {
	o.Lat = c.Lat
	o.Lon = c.Lon
	o.Vertical = c.Vertical
	o.Time = c.Time
	o.QC = c.QC
	o.ObsID = c.ObsID
	if c.Variables != nil {
		o.Variables = c.Variables
	}
}

// Request converts the config into a subset request.
func (c SubsetConfig) Request() (obsview.SubsetRequest, error) {
	mode, err := indexset.ParseMode(c.Mode)
	if err != nil {
		return obsview.SubsetRequest{}, err
	}
	qc, err := filter.NewQCSelection(c.QC...)
	if err != nil {
		return obsview.SubsetRequest{}, err
	}
	return obsview.SubsetRequest{
		Groups: obsview.GroupSelection{Names: c.Groups, Mode: mode},
		Box: filter.BoundingBox{
			LatMin: c.LatMin,
			LatMax: c.LatMax,
			LonMin: c.LonMin,
			LonMax: c.LonMax,
		},
		Window: filter.TimeWindow{Min: c.TimeMin, Max: c.TimeMax},
		QC:     qc,
	}, nil
}
