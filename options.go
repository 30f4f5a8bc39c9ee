package obsview

import (
	"log/slog"

	"github.com/hupe1980/obsview/blobstore"
	"github.com/hupe1980/obsview/ncfile"
	"github.com/hupe1980/obsview/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
	stagingDir       string
	chunkSize        int64
	readOptions      []func(*ncfile.Options)
}

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &obsview.BasicMetricsCollector{}
//	eng := obsview.New(obsview.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Subsets: %d, Avg latency: %dns\n", stats.SubsetCount, stats.SubsetAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := obsview.NewJSONLogger(slog.LevelInfo)
//	eng := obsview.New(obsview.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController throttles Load: concurrent range reads, buffer
// memory and bytes per second.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithStagingDir sets the directory for staged copies of remote or
// compressed files. Defaults to os.TempDir().
func WithStagingDir(dir string) Option {
	return func(o *options) {
		o.stagingDir = dir
	}
}

// WithChunkSize sets the size of each ranged read while staging.
func WithChunkSize(n int64) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithReadOptions customizes the variable names Load reads, e.g. for
// IODA-style files:
//
//	obsview.WithReadOptions(func(o *ncfile.Options) {
//	    o.Lat, o.Lon, o.Time = "latitude", "longitude", "dateTime"
//	})
func WithReadOptions(optFns ...func(*ncfile.Options)) Option {
	return func(o *options) {
		o.readOptions = append(o.readOptions, optFns...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		chunkSize:        blobstore.DefaultChunkSize,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
