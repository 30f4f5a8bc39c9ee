package obsview

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSubset is called after each ComputeSubset call.
	// in is the dataset size, out the number of surviving observations,
	// err is nil if successful.
	RecordSubset(in, out int, duration time.Duration, err error)

	// RecordStage is called after each executed filtering stage.
	RecordStage(stage Stage, in, out int, duration time.Duration)

	// RecordLoad is called after each dataset load.
	// bytes is the size of the staged file.
	RecordLoad(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSubset(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordStage(Stage, int, int, time.Duration)  {}
func (NoopMetricsCollector) RecordLoad(int64, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SubsetCount      atomic.Int64
	SubsetErrors     atomic.Int64
	SubsetEmpty      atomic.Int64
	SubsetTotalNanos atomic.Int64
	ObservationsIn   atomic.Int64
	ObservationsOut  atomic.Int64
	StageCount       [numStages]atomic.Int64
	StageRemoved     [numStages]atomic.Int64
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
	LoadBytes        atomic.Int64
	LoadTotalNanos   atomic.Int64
}

// RecordSubset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSubset(in, out int, duration time.Duration, err error) {
	b.SubsetCount.Add(1)
	b.SubsetTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SubsetErrors.Add(1)
		return
	}
	b.ObservationsIn.Add(int64(in))
	b.ObservationsOut.Add(int64(out))
	if out == 0 {
		b.SubsetEmpty.Add(1)
	}
}

// RecordStage implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStage(stage Stage, in, out int, _ time.Duration) {
	if stage < 0 || stage >= numStages {
		return
	}
	b.StageCount[stage].Add(1)
	b.StageRemoved[stage].Add(int64(in - out))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int64, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		SubsetCount:     b.SubsetCount.Load(),
		SubsetErrors:    b.SubsetErrors.Load(),
		SubsetEmpty:     b.SubsetEmpty.Load(),
		SubsetAvgNanos:  avg(b.SubsetTotalNanos.Load(), b.SubsetCount.Load()),
		ObservationsIn:  b.ObservationsIn.Load(),
		ObservationsOut: b.ObservationsOut.Load(),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadBytes:       b.LoadBytes.Load(),
		LoadAvgNanos:    avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
	}
	for i := range s.StageRemoved {
		s.StageCount[i] = b.StageCount[i].Load()
		s.StageRemoved[i] = b.StageRemoved[i].Load()
	}
	return s
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
// StageCount and StageRemoved are indexed by Stage.
type BasicMetricsStats struct {
	SubsetCount     int64
	SubsetErrors    int64
	SubsetEmpty     int64
	SubsetAvgNanos  int64
	ObservationsIn  int64
	ObservationsOut int64
	StageCount      [numStages]int64
	StageRemoved    [numStages]int64
	LoadCount       int64
	LoadErrors      int64
	LoadBytes       int64
	LoadAvgNanos    int64
}
