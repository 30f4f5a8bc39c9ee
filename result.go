package obsview

import (
	"time"

	"github.com/hupe1980/obsview/dataset"
	"github.com/hupe1980/obsview/filter"
	"github.com/hupe1980/obsview/indexset"
)

// Stage identifies one step of the subsetting pipeline.
type Stage int

const (
	// StageGroups narrows to the selected groups.
	StageGroups Stage = iota
	// StageSpatial applies the latitude/longitude bounding box.
	StageSpatial
	// StageTemporal applies the time window.
	StageTemporal
	// StageQualityCode applies the QC retain list.
	StageQualityCode

	numStages
)

func (s Stage) String() string {
	switch s {
	case StageGroups:
		return "group"
	case StageSpatial:
		return "spatial"
	case StageTemporal:
		return "temporal"
	case StageQualityCode:
		return "qc"
	default:
		return "unknown"
	}
}

// StageStat records what one stage did.
type StageStat struct {
	Stage Stage
	In    int
	Out   int
	// Skipped is set for stages not run because an earlier stage emptied the set.
	Skipped  bool
	Duration time.Duration
}

// GroupSelection picks groups by name and the way their observations combine.
// An empty Names selects every observation.
type GroupSelection struct {
	Names []string
	Mode  indexset.Mode
}

// SubsetRequest is the conjunction of filters applied by ComputeSubset.
// The zero value selects everything.
type SubsetRequest struct {
	Groups GroupSelection
	Box    filter.BoundingBox
	Window filter.TimeWindow
	QC     filter.QCSelection
}

// SubsetResult is the outcome of ComputeSubset.
type SubsetResult struct {
	// Indices are the surviving observation indices, ascending and unique.
	Indices []int
	// View is the dataset restricted to Indices.
	View *dataset.Dataset
	// Warning is set when a stage removed every observation.
	Warning *EmptyResultWarning
	// Stages has one entry per pipeline stage, in execution order.
	Stages []StageStat
}

// Len returns the number of selected observations.
func (r *SubsetResult) Len() int { return len(r.Indices) }

// IsEmpty reports whether no observation survived.
func (r *SubsetResult) IsEmpty() bool { return len(r.Indices) == 0 }
