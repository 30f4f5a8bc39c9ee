package obsview

import (
	"fmt"
	"time"

	"github.com/hupe1980/obsview/dataset"
	"github.com/hupe1980/obsview/filter"
	"github.com/hupe1980/obsview/indexset"
)

// Engine computes observation subsets. It holds only immutable configuration
// and is safe for concurrent use.
type Engine struct {
	opts    options
	metrics MetricsCollector
	logger  *Logger
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	opts := applyOptions(optFns)
	return &Engine{
		opts:    opts,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
}

var defaultEngine = New()

// ComputeSubset runs req against ds with a default Engine.
func ComputeSubset(ds *dataset.Dataset, tree *dataset.GroupTree, req SubsetRequest) (*SubsetResult, error) {
	return defaultEngine.ComputeSubset(ds, tree, req)
}

type stageFunc func(in *indexset.Set) (*indexset.Set, error)

// ComputeSubset narrows ds through the group, spatial, temporal and QC stages,
// in that order. Each stage only sees the survivors of the previous one.
//
// A stage that removes every observation sets SubsetResult.Warning; the later
// stages are recorded as skipped and the result is empty but not an error.
// Unknown groups yield *GroupNotFoundError; structurally invalid requests
// yield *InvalidFilterError.
func (e *Engine) ComputeSubset(ds *dataset.Dataset, tree *dataset.GroupTree, req SubsetRequest) (res *SubsetResult, err error) {
	start := time.Now()
	total := 0
	if ds != nil {
		total = ds.Len()
	}
	defer func() {
		kept := 0
		if res != nil {
			kept = res.Len()
		}
		e.metrics.RecordSubset(total, kept, time.Since(start), err)
		e.logger.LogSubset(total, kept, err)
	}()

	if ds == nil {
		return nil, ErrNilDataset
	}
	if err := validateRequest(req); err != nil {
		return nil, translateError(err)
	}

	stages := [numStages]stageFunc{
		StageGroups: func(in *indexset.Set) (*indexset.Set, error) {
			sel, err := SelectGroups(tree, ds.Len(), req.Groups)
			if err != nil {
				return nil, err
			}
			return indexset.Intersect(in, sel), nil
		},
		StageSpatial: func(in *indexset.Set) (*indexset.Set, error) {
			return filter.Spatial(in, ds.Lat(), ds.Lon(), req.Box), nil
		},
		StageTemporal: func(in *indexset.Set) (*indexset.Set, error) {
			return filter.Temporal(in, ds.Time(), req.Window), nil
		},
		StageQualityCode: func(in *indexset.Set) (*indexset.Set, error) {
			return filter.QualityCode(in, ds.QC(), req.QC), nil
		},
	}

	res = &SubsetResult{Stages: make([]StageStat, 0, numStages)}
	cur := ds.All()

	for i, run := range stages {
		stage := Stage(i)
		if res.Warning != nil {
			res.Stages = append(res.Stages, StageStat{Stage: stage, Skipped: true})
			continue
		}

		t0 := time.Now()
		out, err := run(cur)
		if err != nil {
			return nil, translateError(err)
		}
		elapsed := time.Since(t0)

		in := cur.Len()
		res.Stages = append(res.Stages, StageStat{Stage: stage, In: in, Out: out.Len(), Duration: elapsed})
		e.metrics.RecordStage(stage, in, out.Len(), elapsed)
		e.logger.LogStage(stage, in, out.Len(), elapsed)

		if out.IsEmpty() {
			res.Warning = &EmptyResultWarning{Stage: stage}
			e.logger.LogEmptyResult(res.Warning, in)
		}
		cur = out
	}

	res.Indices = cur.Indices()
	res.View = ds.Subset(res.Indices)
	return res, nil
}

func validateRequest(req SubsetRequest) error {
	if err := req.Box.Validate(); err != nil {
		return err
	}
	return req.Window.Validate()
}

// SelectGroups resolves a group selection to the observations it denotes for a
// dataset of n observations.
//
// An empty selection denotes every observation. Under Union, selecting the root
// denotes every observation; under Intersection the root is the identity and is
// dropped. Internal groups expand to all of their descendant leaves, and every
// leaf is one operand. Intersection requires at least two distinct groups.
func SelectGroups(tree *dataset.GroupTree, n int, sel GroupSelection) (*indexset.Set, error) {
	all := indexset.Range(n)
	if len(sel.Names) == 0 {
		return all, nil
	}
	if tree == nil {
		return nil, ErrNoGroupTree
	}
	if tree.ObservationCount() != n {
		return nil, fmt.Errorf("%w: tree has %d observations, dataset has %d", ErrTreeMismatch, tree.ObservationCount(), n)
	}
	if sel.Mode != indexset.Union && sel.Mode != indexset.Intersection {
		return nil, fmt.Errorf("%w: unknown combination mode %d", indexset.ErrInvalidFilter, sel.Mode)
	}

	seen := make(map[int]struct{}, len(sel.Names))
	var rest []string
	hasRoot := false
	for _, name := range sel.Names {
		idx, err := tree.Lookup(name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		if idx == 0 {
			hasRoot = true
			continue
		}
		rest = append(rest, name)
	}

	if sel.Mode == indexset.Intersection && len(seen) < 2 {
		return nil, fmt.Errorf("%w: intersection needs at least two distinct groups, got %d", indexset.ErrInvalidFilter, len(seen))
	}
	if hasRoot && (sel.Mode == indexset.Union || len(rest) == 0) {
		return all, nil
	}

	leaves, err := tree.ExpandSelection(rest)
	if err != nil {
		return nil, err
	}
	sets := make([]*indexset.Set, 0, len(leaves))
	for _, leaf := range leaves {
		s, err := tree.IndexSet(leaf)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}

	if sel.Mode == indexset.Intersection && len(sets) == 1 {
		return sets[0], nil
	}
	return indexset.Combine(sets, sel.Mode)
}
