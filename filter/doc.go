// Package filter implements the per-observation predicates of the subsetting
// pipeline: geographic bounding box, time window and quality-control codes.
//
// Each filter is a pure function from an input index set and read-only columns
// to a new index set. Filters only ever remove indices, and each one tests a
// single observation independently, so any application order of the filters
// yields the same result.
package filter
