package dataset

import "errors"

var (
	// ErrGroupNotFound is returned when a group name has no node in the tree.
	ErrGroupNotFound = errors.New("group not found")

	// ErrAmbiguousGroup is returned when a bare group name matches several nodes.
	ErrAmbiguousGroup = errors.New("ambiguous group name")

	// ErrLengthMismatch is returned when a per-observation array does not have N entries.
	ErrLengthMismatch = errors.New("array length does not match observation count")

	// ErrMissingColumn is returned when a required per-observation array is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrTooManyObservations is returned when N exceeds the index range.
	ErrTooManyObservations = errors.New("too many observations")
)
