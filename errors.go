package obsview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/obsview/dataset"
	"github.com/hupe1980/obsview/filter"
	"github.com/hupe1980/obsview/indexset"
)

var (
	// ErrNilDataset is returned when no dataset is supplied.
	ErrNilDataset = errors.New("dataset is nil")

	// ErrNoGroupTree is returned when groups are selected but no tree is supplied.
	ErrNoGroupTree = errors.New("group selection requires a group tree")

	// ErrTreeMismatch is returned when the tree was built for a different observation count.
	ErrTreeMismatch = errors.New("group tree does not match dataset")
)

// GroupNotFoundError indicates a selected group has no node in the tree.
//
// The underlying error (if any) can be accessed via errors.Unwrap; it satisfies
// errors.Is(err, dataset.ErrGroupNotFound).
type GroupNotFoundError struct {
	Name  string
	cause error
}

func (e *GroupNotFoundError) Error() string {
	return fmt.Sprintf("group not found: %s", e.Name)
}

func (e *GroupNotFoundError) Unwrap() error { return e.cause }

// InvalidFilterError indicates a structurally invalid filter combination, such
// as an intersection over fewer than two groups.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type InvalidFilterError struct {
	Reason string
	cause  error
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter: %s", e.Reason)
}

func (e *InvalidFilterError) Unwrap() error { return e.cause }

// EmptyResultWarning reports the stage that removed the last observation.
//
// It is attached to SubsetResult.Warning and never returned as an error value;
// it implements error only so it can be printed and wrapped by callers.
type EmptyResultWarning struct {
	Stage Stage
}

func (w *EmptyResultWarning) Error() string {
	return fmt.Sprintf("no observations left after %s filter", w.Stage)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var gnf *GroupNotFoundError
	if errors.As(err, &gnf) {
		return err
	}
	var inv *InvalidFilterError
	if errors.As(err, &inv) {
		return err
	}

	if errors.Is(err, dataset.ErrGroupNotFound) {
		return &GroupNotFoundError{Name: groupName(err), cause: err}
	}
	if errors.Is(err, dataset.ErrAmbiguousGroup) ||
		errors.Is(err, indexset.ErrInvalidFilter) ||
		errors.Is(err, filter.ErrInvalidQCCode) ||
		errors.Is(err, filter.ErrInvalidBound) ||
		errors.Is(err, ErrNoGroupTree) ||
		errors.Is(err, ErrTreeMismatch) {
		return &InvalidFilterError{Reason: filterReason(err), cause: err}
	}

	return err
}

// filterReason drops the sentinel prefix that InvalidFilterError.Error adds back.
func filterReason(err error) string {
	return strings.TrimPrefix(err.Error(), indexset.ErrInvalidFilter.Error()+": ")
}

// groupName extracts the group reference from a "group not found: <name>" error.
func groupName(err error) string {
	msg := err.Error()
	if _, name, ok := strings.Cut(msg, dataset.ErrGroupNotFound.Error()+": "); ok {
		return name
	}
	return msg
}
