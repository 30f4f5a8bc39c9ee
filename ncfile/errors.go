package ncfile

import "errors"

var (
	// ErrMissingVariable is returned when a required variable is absent.
	ErrMissingVariable = errors.New("ncfile: missing variable")

	// ErrUnsupportedType is returned for variables of non-numeric type.
	ErrUnsupportedType = errors.New("ncfile: unsupported variable type")
)
