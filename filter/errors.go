package filter

import "errors"

var (
	// ErrInvalidQCCode is returned for QC codes outside [0, 8].
	ErrInvalidQCCode = errors.New("invalid qc code")

	// ErrInvalidBound is returned for NaN bounds.
	ErrInvalidBound = errors.New("invalid bound")
)
