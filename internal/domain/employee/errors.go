package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidRateBasis = errors.New("rate basis must be monthly or daily")
	ErrMissingRate      = errors.New("employee has no rate for its rate basis")
	ErrNonPositiveRate  = errors.New("employee rate must be greater than zero")
	ErrAmbiguousRate    = errors.New("employee must have exactly one of monthly or daily rate")
)
