package deduction

import "errors"

var (
	ErrDeductionNotFound = errors.New("deduction record not found")
	ErrVersionConflict   = errors.New("deduction record was modified by someone else, reload and retry")
	ErrNegativeAmount    = errors.New("amount must not be negative")
)
