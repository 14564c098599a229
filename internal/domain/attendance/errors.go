package attendance

import "errors"

var (
	ErrCorrectionNotFound    = errors.New("correction not found")
	ErrClockOutBeforeClockIn = errors.New("clock-out must be after clock-in")
	ErrInvalidEntryStatus    = errors.New("invalid time clock entry status")
	ErrInvalidCorrectionMode = errors.New("correction mode must be replace or supplement")
	ErrCorrectionProcessed   = errors.New("correction has already been approved or rejected")
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrDuplicateEntry        = errors.New("a time clock entry already exists for this clock-in")
)
