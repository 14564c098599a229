package overtime

import "errors"

var (
	ErrOvertimeNotFound         = errors.New("overtime request not found")
	ErrOvertimeAlreadyProcessed = errors.New("overtime request has already been processed")
	ErrNotRequestOwner          = errors.New("only the employee who filed the request can cancel it")
	ErrNonPositiveHours         = errors.New("overtime must be longer than zero hours")
	ErrEndDateBeforeRequestDate = errors.New("end_date cannot be before request_date")
	ErrCreditAlreadyGranted     = errors.New("time credit already granted for this request")
)
