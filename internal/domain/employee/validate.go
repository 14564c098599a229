package employee

import "github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"

// Validate checks the rate data payroll depends on.
func (e Employee) Validate() error {
	var errs validator.ValidationErrors

	switch e.RateBasis {
	case RateBasisMonthly:
		if e.MonthlyRate == nil {
			errs.Add("monthly_rate", ErrMissingRate.Error())
		} else if !e.MonthlyRate.IsPositive() {
			errs.Add("monthly_rate", ErrNonPositiveRate.Error())
		}
		if e.DailyRate != nil {
			errs.Add("daily_rate", ErrAmbiguousRate.Error())
		}
	case RateBasisDaily:
		if e.DailyRate == nil {
			errs.Add("daily_rate", ErrMissingRate.Error())
		} else if !e.DailyRate.IsPositive() {
			errs.Add("daily_rate", ErrNonPositiveRate.Error())
		}
		if e.MonthlyRate != nil {
			errs.Add("monthly_rate", ErrAmbiguousRate.Error())
		}
	default:
		errs.Add("rate_basis", ErrInvalidRateBasis.Error())
	}

	if e.TIN != nil && *e.TIN != "" && !validator.IsValidTIN(*e.TIN) {
		errs.Add("tin", "must be 9 digits with an optional branch code")
	}

	return errs.OrNil()
}
