package overtime

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// Resolve turns a request's dates and HH:MM times into a concrete window.
// Without an explicit end date, an end time not after the start time means
// the overtime runs past midnight into the next day.
func Resolve(requestDate string, endDate *string, startTime, endTime string) (overtime.Window, error) {
	var errs validator.ValidationErrors

	rd, err := period.ParseDate(requestDate)
	if err != nil {
		errs.Add("request_date", "request_date must be in YYYY-MM-DD format")
	}
	startTOD, ok := validator.IsValidTimeOfDay(startTime)
	if !ok {
		errs.Add("start_time", "start_time must be in HH:MM format")
	}
	endTOD, ok := validator.IsValidTimeOfDay(endTime)
	if !ok {
		errs.Add("end_time", "end_time must be in HH:MM format")
	}
	if len(errs) > 0 {
		return overtime.Window{}, errs
	}

	ed := rd
	if endDate != nil && *endDate != "" {
		if ed, err = period.ParseDate(*endDate); err != nil {
			return overtime.Window{}, validator.ValidationErrors{{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"}}
		}
		if ed.Before(rd) {
			return overtime.Window{}, validator.ValidationErrors{{Field: "end_date", Message: overtime.ErrEndDateBeforeRequestDate.Error()}}
		}
	} else if endTOD <= startTOD {
		ed = rd.AddDate(0, 0, 1)
	}

	start := localInstant(rd, startTOD)
	end := localInstant(ed, endTOD)

	minutes := int64(end.Sub(start) / time.Minute)
	if minutes <= 0 {
		return overtime.Window{}, validator.ValidationErrors{{Field: "end_time", Message: overtime.ErrNonPositiveHours.Error()}}
	}

	return overtime.Window{
		RequestDate: rd,
		EndDate:     ed,
		Start:       start,
		End:         end,
		TotalHours:  money.HoursFromMinutes(minutes),
	}, nil
}

func localInstant(date time.Time, offset time.Duration) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, period.Manila).Add(offset)
}
