package overtime

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitOvertimeRequest struct {
	EmployeeID  string  `json:"-"`
	RequestDate string  `json:"request_date"`       // YYYY-MM-DD
	EndDate     *string `json:"end_date,omitempty"` // YYYY-MM-DD
	StartTime   string  `json:"start_time"`         // HH:MM
	EndTime     string  `json:"end_time"`           // HH:MM
	Reason      string  `json:"reason"`
}

func (r *SubmitOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.RequestDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "request_date",
			Message: "request_date must be in YYYY-MM-DD format",
		})
	}

	if r.EndDate != nil && *r.EndDate != "" {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required",
		})
	} else if _, ok := validator.IsValidTimeOfDay(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if validator.IsEmpty(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time is required",
		})
	} else if _, ok := validator.IsValidTimeOfDay(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	return errs.OrNil()
}

type RejectOvertimeRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "rejection reason is required")
	}
	return errs.OrNil()
}

type OvertimeResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	RequestDate     string          `json:"request_date"`
	EndDate         *string         `json:"end_date,omitempty"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	TotalHours      decimal.Decimal `json:"total_hours"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	DecidedBy       *string         `json:"decided_by,omitempty"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type CreditBalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	Hours      decimal.Decimal `json:"hours"`
}
