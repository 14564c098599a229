package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// ========================================
// YEAR-TO-DATE
// ========================================

type EmployeeYTDRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

func (r *EmployeeYTDRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	validateYear(&errs, r.Year)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// BIR SUMMARY / ALPHALIST
// ========================================

type CompanySummaryRequest struct {
	Year int `json:"year"`
}

func (r *CompanySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	validateYear(&errs, r.Year)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateYear(errs *validator.ValidationErrors, year int) {
	currentYear := time.Now().Year()
	if year < 2020 || year > currentYear+1 {
		*errs = append(*errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}
}
