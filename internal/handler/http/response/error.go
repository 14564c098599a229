package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrMissingClaims), errors.Is(err, jwt.ErrInvalidTokenType):
		Unauthorized(w, err.Error())
	case errors.Is(err, jwt.ErrPayrollRole), errors.Is(err, jwt.ErrMissingEmployeeID):
		Forbidden(w, err.Error())

	// Period errors
	case errors.Is(err, period.ErrInvalidDate),
		errors.Is(err, period.ErrNotPeriodStart),
		errors.Is(err, period.ErrInvalidYear),
		errors.Is(err, report.ErrInvalidYear):
		ValidationError(w, map[string]string{"period": err.Error()})

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMissingRate),
		errors.Is(err, employee.ErrInvalidRateBasis),
		errors.Is(err, employee.ErrNonPositiveRate),
		errors.Is(err, employee.ErrAmbiguousRate):
		ValidationError(w, map[string]string{"employee": err.Error()})

	// Attendance errors
	case errors.Is(err, attendance.ErrCorrectionNotFound):
		NotFound(w, "Correction not found")
	case errors.Is(err, attendance.ErrDuplicateEntry):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrCorrectionProcessed):
		Conflict(w, "Correction already processed")

	// Overtime errors
	case errors.Is(err, overtime.ErrOvertimeNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrOvertimeAlreadyProcessed):
		Conflict(w, "Overtime request already processed")
	case errors.Is(err, overtime.ErrCreditAlreadyGranted):
		Conflict(w, err.Error())
	case errors.Is(err, overtime.ErrNotRequestOwner):
		Forbidden(w, err.Error())

	// Contribution errors
	case errors.Is(err, contribution.ErrInvalidTableSet), errors.Is(err, contribution.ErrInvalidSalary):
		ValidationError(w, map[string]string{"tables": err.Error()})

	// Deduction errors
	case errors.Is(err, deduction.ErrDeductionNotFound):
		NotFound(w, "Deduction record not found")
	case errors.Is(err, deduction.ErrVersionConflict):
		Conflict(w, err.Error())

	// Payslip errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrPayslipImmutable),
		errors.Is(err, payslip.ErrPayslipAlreadyExists),
		errors.Is(err, payslip.ErrInvalidStatusTransition),
		errors.Is(err, payslip.ErrAdjustmentRequiresPaid):
		Conflict(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
