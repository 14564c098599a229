package payslip

import (
	"context"
	"time"
)

// PayslipRepository defines data access methods for payslips.
type PayslipRepository interface {
	// LockEmployeePeriod serializes writers for one (employee, period) key
	// until the surrounding transaction ends.
	LockEmployeePeriod(ctx context.Context, employeeID string, periodStart time.Time) error

	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart time.Time) (Payslip, error)
	// Overwrite replaces the figures of a payslip that is not paid and resets
	// it to draft.
	Overwrite(ctx context.Context, p Payslip) (Payslip, error)
	// TransitionStatus moves a payslip from one status to the next and fails
	// with ErrInvalidStatusTransition when it is no longer in from.
	TransitionStatus(ctx context.Context, id string, from, to Status, actor string) (Payslip, error)
	ListByPeriod(ctx context.Context, periodStart time.Time) ([]Payslip, error)
	// ListPaidByYear returns paid payslips whose period ends in year,
	// optionally for one employee.
	ListPaidByYear(ctx context.Context, year int, employeeID *string) ([]Payslip, error)

	CreateAdjustment(ctx context.Context, a Adjustment) (Adjustment, error)
	ListAdjustments(ctx context.Context, payslipID string) ([]Adjustment, error)
	ListAdjustmentsByYear(ctx context.Context, year int, employeeID *string) ([]Adjustment, error)
}

type AllowanceRepository interface {
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Allowance, error)
}
