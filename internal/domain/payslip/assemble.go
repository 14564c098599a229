package payslip

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
)

// AssembleInput is everything one payslip is computed from.
type AssembleInput struct {
	Employee   employee.Employee
	Period     period.Period
	Attendance attendance.PeriodAttendance
	Deductions deduction.Record
	Allowances []Allowance
	// ThirteenthMonth is nil when the period does not pay 13th-month.
	ThirteenthMonth *ThirteenthMonthInput
}

// Earnings breakdown keys.
const (
	EarningBasicPay          = "basic_pay"
	EarningOvertimePay       = "overtime_pay"
	EarningNightDifferential = "night_differential"
	EarningThirteenthMonth   = "thirteenth_month_pay"
)

// Deductions breakdown keys for statutory items.
const (
	DeductionSSS            = "sss"
	DeductionWISP           = "wisp"
	DeductionPhilHealth     = "philhealth"
	DeductionPagIBIG        = "pagibig"
	DeductionWithholdingTax = "withholding_tax"
)

// PremiumKey is the earnings key for regular hours worked on a non-ordinary day.
func PremiumKey(d attendance.DayType) string {
	return string(d) + "_pay"
}

// AllowanceKey namespaces an allowance so it never lands on a computed
// earnings line.
func AllowanceKey(name string) string {
	return "allowance_" + name
}
