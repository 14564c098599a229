package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

var transitions = map[Status]Status{
	StatusDraft:    StatusApproved,
	StatusApproved: StatusPaid,
}

// CanTransitionTo reports whether next directly follows s.
func (s Status) CanTransitionTo(next Status) bool {
	return transitions[s] == next
}

// Payslip - computed pay for one employee and one period. Monetary fields are
// frozen once Status is paid.
type Payslip struct {
	ID                        string
	EmployeeID                string
	PeriodStart               time.Time
	PeriodEnd                 time.Time
	EarningsBreakdown         map[string]decimal.Decimal // {"basic_pay": 13846.15, "overtime_pay": 1250}
	DeductionsBreakdown       map[string]decimal.Decimal // {"sss": 461.54, "cash_advance": 500}
	GrossPay                  decimal.Decimal
	TaxableCompensation       decimal.Decimal
	TaxWithheld               decimal.Decimal
	SSSEmployee               decimal.Decimal
	WISPEmployee              decimal.Decimal
	PhilHealthEmployee        decimal.Decimal
	PagIBIGEmployee           decimal.Decimal
	ThirteenthMonthPay        decimal.Decimal
	NonTaxableThirteenthMonth decimal.Decimal
	TotalDeductions           decimal.Decimal
	NetPay                    decimal.Decimal
	Status                    Status
	Warnings                  []string
	ApprovedBy                *string
	ApprovedAt                *time.Time
	PaidAt                    *time.Time
	CreatedAt                 time.Time
	UpdatedAt                 time.Time

	// Joined fields
	EmployeeName *string
}

// SameFigures reports whether p and other carry identical amounts.
func (p Payslip) SameFigures(other Payslip) bool {
	pairs := [][2]decimal.Decimal{
		{p.GrossPay, other.GrossPay},
		{p.TaxableCompensation, other.TaxableCompensation},
		{p.TaxWithheld, other.TaxWithheld},
		{p.SSSEmployee, other.SSSEmployee},
		{p.WISPEmployee, other.WISPEmployee},
		{p.PhilHealthEmployee, other.PhilHealthEmployee},
		{p.PagIBIGEmployee, other.PagIBIGEmployee},
		{p.ThirteenthMonthPay, other.ThirteenthMonthPay},
		{p.NonTaxableThirteenthMonth, other.NonTaxableThirteenthMonth},
		{p.TotalDeductions, other.TotalDeductions},
		{p.NetPay, other.NetPay},
	}
	for _, pair := range pairs {
		if !pair[0].Equal(pair[1]) {
			return false
		}
	}
	return sameBreakdown(p.EarningsBreakdown, other.EarningsBreakdown) &&
		sameBreakdown(p.DeductionsBreakdown, other.DeductionsBreakdown)
}

func sameBreakdown(a, b map[string]decimal.Decimal) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// Adjustment - signed correction layered on a paid payslip
type Adjustment struct {
	ID        string
	PayslipID string
	Amount    decimal.Decimal
	Reason    string
	CreatedBy string
	CreatedAt time.Time

	// Joined fields
	EmployeeID string
}

// Allowance - recurring per-period allowance assigned to an employee
type Allowance struct {
	ID            string
	EmployeeID    string
	Name          string
	Amount        decimal.Decimal
	IsTaxable     bool
	EffectiveDate time.Time
	EndDate       *time.Time
}

// ActiveOn reports whether the allowance applies to a period ending on end
// and starting on start.
func (a Allowance) ActiveOn(start, end time.Time) bool {
	if a.EffectiveDate.After(end) {
		return false
	}
	return a.EndDate == nil || !a.EndDate.Before(start)
}

// ThirteenthMonthInput carries what the year's earlier paid payslips already
// contributed toward 13th-month pay.
type ThirteenthMonthInput struct {
	PriorBasicPay   decimal.Decimal
	PriorPaid       decimal.Decimal
	PriorNonTaxable decimal.Decimal
}
