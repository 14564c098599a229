package deduction

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// Record holds the manual deductions HR enters for one employee and pay
// period. Nil overrides mean the statutory share is computed.
type Record struct {
	EmployeeID      string
	PeriodStart     time.Time
	SSSLoan         decimal.Decimal
	PagIBIGLoan     decimal.Decimal
	CompanyLoan     decimal.Decimal
	CashAdvance     decimal.Decimal
	OtherDeductions decimal.Decimal

	SSSOverride        *decimal.Decimal
	PhilHealthOverride *decimal.Decimal
	PagIBIGOverride    *decimal.Decimal
	WISP               *decimal.Decimal

	Version   int64
	UpdatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Empty is the record used when HR has entered nothing for the period.
func Empty(employeeID string, periodStart time.Time) Record {
	return Record{
		EmployeeID:      employeeID,
		PeriodStart:     periodStart,
		SSSLoan:         decimal.Zero,
		PagIBIGLoan:     decimal.Zero,
		CompanyLoan:     decimal.Zero,
		CashAdvance:     decimal.Zero,
		OtherDeductions: decimal.Zero,
	}
}

// Manual returns the non-statutory deductions keyed by breakdown label,
// skipping zero amounts.
func (r Record) Manual() map[string]decimal.Decimal {
	items := map[string]decimal.Decimal{
		"sss_loan":         r.SSSLoan,
		"pagibig_loan":     r.PagIBIGLoan,
		"company_loan":     r.CompanyLoan,
		"cash_advance":     r.CashAdvance,
		"other_deductions": r.OtherDeductions,
	}
	for k, v := range items {
		if v.IsZero() {
			delete(items, k)
		} else {
			items[k] = money.Round(v)
		}
	}
	return items
}

func (r Record) ManualTotal() decimal.Decimal {
	return money.Sum(r.SSSLoan, r.PagIBIGLoan, r.CompanyLoan, r.CashAdvance, r.OtherDeductions)
}
