package report

import (
	"github.com/shopspring/decimal"
)

// YTDSummary sums one employee's paid payslips for a calendar year.
type YTDSummary struct {
	EmployeeID         string   `json:"employee_id"`
	EmployeeCode       string   `json:"employee_code"`
	EmployeeName       string   `json:"employee_name"`
	TIN                *string  `json:"tin,omitempty"`
	MissingIdentifiers []string `json:"missing_identifiers,omitempty"`
	Year               int      `json:"year"`

	Totals       Totals          `json:"totals"`
	Adjustments  decimal.Decimal `json:"adjustments"`
	PayslipCount int             `json:"payslip_count"`
}

// Totals are the additive figures shared by employee and company rollups.
type Totals struct {
	Gross                     decimal.Decimal `json:"gross"`
	Taxable                   decimal.Decimal `json:"taxable"`
	TaxWithheld               decimal.Decimal `json:"tax_withheld"`
	SSS                       decimal.Decimal `json:"sss"`
	WISP                      decimal.Decimal `json:"wisp"`
	PhilHealth                decimal.Decimal `json:"philhealth"`
	PagIBIG                   decimal.Decimal `json:"pagibig"`
	ThirteenthMonth           decimal.Decimal `json:"thirteenth_month"`
	NonTaxableThirteenthMonth decimal.Decimal `json:"non_taxable_thirteenth_month"`
	NetPay                    decimal.Decimal `json:"net_pay"`
}

func ZeroTotals() Totals {
	return Totals{
		Gross:                     decimal.Zero,
		Taxable:                   decimal.Zero,
		TaxWithheld:               decimal.Zero,
		SSS:                       decimal.Zero,
		WISP:                      decimal.Zero,
		PhilHealth:                decimal.Zero,
		PagIBIG:                   decimal.Zero,
		ThirteenthMonth:           decimal.Zero,
		NonTaxableThirteenthMonth: decimal.Zero,
		NetPay:                    decimal.Zero,
	}
}

// Add returns the field-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Gross:                     t.Gross.Add(o.Gross),
		Taxable:                   t.Taxable.Add(o.Taxable),
		TaxWithheld:               t.TaxWithheld.Add(o.TaxWithheld),
		SSS:                       t.SSS.Add(o.SSS),
		WISP:                      t.WISP.Add(o.WISP),
		PhilHealth:                t.PhilHealth.Add(o.PhilHealth),
		PagIBIG:                   t.PagIBIG.Add(o.PagIBIG),
		ThirteenthMonth:           t.ThirteenthMonth.Add(o.ThirteenthMonth),
		NonTaxableThirteenthMonth: t.NonTaxableThirteenthMonth.Add(o.NonTaxableThirteenthMonth),
		NetPay:                    t.NetPay.Add(o.NetPay),
	}
}

// Contributions is SSS (WISP included), PhilHealth and Pag-IBIG together.
func (t Totals) Contributions() decimal.Decimal {
	return t.SSS.Add(t.WISP).Add(t.PhilHealth).Add(t.PagIBIG)
}

// CompanySummary is the company-wide annual rollup. Totals always equal the
// sum of the employee rollups.
type CompanySummary struct {
	Year                int             `json:"year"`
	EmployeeCount       int             `json:"employee_count"`
	PayslipCount        int             `json:"payslip_count"`
	Totals              Totals          `json:"totals"`
	Adjustments         decimal.Decimal `json:"adjustments"`
	Employees           []YTDSummary    `json:"employees"`
	EmployeesMissingTIN []string        `json:"employees_missing_tin"`
	GeneratedAt         string          `json:"generated_at"`
}

// AlphalistRow is one employee line of the annual alphalist export.
type AlphalistRow struct {
	TIN                       string `csv:"tin"`
	EmployeeCode              string `csv:"employee_code"`
	EmployeeName              string `csv:"employee_name"`
	GrossCompensation         string `csv:"gross_compensation"`
	NonTaxableThirteenthMonth string `csv:"non_taxable_13th_month"`
	Contributions             string `csv:"sss_philhealth_pagibig"`
	TaxableCompensation       string `csv:"taxable_compensation"`
	TaxWithheld               string `csv:"tax_withheld"`
	Adjustments               string `csv:"adjustments"`
}
