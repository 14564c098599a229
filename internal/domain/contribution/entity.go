package contribution

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryBracket maps a monthly salary range to a monthly salary credit.
// Max is nil on an open-ended top bracket.
type SalaryBracket struct {
	Min    decimal.Decimal  `json:"min"`
	Max    *decimal.Decimal `json:"max,omitempty"`
	Credit decimal.Decimal  `json:"credit"`
}

type SSSTable struct {
	Brackets         []SalaryBracket `json:"brackets"`
	EmployeeRate     decimal.Decimal `json:"employee_rate"`
	EmployerRate     decimal.Decimal `json:"employer_rate"`
	RegularCreditCap decimal.Decimal `json:"regular_credit_cap"`
	WISPEmployeeRate decimal.Decimal `json:"wisp_employee_rate"`
	WISPEmployerRate decimal.Decimal `json:"wisp_employer_rate"`
	WISPExcessCap    decimal.Decimal `json:"wisp_excess_cap"`
	ECThreshold      decimal.Decimal `json:"ec_threshold"`
	ECBelowThreshold decimal.Decimal `json:"ec_below_threshold"`
	ECAboveThreshold decimal.Decimal `json:"ec_above_threshold"`
}

// PremiumTable describes a flat-rate premium on a clamped salary base,
// the shape both PhilHealth and Pag-IBIG use.
type PremiumTable struct {
	Floor        decimal.Decimal `json:"floor"`
	Ceiling      decimal.Decimal `json:"ceiling"`
	EmployeeRate decimal.Decimal `json:"employee_rate"`
	EmployerRate decimal.Decimal `json:"employer_rate"`

	// LowSalaryThreshold and LowSalaryEmployeeRate apply a reduced employee
	// rate when the salary is at or below the threshold. Zero disables it.
	LowSalaryThreshold    decimal.Decimal `json:"low_salary_threshold"`
	LowSalaryEmployeeRate decimal.Decimal `json:"low_salary_employee_rate"`

	// SplitPremium computes one premium at the combined rate and splits it,
	// with the employer absorbing the rounding remainder.
	SplitPremium bool `json:"split_premium"`
}

// TaxBracket is one row of the annual graduated income tax table: income
// over Over pays BaseTax plus Rate on the excess.
type TaxBracket struct {
	Over    decimal.Decimal `json:"over"`
	BaseTax decimal.Decimal `json:"base_tax"`
	Rate    decimal.Decimal `json:"rate"`
}

type TaxTable struct {
	Brackets []TaxBracket `json:"brackets"`
}

// TableSet is every statutory table in force from EffectiveDate.
type TableSet struct {
	EffectiveDate            time.Time       `json:"effective_date"`
	SSS                      SSSTable        `json:"sss"`
	PhilHealth               PremiumTable    `json:"philhealth"`
	PagIBIG                  PremiumTable    `json:"pagibig"`
	Tax                      TaxTable        `json:"tax"`
	PeriodsPerYear           int             `json:"periods_per_year"`
	ThirteenthMonthExclusion decimal.Decimal `json:"thirteenth_month_exclusion"`
}

type SSSContribution struct {
	SalaryCredit      decimal.Decimal `json:"salary_credit"`
	EmployeeShare     decimal.Decimal `json:"employee_share"`
	EmployerShare     decimal.Decimal `json:"employer_share"`
	EC                decimal.Decimal `json:"ec"`
	WISPEmployeeShare decimal.Decimal `json:"wisp_employee_share"`
	WISPEmployerShare decimal.Decimal `json:"wisp_employer_share"`
	Warnings          []string        `json:"warnings,omitempty"`
}

type PremiumContribution struct {
	Base          decimal.Decimal `json:"base"`
	EmployeeShare decimal.Decimal `json:"employee_share"`
	EmployerShare decimal.Decimal `json:"employer_share"`
	Warnings      []string        `json:"warnings,omitempty"`
}

type TaxComputation struct {
	Taxable    decimal.Decimal `json:"taxable"`
	Annualized decimal.Decimal `json:"annualized"`
	AnnualTax  decimal.Decimal `json:"annual_tax"`
	Tax        decimal.Decimal `json:"tax"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// Monthly bundles every monthly contribution for one salary.
type Monthly struct {
	SSS        SSSContribution     `json:"sss"`
	PhilHealth PremiumContribution `json:"philhealth"`
	PagIBIG    PremiumContribution `json:"pagibig"`
}

func (m Monthly) Warnings() []string {
	var w []string
	w = append(w, m.SSS.Warnings...)
	w = append(w, m.PhilHealth.Warnings...)
	w = append(w, m.PagIBIG.Warnings...)
	return w
}

// Effective picks the latest set in force on date from sets ordered by
// EffectiveDate. It reports false when none has started yet.
func Effective(sets []TableSet, date time.Time) (TableSet, bool) {
	var found TableSet
	ok := false
	for _, s := range sets {
		if s.EffectiveDate.After(date) {
			break
		}
		found, ok = s, true
	}
	return found, ok
}
