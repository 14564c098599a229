package contribution

import (
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// DefaultTableSet returns the tables in force from January 2025. It is used
// when no table set has been stored for a date.
func DefaultTableSet() TableSet {
	return TableSet{
		EffectiveDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		SSS: SSSTable{
			Brackets:         sssBrackets2025(),
			EmployeeRate:     d("0.05"),
			EmployerRate:     d("0.10"),
			RegularCreditCap: d("20000"),
			WISPEmployeeRate: d("0.05"),
			WISPEmployerRate: d("0.10"),
			WISPExcessCap:    d("15000"),
			ECThreshold:      d("15000"),
			ECBelowThreshold: d("10"),
			ECAboveThreshold: d("30"),
		},
		PhilHealth: PremiumTable{
			Floor:        d("10000"),
			Ceiling:      d("100000"),
			EmployeeRate: d("0.025"),
			EmployerRate: d("0.025"),
			SplitPremium: true,
		},
		PagIBIG: PremiumTable{
			Floor:                 decimal.Zero,
			Ceiling:               d("10000"),
			EmployeeRate:          d("0.02"),
			EmployerRate:          d("0.02"),
			LowSalaryThreshold:    d("1500"),
			LowSalaryEmployeeRate: d("0.01"),
		},
		Tax: TaxTable{
			Brackets: []TaxBracket{
				{Over: d("0"), BaseTax: d("0"), Rate: d("0")},
				{Over: d("250000"), BaseTax: d("0"), Rate: d("0.15")},
				{Over: d("400000"), BaseTax: d("22500"), Rate: d("0.20")},
				{Over: d("800000"), BaseTax: d("102500"), Rate: d("0.25")},
				{Over: d("2000000"), BaseTax: d("402500"), Rate: d("0.30")},
				{Over: d("8000000"), BaseTax: d("2202500"), Rate: d("0.35")},
			},
		},
		PeriodsPerYear:           26,
		ThirteenthMonthExclusion: d("90000"),
	}
}

// sssBrackets2025 builds the 61 salary credit brackets from 5,000 to 35,000.
func sssBrackets2025() []SalaryBracket {
	step := decimal.NewFromInt(500)
	half := decimal.NewFromInt(250)
	cent := d("0.01")

	brackets := []SalaryBracket{{Min: decimal.Zero, Max: dp("5249.99"), Credit: d("5000")}}
	for credit := d("5500"); credit.LessThan(d("35000")); credit = credit.Add(step) {
		upper := credit.Add(half).Sub(cent)
		brackets = append(brackets, SalaryBracket{
			Min:    credit.Sub(half),
			Max:    &upper,
			Credit: credit,
		})
	}
	brackets = append(brackets, SalaryBracket{Min: d("34750"), Credit: d("35000")})
	return brackets
}
