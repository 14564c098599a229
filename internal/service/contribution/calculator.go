package contribution

import (
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	two    = decimal.NewFromInt(2)
	twelve = decimal.NewFromInt(12)

	centavo = decimal.New(1, -money.Places)
)

type CalculatorImpl struct {
	tables contribution.TableSet
}

func NewCalculator(tables contribution.TableSet) contribution.Calculator {
	return &CalculatorImpl{tables: tables}
}

func (c *CalculatorImpl) Tables() contribution.TableSet {
	return c.tables
}

func (c *CalculatorImpl) SSS(monthlySalary decimal.Decimal) contribution.SSSContribution {
	t := c.tables.SSS
	var warnings []string

	salary, w := clampNegative("sss", monthlySalary)
	warnings = append(warnings, w...)

	bracket, w := findBracket(t.Brackets, salary)
	warnings = append(warnings, w...)

	regular := decimal.Min(bracket.Credit, t.RegularCreditCap)

	ec := t.ECAboveThreshold
	if bracket.Credit.LessThan(t.ECThreshold) {
		ec = t.ECBelowThreshold
	}

	excess := decimal.Min(money.MaxZero(salary.Sub(t.RegularCreditCap)), t.WISPExcessCap)

	return contribution.SSSContribution{
		SalaryCredit:      bracket.Credit,
		EmployeeShare:     money.Round(regular.Mul(t.EmployeeRate)),
		EmployerShare:     money.Round(regular.Mul(t.EmployerRate)),
		EC:                money.Round(ec),
		WISPEmployeeShare: wispShare(excess, t.WISPEmployeeRate),
		WISPEmployerShare: wispShare(excess, t.WISPEmployerRate),
		Warnings:          warnings,
	}
}

// wispShare is never rounded away: any positive excess owes at least a centavo.
func wispShare(excess, rate decimal.Decimal) decimal.Decimal {
	share := money.Round(excess.Mul(rate))
	if excess.IsPositive() && rate.IsPositive() && !share.IsPositive() {
		return centavo
	}
	return share
}

func (c *CalculatorImpl) PhilHealth(monthlySalary decimal.Decimal) contribution.PremiumContribution {
	return premium("philhealth", c.tables.PhilHealth, monthlySalary)
}

func (c *CalculatorImpl) PagIBIG(monthlySalary decimal.Decimal) contribution.PremiumContribution {
	return premium("pagibig", c.tables.PagIBIG, monthlySalary)
}

func (c *CalculatorImpl) Monthly(monthlySalary decimal.Decimal) contribution.Monthly {
	return contribution.Monthly{
		SSS:        c.SSS(monthlySalary),
		PhilHealth: c.PhilHealth(monthlySalary),
		PagIBIG:    c.PagIBIG(monthlySalary),
	}
}

// WithholdingTax annualizes one period's taxable compensation, applies the
// graduated table, and spreads the annual tax back over the periods.
func (c *CalculatorImpl) WithholdingTax(periodTaxable decimal.Decimal) contribution.TaxComputation {
	taxable, warnings := clampNegative("withholding tax", periodTaxable)
	periods := decimal.NewFromInt(int64(c.tables.PeriodsPerYear))

	annualized := taxable.Mul(periods)
	annualTax := annualTaxFor(c.tables.Tax.Brackets, annualized)

	return contribution.TaxComputation{
		Taxable:    money.Round(taxable),
		Annualized: money.Round(annualized),
		AnnualTax:  money.Round(annualTax),
		Tax:        money.Round(annualTax.Div(periods)),
		Warnings:   warnings,
	}
}

func (c *CalculatorImpl) PerPeriod(monthly decimal.Decimal) decimal.Decimal {
	periods := decimal.NewFromInt(int64(c.tables.PeriodsPerYear))
	return money.Round(monthly.Mul(twelve).Div(periods))
}

func premium(name string, t contribution.PremiumTable, monthlySalary decimal.Decimal) contribution.PremiumContribution {
	salary, warnings := clampNegative(name, monthlySalary)

	base := salary
	if base.LessThan(t.Floor) {
		base = t.Floor
	}
	if t.Ceiling.IsPositive() && base.GreaterThan(t.Ceiling) {
		base = t.Ceiling
	}

	if t.SplitPremium {
		total := money.Round(base.Mul(t.EmployeeRate.Add(t.EmployerRate)))
		ee := money.Round(total.Div(two))
		return contribution.PremiumContribution{
			Base:          base,
			EmployeeShare: ee,
			EmployerShare: total.Sub(ee),
			Warnings:      warnings,
		}
	}

	eeRate := t.EmployeeRate
	if t.LowSalaryThreshold.IsPositive() && salary.LessThanOrEqual(t.LowSalaryThreshold) {
		eeRate = t.LowSalaryEmployeeRate
	}

	return contribution.PremiumContribution{
		Base:          base,
		EmployeeShare: money.Round(base.Mul(eeRate)),
		EmployerShare: money.Round(base.Mul(t.EmployerRate)),
		Warnings:      warnings,
	}
}

// findBracket locates the bracket holding salary. A salary outside the table
// is clamped to the nearest end bracket and reported as a warning.
func findBracket(brackets []contribution.SalaryBracket, salary decimal.Decimal) (contribution.SalaryBracket, []string) {
	first, last := brackets[0], brackets[len(brackets)-1]

	if salary.LessThan(first.Min) {
		msg := fmt.Sprintf("salary %s is below the lowest bracket (%s); clamped", salary.StringFixed(2), first.Min.StringFixed(2))
		slog.Warn("contribution bracket clamp", "salary", salary.String(), "bound", first.Min.String())
		return first, []string{msg}
	}
	if last.Max != nil && salary.GreaterThan(*last.Max) {
		msg := fmt.Sprintf("salary %s is above the highest bracket (%s); clamped", salary.StringFixed(2), last.Max.StringFixed(2))
		slog.Warn("contribution bracket clamp", "salary", salary.String(), "bound", last.Max.String())
		return last, []string{msg}
	}

	for _, b := range brackets {
		if salary.LessThan(b.Min) {
			continue
		}
		if b.Max == nil || salary.LessThanOrEqual(*b.Max) {
			return b, nil
		}
	}

	// Gap between brackets, e.g. 5249.995: use the highest bracket starting below salary.
	chosen := first
	for _, b := range brackets {
		if b.Min.LessThanOrEqual(salary) {
			chosen = b
		}
	}
	return chosen, nil
}

func annualTaxFor(brackets []contribution.TaxBracket, annual decimal.Decimal) decimal.Decimal {
	var applicable *contribution.TaxBracket
	for i := range brackets {
		if annual.GreaterThan(brackets[i].Over) || (i == 0 && annual.Equal(brackets[i].Over)) {
			applicable = &brackets[i]
		}
	}
	if applicable == nil {
		return decimal.Zero
	}
	return applicable.BaseTax.Add(annual.Sub(applicable.Over).Mul(applicable.Rate))
}

func clampNegative(name string, v decimal.Decimal) (decimal.Decimal, []string) {
	if !v.IsNegative() {
		return v, nil
	}
	slog.Warn("negative amount clamped to zero", "component", name, "amount", v.String())
	return decimal.Zero, []string{fmt.Sprintf("%s: negative amount %s clamped to 0.00", name, v.StringFixed(2))}
}
