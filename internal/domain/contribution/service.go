package contribution

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Calculator computes statutory contributions from one TableSet.
type Calculator interface {
	Tables() TableSet
	SSS(monthlySalary decimal.Decimal) SSSContribution
	PhilHealth(monthlySalary decimal.Decimal) PremiumContribution
	PagIBIG(monthlySalary decimal.Decimal) PremiumContribution
	Monthly(monthlySalary decimal.Decimal) Monthly
	WithholdingTax(periodTaxable decimal.Decimal) TaxComputation
	// PerPeriod converts a monthly amount to one pay period's share.
	PerPeriod(monthly decimal.Decimal) decimal.Decimal
}

type ContributionService interface {
	CalculatorFor(ctx context.Context, date time.Time) (Calculator, error)
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	SaveTables(ctx context.Context, tables TableSet) error
	InvalidateTables(ctx context.Context) error
}
