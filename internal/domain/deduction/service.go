package deduction

import (
	"context"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
)

type DeductionService interface {
	// Load returns the period's record, filling in and persisting the WISP
	// share on first read.
	Load(ctx context.Context, req GetDeductionRequest) (DeductionResponse, error)
	Update(ctx context.Context, req UpdateDeductionRequest) (DeductionResponse, error)
	// Resolve is Load for callers that already hold the period and need
	// the domain record.
	Resolve(ctx context.Context, employeeID string, p period.Period) (Record, error)
}
