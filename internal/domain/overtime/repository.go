package overtime

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OvertimeRepository interface {
	Create(ctx context.Context, req OvertimeRequest) (OvertimeRequest, error)
	GetByID(ctx context.Context, id string) (OvertimeRequest, error)

	// TransitionFromPending atomically moves a pending request to status.
	// When ownerID is set the request must also belong to that employee.
	// It returns ErrOvertimeAlreadyProcessed when no pending row matched.
	TransitionFromPending(ctx context.Context, id string, status Status, decidedBy string, rejectionReason *string, ownerID *string) (OvertimeRequest, error)

	// ListApproved returns approved requests whose RequestDate is in [from, to].
	ListApproved(ctx context.Context, employeeID string, from, to time.Time) ([]OvertimeRequest, error)
}

type CreditLedger interface {
	AddCredit(ctx context.Context, credit TimeCredit) (TimeCredit, error)
	Balance(ctx context.Context, employeeID string) (decimal.Decimal, error)
}
