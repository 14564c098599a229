package overtime

import "context"

type OvertimeService interface {
	// Submit files a request for the employee in the caller's token.
	Submit(ctx context.Context, req SubmitOvertimeRequest) (OvertimeResponse, error)
	Get(ctx context.Context, id string) (OvertimeResponse, error)
	Approve(ctx context.Context, id string) (OvertimeResponse, error)
	Reject(ctx context.Context, req RejectOvertimeRequest) (OvertimeResponse, error)
	Cancel(ctx context.Context, id string) (OvertimeResponse, error)
	CreditBalance(ctx context.Context, employeeID string) (CreditBalanceResponse, error)
}
