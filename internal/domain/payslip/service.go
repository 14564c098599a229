package payslip

import "context"

type PayslipService interface {
	Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	Approve(ctx context.Context, id string) (PayslipResponse, error)
	MarkPaid(ctx context.Context, id string) (PayslipResponse, error)
	AddAdjustment(ctx context.Context, req AddAdjustmentRequest) (AdjustmentResponse, error)
	Get(ctx context.Context, id string) (PayslipResponse, error)
	ListByPeriod(ctx context.Context, periodStart string) ([]PayslipResponse, error)
}
