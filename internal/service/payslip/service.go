package payslip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayslipServiceImpl struct {
	tx              database.Transactor
	payslipRepo     payslip.PayslipRepository
	allowanceRepo   payslip.AllowanceRepository
	employeeRepo    employee.EmployeeRepository
	attendanceSvc   attendance.AttendanceService
	deductionSvc    deduction.DeductionService
	contributionSvc contribution.ContributionService
	periods         *period.Calculator
}

func NewPayslipService(
	tx database.Transactor,
	payslipRepo payslip.PayslipRepository,
	allowanceRepo payslip.AllowanceRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceSvc attendance.AttendanceService,
	deductionSvc deduction.DeductionService,
	contributionSvc contribution.ContributionService,
	periods *period.Calculator,
) payslip.PayslipService {
	return &PayslipServiceImpl{
		tx:              tx,
		payslipRepo:     payslipRepo,
		allowanceRepo:   allowanceRepo,
		employeeRepo:    employeeRepo,
		attendanceSvc:   attendanceSvc,
		deductionSvc:    deductionSvc,
		contributionSvc: contributionSvc,
		periods:         periods,
	}
}

// ========== GENERATE ==========

// Generate fetches every input, assembles the payslip and persists it under
// a per-(employee, period) lock.
func (s *PayslipServiceImpl) Generate(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}
	p, err := s.periods.ParseStart(req.PeriodStart)
	if err != nil {
		return payslip.PayslipResponse{}, validator.ValidationErrors{{Field: "period_start", Message: err.Error()}}
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	att, err := s.attendanceSvc.SummarizePeriod(ctx, emp.ID, p)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}
	ded, err := s.deductionSvc.Resolve(ctx, emp.ID, p)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to load deductions: %w", err)
	}
	calc, err := s.contributionSvc.CalculatorFor(ctx, p.End)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	allowances, err := s.allowanceRepo.ListByEmployee(ctx, emp.ID, p.Start, p.End)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to list allowances: %w", err)
	}

	var thirteenth *payslip.ThirteenthMonthInput
	if req.IncludeThirteenthMonth {
		thirteenth, err = s.thirteenthMonthSoFar(ctx, emp.ID, p)
		if err != nil {
			return payslip.PayslipResponse{}, err
		}
	}

	computed, err := Assemble(payslip.AssembleInput{
		Employee:        emp,
		Period:          p,
		Attendance:      att,
		Deductions:      ded,
		Allowances:      allowances,
		ThirteenthMonth: thirteenth,
	}, calc)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	var result payslip.Payslip
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payslipRepo.LockEmployeePeriod(ctx, emp.ID, p.Start); err != nil {
			return err
		}

		existing, err := s.payslipRepo.GetByEmployeePeriod(ctx, emp.ID, p.Start)
		switch {
		case errors.Is(err, payslip.ErrPayslipNotFound):
			result, err = s.payslipRepo.Create(ctx, computed)
			return err
		case err != nil:
			return err
		case existing.Status == payslip.StatusPaid:
			return payslip.ErrPayslipImmutable
		case existing.SameFigures(computed):
			result = existing
			return nil
		}

		computed.ID = existing.ID
		result, err = s.payslipRepo.Overwrite(ctx, computed)
		return err
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slog.Info("payslip generated",
		"payslip_id", result.ID,
		"employee_id", emp.ID,
		"period", p.Key(),
		"gross_pay", result.GrossPay.StringFixed(2),
		"net_pay", result.NetPay.StringFixed(2),
		"warnings", len(result.Warnings),
	)
	return mapToResponse(result, nil), nil
}

func (s *PayslipServiceImpl) thirteenthMonthSoFar(ctx context.Context, employeeID string, p period.Period) (*payslip.ThirteenthMonthInput, error) {
	paid, err := s.payslipRepo.ListPaidByYear(ctx, p.Year(), &employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid payslips: %w", err)
	}
	in := &payslip.ThirteenthMonthInput{
		PriorBasicPay:   decimal.Zero,
		PriorPaid:       decimal.Zero,
		PriorNonTaxable: decimal.Zero,
	}
	for _, ps := range paid {
		if ps.PeriodStart.Equal(p.Start) {
			continue
		}
		in.PriorBasicPay = in.PriorBasicPay.Add(ps.EarningsBreakdown[payslip.EarningBasicPay])
		in.PriorPaid = in.PriorPaid.Add(ps.ThirteenthMonthPay)
		in.PriorNonTaxable = in.PriorNonTaxable.Add(ps.NonTaxableThirteenthMonth)
	}
	return in, nil
}

// ========== STATUS ==========

func (s *PayslipServiceImpl) Approve(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	return s.transition(ctx, id, payslip.StatusApproved)
}

func (s *PayslipServiceImpl) MarkPaid(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	return s.transition(ctx, id, payslip.StatusPaid)
}

func (s *PayslipServiceImpl) transition(ctx context.Context, id string, to payslip.Status) (payslip.PayslipResponse, error) {
	if !validator.IsValidUUID(id) {
		return payslip.PayslipResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	current, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if !current.Status.CanTransitionTo(to) {
		return payslip.PayslipResponse{}, fmt.Errorf("%w: %s to %s", payslip.ErrInvalidStatusTransition, current.Status, to)
	}

	updated, err := s.payslipRepo.TransitionStatus(ctx, id, current.Status, to, claims.Actor())
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slog.Info("payslip status changed", "payslip_id", id, "from", current.Status, "to", to, "actor", claims.Actor())
	return mapToResponse(updated, nil), nil
}

// ========== ADJUSTMENTS ==========

func (s *PayslipServiceImpl) AddAdjustment(ctx context.Context, req payslip.AddAdjustmentRequest) (payslip.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.AdjustmentResponse{}, err
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payslip.AdjustmentResponse{}, err
	}

	ps, err := s.payslipRepo.GetByID(ctx, req.PayslipID)
	if err != nil {
		return payslip.AdjustmentResponse{}, err
	}
	if ps.Status != payslip.StatusPaid {
		return payslip.AdjustmentResponse{}, payslip.ErrAdjustmentRequiresPaid
	}

	created, err := s.payslipRepo.CreateAdjustment(ctx, payslip.Adjustment{
		ID:        uuid.NewString(),
		PayslipID: ps.ID,
		Amount:    money.Round(req.Amount),
		Reason:    strings.TrimSpace(req.Reason),
		CreatedBy: claims.Actor(),
	})
	if err != nil {
		return payslip.AdjustmentResponse{}, err
	}
	return mapAdjustmentToResponse(created), nil
}

// ========== QUERIES ==========

func (s *PayslipServiceImpl) Get(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	if !validator.IsValidUUID(id) {
		return payslip.PayslipResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	ps, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	adjustments, err := s.payslipRepo.ListAdjustments(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to list adjustments: %w", err)
	}
	return mapToResponse(ps, adjustments), nil
}

func (s *PayslipServiceImpl) ListByPeriod(ctx context.Context, periodStart string) ([]payslip.PayslipResponse, error) {
	p, err := s.periods.ParseStart(periodStart)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: "period_start", Message: err.Error()}}
	}
	list, err := s.payslipRepo.ListByPeriod(ctx, p.Start)
	if err != nil {
		return nil, err
	}
	responses := make([]payslip.PayslipResponse, 0, len(list))
	for _, ps := range list {
		responses = append(responses, mapToResponse(ps, nil))
	}
	return responses, nil
}

func mapToResponse(p payslip.Payslip, adjustments []payslip.Adjustment) payslip.PayslipResponse {
	resp := payslip.PayslipResponse{
		ID:                        p.ID,
		EmployeeID:                p.EmployeeID,
		EmployeeName:              p.EmployeeName,
		PeriodStart:               p.PeriodStart.Format(period.DateLayout),
		PeriodEnd:                 p.PeriodEnd.Format(period.DateLayout),
		PeriodLabel:               period.Format(period.Period{Start: p.PeriodStart, End: p.PeriodEnd}),
		EarningsBreakdown:         p.EarningsBreakdown,
		DeductionsBreakdown:       p.DeductionsBreakdown,
		GrossPay:                  p.GrossPay,
		TaxableCompensation:       p.TaxableCompensation,
		TaxWithheld:               p.TaxWithheld,
		SSSEmployee:               p.SSSEmployee,
		WISPEmployee:              p.WISPEmployee,
		PhilHealthEmployee:        p.PhilHealthEmployee,
		PagIBIGEmployee:           p.PagIBIGEmployee,
		ThirteenthMonthPay:        p.ThirteenthMonthPay,
		NonTaxableThirteenthMonth: p.NonTaxableThirteenthMonth,
		TotalDeductions:           p.TotalDeductions,
		NetPay:                    p.NetPay,
		Status:                    string(p.Status),
		Warnings:                  p.Warnings,
		ApprovedBy:                p.ApprovedBy,
		ApprovedAt:                p.ApprovedAt,
		PaidAt:                    p.PaidAt,
		AdjustedNetPay:            p.NetPay,
	}
	for _, a := range adjustments {
		resp.Adjustments = append(resp.Adjustments, mapAdjustmentToResponse(a))
		resp.AdjustedNetPay = resp.AdjustedNetPay.Add(a.Amount)
	}
	return resp
}

func mapAdjustmentToResponse(a payslip.Adjustment) payslip.AdjustmentResponse {
	return payslip.AdjustmentResponse{
		ID:        a.ID,
		PayslipID: a.PayslipID,
		Amount:    a.Amount,
		Reason:    a.Reason,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
	}
}
