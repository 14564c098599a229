package deduction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type DeductionServiceImpl struct {
	deductionRepo   deduction.DeductionRepository
	employeeRepo    employee.EmployeeRepository
	contributionSvc contribution.ContributionService
	periods         *period.Calculator
}

func NewDeductionService(
	deductionRepo deduction.DeductionRepository,
	employeeRepo employee.EmployeeRepository,
	contributionSvc contribution.ContributionService,
	periods *period.Calculator,
) deduction.DeductionService {
	return &DeductionServiceImpl{
		deductionRepo:   deductionRepo,
		employeeRepo:    employeeRepo,
		contributionSvc: contributionSvc,
		periods:         periods,
	}
}

// Load implements deduction.DeductionService.
func (s *DeductionServiceImpl) Load(ctx context.Context, req deduction.GetDeductionRequest) (deduction.DeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.DeductionResponse{}, err
	}
	p, err := s.parsePeriod(req.PeriodStart)
	if err != nil {
		return deduction.DeductionResponse{}, err
	}

	rec, err := s.Resolve(ctx, req.EmployeeID, p)
	if err != nil {
		return deduction.DeductionResponse{}, err
	}
	return mapToResponse(rec), nil
}

// Resolve implements deduction.DeductionService.
func (s *DeductionServiceImpl) Resolve(ctx context.Context, employeeID string, p period.Period) (deduction.Record, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return deduction.Record{}, err
	}

	rec, err := s.deductionRepo.Get(ctx, employeeID, p.Start)
	if errors.Is(err, deduction.ErrDeductionNotFound) {
		rec = deduction.Empty(employeeID, p.Start)
	} else if err != nil {
		return deduction.Record{}, fmt.Errorf("failed to get deduction record: %w", err)
	}

	if rec.WISP != nil {
		return rec, nil
	}

	calc, err := s.contributionSvc.CalculatorFor(ctx, p.End)
	if err != nil {
		return deduction.Record{}, err
	}
	wisp := calc.PerPeriod(calc.SSS(emp.MonthlySalaryCredit()).WISPEmployeeShare)
	rec.WISP = &wisp

	saved, err := s.deductionRepo.Save(ctx, rec, rec.Version)
	if errors.Is(err, deduction.ErrVersionConflict) {
		// Another reader filled it in first.
		return s.deductionRepo.Get(ctx, employeeID, p.Start)
	}
	if err != nil {
		return deduction.Record{}, fmt.Errorf("failed to save deduction record: %w", err)
	}
	return saved, nil
}

// Update implements deduction.DeductionService.
func (s *DeductionServiceImpl) Update(ctx context.Context, req deduction.UpdateDeductionRequest) (deduction.DeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.DeductionResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return deduction.DeductionResponse{}, err
	}

	p, err := s.parsePeriod(req.PeriodStart)
	if err != nil {
		return deduction.DeductionResponse{}, err
	}

	rec, err := s.Resolve(ctx, req.EmployeeID, p)
	if err != nil {
		return deduction.DeductionResponse{}, err
	}
	if rec.Version != *req.Version {
		return deduction.DeductionResponse{}, deduction.ErrVersionConflict
	}

	if req.SSSLoan != nil {
		rec.SSSLoan = *req.SSSLoan
	}
	if req.PagIBIGLoan != nil {
		rec.PagIBIGLoan = *req.PagIBIGLoan
	}
	if req.CompanyLoan != nil {
		rec.CompanyLoan = *req.CompanyLoan
	}
	if req.CashAdvance != nil {
		rec.CashAdvance = *req.CashAdvance
	}
	if req.OtherDeductions != nil {
		rec.OtherDeductions = *req.OtherDeductions
	}
	if req.ClearOverrides {
		rec.SSSOverride, rec.PhilHealthOverride, rec.PagIBIGOverride = nil, nil, nil
	}
	if req.SSSOverride != nil {
		rec.SSSOverride = req.SSSOverride
	}
	if req.PhilHealthOverride != nil {
		rec.PhilHealthOverride = req.PhilHealthOverride
	}
	if req.PagIBIGOverride != nil {
		rec.PagIBIGOverride = req.PagIBIGOverride
	}
	actor := claims.Actor()
	rec.UpdatedBy = &actor

	saved, err := s.deductionRepo.Save(ctx, rec, *req.Version)
	if err != nil {
		return deduction.DeductionResponse{}, err
	}

	slog.Info("deduction record updated",
		"employee_id", saved.EmployeeID,
		"period_start", saved.PeriodStart.Format(period.DateLayout),
		"version", saved.Version,
		"updated_by", actor,
	)
	return mapToResponse(saved), nil
}

func (s *DeductionServiceImpl) parsePeriod(start string) (period.Period, error) {
	p, err := s.periods.ParseStart(start)
	if err != nil {
		return period.Period{}, validator.ValidationErrors{{Field: "period_start", Message: err.Error()}}
	}
	return p, nil
}

func mapToResponse(r deduction.Record) deduction.DeductionResponse {
	return deduction.DeductionResponse{
		EmployeeID:         r.EmployeeID,
		PeriodStart:        r.PeriodStart.Format(period.DateLayout),
		SSSLoan:            r.SSSLoan,
		PagIBIGLoan:        r.PagIBIGLoan,
		CompanyLoan:        r.CompanyLoan,
		CashAdvance:        r.CashAdvance,
		OtherDeductions:    r.OtherDeductions,
		SSSOverride:        r.SSSOverride,
		PhilHealthOverride: r.PhilHealthOverride,
		PagIBIGOverride:    r.PagIBIGOverride,
		WISP:               r.WISP,
		Version:            r.Version,
		UpdatedBy:          r.UpdatedBy,
	}
}
