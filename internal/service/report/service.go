package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/gocarina/gocsv"
)

type ReportServiceImpl struct {
	payslipRepo  payslip.PayslipRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewReportService(payslipRepo payslip.PayslipRepository, employeeRepo employee.EmployeeRepository) report.ReportService {
	return &ReportServiceImpl{
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// EmployeeYTD implements report.ReportService.
func (s *ReportServiceImpl) EmployeeYTD(ctx context.Context, req report.EmployeeYTDRequest) (report.YTDSummary, error) {
	if err := req.Validate(); err != nil {
		return report.YTDSummary{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.YTDSummary{}, err
	}

	payslips, err := s.payslipRepo.ListPaidByYear(ctx, req.Year, &emp.ID)
	if err != nil {
		return report.YTDSummary{}, fmt.Errorf("failed to get paid payslips: %w", err)
	}
	adjustments, err := s.payslipRepo.ListAdjustmentsByYear(ctx, req.Year, &emp.ID)
	if err != nil {
		return report.YTDSummary{}, fmt.Errorf("failed to get adjustments: %w", err)
	}

	return BuildYTD(emp, req.Year, payslips, adjustments), nil
}

// CompanySummary implements report.ReportService.
func (s *ReportServiceImpl) CompanySummary(ctx context.Context, req report.CompanySummaryRequest) (report.CompanySummary, error) {
	if err := req.Validate(); err != nil {
		return report.CompanySummary{}, err
	}

	payslips, err := s.payslipRepo.ListPaidByYear(ctx, req.Year, nil)
	if err != nil {
		return report.CompanySummary{}, fmt.Errorf("failed to get paid payslips: %w", err)
	}
	adjustments, err := s.payslipRepo.ListAdjustmentsByYear(ctx, req.Year, nil)
	if err != nil {
		return report.CompanySummary{}, fmt.Errorf("failed to get adjustments: %w", err)
	}

	// Employees paid during the year, including those no longer active.
	var ids []string
	seen := make(map[string]bool)
	for _, p := range payslips {
		if !seen[p.EmployeeID] {
			seen[p.EmployeeID] = true
			ids = append(ids, p.EmployeeID)
		}
	}
	employees, err := s.employeeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return report.CompanySummary{}, fmt.Errorf("failed to get employees: %w", err)
	}

	rollups := make([]report.YTDSummary, 0, len(employees))
	for _, emp := range employees {
		rollups = append(rollups, BuildYTD(emp, req.Year, payslips, adjustments))
	}

	summary := BuildCompanySummary(req.Year, rollups)
	summary.GeneratedAt = s.now().Format(time.RFC3339)
	return summary, nil
}

// Alphalist implements report.ReportService.
func (s *ReportServiceImpl) Alphalist(ctx context.Context, req report.CompanySummaryRequest) ([]report.AlphalistRow, error) {
	summary, err := s.CompanySummary(ctx, req)
	if err != nil {
		return nil, err
	}
	return AlphalistRows(summary), nil
}

// WriteAlphalistCSV implements report.ReportService.
func (s *ReportServiceImpl) WriteAlphalistCSV(ctx context.Context, req report.CompanySummaryRequest, w io.Writer) error {
	rows, err := s.Alphalist(ctx, req)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to encode alphalist: %w", err)
	}
	return nil
}
