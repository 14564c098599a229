package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayslipRepo struct {
	payslip.PayslipRepository
	ListPaidByYearFn        func(ctx context.Context, year int, employeeID *string) ([]payslip.Payslip, error)
	ListAdjustmentsByYearFn func(ctx context.Context, year int, employeeID *string) ([]payslip.Adjustment, error)
}

func (f *fakePayslipRepo) ListPaidByYear(ctx context.Context, year int, employeeID *string) ([]payslip.Payslip, error) {
	return f.ListPaidByYearFn(ctx, year, employeeID)
}

func (f *fakePayslipRepo) ListAdjustmentsByYear(ctx context.Context, year int, employeeID *string) ([]payslip.Adjustment, error) {
	return f.ListAdjustmentsByYearFn(ctx, year, employeeID)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	requested []string
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	f.requested = ids
	var out []employee.Employee
	for _, id := range ids {
		if e, ok := f.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func newReportFixture() (report.ReportService, *fakeEmployeeRepo) {
	maria := employee.Employee{ID: mariaID, EmployeeCode: "EMP-002", FullName: "Maria Santos", EmploymentStatus: employee.EmploymentStatusResigned}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{juanID: juan(), mariaID: maria}}

	payslips := []payslip.Payslip{
		paid("p1", juanID, day(2025, 1, 12), "10000", "250"),
		paid("p2", juanID, day(2025, 1, 26), "10000", "250"),
		paid("p3", mariaID, day(2025, 1, 26), "22000", "550"),
	}
	repo := &fakePayslipRepo{
		ListPaidByYearFn: func(ctx context.Context, year int, employeeID *string) ([]payslip.Payslip, error) {
			var out []payslip.Payslip
			for _, p := range payslips {
				if employeeID == nil || p.EmployeeID == *employeeID {
					out = append(out, p)
				}
			}
			return out, nil
		},
		ListAdjustmentsByYearFn: func(ctx context.Context, year int, employeeID *string) ([]payslip.Adjustment, error) {
			return []payslip.Adjustment{{ID: "a1", PayslipID: "p3", Amount: dec("150"), EmployeeID: mariaID}}, nil
		},
	}

	svc := NewReportService(repo, employees).(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC) }
	return svc, employees
}

func TestReportService_EmployeeYTD(t *testing.T) {
	svc, _ := newReportFixture()

	got, err := svc.EmployeeYTD(context.Background(), report.EmployeeYTDRequest{EmployeeID: juanID, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, "20000.00", got.Totals.Gross.StringFixed(2))
	assert.Equal(t, "500.00", got.Totals.SSS.StringFixed(2))
	assert.Equal(t, 2, got.PayslipCount)
	assert.True(t, got.Adjustments.IsZero())
}

func TestReportService_EmployeeYTD_Validation(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.EmployeeYTD(context.Background(), report.EmployeeYTDRequest{EmployeeID: "nope", Year: 1999})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestReportService_CompanySummary(t *testing.T) {
	svc, employees := newReportFixture()

	got, err := svc.CompanySummary(context.Background(), report.CompanySummaryRequest{Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, []string{juanID, mariaID}, employees.requested)
	assert.Equal(t, 2, got.EmployeeCount)
	assert.Equal(t, 3, got.PayslipCount)
	assert.Equal(t, "42000.00", got.Totals.Gross.StringFixed(2))
	assert.Equal(t, "1050.00", got.Totals.SSS.StringFixed(2))
	assert.Equal(t, "150.00", got.Adjustments.StringFixed(2))
	assert.Equal(t, []string{mariaID}, got.EmployeesMissingTIN)
	assert.Equal(t, "2026-01-05T09:00:00Z", got.GeneratedAt)
}

func TestReportService_WriteAlphalistCSV(t *testing.T) {
	svc, _ := newReportFixture()

	var buf bytes.Buffer
	err := svc.WriteAlphalistCSV(context.Background(), report.CompanySummaryRequest{Year: 2025}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "123-456-789-000,EMP-001,Juan Dela Cruz,20000.00,0.00,500.00,20000.00,0.00,0.00", lines[1])
	assert.Equal(t, ",EMP-002,Maria Santos,22000.00,0.00,550.00,22000.00,0.00,150.00", lines[2])
}
