package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	active []employee.Employee
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

type fakePayslipRepo struct {
	payslip.PayslipRepository
	existing map[string]bool
	lookup   error
}

func (f *fakePayslipRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart time.Time) (payslip.Payslip, error) {
	if f.lookup != nil {
		return payslip.Payslip{}, f.lookup
	}
	if f.existing[employeeID] {
		return payslip.Payslip{EmployeeID: employeeID}, nil
	}
	return payslip.Payslip{}, payslip.ErrPayslipNotFound
}

type fakePayslipService struct {
	payslip.PayslipService
	mu        sync.Mutex
	generated []payslip.GeneratePayslipRequest
	failFor   string
}

func (f *fakePayslipService) Generate(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
	if req.EmployeeID == f.failFor {
		return payslip.PayslipResponse{}, employee.ErrMissingRate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated = append(f.generated, req)
	return payslip.PayslipResponse{EmployeeID: req.EmployeeID, Status: "draft"}, nil
}

func newJobs(emps []string, existing map[string]bool) (*PayrollJobs, *fakePayslipRepo, *fakePayslipService) {
	active := make([]employee.Employee, 0, len(emps))
	for _, id := range emps {
		active = append(active, employee.Employee{ID: id})
	}
	repo := &fakePayslipRepo{existing: existing}
	svc := &fakePayslipService{}

	jobs := NewPayrollJobs(&fakeEmployeeRepo{active: active}, repo, svc, period.NewDefaultCalculator())
	jobs.now = func() time.Time { return time.Date(2025, 1, 29, 9, 0, 0, 0, time.UTC) }
	return jobs, repo, svc
}

func TestDraftClosedPeriod(t *testing.T) {
	jobs, _, svc := newJobs([]string{"e1", "e2", "e3"}, map[string]bool{"e2": true})

	require.NoError(t, jobs.DraftClosedPeriod(context.Background()))

	ids := make([]string, 0, len(svc.generated))
	for _, req := range svc.generated {
		assert.Equal(t, "2025-01-13", req.PeriodStart)
		assert.False(t, req.IncludeThirteenthMonth)
		ids = append(ids, req.EmployeeID)
	}
	assert.ElementsMatch(t, []string{"e1", "e3"}, ids)
}

func TestDraftClosedPeriod_EmployeeFailureDoesNotStopOthers(t *testing.T) {
	jobs, _, svc := newJobs([]string{"e1", "e2", "e3"}, nil)
	svc.failFor = "e2"

	require.NoError(t, jobs.DraftClosedPeriod(context.Background()))
	assert.Len(t, svc.generated, 2)
}

func TestDraftClosedPeriod_LookupError(t *testing.T) {
	jobs, repo, svc := newJobs([]string{"e1"}, nil)
	repo.lookup = errors.New("connection reset")

	err := jobs.DraftClosedPeriod(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, svc.generated)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var calls []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		calls = append(calls, "second")
		return nil
	})

	err := s.RunOnce(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
