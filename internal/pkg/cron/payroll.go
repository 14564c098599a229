package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"golang.org/x/sync/errgroup"
)

const draftConcurrency = 4

// PayrollJobs drafts payslips for the period that most recently closed.
type PayrollJobs struct {
	employeeRepo employee.EmployeeRepository
	payslipRepo  payslip.PayslipRepository
	payslipSvc   payslip.PayslipService
	periods      *period.Calculator
	now          func() time.Time
}

func NewPayrollJobs(
	employeeRepo employee.EmployeeRepository,
	payslipRepo payslip.PayslipRepository,
	payslipSvc payslip.PayslipService,
	periods *period.Calculator,
) *PayrollJobs {
	return &PayrollJobs{
		employeeRepo: employeeRepo,
		payslipRepo:  payslipRepo,
		payslipSvc:   payslipSvc,
		periods:      periods,
		now:          time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("draft_closed_period_payslips", interval, j.DraftClosedPeriod)
}

// DraftClosedPeriod generates a draft for every active employee that has no
// payslip yet for the previous period. Existing payslips are left alone.
// A failure for one employee is logged and does not stop the others.
func (j *PayrollJobs) DraftClosedPeriod(ctx context.Context) error {
	closed := j.periods.Previous(j.periods.Containing(j.now()))
	periodStart := closed.Start.Format(period.DateLayout)

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var drafted, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(draftConcurrency)

	for _, emp := range employees {
		g.Go(func() error {
			_, err := j.payslipRepo.GetByEmployeePeriod(gCtx, emp.ID, closed.Start)
			if err == nil {
				return nil
			}
			if !errors.Is(err, payslip.ErrPayslipNotFound) {
				return fmt.Errorf("failed to look up payslip for %s: %w", emp.ID, err)
			}

			_, err = j.payslipSvc.Generate(gCtx, payslip.GeneratePayslipRequest{
				EmployeeID:  emp.ID,
				PeriodStart: periodStart,
			})
			if err != nil {
				failed.Add(1)
				slog.Warn("cron: draft payslip failed",
					"employee_id", emp.ID,
					"period", period.Format(closed),
					"error", err,
				)
				return nil
			}
			drafted.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if drafted.Load() > 0 || failed.Load() > 0 {
		slog.Info("cron: closed period drafted",
			"period", period.Format(closed),
			"drafted", drafted.Load(),
			"failed", failed.Load(),
		)
	}
	return nil
}
