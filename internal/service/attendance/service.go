package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/matcher"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	overtimeRepo overtime.OvertimeRepository
	periods      *period.Calculator
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	overtimeRepo overtime.OvertimeRepository,
	periods *period.Calculator,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		overtimeRepo:         overtimeRepo,
		periods:              periods,
	}
}

// RecordEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordEntry(ctx context.Context, req attendance.RecordEntryRequest) (attendance.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EntryResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.EntryResponse{}, err
	}

	entry := buildEntry(req.EmployeeID, req.ClockIn, req.ClockOut, req.Location, req.IsManual, attendance.EntryStatus(req.Status))
	created, err := a.AttendanceRepository.CreateEntry(ctx, entry)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	return mapEntryToResponse(created), nil
}

// ImportEntries implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ImportEntries(ctx context.Context, req attendance.ImportEntriesRequest) (attendance.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportResult{}, err
	}

	employees, err := a.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return attendance.ImportResult{}, fmt.Errorf("failed to list employees: %w", err)
	}
	known := make(map[string]bool, len(employees))
	candidates := make([]matcher.Candidate, 0, len(employees))
	for _, e := range employees {
		known[e.ID] = true
		candidates = append(candidates, matcher.Candidate{ID: e.ID, Name: e.FullName})
	}
	m := matcher.New(candidates, matcher.DefaultMaxDistance)

	result := attendance.ImportResult{
		Imported:   []attendance.EntryResponse{},
		Unresolved: []attendance.UnresolvedRow{},
	}

	for i, row := range req.Rows {
		employeeID, unresolved := resolveRow(m, known, row)
		if unresolved != nil {
			unresolved.Row = i
			result.Unresolved = append(result.Unresolved, *unresolved)
			continue
		}

		status := attendance.EntryStatusClockedIn
		if row.ClockOut != nil {
			status = attendance.EntryStatusClockedOut
		}
		entry := buildEntry(employeeID, row.ClockIn, row.ClockOut, row.Location, true, status)

		created, err := a.AttendanceRepository.CreateEntry(ctx, entry)
		if errors.Is(err, attendance.ErrDuplicateEntry) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to import row %d: %w", i, err)
		}
		result.Imported = append(result.Imported, mapEntryToResponse(created))
	}

	slog.Info("attendance import finished",
		"imported", len(result.Imported),
		"skipped", result.Skipped,
		"unresolved", len(result.Unresolved),
	)
	return result, nil
}

func resolveRow(m *matcher.Matcher, known map[string]bool, row attendance.ImportRow) (string, *attendance.UnresolvedRow) {
	if row.EmployeeID != nil && *row.EmployeeID != "" {
		if !known[*row.EmployeeID] {
			return "", &attendance.UnresolvedRow{Input: *row.EmployeeID, Reason: string(matcher.ReasonNotFound)}
		}
		return *row.EmployeeID, nil
	}

	match, unresolved := m.Resolve(*row.EmployeeName)
	if unresolved != nil {
		return "", &attendance.UnresolvedRow{
			Input:       unresolved.Input,
			Reason:      string(unresolved.Reason),
			Suggestions: unresolved.Suggestions,
		}
	}
	return match.ID, nil
}

// CreateCorrection implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateCorrection(ctx context.Context, req attendance.CreateCorrectionRequest) (attendance.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CorrectionResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.CorrectionResponse{}, err
	}

	workDate, _ := validator.IsValidDate(req.WorkDate)
	inTOD, _ := validator.IsValidTimeOfDay(req.ClockIn)
	outTOD, _ := validator.IsValidTimeOfDay(req.ClockOut)

	clockIn := localInstant(workDate, inTOD)
	clockOut := localInstant(workDate, outTOD)
	if outTOD <= inTOD {
		clockOut = localInstant(workDate.AddDate(0, 0, 1), outTOD)
	}

	created, err := a.AttendanceRepository.CreateCorrection(ctx, attendance.FailureToLogCorrection{
		EmployeeID: req.EmployeeID,
		WorkDate:   workDate,
		ClockIn:    clockIn.UTC(),
		ClockOut:   clockOut.UTC(),
		Mode:       attendance.CorrectionMode(req.Mode),
		Status:     attendance.CorrectionStatusPending,
		Reason:     req.Reason,
	})
	if err != nil {
		return attendance.CorrectionResponse{}, err
	}
	return mapCorrectionToResponse(created), nil
}

// ReviewCorrection implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ReviewCorrection(ctx context.Context, req attendance.ReviewCorrectionRequest) (attendance.CorrectionResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return attendance.CorrectionResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.CorrectionResponse{}, err
	}

	status := attendance.CorrectionStatusRejected
	if req.Approve {
		status = attendance.CorrectionStatusApproved
	}

	reviewed, err := a.AttendanceRepository.ReviewCorrection(ctx, req.ID, status, claims.Actor())
	if err != nil {
		return attendance.CorrectionResponse{}, err
	}
	return mapCorrectionToResponse(reviewed), nil
}

// SummarizePeriod gathers everything the aggregator needs and runs it.
func (a *AttendanceServiceImpl) SummarizePeriod(ctx context.Context, employeeID string, p period.Period) (attendance.PeriodAttendance, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.PeriodAttendance{}, err
	}

	from, to := p.LocalBounds()
	entries, err := a.AttendanceRepository.ListEntries(ctx, employeeID, from, to)
	if err != nil {
		return attendance.PeriodAttendance{}, fmt.Errorf("failed to list time clock entries: %w", err)
	}

	corrections, err := a.AttendanceRepository.ListApprovedCorrections(ctx, employeeID, p.Start, p.End)
	if err != nil {
		return attendance.PeriodAttendance{}, fmt.Errorf("failed to list corrections: %w", err)
	}

	schedule, err := a.AttendanceRepository.GetSchedule(ctx, employeeID)
	if errors.Is(err, attendance.ErrScheduleNotFound) {
		schedule = attendance.DefaultSchedule(employeeID, emp.RestDays)
	} else if err != nil {
		return attendance.PeriodAttendance{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	holidays, err := a.AttendanceRepository.ListHolidays(ctx, p.Start, p.End)
	if err != nil {
		return attendance.PeriodAttendance{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	approved, err := a.overtimeRepo.ListApproved(ctx, employeeID, p.Start, p.End)
	if err != nil {
		return attendance.PeriodAttendance{}, fmt.Errorf("failed to list approved overtime: %w", err)
	}
	allowances := make([]attendance.OvertimeAllowance, 0, len(approved))
	for _, ot := range approved {
		allowances = append(allowances, attendance.OvertimeAllowance{Date: ot.RequestDate, Hours: ot.TotalHours})
	}

	return Aggregate(attendance.AggregateInput{
		EmployeeID:  employeeID,
		Period:      p,
		Entries:     entries,
		Corrections: corrections,
		Overtime:    allowances,
		Schedule:    schedule,
		Holidays:    holidays,
	}), nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, req attendance.SummaryRequest) (attendance.PeriodAttendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.PeriodAttendance{}, err
	}
	p, err := a.periods.ParseStart(req.PeriodStart)
	if err != nil {
		return attendance.PeriodAttendance{}, validator.ValidationErrors{{Field: "period_start", Message: err.Error()}}
	}
	return a.SummarizePeriod(ctx, req.EmployeeID, p)
}

func buildEntry(employeeID, clockIn string, clockOut, location *string, manual bool, status attendance.EntryStatus) attendance.TimeClockEntry {
	in, _ := time.Parse(time.RFC3339, clockIn)
	entry := attendance.TimeClockEntry{
		EmployeeID: employeeID,
		ClockIn:    in.UTC(),
		Location:   location,
		IsManual:   manual,
		Status:     status,
	}
	if clockOut != nil {
		out, _ := time.Parse(time.RFC3339, *clockOut)
		out = out.UTC()
		entry.ClockOut = &out
	}
	return entry
}

func localInstant(date time.Time, offset time.Duration) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, period.Manila).Add(offset)
}

func mapEntryToResponse(e attendance.TimeClockEntry) attendance.EntryResponse {
	resp := attendance.EntryResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		ClockIn:    e.ClockIn,
		WorkDate:   period.DateOf(e.ClockIn).Format(period.DateLayout),
		Location:   e.Location,
		IsManual:   e.IsManual,
		Status:     string(e.Status),
	}
	if e.ClockOut != nil {
		out := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &out
	}
	return resp
}

func mapCorrectionToResponse(c attendance.FailureToLogCorrection) attendance.CorrectionResponse {
	return attendance.CorrectionResponse{
		ID:         c.ID,
		EmployeeID: c.EmployeeID,
		WorkDate:   c.WorkDate.Format(period.DateLayout),
		ClockIn:    c.ClockIn.In(period.Manila).Format("15:04"),
		ClockOut:   c.ClockOut.In(period.Manila).Format("15:04"),
		Mode:       string(c.Mode),
		Status:     string(c.Status),
		Reason:     c.Reason,
		ReviewedBy: c.ReviewedBy,
	}
}
