package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// ========== TIME CLOCK ENTRIES ==========

// CreateEntry implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateEntry(ctx context.Context, entry attendance.TimeClockEntry) (attendance.TimeClockEntry, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO time_clock_entries (employee_id, clock_in, clock_out, location, is_manual, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, clock_in, clock_out, location, is_manual, status, created_at, updated_at
	`

	var created attendance.TimeClockEntry
	err := q.QueryRow(ctx, query,
		entry.EmployeeID, entry.ClockIn, entry.ClockOut, entry.Location, entry.IsManual, entry.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.ClockIn, &created.ClockOut, &created.Location,
		&created.IsManual, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.TimeClockEntry{}, attendance.ErrDuplicateEntry
		}
		return attendance.TimeClockEntry{}, fmt.Errorf("failed to create time clock entry: %w", err)
	}

	created.ClockIn = created.ClockIn.UTC()
	if created.ClockOut != nil {
		out := created.ClockOut.UTC()
		created.ClockOut = &out
	}
	return created, nil
}

// ListEntries implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEntries(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.TimeClockEntry, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, clock_in, clock_out, location, is_manual, status, created_at, updated_at
		FROM time_clock_entries
		WHERE employee_id = $1 AND clock_in >= $2 AND clock_in < $3
		ORDER BY clock_in
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time clock entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.TimeClockEntry
	for rows.Next() {
		var e attendance.TimeClockEntry
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.ClockIn, &e.ClockOut, &e.Location, &e.IsManual, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time clock entry: %w", err)
		}
		e.ClockIn = e.ClockIn.UTC()
		if e.ClockOut != nil {
			out := e.ClockOut.UTC()
			e.ClockOut = &out
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time clock entries: %w", err)
	}

	return entries, nil
}

// ========== CORRECTIONS ==========

const correctionColumns = `id, employee_id, work_date, clock_in, clock_out, mode, status, reason, reviewed_by, created_at`

func scanCorrection(row pgx.Row) (attendance.FailureToLogCorrection, error) {
	var c attendance.FailureToLogCorrection
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.WorkDate, &c.ClockIn, &c.ClockOut, &c.Mode, &c.Status, &c.Reason, &c.ReviewedBy, &c.CreatedAt,
	)
	if err != nil {
		return attendance.FailureToLogCorrection{}, err
	}
	c.ClockIn = c.ClockIn.UTC()
	c.ClockOut = c.ClockOut.UTC()
	return c, nil
}

// CreateCorrection implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateCorrection(ctx context.Context, c attendance.FailureToLogCorrection) (attendance.FailureToLogCorrection, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO failure_to_log_corrections (employee_id, work_date, clock_in, clock_out, mode, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + correctionColumns

	created, err := scanCorrection(q.QueryRow(ctx, query,
		c.EmployeeID, c.WorkDate, c.ClockIn, c.ClockOut, c.Mode, attendance.CorrectionStatusPending, c.Reason,
	))
	if err != nil {
		return attendance.FailureToLogCorrection{}, fmt.Errorf("failed to create correction: %w", err)
	}

	return created, nil
}

// GetCorrection implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetCorrection(ctx context.Context, id string) (attendance.FailureToLogCorrection, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + correctionColumns + ` FROM failure_to_log_corrections WHERE id = $1`

	c, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.FailureToLogCorrection{}, attendance.ErrCorrectionNotFound
		}
		return attendance.FailureToLogCorrection{}, fmt.Errorf("failed to get correction: %w", err)
	}

	return c, nil
}

// ReviewCorrection implements attendance.AttendanceRepository.
func (a *attendanceRepository) ReviewCorrection(ctx context.Context, id string, status attendance.CorrectionStatus, reviewedBy string) (attendance.FailureToLogCorrection, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE failure_to_log_corrections
		SET status = $2, reviewed_by = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + correctionColumns

	c, err := scanCorrection(q.QueryRow(ctx, query, id, status, reviewedBy))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := a.GetCorrection(ctx, id); getErr != nil {
				return attendance.FailureToLogCorrection{}, getErr
			}
			return attendance.FailureToLogCorrection{}, attendance.ErrCorrectionProcessed
		}
		return attendance.FailureToLogCorrection{}, fmt.Errorf("failed to review correction: %w", err)
	}

	return c, nil
}

// ListApprovedCorrections implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListApprovedCorrections(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.FailureToLogCorrection, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + correctionColumns + `
		FROM failure_to_log_corrections
		WHERE employee_id = $1 AND status = 'approved' AND work_date BETWEEN $2 AND $3
		ORDER BY work_date, created_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	var corrections []attendance.FailureToLogCorrection
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating corrections: %w", err)
	}

	return corrections, nil
}

// ========== SCHEDULES & HOLIDAYS ==========

// GetSchedule implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetSchedule(ctx context.Context, employeeID string) (attendance.Schedule, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT employee_id, to_char(shift_start, 'HH24:MI'), to_char(shift_end, 'HH24:MI'),
			regular_hours_per_day, break_minutes, rest_days
		FROM employee_schedules
		WHERE employee_id = $1
	`

	var s attendance.Schedule
	var restDays []int16
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.EmployeeID, &s.ShiftStart, &s.ShiftEnd, &s.RegularHoursPerDay, &s.BreakMinutes, &restDays,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Schedule{}, attendance.ErrScheduleNotFound
		}
		return attendance.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	for _, d := range restDays {
		s.RestDays = append(s.RestDays, time.Weekday(d))
	}
	return s, nil
}

// ListHolidays implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT date, name, kind
		FROM holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []attendance.Holiday
	for rows.Next() {
		var h attendance.Holiday
		if err := rows.Scan(&h.Date, &h.Name, &h.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}

	return holidays, nil
}
