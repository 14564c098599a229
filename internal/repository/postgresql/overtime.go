package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `
	id, employee_id, request_date, end_date,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	total_hours, reason, status, decided_by, decided_at, rejection_reason, created_at, updated_at
`

func (r *overtimeRepository) Create(ctx context.Context, req overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			employee_id, request_date, end_date, start_time, end_time, total_hours, reason, status
		) VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8)
		RETURNING ` + overtimeColumns

	created, err := scanOvertime(q.QueryRow(ctx, query,
		req.EmployeeID, req.RequestDate, req.EndDate, req.StartTime, req.EndTime, req.TotalHours, req.Reason, overtime.StatusPending,
	))
	if err != nil {
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return created, nil
}

func (r *overtimeRepository) GetByID(ctx context.Context, id string) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + `
		FROM overtime_requests
		WHERE id = $1
	`

	found, err := scanOvertime(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.OvertimeRequest{}, overtime.ErrOvertimeNotFound
		}
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to get overtime request: %w", err)
	}

	return found, nil
}

func (r *overtimeRepository) TransitionFromPending(ctx context.Context, id string, status overtime.Status, decidedBy string, rejectionReason *string, ownerID *string) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, decided_by = $3, decided_at = NOW(), rejection_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND ($5::uuid IS NULL OR employee_id = $5)
		RETURNING ` + overtimeColumns

	updated, err := scanOvertime(q.QueryRow(ctx, query, id, status, decidedBy, rejectionReason, ownerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.OvertimeRequest{}, overtime.ErrOvertimeAlreadyProcessed
		}
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to update overtime request: %w", err)
	}

	return updated, nil
}

func (r *overtimeRepository) ListApproved(ctx context.Context, employeeID string, from, to time.Time) ([]overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + `
		FROM overtime_requests
		WHERE employee_id = $1 AND status = 'approved' AND request_date BETWEEN $2 AND $3
		ORDER BY request_date, start_time
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved overtime: %w", err)
	}
	defer rows.Close()

	var requests []overtime.OvertimeRequest
	for rows.Next() {
		req, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overtime requests: %w", err)
	}

	return requests, nil
}

func scanOvertime(row pgx.Row) (overtime.OvertimeRequest, error) {
	var req overtime.OvertimeRequest
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.RequestDate, &req.EndDate, &req.StartTime, &req.EndTime,
		&req.TotalHours, &req.Reason, &req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// ========== TIME CREDITS ==========

type timeCreditLedger struct {
	db *database.DB
}

func NewTimeCreditLedger(db *database.DB) overtime.CreditLedger {
	return &timeCreditLedger{db: db}
}

func (l *timeCreditLedger) AddCredit(ctx context.Context, credit overtime.TimeCredit) (overtime.TimeCredit, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO time_credits (employee_id, overtime_request_id, hours)
		VALUES ($1, $2, $3)
		RETURNING id, employee_id, overtime_request_id, hours, created_at
	`

	var c overtime.TimeCredit
	err := q.QueryRow(ctx, query, credit.EmployeeID, credit.OvertimeRequestID, credit.Hours).Scan(
		&c.ID, &c.EmployeeID, &c.OvertimeRequestID, &c.Hours, &c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return overtime.TimeCredit{}, overtime.ErrCreditAlreadyGranted
		}
		return overtime.TimeCredit{}, fmt.Errorf("failed to add time credit: %w", err)
	}

	return c, nil
}

func (l *timeCreditLedger) Balance(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, l.db)

	var balance decimal.Decimal
	err := q.QueryRow(ctx, `SELECT COALESCE(SUM(hours), 0) FROM time_credits WHERE employee_id = $1`, employeeID).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get time credit balance: %w", err)
	}

	return balance, nil
}
