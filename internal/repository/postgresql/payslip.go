package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	p.id, p.employee_id, p.period_start, p.period_end, p.earnings_breakdown, p.deductions_breakdown,
	p.gross_pay, p.taxable_compensation, p.tax_withheld, p.sss_employee, p.wisp_employee,
	p.philhealth_employee, p.pagibig_employee, p.thirteenth_month_pay, p.non_taxable_thirteenth_month,
	p.total_deductions, p.net_pay, p.status, p.warnings, p.approved_by, p.approved_at, p.paid_at,
	p.created_at, p.updated_at, e.full_name
`

// ========== PAYSLIPS ==========

func (r *payslipRepository) LockEmployeePeriod(ctx context.Context, employeeID string, periodStart time.Time) error {
	q := GetQuerier(ctx, r.db)

	key := advisoryKey("payslip", employeeID, periodStart.Format("2006-01-02"))
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
		return fmt.Errorf("failed to lock payslip period: %w", err)
	}
	return nil
}

func (r *payslipRepository) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	earnings, deductions, err := marshalBreakdowns(p)
	if err != nil {
		return payslip.Payslip{}, err
	}

	query := `
		INSERT INTO payslips (
			employee_id, period_start, period_end, earnings_breakdown, deductions_breakdown,
			gross_pay, taxable_compensation, tax_withheld, sss_employee, wisp_employee,
			philhealth_employee, pagibig_employee, thirteenth_month_pay, non_taxable_thirteenth_month,
			total_deductions, net_pay, status, warnings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		p.EmployeeID, p.PeriodStart, p.PeriodEnd, earnings, deductions,
		p.GrossPay, p.TaxableCompensation, p.TaxWithheld, p.SSSEmployee, p.WISPEmployee,
		p.PhilHealthEmployee, p.PagIBIGEmployee, p.ThirteenthMonthPay, p.NonTaxableThirteenthMonth,
		p.TotalDeductions, p.NetPay, payslip.StatusDraft, nonNilWarnings(p.Warnings),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return payslip.Payslip{}, payslip.ErrPayslipAlreadyExists
		}
		return payslip.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payslipRepository) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart time.Time) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.period_start = $2
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, periodStart))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip for period: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) Overwrite(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	earnings, deductions, err := marshalBreakdowns(p)
	if err != nil {
		return payslip.Payslip{}, err
	}

	query := `
		UPDATE payslips SET
			earnings_breakdown = $2, deductions_breakdown = $3,
			gross_pay = $4, taxable_compensation = $5, tax_withheld = $6,
			sss_employee = $7, wisp_employee = $8, philhealth_employee = $9, pagibig_employee = $10,
			thirteenth_month_pay = $11, non_taxable_thirteenth_month = $12,
			total_deductions = $13, net_pay = $14, warnings = $15,
			status = 'draft', approved_by = NULL, approved_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status <> 'paid'
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		p.ID, earnings, deductions,
		p.GrossPay, p.TaxableCompensation, p.TaxWithheld,
		p.SSSEmployee, p.WISPEmployee, p.PhilHealthEmployee, p.PagIBIGEmployee,
		p.ThirteenthMonthPay, p.NonTaxableThirteenthMonth,
		p.TotalDeductions, p.NetPay, nonNilWarnings(p.Warnings),
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, r.missingOrImmutable(ctx, p.ID)
		}
		return payslip.Payslip{}, fmt.Errorf("failed to overwrite payslip: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payslipRepository) TransitionStatus(ctx context.Context, id string, from, to payslip.Status, actor string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	args := []interface{}{id, from, to}
	switch to {
	case payslip.StatusApproved:
		query = `
			UPDATE payslips SET status = $3, approved_by = $4, approved_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND status = $2
			RETURNING id
		`
		args = append(args, actor)
	case payslip.StatusPaid:
		query = `
			UPDATE payslips SET status = $3, paid_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND status = $2
			RETURNING id
		`
	default:
		return payslip.Payslip{}, payslip.ErrInvalidStatusTransition
	}

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return payslip.Payslip{}, getErr
			}
			return payslip.Payslip{}, payslip.ErrInvalidStatusTransition
		}
		return payslip.Payslip{}, fmt.Errorf("failed to update payslip status: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

func (r *payslipRepository) ListByPeriod(ctx context.Context, periodStart time.Time) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.period_start = $1
		ORDER BY e.full_name, p.id
	`

	rows, err := q.Query(ctx, query, periodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips for period: %w", err)
	}
	defer rows.Close()

	return collectPayslips(rows)
}

func (r *payslipRepository) ListPaidByYear(ctx context.Context, year int, employeeID *string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.status = 'paid'
			AND EXTRACT(YEAR FROM p.period_end) = $1
			AND ($2::uuid IS NULL OR p.employee_id = $2)
		ORDER BY p.employee_id, p.period_start
	`

	rows, err := q.Query(ctx, query, year, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid payslips: %w", err)
	}
	defer rows.Close()

	return collectPayslips(rows)
}

// ========== ADJUSTMENTS ==========

func (r *payslipRepository) CreateAdjustment(ctx context.Context, a payslip.Adjustment) (payslip.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO payslip_adjustments (id, payslip_id, amount, reason, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, payslip_id, amount, reason, created_by, created_at
		)
		SELECT i.id, i.payslip_id, i.amount, i.reason, i.created_by, i.created_at, p.employee_id
		FROM inserted i
		JOIN payslips p ON p.id = i.payslip_id
	`

	var created payslip.Adjustment
	err := q.QueryRow(ctx, query, a.ID, a.PayslipID, a.Amount, a.Reason, a.CreatedBy).Scan(
		&created.ID, &created.PayslipID, &created.Amount, &created.Reason, &created.CreatedBy,
		&created.CreatedAt, &created.EmployeeID,
	)
	if err != nil {
		return payslip.Adjustment{}, fmt.Errorf("failed to create payslip adjustment: %w", err)
	}

	return created, nil
}

func (r *payslipRepository) ListAdjustments(ctx context.Context, payslipID string) ([]payslip.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.payslip_id, a.amount, a.reason, a.created_by, a.created_at, p.employee_id
		FROM payslip_adjustments a
		JOIN payslips p ON p.id = a.payslip_id
		WHERE a.payslip_id = $1
		ORDER BY a.created_at, a.id
	`

	rows, err := q.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip adjustments: %w", err)
	}
	defer rows.Close()

	return collectAdjustments(rows)
}

func (r *payslipRepository) ListAdjustmentsByYear(ctx context.Context, year int, employeeID *string) ([]payslip.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.payslip_id, a.amount, a.reason, a.created_by, a.created_at, p.employee_id
		FROM payslip_adjustments a
		JOIN payslips p ON p.id = a.payslip_id
		WHERE p.status = 'paid'
			AND EXTRACT(YEAR FROM p.period_end) = $1
			AND ($2::uuid IS NULL OR p.employee_id = $2)
		ORDER BY p.employee_id, a.created_at, a.id
	`

	rows, err := q.Query(ctx, query, year, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments for year: %w", err)
	}
	defer rows.Close()

	return collectAdjustments(rows)
}

// ========== HELPERS ==========

func (r *payslipRepository) missingOrImmutable(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return payslip.ErrPayslipImmutable
}

func marshalBreakdowns(p payslip.Payslip) ([]byte, []byte, error) {
	earnings, err := json.Marshal(nonNilBreakdown(p.EarningsBreakdown))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal earnings breakdown: %w", err)
	}
	deductions, err := json.Marshal(nonNilBreakdown(p.DeductionsBreakdown))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal deductions breakdown: %w", err)
	}
	return earnings, deductions, nil
}

func nonNilBreakdown(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	if m == nil {
		return map[string]decimal.Decimal{}
	}
	return m
}

func nonNilWarnings(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	var earnings, deductions []byte
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &earnings, &deductions,
		&p.GrossPay, &p.TaxableCompensation, &p.TaxWithheld, &p.SSSEmployee, &p.WISPEmployee,
		&p.PhilHealthEmployee, &p.PagIBIGEmployee, &p.ThirteenthMonthPay, &p.NonTaxableThirteenthMonth,
		&p.TotalDeductions, &p.NetPay, &p.Status, &p.Warnings, &p.ApprovedBy, &p.ApprovedAt, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName,
	)
	if err != nil {
		return payslip.Payslip{}, err
	}

	if err := json.Unmarshal(earnings, &p.EarningsBreakdown); err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to unmarshal earnings breakdown: %w", err)
	}
	if err := json.Unmarshal(deductions, &p.DeductionsBreakdown); err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to unmarshal deductions breakdown: %w", err)
	}

	return p, nil
}

func collectPayslips(rows pgx.Rows) ([]payslip.Payslip, error) {
	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payslips: %w", err)
	}
	return payslips, nil
}

func collectAdjustments(rows pgx.Rows) ([]payslip.Adjustment, error) {
	var adjustments []payslip.Adjustment
	for rows.Next() {
		var a payslip.Adjustment
		if err := rows.Scan(&a.ID, &a.PayslipID, &a.Amount, &a.Reason, &a.CreatedBy, &a.CreatedAt, &a.EmployeeID); err != nil {
			return nil, fmt.Errorf("failed to scan payslip adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payslip adjustments: %w", err)
	}
	return adjustments, nil
}

// ========== ALLOWANCES ==========

type allowanceRepository struct {
	db *database.DB
}

func NewAllowanceRepository(db *database.DB) payslip.AllowanceRepository {
	return &allowanceRepository{db: db}
}

// ListByEmployee returns allowances overlapping [from, to].
func (r *allowanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]payslip.Allowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, amount, is_taxable, effective_date, end_date
		FROM employee_allowances
		WHERE employee_id = $1
			AND effective_date <= $3
			AND (end_date IS NULL OR end_date >= $2)
		ORDER BY name, id
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowances: %w", err)
	}
	defer rows.Close()

	var allowances []payslip.Allowance
	for rows.Next() {
		var a payslip.Allowance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Name, &a.Amount, &a.IsTaxable, &a.EffectiveDate, &a.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan allowance: %w", err)
		}
		allowances = append(allowances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allowances: %w", err)
	}

	return allowances, nil
}
