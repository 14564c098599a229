package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) deduction.DeductionRepository {
	return &deductionRepository{db: db}
}

const deductionColumns = `
	employee_id, period_start, sss_loan, pagibig_loan, company_loan, cash_advance, other_deductions,
	sss_override, philhealth_override, pagibig_override, wisp, version, updated_by, created_at, updated_at
`

func (r *deductionRepository) Get(ctx context.Context, employeeID string, periodStart time.Time) (deduction.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + deductionColumns + `
		FROM employee_deductions
		WHERE employee_id = $1 AND period_start = $2
	`

	rec, err := scanDeduction(q.QueryRow(ctx, query, employeeID, periodStart))
	if err != nil {
		if err == pgx.ErrNoRows {
			return deduction.Record{}, deduction.ErrDeductionNotFound
		}
		return deduction.Record{}, fmt.Errorf("failed to get deductions: %w", err)
	}

	return rec, nil
}

// Save inserts version 1 when expectedVersion is 0 and otherwise bumps the
// version of the row still carrying expectedVersion.
func (r *deductionRepository) Save(ctx context.Context, rec deduction.Record, expectedVersion int64) (deduction.Record, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	if expectedVersion == 0 {
		query = `
			INSERT INTO employee_deductions (
				employee_id, period_start, sss_loan, pagibig_loan, company_loan, cash_advance, other_deductions,
				sss_override, philhealth_override, pagibig_override, wisp, version, updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12)
			ON CONFLICT (employee_id, period_start) DO NOTHING
			RETURNING ` + deductionColumns
	} else {
		query = `
			UPDATE employee_deductions SET
				sss_loan = $3, pagibig_loan = $4, company_loan = $5, cash_advance = $6, other_deductions = $7,
				sss_override = $8, philhealth_override = $9, pagibig_override = $10, wisp = $11,
				updated_by = $12, version = version + 1, updated_at = NOW()
			WHERE employee_id = $1 AND period_start = $2 AND version = $13
			RETURNING ` + deductionColumns
	}

	args := []interface{}{
		rec.EmployeeID, rec.PeriodStart, rec.SSSLoan, rec.PagIBIGLoan, rec.CompanyLoan, rec.CashAdvance, rec.OtherDeductions,
		rec.SSSOverride, rec.PhilHealthOverride, rec.PagIBIGOverride, rec.WISP, rec.UpdatedBy,
	}
	if expectedVersion != 0 {
		args = append(args, expectedVersion)
	}

	saved, err := scanDeduction(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return deduction.Record{}, deduction.ErrVersionConflict
		}
		return deduction.Record{}, fmt.Errorf("failed to save deductions: %w", err)
	}

	return saved, nil
}

func scanDeduction(row pgx.Row) (deduction.Record, error) {
	var rec deduction.Record
	err := row.Scan(
		&rec.EmployeeID, &rec.PeriodStart, &rec.SSSLoan, &rec.PagIBIGLoan, &rec.CompanyLoan, &rec.CashAdvance,
		&rec.OtherDeductions, &rec.SSSOverride, &rec.PhilHealthOverride, &rec.PagIBIGOverride, &rec.WISP,
		&rec.Version, &rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
