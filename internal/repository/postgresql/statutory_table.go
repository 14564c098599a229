package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type statutoryTableRepository struct {
	db *database.DB
}

func NewStatutoryTableRepository(db *database.DB) contribution.TableRepository {
	return &statutoryTableRepository{db: db}
}

func (r *statutoryTableRepository) List(ctx context.Context) ([]contribution.TableSet, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT tables FROM statutory_tables ORDER BY effective_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list statutory tables: %w", err)
	}
	defer rows.Close()

	var sets []contribution.TableSet
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan statutory tables: %w", err)
		}
		var set contribution.TableSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return nil, fmt.Errorf("failed to unmarshal statutory tables: %w", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statutory tables: %w", err)
	}

	return sets, nil
}

// Save replaces the table set effective on the same date.
func (r *statutoryTableRepository) Save(ctx context.Context, tables contribution.TableSet) error {
	q := GetQuerier(ctx, r.db)

	raw, err := json.Marshal(tables)
	if err != nil {
		return fmt.Errorf("failed to marshal statutory tables: %w", err)
	}

	query := `
		INSERT INTO statutory_tables (effective_date, tables)
		VALUES ($1, $2)
		ON CONFLICT (effective_date) DO UPDATE SET tables = EXCLUDED.tables, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, tables.EffectiveDate, raw); err != nil {
		return fmt.Errorf("failed to save statutory tables: %w", err)
	}

	return nil
}
