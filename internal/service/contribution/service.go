package contribution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"golang.org/x/sync/singleflight"
)

const tablesCacheKey = "statutory_tables"

type ContributionServiceImpl struct {
	tableRepo contribution.TableRepository
	cache     cache.Store
	group     singleflight.Group
	now       func() time.Time
}

func NewContributionService(tableRepo contribution.TableRepository, store cache.Store) contribution.ContributionService {
	return &ContributionServiceImpl{
		tableRepo: tableRepo,
		cache:     store,
		now:       time.Now,
	}
}

func (s *ContributionServiceImpl) CalculatorFor(ctx context.Context, date time.Time) (contribution.Calculator, error) {
	sets, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}

	tables, ok := contribution.Effective(sets, period.DateOf(date))
	if !ok {
		tables = contribution.DefaultTableSet()
	}
	return NewCalculator(tables), nil
}

func (s *ContributionServiceImpl) loadTables(ctx context.Context) ([]contribution.TableSet, error) {
	var sets []contribution.TableSet
	err := s.cache.Get(ctx, tablesCacheKey, &sets)
	if err == nil {
		return sets, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("statutory table cache read failed", "error", err)
	}

	v, err, _ := s.group.Do(tablesCacheKey, func() (interface{}, error) {
		stored, err := s.tableRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load statutory tables: %w", err)
		}
		for _, t := range stored {
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("table set effective %s: %w", t.EffectiveDate.Format(period.DateLayout), err)
			}
		}
		sort.Slice(stored, func(i, j int) bool {
			return stored[i].EffectiveDate.Before(stored[j].EffectiveDate)
		})
		if err := s.cache.Set(ctx, tablesCacheKey, stored); err != nil {
			slog.Warn("statutory table cache write failed", "error", err)
		}
		return stored, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]contribution.TableSet), nil
}

func (s *ContributionServiceImpl) Preview(ctx context.Context, req contribution.PreviewRequest) (contribution.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return contribution.PreviewResponse{}, err
	}

	salary, err := money.Parse(req.MonthlySalary)
	if err != nil {
		return contribution.PreviewResponse{}, err
	}

	date := period.DateOf(s.now())
	if req.Date != "" {
		if date, err = period.ParseDate(req.Date); err != nil {
			return contribution.PreviewResponse{}, err
		}
	}

	calc, err := s.CalculatorFor(ctx, date)
	if err != nil {
		return contribution.PreviewResponse{}, err
	}

	monthly := calc.Monthly(salary)
	return contribution.PreviewResponse{
		EffectiveDate: calc.Tables().EffectiveDate.Format(period.DateLayout),
		MonthlySalary: salary,
		SSS:           monthly.SSS,
		PhilHealth:    monthly.PhilHealth,
		PagIBIG:       monthly.PagIBIG,
		PerPeriod: contribution.PerPeriodShares{
			SSS:        calc.PerPeriod(monthly.SSS.EmployeeShare),
			WISP:       calc.PerPeriod(monthly.SSS.WISPEmployeeShare),
			PhilHealth: calc.PerPeriod(monthly.PhilHealth.EmployeeShare),
			PagIBIG:    calc.PerPeriod(monthly.PagIBIG.EmployeeShare),
		},
		Warnings: monthly.Warnings(),
	}, nil
}

func (s *ContributionServiceImpl) SaveTables(ctx context.Context, tables contribution.TableSet) error {
	if err := tables.Validate(); err != nil {
		return err
	}
	if err := s.tableRepo.Save(ctx, tables); err != nil {
		return fmt.Errorf("failed to save statutory tables: %w", err)
	}
	return s.InvalidateTables(ctx)
}

func (s *ContributionServiceImpl) InvalidateTables(ctx context.Context) error {
	return s.cache.Invalidate(ctx, tablesCacheKey)
}
