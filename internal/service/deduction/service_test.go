package deduction

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	contributionsvc "github.com/cmlabs-hris/payroll-engine/internal/service/contribution"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID = "0190a1b2-0000-7000-8000-000000000001"
	hrUserID   = "0190a1b2-0000-7000-8000-0000000000aa"
)

type recordKey struct {
	employeeID  string
	periodStart time.Time
}

// memoryRepo mimics the conditional write of the Postgres repository.
type memoryRepo struct {
	records map[recordKey]deduction.Record
	saves   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: map[recordKey]deduction.Record{}}
}

func (m *memoryRepo) Get(ctx context.Context, employeeID string, periodStart time.Time) (deduction.Record, error) {
	rec, ok := m.records[recordKey{employeeID, periodStart}]
	if !ok {
		return deduction.Record{}, deduction.ErrDeductionNotFound
	}
	return rec, nil
}

func (m *memoryRepo) Save(ctx context.Context, rec deduction.Record, expectedVersion int64) (deduction.Record, error) {
	key := recordKey{rec.EmployeeID, rec.PeriodStart}
	current, ok := m.records[key]
	if (!ok && expectedVersion != 0) || (ok && current.Version != expectedVersion) {
		return deduction.Record{}, deduction.ErrVersionConflict
	}
	m.saves++
	rec.Version = expectedVersion + 1
	m.records[key] = rec
	return rec, nil
}

type fakeEmployeeRepo struct {
	GetByIDFn func(ctx context.Context, id string) (employee.Employee, error)
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type fakeContributionService struct{}

func (fakeContributionService) CalculatorFor(ctx context.Context, date time.Time) (contribution.Calculator, error) {
	return contributionsvc.NewCalculator(contribution.DefaultTableSet()), nil
}

func (fakeContributionService) Preview(ctx context.Context, req contribution.PreviewRequest) (contribution.PreviewResponse, error) {
	return contribution.PreviewResponse{}, nil
}

func (fakeContributionService) SaveTables(ctx context.Context, tables contribution.TableSet) error {
	return nil
}

func (fakeContributionService) InvalidateTables(ctx context.Context) error {
	return nil
}

func monthlyEmployee(rate int64) *fakeEmployeeRepo {
	r := decimal.NewFromInt(rate)
	return &fakeEmployeeRepo{GetByIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
		if id != employeeID {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{ID: id, RateBasis: employee.RateBasisMonthly, MonthlyRate: &r}, nil
	}}
}

func hrCtx(t *testing.T) context.Context {
	t.Helper()
	token, _, err := jwt.NewAuth("test-secret").Encode(map[string]interface{}{"user_id": hrUserID, "role": "hr", "type": "access"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func version(v int64) *int64 { return &v }

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newService(repo *memoryRepo, rate int64) deduction.DeductionService {
	return NewDeductionService(repo, monthlyEmployee(rate), fakeContributionService{}, period.NewDefaultCalculator())
}

func TestDeductionService_Load_FillsWISPOnce(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 30000)

	got, err := svc.Load(context.Background(), deduction.GetDeductionRequest{EmployeeID: employeeID, PeriodStart: "2024-01-01"})
	require.NoError(t, err)

	require.NotNil(t, got.WISP)
	// 5% of the 10,000 excess over the regular credit, spread over 26 periods.
	assert.Equal(t, "230.77", got.WISP.StringFixed(2))
	assert.Equal(t, int64(1), got.Version)
	assert.True(t, got.SSSLoan.IsZero())

	again, err := svc.Load(context.Background(), deduction.GetDeductionRequest{EmployeeID: employeeID, PeriodStart: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.Version)
	assert.Equal(t, 1, repo.saves)
}

func TestDeductionService_Load_NoWISPBelowCeiling(t *testing.T) {
	svc := newService(newMemoryRepo(), 18000)

	got, err := svc.Load(context.Background(), deduction.GetDeductionRequest{EmployeeID: employeeID, PeriodStart: "2024-01-01"})
	require.NoError(t, err)
	require.NotNil(t, got.WISP)
	assert.True(t, got.WISP.IsZero())
}

func TestDeductionService_Load_RejectsMidPeriodDate(t *testing.T) {
	svc := newService(newMemoryRepo(), 30000)

	_, err := svc.Load(context.Background(), deduction.GetDeductionRequest{EmployeeID: employeeID, PeriodStart: "2024-01-03"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "period_start")
}

func TestDeductionService_Load_UnknownEmployee(t *testing.T) {
	svc := newService(newMemoryRepo(), 30000)

	_, err := svc.Load(context.Background(), deduction.GetDeductionRequest{EmployeeID: "0190a1b2-0000-7000-8000-00000000dead", PeriodStart: "2024-01-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeductionService_Update(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 30000)
	ctx := hrCtx(t)

	loaded, err := svc.Load(ctx, deduction.GetDeductionRequest{EmployeeID: employeeID, PeriodStart: "2024-01-01"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, deduction.UpdateDeductionRequest{
		EmployeeID:  employeeID,
		PeriodStart: "2024-01-01",
		Version:     version(loaded.Version),
		CashAdvance: amount("1500"),
		SSSOverride: amount("0"),
	})
	require.NoError(t, err)

	assert.Equal(t, loaded.Version+1, updated.Version)
	assert.Equal(t, "1500.00", updated.CashAdvance.StringFixed(2))
	require.NotNil(t, updated.SSSOverride)
	assert.True(t, updated.SSSOverride.IsZero())
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, hrUserID, *updated.UpdatedBy)

	cleared, err := svc.Update(ctx, deduction.UpdateDeductionRequest{
		EmployeeID:     employeeID,
		PeriodStart:    "2024-01-01",
		Version:        version(updated.Version),
		ClearOverrides: true,
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.SSSOverride)
	assert.Equal(t, "1500.00", cleared.CashAdvance.StringFixed(2))
}

func TestDeductionService_Update_StaleVersion(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(repo, 30000)
	ctx := hrCtx(t)

	loaded, err := svc.Load(ctx, deduction.GetDeductionRequest{EmployeeID: employeeID, PeriodStart: "2024-01-01"})
	require.NoError(t, err)

	first := deduction.UpdateDeductionRequest{EmployeeID: employeeID, PeriodStart: "2024-01-01", Version: version(loaded.Version), CompanyLoan: amount("1000")}
	second := deduction.UpdateDeductionRequest{EmployeeID: employeeID, PeriodStart: "2024-01-01", Version: version(loaded.Version), CompanyLoan: amount("2000")}

	_, err = svc.Update(ctx, first)
	require.NoError(t, err)

	_, err = svc.Update(ctx, second)
	assert.ErrorIs(t, err, deduction.ErrVersionConflict)

	stored, err := repo.Get(ctx, employeeID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "1000", stored.CompanyLoan.String())
}

func TestDeductionService_Update_Validation(t *testing.T) {
	svc := newService(newMemoryRepo(), 30000)

	_, err := svc.Update(hrCtx(t), deduction.UpdateDeductionRequest{
		EmployeeID:  employeeID,
		PeriodStart: "2024-01-01",
		CashAdvance: amount("-1"),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "version")
	assert.Equal(t, deduction.ErrNegativeAmount.Error(), m["cash_advance"])
}

func TestRecord_Manual(t *testing.T) {
	rec := deduction.Empty(employeeID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	rec.SSSLoan = decimal.RequireFromString("812.5")
	rec.CashAdvance = decimal.NewFromInt(500)

	items := rec.Manual()
	assert.Len(t, items, 2)
	assert.Equal(t, "812.50", items["sss_loan"].StringFixed(2))
	assert.Equal(t, "1312.50", rec.ManualTotal().StringFixed(2))
}
