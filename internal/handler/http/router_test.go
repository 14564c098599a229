package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret     = "test-secret"
	testEmployeeID = "0190a1b2-0000-7000-8000-000000000001"
	testPayslipID  = "0190a1b2-0000-7000-8000-0000000000a1"
)

// ========== FAKES ==========

type fakeAttendanceService struct {
	attendance.AttendanceService
}

type fakeOvertimeService struct {
	overtime.OvertimeService
	CancelFn func(ctx context.Context, id string) (overtime.OvertimeResponse, error)
}

func (f *fakeOvertimeService) Cancel(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	return f.CancelFn(ctx, id)
}

type fakeDeductionService struct {
	deduction.DeductionService
	UpdateFn func(ctx context.Context, req deduction.UpdateDeductionRequest) (deduction.DeductionResponse, error)
}

func (f *fakeDeductionService) Update(ctx context.Context, req deduction.UpdateDeductionRequest) (deduction.DeductionResponse, error) {
	return f.UpdateFn(ctx, req)
}

type fakePayslipService struct {
	payslip.PayslipService
	GenerateFn func(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error)
}

func (f *fakePayslipService) Generate(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
	return f.GenerateFn(ctx, req)
}

type fakeContributionService struct {
	contribution.ContributionService
}

type fakeReportService struct {
	report.ReportService
	WriteFn func(ctx context.Context, req report.CompanySummaryRequest, w io.Writer) error
}

func (f *fakeReportService) WriteAlphalistCSV(ctx context.Context, req report.CompanySummaryRequest, w io.Writer) error {
	return f.WriteFn(ctx, req, w)
}

type services struct {
	overtime  *fakeOvertimeService
	deduction *fakeDeductionService
	payslip   *fakePayslipService
	report    *fakeReportService
}

var generous = config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000}

func newTestRouter(t *testing.T, limit config.RateLimitConfig) (*chi.Mux, *services) {
	t.Helper()

	cfg := &config.Config{
		App:       config.AppConfig{Env: "test", LogLevel: "error"},
		RateLimit: limit,
	}
	svc := &services{
		overtime:  &fakeOvertimeService{},
		deduction: &fakeDeductionService{},
		payslip:   &fakePayslipService{},
		report:    &fakeReportService{},
	}

	r := NewRouter(cfg, jwt.NewAuth(testSecret),
		NewPeriodHandler(period.NewDefaultCalculator()),
		NewAttendanceHandler(&fakeAttendanceService{}),
		NewOvertimeHandler(svc.overtime),
		NewDeductionHandler(svc.deduction),
		NewPayslipHandler(svc.payslip),
		NewContributionHandler(&fakeContributionService{}),
		NewReportHandler(svc.report),
	)
	return r, svc
}

func bearer(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	_, token, err := jwt.NewAuth(testSecret).Encode(claims)
	require.NoError(t, err)
	return "Bearer " + token
}

func hrToken(t *testing.T) string {
	return bearer(t, map[string]interface{}{"user_id": "hr-1", "role": "hr", "type": "access"})
}

func employeeToken(t *testing.T) string {
	return bearer(t, map[string]interface{}{"employee_id": testEmployeeID, "role": "employee", "type": "access"})
}

func do(r http.Handler, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// ========== TESTS ==========

func TestRouter_RequiresToken(t *testing.T) {
	r, _ := newTestRouter(t, generous)

	rec := do(r, http.MethodGet, "/api/v1/periods/containing?date=2025-01-20", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	refresh := bearer(t, map[string]interface{}{"user_id": "hr-1", "role": "hr", "type": "refresh"})
	rec = do(r, http.MethodGet, "/api/v1/periods/containing?date=2025-01-20", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPeriodHandler_Containing(t *testing.T) {
	r, _ := newTestRouter(t, generous)

	rec := do(r, http.MethodGet, "/api/v1/periods/containing?date=2025-01-20", employeeToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var p period.Response
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &p))
	assert.Equal(t, "2025-01-13", p.Start)
	assert.Equal(t, "2025-01-26", p.End)

	rec = do(r, http.MethodGet, "/api/v1/periods/2025-01-14/next", employeeToken(t), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(r, http.MethodGet, "/api/v1/periods/2025-01-13/next", employeeToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &p))
	assert.Equal(t, "2025-01-27", p.Start)

	rec = do(r, http.MethodGet, "/api/v1/periods/year/2025", employeeToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var periods []period.Response
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &periods))
	assert.Equal(t, "2024-12-30", periods[0].Start)
}

func TestPayslipRoutes_RequireHR(t *testing.T) {
	r, _ := newTestRouter(t, generous)

	rec := do(r, http.MethodPost, "/api/v1/payslips/generate", employeeToken(t), payslip.GeneratePayslipRequest{})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, rec).Error.Code)
}

func TestPayslipHandler_GenerateErrors(t *testing.T) {
	r, svc := newTestRouter(t, generous)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"paid payslip", payslip.ErrPayslipImmutable, http.StatusConflict},
		{"validation", validator.ValidationErrors{{Field: "period_start", Message: "is required"}}, http.StatusUnprocessableEntity},
		{"not a period start", period.ErrNotPeriodStart, http.StatusUnprocessableEntity},
		{"unexpected", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc.payslip.GenerateFn = func(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
				return payslip.PayslipResponse{}, tc.err
			}
			rec := do(r, http.MethodPost, "/api/v1/payslips/generate", hrToken(t), payslip.GeneratePayslipRequest{
				EmployeeID:  testEmployeeID,
				PeriodStart: "2025-01-13",
			})
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestPayslipHandler_GenerateSuccess(t *testing.T) {
	r, svc := newTestRouter(t, generous)

	svc.payslip.GenerateFn = func(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
		assert.Equal(t, testEmployeeID, req.EmployeeID)
		assert.True(t, req.IncludeThirteenthMonth)
		return payslip.PayslipResponse{ID: testPayslipID, Status: "draft"}, nil
	}

	rec := do(r, http.MethodPost, "/api/v1/payslips/generate", hrToken(t), map[string]interface{}{
		"employee_id":              testEmployeeID,
		"period_start":             "2025-01-13",
		"include_thirteenth_month": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), testPayslipID)
}

func TestDeductionHandler_Update(t *testing.T) {
	r, svc := newTestRouter(t, generous)

	svc.deduction.UpdateFn = func(ctx context.Context, req deduction.UpdateDeductionRequest) (deduction.DeductionResponse, error) {
		assert.Equal(t, testEmployeeID, req.EmployeeID)
		assert.Equal(t, "2025-01-13", req.PeriodStart)
		require.NotNil(t, req.Version)
		if *req.Version != 3 {
			return deduction.DeductionResponse{}, deduction.ErrVersionConflict
		}
		return deduction.DeductionResponse{EmployeeID: req.EmployeeID, Version: 4}, nil
	}

	path := "/api/v1/deductions/" + testEmployeeID + "/2025-01-13"
	rec := do(r, http.MethodPut, path, hrToken(t), map[string]interface{}{"version": 2, "cash_advance": "500"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, http.MethodPut, path, hrToken(t), map[string]interface{}{"version": 3, "cash_advance": "500"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodPut, path, employeeToken(t), map[string]interface{}{"version": 3})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOvertimeHandler_Cancel(t *testing.T) {
	r, svc := newTestRouter(t, generous)

	svc.overtime.CancelFn = func(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
		claims, err := jwt.ClaimsFromContext(ctx)
		require.NoError(t, err)
		if claims.EmployeeID != testEmployeeID {
			return overtime.OvertimeResponse{}, overtime.ErrNotRequestOwner
		}
		return overtime.OvertimeResponse{ID: id, Status: "cancelled"}, nil
	}

	rec := do(r, http.MethodPost, "/api/v1/overtime/ot-1/cancel", employeeToken(t), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	other := bearer(t, map[string]interface{}{"employee_id": "someone-else", "role": "employee", "type": "access"})
	rec = do(r, http.MethodPost, "/api/v1/overtime/ot-1/cancel", other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReportHandler_AlphalistCSV(t *testing.T) {
	r, svc := newTestRouter(t, generous)

	svc.report.WriteFn = func(ctx context.Context, req report.CompanySummaryRequest, w io.Writer) error {
		if req.Year == 0 {
			return validator.ValidationErrors{{Field: "year", Message: "year is required"}}
		}
		_, err := io.WriteString(w, "tin,employee_code\n123-456-789,EMP-001\n")
		return err
	}

	rec := do(r, http.MethodGet, "/api/v1/reports/alphalist.csv?year=2025", hrToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "alphalist-2025.csv")
	assert.Equal(t, "tin,employee_code\n123-456-789,EMP-001\n", rec.Body.String())

	rec = do(r, http.MethodGet, "/api/v1/reports/alphalist.csv?year=abc", hrToken(t), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "year is required", decode(t, rec).Error.Details["year"])
}

func TestRouter_RateLimit(t *testing.T) {
	r, _ := newTestRouter(t, config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	rec := do(r, http.MethodGet, "/api/v1/periods/containing?date=2025-01-20", employeeToken(t), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/api/v1/periods/containing?date=2025-01-20", employeeToken(t), nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
