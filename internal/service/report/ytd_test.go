package report

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const (
	juanID  = "0190a1b2-0000-7000-8000-000000000001"
	mariaID = "0190a1b2-0000-7000-8000-000000000002"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strp(s string) *string { return &s }

func juan() employee.Employee {
	rate := dec("30000")
	return employee.Employee{
		ID:               juanID,
		EmployeeCode:     "EMP-001",
		FullName:         "Juan Dela Cruz",
		RateBasis:        employee.RateBasisMonthly,
		MonthlyRate:      &rate,
		TIN:              strp("123-456-789-000"),
		SSSNumber:        strp("34-1234567-8"),
		PhilHealthNumber: strp("12-345678901-2"),
		PagIBIGNumber:    strp("1234-5678-9012"),
	}
}

// paid builds a paid payslip for the period ending on end.
func paid(id, employeeID string, end time.Time, gross, sss string) payslip.Payslip {
	return payslip.Payslip{
		ID:                  id,
		EmployeeID:          employeeID,
		PeriodStart:         end.AddDate(0, 0, -13),
		PeriodEnd:           end,
		GrossPay:            dec(gross),
		TaxableCompensation: dec(gross),
		TaxWithheld:         decimal.Zero,
		SSSEmployee:         dec(sss),
		WISPEmployee:        decimal.Zero,
		PhilHealthEmployee:  decimal.Zero,
		PagIBIGEmployee:     decimal.Zero,
		ThirteenthMonthPay:  decimal.Zero,
		NetPay:              dec(gross),
		Status:              payslip.StatusPaid,
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildYTD_SumsPaidPayslips(t *testing.T) {
	payslips := []payslip.Payslip{
		paid("p1", juanID, day(2025, 1, 12), "15000", "461.54"),
		paid("p2", juanID, day(2025, 1, 26), "15000", "461.54"),
	}

	got := BuildYTD(juan(), 2025, payslips, nil)

	assert.Equal(t, "30000.00", got.Totals.Gross.StringFixed(2))
	assert.Equal(t, "923.08", got.Totals.SSS.StringFixed(2))
	assert.Equal(t, 2, got.PayslipCount)
	assert.Empty(t, got.MissingIdentifiers)
}

func TestBuildYTD_ExcludesUnpaidOtherYearsAndOtherEmployees(t *testing.T) {
	draft := paid("p2", juanID, day(2025, 2, 9), "15000", "0")
	draft.Status = payslip.StatusDraft
	approved := paid("p3", juanID, day(2025, 2, 23), "15000", "0")
	approved.Status = payslip.StatusApproved

	payslips := []payslip.Payslip{
		paid("p1", juanID, day(2025, 1, 26), "15000", "0"),
		draft,
		approved,
		// Period Dec 30, 2024 - Jan 12, 2025 belongs to 2025 by its end date.
		paid("p4", juanID, day(2025, 1, 12), "1000", "0"),
		paid("p5", juanID, day(2024, 12, 29), "9999", "0"),
		paid("p6", mariaID, day(2025, 1, 26), "22000", "0"),
	}

	got := BuildYTD(juan(), 2025, payslips, nil)

	assert.Equal(t, "16000.00", got.Totals.Gross.StringFixed(2))
	assert.Equal(t, 2, got.PayslipCount)
}

func TestBuildYTD_AdjustmentsKeptSeparate(t *testing.T) {
	payslips := []payslip.Payslip{paid("p1", juanID, day(2025, 1, 26), "15000", "0")}
	adjustments := []payslip.Adjustment{
		{ID: "a1", PayslipID: "p1", Amount: dec("-500")},
		{ID: "a2", PayslipID: "p1", Amount: dec("200")},
		{ID: "a3", PayslipID: "p-other", Amount: dec("1000")},
	}

	got := BuildYTD(juan(), 2025, payslips, adjustments)

	assert.Equal(t, "15000.00", got.Totals.Gross.StringFixed(2))
	assert.Equal(t, "-300.00", got.Adjustments.StringFixed(2))
}

func TestBuildYTD_IsRerunnable(t *testing.T) {
	payslips := []payslip.Payslip{paid("p1", juanID, day(2025, 1, 26), "15000.10", "0")}

	first := BuildYTD(juan(), 2025, payslips, nil)
	second := BuildYTD(juan(), 2025, payslips, nil)

	assert.Equal(t, first, second)
}

func TestBuildYTD_NoPaidPayslips(t *testing.T) {
	got := BuildYTD(juan(), 2025, nil, nil)

	assert.Equal(t, 0, got.PayslipCount)
	assert.True(t, got.Totals.Gross.IsZero())
}

func TestBuildYTD_ReportsMissingIdentifiers(t *testing.T) {
	emp := juan()
	emp.TIN = nil
	emp.PagIBIGNumber = nil

	got := BuildYTD(emp, 2025, nil, nil)

	assert.Equal(t, []string{"tin", "pagibig_number"}, got.MissingIdentifiers)
}
