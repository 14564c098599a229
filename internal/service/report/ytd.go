package report

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/shopspring/decimal"
)

// BuildYTD sums emp's paid payslips whose period ends in year. Payslips of
// other employees, years or statuses are skipped, as are adjustments that do
// not belong to a counted payslip.
func BuildYTD(emp employee.Employee, year int, payslips []payslip.Payslip, adjustments []payslip.Adjustment) report.YTDSummary {
	summary := report.YTDSummary{
		EmployeeID:         emp.ID,
		EmployeeCode:       emp.EmployeeCode,
		EmployeeName:       emp.FullName,
		TIN:                emp.TIN,
		MissingIdentifiers: emp.MissingIdentifiers(),
		Year:               year,
		Totals:             report.ZeroTotals(),
		Adjustments:        decimal.Zero,
	}

	counted := make(map[string]bool)
	for _, p := range payslips {
		if p.EmployeeID != emp.ID || p.Status != payslip.StatusPaid || p.PeriodEnd.Year() != year {
			continue
		}
		counted[p.ID] = true
		summary.PayslipCount++
		summary.Totals = summary.Totals.Add(report.Totals{
			Gross:                     p.GrossPay,
			Taxable:                   p.TaxableCompensation,
			TaxWithheld:               p.TaxWithheld,
			SSS:                       p.SSSEmployee,
			WISP:                      p.WISPEmployee,
			PhilHealth:                p.PhilHealthEmployee,
			PagIBIG:                   p.PagIBIGEmployee,
			ThirteenthMonth:           p.ThirteenthMonthPay,
			NonTaxableThirteenthMonth: p.NonTaxableThirteenthMonth,
			NetPay:                    p.NetPay,
		})
	}

	for _, a := range adjustments {
		if counted[a.PayslipID] {
			summary.Adjustments = summary.Adjustments.Add(a.Amount)
		}
	}
	return summary
}
