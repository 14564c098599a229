package report

import (
	"sort"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/shopspring/decimal"
)

// BuildCompanySummary adds up employee rollups. Nothing is re-derived:
// every company total is the sum of the same employee field. Employees
// without a TIN are counted and listed in EmployeesMissingTIN.
func BuildCompanySummary(year int, rollups []report.YTDSummary) report.CompanySummary {
	employees := make([]report.YTDSummary, len(rollups))
	copy(employees, rollups)
	sort.SliceStable(employees, func(i, j int) bool {
		if employees[i].EmployeeName != employees[j].EmployeeName {
			return employees[i].EmployeeName < employees[j].EmployeeName
		}
		return employees[i].EmployeeID < employees[j].EmployeeID
	})

	summary := report.CompanySummary{
		Year:                year,
		EmployeeCount:       len(employees),
		Totals:              report.ZeroTotals(),
		Adjustments:         decimal.Zero,
		Employees:           employees,
		EmployeesMissingTIN: []string{},
	}
	for _, e := range employees {
		summary.Totals = summary.Totals.Add(e.Totals)
		summary.Adjustments = summary.Adjustments.Add(e.Adjustments)
		summary.PayslipCount += e.PayslipCount
		if e.TIN == nil || *e.TIN == "" {
			summary.EmployeesMissingTIN = append(summary.EmployeesMissingTIN, e.EmployeeID)
		}
	}
	return summary
}

// AlphalistRows renders each rollup as an export row, in the summary's order.
func AlphalistRows(summary report.CompanySummary) []report.AlphalistRow {
	rows := make([]report.AlphalistRow, 0, len(summary.Employees))
	for _, e := range summary.Employees {
		tin := ""
		if e.TIN != nil {
			tin = *e.TIN
		}
		rows = append(rows, report.AlphalistRow{
			TIN:                       tin,
			EmployeeCode:              e.EmployeeCode,
			EmployeeName:              e.EmployeeName,
			GrossCompensation:         e.Totals.Gross.StringFixed(2),
			NonTaxableThirteenthMonth: e.Totals.NonTaxableThirteenthMonth.StringFixed(2),
			Contributions:             e.Totals.Contributions().StringFixed(2),
			TaxableCompensation:       e.Totals.Taxable.StringFixed(2),
			TaxWithheld:               e.Totals.TaxWithheld.StringFixed(2),
			Adjustments:               e.Adjustments.StringFixed(2),
		})
	}
	return rows
}
