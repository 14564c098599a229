package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rollup(id, name string, tin *string, gross, sss string, count int) report.YTDSummary {
	totals := report.ZeroTotals()
	totals.Gross = dec(gross)
	totals.Taxable = dec(gross)
	totals.SSS = dec(sss)
	return report.YTDSummary{
		EmployeeID:   id,
		EmployeeName: name,
		TIN:          tin,
		Year:         2025,
		Totals:       totals,
		Adjustments:  dec("0"),
		PayslipCount: count,
	}
}

func TestBuildCompanySummary_Additive(t *testing.T) {
	rollups := []report.YTDSummary{
		rollup(juanID, "Juan Dela Cruz", strp("123-456-789"), "20000", "500", 2),
		rollup(mariaID, "Maria Santos", strp("987-654-321"), "22000", "550", 2),
	}

	got := BuildCompanySummary(2025, rollups)

	assert.Equal(t, "42000.00", got.Totals.Gross.StringFixed(2))
	assert.Equal(t, "1050.00", got.Totals.SSS.StringFixed(2))
	assert.Equal(t, 2, got.EmployeeCount)
	assert.Equal(t, 4, got.PayslipCount)
	assert.Empty(t, got.EmployeesMissingTIN)
}

func TestBuildCompanySummary_MissingTINStillCounted(t *testing.T) {
	rollups := []report.YTDSummary{
		rollup(mariaID, "Maria Santos", nil, "22000", "550", 1),
		rollup(juanID, "Juan Dela Cruz", strp("123-456-789"), "20000", "500", 1),
	}

	got := BuildCompanySummary(2025, rollups)

	assert.Equal(t, "42000.00", got.Totals.Gross.StringFixed(2))
	assert.Equal(t, []string{mariaID}, got.EmployeesMissingTIN)
	// Sorted by name.
	assert.Equal(t, juanID, got.Employees[0].EmployeeID)
	// The caller's slice is left alone.
	assert.Equal(t, mariaID, rollups[0].EmployeeID)
}

func TestBuildCompanySummary_Empty(t *testing.T) {
	got := BuildCompanySummary(2025, nil)

	assert.Equal(t, 0, got.EmployeeCount)
	assert.True(t, got.Totals.Gross.IsZero())
	assert.NotNil(t, got.EmployeesMissingTIN)
}

func TestAlphalistRows_CSV(t *testing.T) {
	summary := BuildCompanySummary(2025, []report.YTDSummary{
		rollup(juanID, "Juan Dela Cruz", strp("123-456-789"), "20000", "500", 2),
		rollup(mariaID, "Maria Santos", nil, "22000", "550", 2),
	})

	rows := AlphalistRows(summary)
	require.Len(t, rows, 2)
	assert.Equal(t, "500.00", rows[0].Contributions)
	assert.Equal(t, "", rows[1].TIN)

	var buf bytes.Buffer
	require.NoError(t, gocsv.Marshal(rows, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "tin,employee_code,employee_name,gross_compensation,non_taxable_13th_month,sss_philhealth_pagibig,taxable_compensation,tax_withheld,adjustments", lines[0])
	assert.Equal(t, "123-456-789,,Juan Dela Cruz,20000.00,0.00,500.00,20000.00,0.00,0.00", lines[1])
}
