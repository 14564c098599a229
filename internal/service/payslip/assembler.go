package payslip

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// Assemble computes a draft payslip from its inputs alone. Amounts are
// accumulated unrounded per breakdown key and rounded once.
func Assemble(in payslip.AssembleInput, calc contribution.Calculator) (payslip.Payslip, error) {
	emp := in.Employee
	if err := emp.Validate(); err != nil {
		return payslip.Payslip{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}
	hourly := emp.HourlyRate()
	var warnings []string

	// Earnings
	raw := map[string]decimal.Decimal{}
	if emp.RateBasis == employee.RateBasisMonthly {
		raw[payslip.EarningBasicPay] = calc.PerPeriod(*emp.MonthlyRate)
	} else {
		raw[payslip.EarningBasicPay] = in.Attendance.Totals.Regular.Mul(hourly)
	}
	for _, day := range in.Attendance.Days {
		rate := hourly.Mul(day.DayType.Multiplier())
		if day.DayType != attendance.DayTypeOrdinary {
			key := payslip.PremiumKey(day.DayType)
			raw[key] = raw[key].Add(day.RegularHours.Mul(rate))
		}
		raw[payslip.EarningOvertimePay] = raw[payslip.EarningOvertimePay].Add(day.OvertimeHours.Mul(rate).Mul(day.DayType.OvertimeFactor()))
		raw[payslip.EarningNightDifferential] = raw[payslip.EarningNightDifferential].Add(day.NightDiffHours.Mul(rate).Mul(attendance.NightDifferentialRate))
	}

	nonTaxableAllowances := decimal.Zero
	for _, a := range in.Allowances {
		if !a.ActiveOn(in.Period.Start, in.Period.End) {
			continue
		}
		key := payslip.AllowanceKey(a.Name)
		raw[key] = raw[key].Add(a.Amount)
		if !a.IsTaxable {
			nonTaxableAllowances = nonTaxableAllowances.Add(a.Amount)
		}
	}

	basic := money.Round(raw[payslip.EarningBasicPay])
	thirteenth, nonTaxableThirteenth := decimal.Zero, decimal.Zero
	if t := in.ThirteenthMonth; t != nil {
		accrued := money.Round(t.PriorBasicPay.Add(basic).Div(twelve))
		thirteenth = money.MaxZero(accrued.Sub(t.PriorPaid))
		remaining := money.MaxZero(calc.Tables().ThirteenthMonthExclusion.Sub(t.PriorNonTaxable))
		nonTaxableThirteenth = decimal.Min(thirteenth, remaining)
		raw[payslip.EarningThirteenthMonth] = thirteenth
	}

	earnings := roundedBreakdown(raw)
	gross := money.Sum(values(earnings)...)

	// Statutory contributions; manual overrides win.
	monthly := calc.Monthly(emp.MonthlySalaryCredit())
	warnings = append(warnings, monthly.Warnings()...)

	sss := money.Round(money.ValueOr(in.Deductions.SSSOverride, calc.PerPeriod(monthly.SSS.EmployeeShare)))
	wisp := money.Round(money.ValueOr(in.Deductions.WISP, calc.PerPeriod(monthly.SSS.WISPEmployeeShare)))
	philhealth := money.Round(money.ValueOr(in.Deductions.PhilHealthOverride, calc.PerPeriod(monthly.PhilHealth.EmployeeShare)))
	pagibig := money.Round(money.ValueOr(in.Deductions.PagIBIGOverride, calc.PerPeriod(monthly.PagIBIG.EmployeeShare)))

	taxable := money.Round(money.MaxZero(
		gross.Sub(money.Sum(sss, wisp, philhealth, pagibig)).Sub(nonTaxableThirteenth).Sub(nonTaxableAllowances),
	))
	tax := calc.WithholdingTax(taxable)
	warnings = append(warnings, tax.Warnings...)

	deductions := in.Deductions.Manual()
	statutory := map[string]decimal.Decimal{
		payslip.DeductionSSS:            sss,
		payslip.DeductionWISP:           wisp,
		payslip.DeductionPhilHealth:     philhealth,
		payslip.DeductionPagIBIG:        pagibig,
		payslip.DeductionWithholdingTax: tax.Tax,
	}
	for k, v := range statutory {
		if !v.IsZero() {
			deductions[k] = v
		}
	}
	totalDeductions := money.Sum(values(deductions)...)
	net := gross.Sub(totalDeductions)

	if n := len(in.Attendance.InProgressEntryIDs); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d time clock entries without a clock-out were not paid", n))
	}
	if in.Attendance.Totals.Unapproved.IsPositive() {
		warnings = append(warnings, fmt.Sprintf("%s hours beyond the regular day had no approved overtime and were not paid", in.Attendance.Totals.Unapproved.StringFixed(2)))
	}
	if net.IsNegative() {
		warnings = append(warnings, "deductions exceed gross pay")
	}

	return payslip.Payslip{
		EmployeeID:                emp.ID,
		PeriodStart:               in.Period.Start,
		PeriodEnd:                 in.Period.End,
		EarningsBreakdown:         earnings,
		DeductionsBreakdown:       deductions,
		GrossPay:                  gross,
		TaxableCompensation:       taxable,
		TaxWithheld:               tax.Tax,
		SSSEmployee:               sss,
		WISPEmployee:              wisp,
		PhilHealthEmployee:        philhealth,
		PagIBIGEmployee:           pagibig,
		ThirteenthMonthPay:        thirteenth,
		NonTaxableThirteenthMonth: nonTaxableThirteenth,
		TotalDeductions:           totalDeductions,
		NetPay:                    net,
		Status:                    payslip.StatusDraft,
		Warnings:                  warnings,
	}, nil
}

func roundedBreakdown(raw map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(raw))
	for k, v := range raw {
		if r := money.Round(v); !r.IsZero() {
			out[k] = r
		}
	}
	return out
}

func values(m map[string]decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
