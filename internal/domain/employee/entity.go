package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// WorkDaysPerMonth is the factor used to convert between daily and monthly rates.
	WorkDaysPerMonth = 26
	HoursPerDay      = 8
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	RateBasis        RateBasis
	MonthlyRate      *decimal.Decimal
	DailyRate        *decimal.Decimal
	TIN              *string
	SSSNumber        *string
	PhilHealthNumber *string
	PagIBIGNumber    *string
	RestDays         []time.Weekday
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type RateBasis string

const (
	RateBasisMonthly RateBasis = "monthly"
	RateBasisDaily   RateBasis = "daily"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

var (
	workDays    = decimal.NewFromInt(WorkDaysPerMonth)
	hoursPerDay = decimal.NewFromInt(HoursPerDay)
)

// MonthlySalaryCredit is the monthly compensation contributions are based on.
func (e Employee) MonthlySalaryCredit() decimal.Decimal {
	switch e.RateBasis {
	case RateBasisMonthly:
		if e.MonthlyRate != nil {
			return *e.MonthlyRate
		}
	case RateBasisDaily:
		if e.DailyRate != nil {
			return e.DailyRate.Mul(workDays)
		}
	}
	return decimal.Zero
}

func (e Employee) DailyRateValue() decimal.Decimal {
	if e.RateBasis == RateBasisDaily && e.DailyRate != nil {
		return *e.DailyRate
	}
	return e.MonthlySalaryCredit().Div(workDays)
}

// HourlyRate is unrounded; callers round the amounts they derive from it.
func (e Employee) HourlyRate() decimal.Decimal {
	return e.DailyRateValue().Div(hoursPerDay)
}

func (e Employee) IsRestDay(d time.Weekday) bool {
	for _, r := range e.RestDays {
		if r == d {
			return true
		}
	}
	return false
}

// MissingIdentifiers lists the government numbers not on file.
func (e Employee) MissingIdentifiers() []string {
	var missing []string
	if isBlank(e.TIN) {
		missing = append(missing, "tin")
	}
	if isBlank(e.SSSNumber) {
		missing = append(missing, "sss_number")
	}
	if isBlank(e.PhilHealthNumber) {
		missing = append(missing, "philhealth_number")
	}
	if isBlank(e.PagIBIGNumber) {
		missing = append(missing, "pagibig_number")
	}
	return missing
}

func (e Employee) HasTIN() bool {
	return !isBlank(e.TIN)
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
