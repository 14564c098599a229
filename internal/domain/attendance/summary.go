package attendance

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/shopspring/decimal"
)

// HourBuckets holds hours by pay category. Regular, RestDay, SpecialHoliday
// and RegularHoliday split the regular-hours portion by the type of day.
type HourBuckets struct {
	Regular        decimal.Decimal `json:"regular"`
	RestDay        decimal.Decimal `json:"rest_day"`
	SpecialHoliday decimal.Decimal `json:"special_holiday"`
	RegularHoliday decimal.Decimal `json:"regular_holiday"`
	Overtime       decimal.Decimal `json:"overtime"`
	NightDiff      decimal.Decimal `json:"night_diff"`
	Unapproved     decimal.Decimal `json:"unapproved"`
}

type DaySummary struct {
	Date            time.Time       `json:"date"`
	DayType         DayType         `json:"day_type"`
	WorkedHours     decimal.Decimal `json:"worked_hours"`
	RegularHours    decimal.Decimal `json:"regular_hours"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	NightDiffHours  decimal.Decimal `json:"night_diff_hours"`
	UnapprovedHours decimal.Decimal `json:"unapproved_hours"`
	InProgress      bool            `json:"in_progress"`
	Corrected       bool            `json:"corrected"`
}

type PeriodAttendance struct {
	EmployeeID         string        `json:"employee_id"`
	Period             period.Period `json:"period"`
	Days               []DaySummary  `json:"days"`
	Totals             HourBuckets   `json:"totals"`
	InProgressEntryIDs []string      `json:"in_progress_entry_ids,omitempty"`
}

// AggregateInput is everything needed to categorize one employee's hours for
// one period. Entries, Corrections and Overtime may cover a wider range;
// anything outside the period is ignored.
type AggregateInput struct {
	EmployeeID  string
	Period      period.Period
	Entries     []TimeClockEntry
	Corrections []FailureToLogCorrection
	Overtime    []OvertimeAllowance
	Schedule    Schedule
	Holidays    []Holiday
}
