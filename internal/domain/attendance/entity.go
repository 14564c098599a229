package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryStatus string

const (
	EntryStatusClockedIn    EntryStatus = "clocked_in"
	EntryStatusClockedOut   EntryStatus = "clocked_out"
	EntryStatusApproved     EntryStatus = "approved"
	EntryStatusRejected     EntryStatus = "rejected"
	EntryStatusAutoApproved EntryStatus = "auto_approved"
)

// Counts reports whether an entry with this status contributes worked hours.
func (s EntryStatus) Counts() bool {
	switch s {
	case EntryStatusClockedOut, EntryStatusApproved, EntryStatusAutoApproved:
		return true
	}
	return false
}

// TimeClockEntry is one clock-in/clock-out pair. Instants are stored in UTC.
type TimeClockEntry struct {
	ID         string
	EmployeeID string
	ClockIn    time.Time
	ClockOut   *time.Time
	Location   *string
	IsManual   bool
	Status     EntryStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CorrectionMode string

const (
	// CorrectionModeReplace discards the recorded entries of the day.
	CorrectionModeReplace CorrectionMode = "replace"
	// CorrectionModeSupplement adds a missed interval to the day.
	CorrectionModeSupplement CorrectionMode = "supplement"
)

type CorrectionStatus string

const (
	CorrectionStatusPending  CorrectionStatus = "pending"
	CorrectionStatusApproved CorrectionStatus = "approved"
	CorrectionStatusRejected CorrectionStatus = "rejected"
)

// FailureToLogCorrection records a shift the employee forgot to clock.
type FailureToLogCorrection struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	ClockIn    time.Time
	ClockOut   time.Time
	Mode       CorrectionMode
	Status     CorrectionStatus
	Reason     string
	ReviewedBy *string
	CreatedAt  time.Time
}

type Schedule struct {
	EmployeeID         string
	ShiftStart         string // HH:MM, Manila time
	ShiftEnd           string
	RegularHoursPerDay decimal.Decimal
	BreakMinutes       int
	RestDays           []time.Weekday
}

// BreakThresholdMinutes is the worked time above which the unpaid break is deducted.
const BreakThresholdMinutes = 5 * 60

// DefaultSchedule is used for employees without a stored schedule.
func DefaultSchedule(employeeID string, restDays []time.Weekday) Schedule {
	if len(restDays) == 0 {
		restDays = []time.Weekday{time.Sunday}
	}
	return Schedule{
		EmployeeID:         employeeID,
		ShiftStart:         "08:00",
		ShiftEnd:           "17:00",
		RegularHoursPerDay: decimal.NewFromInt(8),
		BreakMinutes:       60,
		RestDays:           restDays,
	}
}

func (s Schedule) IsRestDay(d time.Weekday) bool {
	for _, r := range s.RestDays {
		if r == d {
			return true
		}
	}
	return false
}

type HolidayKind string

const (
	HolidayKindRegular HolidayKind = "regular"
	HolidayKindSpecial HolidayKind = "special"
)

type Holiday struct {
	Date time.Time
	Name string
	Kind HolidayKind
}

// OvertimeAllowance is the approved overtime for one date.
type OvertimeAllowance struct {
	Date  time.Time
	Hours decimal.Decimal
}
