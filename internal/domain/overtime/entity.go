package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

type OvertimeRequest struct {
	ID              string
	EmployeeID      string
	RequestDate     time.Time
	EndDate         *time.Time
	StartTime       string // HH:MM, Manila time
	EndTime         string
	TotalHours      decimal.Decimal
	Reason          string
	Status          Status
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Window is a resolved overtime interval.
type Window struct {
	RequestDate time.Time
	EndDate     time.Time
	Start       time.Time
	End         time.Time
	TotalHours  decimal.Decimal
}

// TimeCredit is one ledger row converting approved overtime into hours of
// time off, one to one.
type TimeCredit struct {
	ID                string
	EmployeeID        string
	OvertimeRequestID string
	Hours             decimal.Decimal
	CreatedAt         time.Time
}
