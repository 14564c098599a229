package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	CreateEntry(ctx context.Context, entry TimeClockEntry) (TimeClockEntry, error)

	// ListEntries returns entries whose clock-in falls in [from, to).
	ListEntries(ctx context.Context, employeeID string, from, to time.Time) ([]TimeClockEntry, error)

	CreateCorrection(ctx context.Context, c FailureToLogCorrection) (FailureToLogCorrection, error)
	GetCorrection(ctx context.Context, id string) (FailureToLogCorrection, error)

	// ReviewCorrection moves a pending correction to status. It returns
	// ErrCorrectionProcessed when the correction is no longer pending.
	ReviewCorrection(ctx context.Context, id string, status CorrectionStatus, reviewedBy string) (FailureToLogCorrection, error)

	// ListApprovedCorrections returns approved corrections with WorkDate in [from, to].
	ListApprovedCorrections(ctx context.Context, employeeID string, from, to time.Time) ([]FailureToLogCorrection, error)

	GetSchedule(ctx context.Context, employeeID string) (Schedule, error)
	ListHolidays(ctx context.Context, from, to time.Time) ([]Holiday, error)
}
