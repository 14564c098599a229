package attendance

import (
	"context"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
)

type AttendanceService interface {
	RecordEntry(ctx context.Context, req RecordEntryRequest) (EntryResponse, error)

	// ImportEntries records rows from an external sheet. Rows whose employee
	// cannot be matched unambiguously are returned, never guessed.
	ImportEntries(ctx context.Context, req ImportEntriesRequest) (ImportResult, error)

	CreateCorrection(ctx context.Context, req CreateCorrectionRequest) (CorrectionResponse, error)
	ReviewCorrection(ctx context.Context, req ReviewCorrectionRequest) (CorrectionResponse, error)

	SummarizePeriod(ctx context.Context, employeeID string, p period.Period) (PeriodAttendance, error)
	GetSummary(ctx context.Context, req SummaryRequest) (PeriodAttendance, error)
}
