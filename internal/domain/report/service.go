package report

import (
	"context"
	"io"
)

// ReportService builds the annual compliance rollups.
type ReportService interface {
	EmployeeYTD(ctx context.Context, req EmployeeYTDRequest) (YTDSummary, error)

	// CompanySummary combines every employee paid during the year.
	CompanySummary(ctx context.Context, req CompanySummaryRequest) (CompanySummary, error)

	Alphalist(ctx context.Context, req CompanySummaryRequest) ([]AlphalistRow, error)
	// WriteAlphalistCSV encodes the alphalist rows as CSV onto w.
	WriteAlphalistCSV(ctx context.Context, req CompanySummaryRequest, w io.Writer) error
}
