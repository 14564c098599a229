package deduction

import (
	"context"
	"time"
)

type DeductionRepository interface {
	Get(ctx context.Context, employeeID string, periodStart time.Time) (Record, error)
	// Save writes rec only if the stored version still equals
	// expectedVersion (0 for a record that does not exist yet) and returns
	// the row with its new version. Otherwise it returns ErrVersionConflict.
	Save(ctx context.Context, rec Record, expectedVersion int64) (Record, error)
}
