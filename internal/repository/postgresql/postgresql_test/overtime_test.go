package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOvertimeRepository_TransitionFromPending(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewOvertimeRepository(setup.DB)
	ledger := postgresql.NewTimeCreditLedger(setup.DB)
	empID := setup.CreateEmployee(t, "EMP-001", "Juan Dela Cruz", "30000")

	created, err := repo.Create(ctx, overtime.OvertimeRequest{
		EmployeeID:  empID,
		RequestDate: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   "17:00",
		EndTime:     "20:00",
		TotalHours:  decimal.NewFromInt(3),
		Reason:      "month-end close",
	})
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusPending, created.Status)
	assert.Equal(t, "17:00", created.StartTime)

	other := uuid.NewString()
	_, err = repo.TransitionFromPending(ctx, created.ID, overtime.StatusCancelled, "someone", nil, &other)
	assert.ErrorIs(t, err, overtime.ErrOvertimeAlreadyProcessed)

	approved, err := repo.TransitionFromPending(ctx, created.ID, overtime.StatusApproved, "hr", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusApproved, approved.Status)
	assert.NotNil(t, approved.DecidedAt)

	_, err = repo.TransitionFromPending(ctx, created.ID, overtime.StatusRejected, "hr", nil, nil)
	assert.ErrorIs(t, err, overtime.ErrOvertimeAlreadyProcessed)

	list, err := repo.ListApproved(ctx, empID, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = ledger.AddCredit(ctx, overtime.TimeCredit{EmployeeID: empID, OvertimeRequestID: created.ID, Hours: approved.TotalHours})
	require.NoError(t, err)
	_, err = ledger.AddCredit(ctx, overtime.TimeCredit{EmployeeID: empID, OvertimeRequestID: created.ID, Hours: approved.TotalHours})
	assert.ErrorIs(t, err, overtime.ErrCreditAlreadyGranted)

	balance, err := ledger.Balance(ctx, empID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(3)))
}

func TestAttendanceRepository_Entries(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	empID := setup.CreateEmployee(t, "EMP-001", "Juan Dela Cruz", "30000")

	in := time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)
	out := in.Add(9 * time.Hour)
	entry := attendance.TimeClockEntry{EmployeeID: empID, ClockIn: in, ClockOut: &out, Status: attendance.EntryStatusClockedOut}

	created, err := repo.CreateEntry(ctx, entry)
	require.NoError(t, err)
	assert.True(t, created.ClockIn.Equal(in))

	_, err = repo.CreateEntry(ctx, entry)
	assert.ErrorIs(t, err, attendance.ErrDuplicateEntry)

	entries, err := repo.ListEntries(ctx, empID, in, in.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = repo.ListEntries(ctx, empID, in.Add(time.Second), out)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = repo.GetSchedule(ctx, empID)
	assert.ErrorIs(t, err, attendance.ErrScheduleNotFound)
}
