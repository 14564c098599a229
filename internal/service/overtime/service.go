package overtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type OvertimeServiceImpl struct {
	tx           database.Transactor
	overtimeRepo overtime.OvertimeRepository
	ledger       overtime.CreditLedger
}

func NewOvertimeService(tx database.Transactor, overtimeRepo overtime.OvertimeRepository, ledger overtime.CreditLedger) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		tx:           tx,
		overtimeRepo: overtimeRepo,
		ledger:       ledger,
	}
}

func (s *OvertimeServiceImpl) Submit(ctx context.Context, req overtime.SubmitOvertimeRequest) (overtime.OvertimeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if claims.EmployeeID == "" {
		return overtime.OvertimeResponse{}, jwt.ErrMissingEmployeeID
	}
	req.EmployeeID = claims.EmployeeID

	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	window, err := Resolve(req.RequestDate, req.EndDate, req.StartTime, req.EndTime)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	endDate := window.EndDate
	created, err := s.overtimeRepo.Create(ctx, overtime.OvertimeRequest{
		EmployeeID:  req.EmployeeID,
		RequestDate: window.RequestDate,
		EndDate:     &endDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TotalHours:  window.TotalHours,
		Reason:      req.Reason,
		Status:      overtime.StatusPending,
	})
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to create overtime request: %w", err)
	}
	return mapToResponse(created), nil
}

func (s *OvertimeServiceImpl) Get(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	if err := validateID("id", id); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	req, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return mapToResponse(req), nil
}

// Approve moves the request to approved and grants the matching time credit
// in one transaction; a concurrent decision makes it fail as a whole.
func (s *OvertimeServiceImpl) Approve(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	var approved overtime.OvertimeRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.pending(ctx, id); err != nil {
			return err
		}

		approved, err = s.overtimeRepo.TransitionFromPending(ctx, id, overtime.StatusApproved, claims.Actor(), nil, nil)
		if err != nil {
			return err
		}

		_, err = s.ledger.AddCredit(ctx, overtime.TimeCredit{
			EmployeeID:        approved.EmployeeID,
			OvertimeRequestID: approved.ID,
			Hours:             approved.TotalHours,
		})
		if err != nil {
			return fmt.Errorf("failed to grant time credit: %w", err)
		}
		return nil
	})
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	slog.Info("overtime approved", "overtime_id", approved.ID, "employee_id", approved.EmployeeID, "hours", approved.TotalHours.String())
	return mapToResponse(approved), nil
}

func (s *OvertimeServiceImpl) Reject(ctx context.Context, req overtime.RejectOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	if _, err := s.pending(ctx, req.ID); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	reason := req.Reason
	rejected, err := s.overtimeRepo.TransitionFromPending(ctx, req.ID, overtime.StatusRejected, claims.Actor(), &reason, nil)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return mapToResponse(rejected), nil
}

// Cancel withdraws a pending request. Only the employee who filed it may.
func (s *OvertimeServiceImpl) Cancel(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	if err := validateID("id", id); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if claims.EmployeeID == "" {
		return overtime.OvertimeResponse{}, jwt.ErrMissingEmployeeID
	}

	req, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if req.EmployeeID != claims.EmployeeID {
		return overtime.OvertimeResponse{}, overtime.ErrNotRequestOwner
	}
	if req.Status.IsTerminal() {
		return overtime.OvertimeResponse{}, overtime.ErrOvertimeAlreadyProcessed
	}

	owner := claims.EmployeeID
	cancelled, err := s.overtimeRepo.TransitionFromPending(ctx, id, overtime.StatusCancelled, claims.Actor(), nil, &owner)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return mapToResponse(cancelled), nil
}

func (s *OvertimeServiceImpl) CreditBalance(ctx context.Context, employeeID string) (overtime.CreditBalanceResponse, error) {
	if err := validateID("employee_id", employeeID); err != nil {
		return overtime.CreditBalanceResponse{}, err
	}

	hours, err := s.ledger.Balance(ctx, employeeID)
	if err != nil {
		return overtime.CreditBalanceResponse{}, fmt.Errorf("failed to read time credit balance: %w", err)
	}
	return overtime.CreditBalanceResponse{EmployeeID: employeeID, Hours: hours}, nil
}

func (s *OvertimeServiceImpl) pending(ctx context.Context, id string) (overtime.OvertimeRequest, error) {
	if err := validateID("id", id); err != nil {
		return overtime.OvertimeRequest{}, err
	}

	req, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeRequest{}, err
	}
	if req.Status.IsTerminal() {
		return overtime.OvertimeRequest{}, overtime.ErrOvertimeAlreadyProcessed
	}
	return req, nil
}

func validateID(field, id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: field, Message: field + " must be a valid UUID"}}
	}
	return nil
}

func mapToResponse(r overtime.OvertimeRequest) overtime.OvertimeResponse {
	resp := overtime.OvertimeResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		RequestDate:     r.RequestDate.Format(period.DateLayout),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		TotalHours:      r.TotalHours,
		Reason:          r.Reason,
		Status:          string(r.Status),
		DecidedBy:       r.DecidedBy,
		DecidedAt:       r.DecidedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
	if r.EndDate != nil {
		ed := r.EndDate.Format(period.DateLayout)
		resp.EndDate = &ed
	}
	return resp
}
