package payslip

import "errors"

var (
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrPayslipAlreadyExists    = errors.New("payslip already exists for this employee and period")
	ErrPayslipImmutable        = errors.New("payslip is already paid and cannot be recomputed, record an adjustment instead")
	ErrInvalidStatusTransition = errors.New("invalid payslip status transition")
	ErrAdjustmentRequiresPaid  = errors.New("adjustments can only be recorded on paid payslips")
	ErrZeroAdjustment          = errors.New("adjustment amount must not be zero")
)
