package payslip

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATE DTOs ==========

type GeneratePayslipRequest struct {
	EmployeeID             string `json:"employee_id"`
	PeriodStart            string `json:"period_start"`
	IncludeThirteenthMonth bool   `json:"include_thirteenth_month"`
}

func (r *GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.PeriodStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADJUSTMENT DTOs ==========

type AddAdjustmentRequest struct {
	PayslipID string          `json:"-"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

func (r *AddAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.PayslipID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	// amounts are stored in centavos
	if money.Round(r.Amount).IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: ErrZeroAdjustment.Error()})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustmentResponse struct {
	ID        string          `json:"id"`
	PayslipID string          `json:"payslip_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// ========== PAYSLIP DTOs ==========

type PayslipResponse struct {
	ID                        string                     `json:"id"`
	EmployeeID                string                     `json:"employee_id"`
	EmployeeName              *string                    `json:"employee_name,omitempty"`
	PeriodStart               string                     `json:"period_start"`
	PeriodEnd                 string                     `json:"period_end"`
	PeriodLabel               string                     `json:"period_label"`
	EarningsBreakdown         map[string]decimal.Decimal `json:"earnings_breakdown"`
	DeductionsBreakdown       map[string]decimal.Decimal `json:"deductions_breakdown"`
	GrossPay                  decimal.Decimal            `json:"gross_pay"`
	TaxableCompensation       decimal.Decimal            `json:"taxable_compensation"`
	TaxWithheld               decimal.Decimal            `json:"tax_withheld"`
	SSSEmployee               decimal.Decimal            `json:"sss_employee"`
	WISPEmployee              decimal.Decimal            `json:"wisp_employee"`
	PhilHealthEmployee        decimal.Decimal            `json:"philhealth_employee"`
	PagIBIGEmployee           decimal.Decimal            `json:"pagibig_employee"`
	ThirteenthMonthPay        decimal.Decimal            `json:"thirteenth_month_pay"`
	NonTaxableThirteenthMonth decimal.Decimal            `json:"non_taxable_thirteenth_month"`
	TotalDeductions           decimal.Decimal            `json:"total_deductions"`
	NetPay                    decimal.Decimal            `json:"net_pay"`
	Status                    string                     `json:"status"`
	Warnings                  []string                   `json:"warnings,omitempty"`
	ApprovedBy                *string                    `json:"approved_by,omitempty"`
	ApprovedAt                *time.Time                 `json:"approved_at,omitempty"`
	PaidAt                    *time.Time                 `json:"paid_at,omitempty"`
	Adjustments               []AdjustmentResponse       `json:"adjustments,omitempty"`
	// AdjustedNetPay is NetPay plus every adjustment.
	AdjustedNetPay            decimal.Decimal            `json:"adjusted_net_pay"`
}
