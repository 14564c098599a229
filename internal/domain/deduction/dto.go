package deduction

import (
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GetDeductionRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required,uuid"`
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
}

func (r GetDeductionRequest) Validate() error {
	return validator.Struct(r)
}

// UpdateDeductionRequest patches a record. Version must be the version the
// caller last read.
type UpdateDeductionRequest struct {
	EmployeeID  string `json:"-"`
	PeriodStart string `json:"-"`
	Version     *int64 `json:"version"`

	SSSLoan         *decimal.Decimal `json:"sss_loan,omitempty"`
	PagIBIGLoan     *decimal.Decimal `json:"pagibig_loan,omitempty"`
	CompanyLoan     *decimal.Decimal `json:"company_loan,omitempty"`
	CashAdvance     *decimal.Decimal `json:"cash_advance,omitempty"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`

	SSSOverride        *decimal.Decimal `json:"sss_override,omitempty"`
	PhilHealthOverride *decimal.Decimal `json:"philhealth_override,omitempty"`
	PagIBIGOverride    *decimal.Decimal `json:"pagibig_override,omitempty"`
	// ClearOverrides returns all three statutory shares to computed values.
	ClearOverrides bool `json:"clear_overrides"`
}

func (r *UpdateDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.PeriodStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be in YYYY-MM-DD format"})
	}
	if r.Version == nil {
		errs = append(errs, validator.ValidationError{Field: "version", Message: "version is required"})
	} else if *r.Version < 0 {
		errs = append(errs, validator.ValidationError{Field: "version", Message: "version must not be negative"})
	}

	amounts := []struct {
		field string
		value *decimal.Decimal
	}{
		{"sss_loan", r.SSSLoan},
		{"pagibig_loan", r.PagIBIGLoan},
		{"company_loan", r.CompanyLoan},
		{"cash_advance", r.CashAdvance},
		{"other_deductions", r.OtherDeductions},
		{"sss_override", r.SSSOverride},
		{"philhealth_override", r.PhilHealthOverride},
		{"pagibig_override", r.PagIBIGOverride},
	}
	for _, a := range amounts {
		if a.value != nil && a.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: a.field, Message: ErrNegativeAmount.Error()})
		}
	}
	if r.ClearOverrides && (r.SSSOverride != nil || r.PhilHealthOverride != nil || r.PagIBIGOverride != nil) {
		errs = append(errs, validator.ValidationError{Field: "clear_overrides", Message: "cannot clear and set overrides in the same request"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeductionResponse struct {
	EmployeeID         string           `json:"employee_id"`
	PeriodStart        string           `json:"period_start"`
	SSSLoan            decimal.Decimal  `json:"sss_loan"`
	PagIBIGLoan        decimal.Decimal  `json:"pagibig_loan"`
	CompanyLoan        decimal.Decimal  `json:"company_loan"`
	CashAdvance        decimal.Decimal  `json:"cash_advance"`
	OtherDeductions    decimal.Decimal  `json:"other_deductions"`
	SSSOverride        *decimal.Decimal `json:"sss_override,omitempty"`
	PhilHealthOverride *decimal.Decimal `json:"philhealth_override,omitempty"`
	PagIBIGOverride    *decimal.Decimal `json:"pagibig_override,omitempty"`
	WISP               *decimal.Decimal `json:"wisp,omitempty"`
	Version            int64            `json:"version"`
	UpdatedBy          *string          `json:"updated_by,omitempty"`
}
