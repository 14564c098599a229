package contribution

import (
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PreviewRequest struct {
	MonthlySalary string `json:"monthly_salary" validate:"required"`
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (r PreviewRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if _, err := decimal.NewFromString(r.MonthlySalary); err != nil {
		return validator.ValidationErrors{{Field: "monthly_salary", Message: ErrInvalidSalary.Error()}}
	}
	return nil
}

type PreviewResponse struct {
	EffectiveDate string              `json:"effective_date"`
	MonthlySalary decimal.Decimal     `json:"monthly_salary"`
	SSS           SSSContribution     `json:"sss"`
	PhilHealth    PremiumContribution `json:"philhealth"`
	PagIBIG       PremiumContribution `json:"pagibig"`
	PerPeriod     PerPeriodShares     `json:"per_period"`
	Warnings      []string            `json:"warnings,omitempty"`
}

type PerPeriodShares struct {
	SSS        decimal.Decimal `json:"sss"`
	WISP       decimal.Decimal `json:"wisp"`
	PhilHealth decimal.Decimal `json:"philhealth"`
	PagIBIG    decimal.Decimal `json:"pagibig"`
}
