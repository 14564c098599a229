package attendance

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// ========================================
// TIME CLOCK ENTRY DTOs
// ========================================

type RecordEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	ClockIn    string  `json:"clock_in"`            // RFC3339
	ClockOut   *string `json:"clock_out,omitempty"` // RFC3339
	Location   *string `json:"location,omitempty"`
	IsManual   bool    `json:"is_manual"`
	Status     string  `json:"status"`
}

func (r *RecordEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	validateInterval(&errs, r.ClockIn, r.ClockOut)

	if r.Status == "" {
		if r.ClockOut == nil {
			r.Status = string(EntryStatusClockedIn)
		} else {
			r.Status = string(EntryStatusClockedOut)
		}
	}
	validStatuses := []string{
		string(EntryStatusClockedIn), string(EntryStatusClockedOut), string(EntryStatusApproved),
		string(EntryStatusRejected), string(EntryStatusAutoApproved),
	}
	if !validator.IsInSlice(r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidEntryStatus.Error(),
		})
	}
	if r.Status == string(EntryStatusClockedIn) && r.ClockOut != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "clocked_in entries cannot have a clock_out",
		})
	}

	return errs.OrNil()
}

func validateInterval(errs *validator.ValidationErrors, clockIn string, clockOut *string) {
	in, err := time.Parse(time.RFC3339, clockIn)
	if err != nil {
		errs.Add("clock_in", "clock_in must be an RFC3339 timestamp")
		return
	}
	if clockOut == nil {
		return
	}
	out, err := time.Parse(time.RFC3339, *clockOut)
	if err != nil {
		errs.Add("clock_out", "clock_out must be an RFC3339 timestamp")
		return
	}
	if !out.After(in) {
		errs.Add("clock_out", ErrClockOutBeforeClockIn.Error())
	}
}

type EntryResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	ClockIn    time.Time `json:"clock_in"`
	ClockOut   *string   `json:"clock_out,omitempty"`
	WorkDate   string    `json:"work_date"`
	Location   *string   `json:"location,omitempty"`
	IsManual   bool      `json:"is_manual"`
	Status     string    `json:"status"`
}

// ========================================
// IMPORT DTOs
// ========================================

// ImportRow identifies the employee either by ID or by the name printed on
// the source sheet.
type ImportRow struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	ClockIn      string  `json:"clock_in"`
	ClockOut     *string `json:"clock_out,omitempty"`
	Location     *string `json:"location,omitempty"`
}

type ImportEntriesRequest struct {
	Rows []ImportRow `json:"rows"`
}

func (r *ImportEntriesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 {
		errs.Add("rows", "at least one row is required")
	}
	if len(r.Rows) > 5000 {
		errs.Add("rows", "at most 5000 rows per import")
	}

	for i, row := range r.Rows {
		var rowErrs validator.ValidationErrors
		hasID := row.EmployeeID != nil && !validator.IsEmpty(*row.EmployeeID)
		hasName := row.EmployeeName != nil && !validator.IsEmpty(*row.EmployeeName)
		if !hasID && !hasName {
			rowErrs.Add("employee", "employee_id or employee_name is required")
		}
		if hasID && !validator.IsValidUUID(*row.EmployeeID) {
			rowErrs.Add("employee_id", "employee_id must be a valid UUID")
		}
		validateInterval(&rowErrs, row.ClockIn, row.ClockOut)
		for _, e := range rowErrs {
			errs.Add(rowField(i, e.Field), e.Message)
		}
	}

	return errs.OrNil()
}

type UnresolvedRow struct {
	Row         int      `json:"row"`
	Input       string   `json:"input"`
	Reason      string   `json:"reason"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type ImportResult struct {
	Imported   []EntryResponse `json:"imported"`
	Skipped    int             `json:"skipped"`
	Unresolved []UnresolvedRow `json:"unresolved"`
}

// ========================================
// CORRECTION DTOs
// ========================================

type CreateCorrectionRequest struct {
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"` // YYYY-MM-DD
	ClockIn    string `json:"clock_in"`  // HH:MM, Manila time
	ClockOut   string `json:"clock_out"` // HH:MM; not after clock_in means the next day
	Mode       string `json:"mode"`
	Reason     string `json:"reason"`
}

func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs.Add("work_date", "work_date must be in YYYY-MM-DD format")
	}
	in, okIn := validator.IsValidTimeOfDay(r.ClockIn)
	if !okIn {
		errs.Add("clock_in", "clock_in must be in HH:MM format")
	}
	out, okOut := validator.IsValidTimeOfDay(r.ClockOut)
	if !okOut {
		errs.Add("clock_out", "clock_out must be in HH:MM format")
	}
	if okIn && okOut && in == out {
		errs.Add("clock_out", "clock_out must differ from clock_in")
	}
	if r.Mode == "" {
		r.Mode = string(CorrectionModeSupplement)
	}
	if r.Mode != string(CorrectionModeReplace) && r.Mode != string(CorrectionModeSupplement) {
		errs.Add("mode", ErrInvalidCorrectionMode.Error())
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.OrNil()
}

type ReviewCorrectionRequest struct {
	ID      string `json:"-"`
	Approve bool   `json:"approve"`
}

type CorrectionResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	ClockIn    string  `json:"clock_in"`
	ClockOut   string  `json:"clock_out"`
	Mode       string  `json:"mode"`
	Status     string  `json:"status"`
	Reason     string  `json:"reason"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
}

// ========================================
// SUMMARY DTOs
// ========================================

type SummaryRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required,uuid"`
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
}

func (r SummaryRequest) Validate() error {
	return validator.Struct(r)
}
