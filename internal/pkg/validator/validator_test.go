package validator

import (
	"strings"
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // v7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // v7 (uppercase)
		"123e4567-e89b-12d3-a456-426614174000", // v1
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29", "2025-12-31"}
	invalid := []string{"2023-02-29", "2024-13-01", "01-01-2024", "2024/01/01", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"00:00", 0, true},
		{"22:00", 22 * time.Hour, true},
		{"06:30", 6*time.Hour + 30*time.Minute, true},
		{"24:00", 0, false},
		{"7pm", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := IsValidTimeOfDay(c.input)
		if ok != c.ok || got != c.want {
			t.Errorf("IsValidTimeOfDay(%q) = %v, %v, want %v, %v", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidTIN(t *testing.T) {
	valid := []string{"123-456-789", "123456789", "123-456-789-000", "123-456-789-00000"}
	invalid := []string{"12-345-6789", "123-456-78", "abc-def-ghi", ""}
	for _, tin := range valid {
		if !IsValidTIN(tin) {
			t.Errorf("IsValidTIN(%q) = false, want true", tin)
		}
	}
	for _, tin := range invalid {
		if IsValidTIN(tin) {
			t.Errorf("IsValidTIN(%q) = true, want false", tin)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"pending", "approved", "rejected"}
	if !IsInSlice("approved", slice) {
		t.Error("IsInSlice failed for present value")
	}
	if IsInSlice("cancelled", slice) {
		t.Error("IsInSlice failed for absent value")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_time", Message: "is required"},
		{Field: "end_time", Message: "must be HH:MM"},
	}
	got := errs.Error()
	want := "start_time: is required; end_time: must be HH:MM"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMapAndOrNil(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Error("OrNil() on empty list should be nil")
	}
	errs.Add("reason", "is required")
	m := errs.ToMap()
	if m["reason"] != "is required" || len(m) != 1 {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.OrNil() == nil {
		t.Error("OrNil() on non-empty list should not be nil")
	}
}

type structSample struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Status     string `json:"status" validate:"oneof=pending approved"`
	Note       string `json:"-" validate:"max=3"`
}

func TestStruct(t *testing.T) {
	err := Struct(structSample{EmployeeID: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", Status: "pending"})
	if err != nil {
		t.Fatalf("Struct() unexpected error: %v", err)
	}

	err = Struct(structSample{Status: "paid"})
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Struct() error type = %T, want ValidationErrors", err)
	}
	m := verrs.ToMap()
	if m["employee_id"] != "is required" {
		t.Errorf("employee_id message = %q", m["employee_id"])
	}
	if !strings.HasPrefix(m["status"], "must be one of") {
		t.Errorf("status message = %q", m["status"])
	}
}
