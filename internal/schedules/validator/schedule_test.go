package validator

import (
	"strings"
	"testing"

	"classbook/pkg/logger"
	"classbook/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validDay() *model.DaySchedule {
	return &model.DaySchedule{
		CourseID:       "pte-speaking",
		LecturerID:     "lect-042",
		Date:           "2025-03-14",
		OpenStartTimes: []string{"08:00 AM", "09:30 AM", "08:00 PM"},
	}
}

func TestValidate_ValidDaySchedule(t *testing.T) {
	v := NewDayScheduleValidator(testLogger())

	if err := v.Validate(validDay()); err != nil {
		t.Errorf("expected valid day schedule, got error: %v", err)
	}
}

func TestValidate_GridLabel(t *testing.T) {
	v := NewDayScheduleValidator(testLogger())

	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"first grid label", "08:00 AM", false},
		{"noon", "12:00 PM", false},
		{"last grid label", "08:00 PM", false},
		{"off grid minutes", "08:15 AM", true},
		{"before grid start", "07:30 AM", true},
		{"after grid end", "08:30 PM", true},
		{"24 hour format", "14:00", true},
		{"lowercase meridiem", "08:00 am", true},
		{"missing leading zero", "8:00 AM", true},
		{"empty label", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := validDay()
			day.OpenStartTimes = []string{tt.label}

			err := v.Validate(day)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for label %q", tt.label)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for label %q: %v", tt.label, err)
			}
		})
	}
}

func TestValidate_ScheduleDate(t *testing.T) {
	v := NewDayScheduleValidator(testLogger())

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid date", "2025-03-14", false},
		{"leap day", "2024-02-29", false},
		{"not a leap year", "2025-02-29", true},
		{"wrong separator", "2025/03/14", true},
		{"missing padding", "2025-3-4", true},
		{"reversed order", "14-03-2025", true},
		{"empty date", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := validDay()
			day.Date = tt.date

			err := v.Validate(day)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for date %q", tt.date)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for date %q: %v", tt.date, err)
			}
		})
	}
}

func TestValidate_MissingFields(t *testing.T) {
	v := NewDayScheduleValidator(testLogger())

	day := &model.DaySchedule{}
	err := v.Validate(day)
	if err == nil {
		t.Fatal("expected validation errors for empty day schedule")
	}

	validationErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(validationErrs) != 4 {
		t.Errorf("expected 4 validation errors, got %d: %v", len(validationErrs), validationErrs)
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("expected required field messages, got %q", err.Error())
	}
}

func TestValidateBulkApply(t *testing.T) {
	v := NewDayScheduleValidator(testLogger())

	valid := func() *model.BulkApplyRequest {
		return &model.BulkApplyRequest{
			CourseID:       "pte-speaking",
			LecturerID:     "lect-042",
			StartDate:      "2025-03-03",
			EndDate:        "2025-03-14",
			Weekdays:       []string{"monday", "friday"},
			OpenStartTimes: []string{"09:00 AM"},
		}
	}

	if err := v.ValidateBulkApply(valid()); err != nil {
		t.Errorf("expected valid request, got error: %v", err)
	}

	t.Run("unknown weekday", func(t *testing.T) {
		req := valid()
		req.Weekdays = []string{"monday", "someday"}
		if err := v.ValidateBulkApply(req); err == nil {
			t.Error("expected error for unknown weekday")
		}
	})

	t.Run("empty weekdays", func(t *testing.T) {
		req := valid()
		req.Weekdays = nil
		if err := v.ValidateBulkApply(req); err == nil {
			t.Error("expected error for empty weekdays")
		}
	})

	t.Run("off grid start time", func(t *testing.T) {
		req := valid()
		req.OpenStartTimes = []string{"09:10 AM"}
		if err := v.ValidateBulkApply(req); err == nil {
			t.Error("expected error for off grid start time")
		}
	})
}
