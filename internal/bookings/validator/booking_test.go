package validator

import (
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

func validBooking() *model.Booking {
	return &model.Booking{
		CourseID:      "pte-speaking",
		LecturerID:    "lect-042",
		StudentID:     "stud-007",
		StudentName:   "Dana Levi",
		StudentEmail:  "dana@example.com",
		Date:          "2025-03-14",
		StartTime:     "09:00 AM",
		DurationHours: 1,
		Format:        model.BookingFormatOnline,
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := NewBookingValidator(testLogger())

	if err := v.Validate(validBooking()); err != nil {
		t.Errorf("expected valid booking, got error: %v", err)
	}
}

func TestValidate_StartTime(t *testing.T) {
	v := NewBookingValidator(testLogger())

	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"first grid label", "08:00 AM", false},
		{"last grid label", "08:00 PM", false},
		{"off grid minutes", "09:15 AM", true},
		{"24 hour format", "09:00", true},
		{"lowercase meridiem", "09:00 am", true},
		{"empty start time", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			booking.StartTime = tt.label

			err := v.Validate(booking)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for start time %q", tt.label)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for start time %q: %v", tt.label, err)
			}
		})
	}
}

func TestValidate_DurationHours(t *testing.T) {
	v := NewBookingValidator(testLogger())

	tests := []struct {
		name     string
		duration int
		wantErr  bool
	}{
		{"one hour", 1, false},
		{"two hours", 2, false},
		{"zero hours", 0, true},
		{"three hours", 3, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			booking.DurationHours = tt.duration

			err := v.Validate(booking)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for duration %d", tt.duration)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for duration %d: %v", tt.duration, err)
			}
		})
	}
}

func TestValidate_Format(t *testing.T) {
	v := NewBookingValidator(testLogger())

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"online", model.BookingFormatOnline, false},
		{"physical", model.BookingFormatPhysical, false},
		{"hybrid is not supported", "hybrid", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			booking.Format = tt.format

			err := v.Validate(booking)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for format %q", tt.format)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for format %q: %v", tt.format, err)
			}
		})
	}
}

func TestValidate_StudentEmail(t *testing.T) {
	v := NewBookingValidator(testLogger())

	booking := validBooking()
	booking.StudentEmail = "not-an-email"

	if err := v.Validate(booking); err == nil {
		t.Error("expected error for malformed student email")
	}
}

func TestValidate_OptionalFields(t *testing.T) {
	v := NewBookingValidator(testLogger())

	t.Run("receipt url accepted", func(t *testing.T) {
		booking := validBooking()
		booking.ReceiptURL = "https://receipts.example.com/r/12345"
		if err := v.Validate(booking); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("malformed receipt url rejected", func(t *testing.T) {
		booking := validBooking()
		booking.ReceiptURL = "not a url"
		if err := v.Validate(booking); err == nil {
			t.Error("expected error for malformed receipt url")
		}
	})
}
