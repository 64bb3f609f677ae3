package model

import "time"

// Booking statuses. A booking starts pending with its granules already
// reserved; confirmation keeps the reservation, rejection and cancellation
// release it.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
)

// Class delivery formats.
const (
	BookingFormatOnline   = "online"
	BookingFormatPhysical = "physical"
)

// Booking is a student's request for a class slot on one lecturer's day
// schedule. Granules is the expanded set of 30-minute labels the booking
// consumes; it is derived from StartTime and DurationHours at creation and
// never edited afterwards.
type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	CourseID      string    `json:"course_id" bson:"course_id" validate:"required,min=1,max=64"`
	LecturerID    string    `json:"lecturer_id" bson:"lecturer_id" validate:"required,min=1,max=64"`
	StudentID     string    `json:"student_id" bson:"student_id" validate:"required,min=1,max=64"`
	StudentName   string    `json:"student_name" bson:"student_name" validate:"required,min=1,max=128"`
	StudentEmail  string    `json:"student_email" bson:"student_email" validate:"required,email"`
	Date          string    `json:"date" bson:"date" validate:"required,schedule_date"`
	StartTime     string    `json:"start_time" bson:"start_time" validate:"required,grid_label"`
	DurationHours int       `json:"duration_hours" bson:"duration_hours" validate:"required,oneof=1 2"`
	Granules      []string  `json:"granules" bson:"granules" validate:"omitempty,dive,grid_label"`
	Format        string    `json:"format" bson:"format" validate:"required,oneof=online physical"`
	ReceiptURL    string    `json:"receipt_url,omitempty" bson:"receipt_url,omitempty" validate:"omitempty,url,max=2048"`
	Note          string    `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,max=512"`
	Status        string    `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed rejected cancelled"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// DayKey returns the id of the day schedule this booking draws granules from.
func (b *Booking) DayKey() string {
	return DayKey(b.CourseID, b.LecturerID, b.Date)
}

// Active reports whether the booking still holds its granules.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
