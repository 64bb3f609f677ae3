package model

import (
	"fmt"
	"time"
)

// DaySchedule is one lecturer's, one course's, one calendar day's
// availability. The document id is the derived day key, so the uniqueness of
// the (course, lecturer, date) triple is structural.
//
// OpenStartTimes is the admin-curated set of grid labels a booking may start
// at. BookedGranules is the set of 30-minute granules consumed by bookings;
// it is written only by the schedule repository's reserve/release operations.
type DaySchedule struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty"`
	CourseID       string    `json:"course_id" bson:"course_id" validate:"required,min=1,max=64"`
	LecturerID     string    `json:"lecturer_id" bson:"lecturer_id" validate:"required,min=1,max=64"`
	Date           string    `json:"date" bson:"date" validate:"required,schedule_date"`
	OpenStartTimes []string  `json:"open_start_times" bson:"open_start_times" validate:"required,max=25,dive,grid_label"`
	BookedGranules []string  `json:"booked_granules" bson:"booked_granules" validate:"omitempty,dive,grid_label"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// DayKey derives the deterministic document id for a day schedule.
func DayKey(courseID, lecturerID, date string) string {
	return fmt.Sprintf("%s:%s:%s", courseID, lecturerID, date)
}

func (s *DaySchedule) Key() string {
	return DayKey(s.CourseID, s.LecturerID, s.Date)
}

// Locked reports whether the day's open start times are frozen. Once any
// granule is booked the admin can no longer edit the day.
func (s *DaySchedule) Locked() bool {
	return len(s.BookedGranules) > 0
}

// BulkApplyRequest applies one set of open start times to every date in an
// inclusive range whose weekday is in Weekdays.
type BulkApplyRequest struct {
	CourseID       string   `json:"course_id" validate:"required,min=1,max=64"`
	LecturerID     string   `json:"lecturer_id" validate:"required,min=1,max=64"`
	StartDate      string   `json:"start_date" validate:"required,schedule_date"`
	EndDate        string   `json:"end_date" validate:"required,schedule_date"`
	Weekdays       []string `json:"weekdays" validate:"required,min=1,max=7,dive,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	OpenStartTimes []string `json:"open_start_times" validate:"required,max=25,dive,grid_label"`
}

// BulkApplyReport separates the three per-date outcomes of a bulk apply:
// updated, left untouched because the day already had bookings, and failed
// with a store error. Callers reconcile partial failures from these sets.
type BulkApplyReport struct {
	Applied []string `json:"applied"`
	Skipped []string `json:"skipped"`
	Failed  []string `json:"failed"`
}
