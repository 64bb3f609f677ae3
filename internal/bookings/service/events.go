package service

import (
	"context"
	"time"

	"classbook/pkg/kafka"
	"classbook/pkg/model"
)

// Booking lifecycle event types.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
)

const eventSource = "bookings-service"

// Publisher is the producer surface the service needs. A nil Publisher
// disables event publishing without touching the booking flow.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingEvent is the payload published on every booking status change.
// Messages are keyed by the day schedule key so all events for one
// lecturer day land on the same partition in order.
type BookingEvent struct {
	BookingID     string    `json:"booking_id"`
	CourseID      string    `json:"course_id"`
	LecturerID    string    `json:"lecturer_id"`
	StudentID     string    `json:"student_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	DurationHours int       `json:"duration_hours"`
	Granules      []string  `json:"granules"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newBookingEvent(b *model.Booking) BookingEvent {
	return BookingEvent{
		BookingID:     b.ID,
		CourseID:      b.CourseID,
		LecturerID:    b.LecturerID,
		StudentID:     b.StudentID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		DurationHours: b.DurationHours,
		Granules:      b.Granules,
		Status:        b.Status,
		OccurredAt:    time.Now().UTC(),
	}
}

// publishEvent emits a lifecycle event. Publishing failures are logged and
// swallowed; the booking state change has already committed.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.DayKey()).
		WithEventType(eventType).
		WithSource(eventSource).
		WithValue(newBookingEvent(booking)).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}
