package model

import "time"

// BookingLock is a short-lived advisory lock on one day schedule, taken while
// a booking is being created against it. The deterministic _id makes the
// unique index on _id the mutual exclusion primitive: a duplicate key error on
// insert means another booking attempt holds the day. ExpiresAt backs a TTL
// index so crashed holders cannot wedge a day forever.
type BookingLock struct {
	ID        string    `json:"id" bson:"_id"`
	DayKey    string    `json:"day_key" bson:"day_key"`
	HolderID  string    `json:"holder_id" bson:"holder_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// BookingLockID derives the lock document id for a day schedule.
func BookingLockID(dayKey string) string {
	return "booking_lock:" + dayKey
}
