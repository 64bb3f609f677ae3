package errors

import "errors"

var (
	ErrNotFound = errors.New("day schedule not found")

	// ErrScheduleLocked means the day already has booked granules, so its
	// open start times can no longer be edited.
	ErrScheduleLocked = errors.New("day schedule is locked by existing bookings")

	// ErrGranuleConflict means at least one requested granule is already
	// booked on the day.
	ErrGranuleConflict = errors.New("one or more granules are already booked")
)
