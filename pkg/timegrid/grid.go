// Package timegrid defines the fixed catalogue of 30-minute time labels that
// make up a bookable business day. Every day schedule and booking in the
// system references labels from this grid; no other granularity is valid.
package timegrid

import "errors"

var (
	ErrInvalidLabel    = errors.New("time label is not on the grid")
	ErrInvalidDuration = errors.New("booking duration must be 1 or 2 hours")
)

// labels spans 08:00 AM through 08:00 PM in 30-minute steps. The zero-padded
// 12-hour format is the wire format for all schedule and booking fields, so
// the grid is constant for the lifetime of the process and must never be
// reordered.
var labels = []string{
	"08:00 AM", "08:30 AM",
	"09:00 AM", "09:30 AM",
	"10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM",
	"01:00 PM", "01:30 PM",
	"02:00 PM", "02:30 PM",
	"03:00 PM", "03:30 PM",
	"04:00 PM", "04:30 PM",
	"05:00 PM", "05:30 PM",
	"06:00 PM", "06:30 PM",
	"07:00 PM", "07:30 PM",
	"08:00 PM",
}

var indexOf = func() map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}()

// Index returns the grid position of label, or false if the label is not on
// the grid.
func Index(label string) (int, bool) {
	i, ok := indexOf[label]
	return i, ok
}

// LabelAt returns the label at grid position i, or false if i is out of range.
func LabelAt(i int) (string, bool) {
	if i < 0 || i >= len(labels) {
		return "", false
	}
	return labels[i], true
}

// Len returns the number of granules in a business day.
func Len() int {
	return len(labels)
}

// Contains reports whether label is a valid grid label.
func Contains(label string) bool {
	_, ok := indexOf[label]
	return ok
}

// Labels returns a copy of the full grid in chronological order.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// RequiredGranules returns how many 30-minute granules a booking of the given
// duration consumes.
func RequiredGranules(durationHours int) int {
	return durationHours * 2
}

// GranulesFor expands a booking start time and duration into the consecutive
// grid labels the booking consumes. The result is truncated at the end of the
// grid: callers must compare its length against RequiredGranules and reject
// short results, otherwise a booking near closing time would silently consume
// fewer granules than its duration implies.
func GranulesFor(startTime string, durationHours int) ([]string, error) {
	if durationHours != 1 && durationHours != 2 {
		return nil, ErrInvalidDuration
	}

	start, ok := indexOf[startTime]
	if !ok {
		return nil, ErrInvalidLabel
	}

	count := RequiredGranules(durationHours)
	granules := make([]string, 0, count)
	for k := 0; k < count; k++ {
		label, ok := LabelAt(start + k)
		if !ok {
			break
		}
		granules = append(granules, label)
	}

	return granules, nil
}
