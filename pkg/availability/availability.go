// Package availability computes which admin-curated start times can still
// host a 1-hour or 2-hour booking, given the granules already consumed by
// confirmed bookings. It is purely functional: the result depends only on the
// two input sets and the constant time grid, so it is safe to call
// concurrently and never caches schedule state between calls.
package availability

import (
	"sort"

	"classbook/pkg/timegrid"
)

// Result lists the bookable start times for one day schedule, one list per
// supported duration. Both lists are sorted in grid (chronological) order.
type Result struct {
	OneHourStarts []string `json:"one_hour_starts"`
	TwoHourStarts []string `json:"two_hour_starts"`
}

type candidate struct {
	index int
	label string
}

// Compute filters openStartTimes down to the labels that can still begin a
// booking. A start supports 1 hour when its granule and the next are in range
// and unbooked, and 2 hours when four consecutive granules are. An empty open
// set yields an empty result regardless of booked state: admins curate
// bookable start times explicitly, free granules alone are not bookable.
// Open labels not on the grid are skipped; they are rejected at admin write
// time, so here they can only be legacy data.
func Compute(openStartTimes, bookedGranules []string) Result {
	result := Result{
		OneHourStarts: []string{},
		TwoHourStarts: []string{},
	}
	if len(openStartTimes) == 0 {
		return result
	}

	booked := make(map[string]struct{}, len(bookedGranules))
	for _, g := range bookedGranules {
		booked[g] = struct{}{}
	}

	var oneHour, twoHour []candidate
	for _, start := range openStartTimes {
		i, ok := timegrid.Index(start)
		if !ok {
			continue
		}
		if spanFree(i, timegrid.RequiredGranules(1), booked) {
			oneHour = append(oneHour, candidate{index: i, label: start})
		}
		if spanFree(i, timegrid.RequiredGranules(2), booked) {
			twoHour = append(twoHour, candidate{index: i, label: start})
		}
	}

	// Sort by grid index, never lexically: "08:00 PM" sorts before
	// "09:00 AM" as a string but comes twelve hours later on the grid.
	result.OneHourStarts = sorted(oneHour)
	result.TwoHourStarts = sorted(twoHour)
	return result
}

// CanStart reports whether a booking of the given duration starting at
// startTime would fit entirely on unbooked, in-range granules. It applies the
// same eligibility rule as Compute for a single start time.
func CanStart(startTime string, durationHours int, bookedGranules []string) bool {
	i, ok := timegrid.Index(startTime)
	if !ok {
		return false
	}
	if durationHours != 1 && durationHours != 2 {
		return false
	}

	booked := make(map[string]struct{}, len(bookedGranules))
	for _, g := range bookedGranules {
		booked[g] = struct{}{}
	}
	return spanFree(i, timegrid.RequiredGranules(durationHours), booked)
}

func spanFree(start, count int, booked map[string]struct{}) bool {
	if start+count > timegrid.Len() {
		return false
	}
	for k := 0; k < count; k++ {
		label, ok := timegrid.LabelAt(start + k)
		if !ok {
			return false
		}
		if _, taken := booked[label]; taken {
			return false
		}
	}
	return true
}

func sorted(candidates []candidate) []string {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].index < candidates[j].index
	})
	labels := make([]string, 0, len(candidates))
	for _, c := range candidates {
		labels = append(labels, c.label)
	}
	return labels
}
