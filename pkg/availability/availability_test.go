package availability

import (
	"reflect"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		open        []string
		booked      []string
		wantOneHour []string
		wantTwoHour []string
	}{
		{
			name:        "empty open set means no availability",
			open:        []string{},
			booked:      []string{},
			wantOneHour: []string{},
			wantTwoHour: []string{},
		},
		{
			name:        "free morning start supports both durations",
			open:        []string{"08:00 AM"},
			booked:      []string{},
			wantOneHour: []string{"08:00 AM"},
			wantTwoHour: []string{"08:00 AM"},
		},
		{
			name:        "booked second granule blocks both durations",
			open:        []string{"08:00 AM"},
			booked:      []string{"08:30 AM"},
			wantOneHour: []string{},
			wantTwoHour: []string{},
		},
		{
			name:        "booked fourth granule blocks only two hours",
			open:        []string{"08:00 AM"},
			booked:      []string{"09:30 AM"},
			wantOneHour: []string{"08:00 AM"},
			wantTwoHour: []string{},
		},
		{
			name:        "closing start has no room for an hour",
			open:        []string{"08:00 PM"},
			booked:      []string{},
			wantOneHour: []string{},
			wantTwoHour: []string{},
		},
		{
			name:        "last viable one hour start",
			open:        []string{"07:30 PM"},
			booked:      []string{},
			wantOneHour: []string{"07:30 PM"},
			wantTwoHour: []string{},
		},
		{
			name:        "last viable two hour start",
			open:        []string{"06:30 PM"},
			booked:      []string{},
			wantOneHour: []string{"06:30 PM"},
			wantTwoHour: []string{"06:30 PM"},
		},
		{
			name:        "off-grid open label is skipped",
			open:        []string{"08:15 AM", "09:00 AM"},
			booked:      []string{},
			wantOneHour: []string{"09:00 AM"},
			wantTwoHour: []string{"09:00 AM"},
		},
		{
			name:        "booking does not block unrelated starts",
			open:        []string{"09:00 AM", "11:00 AM"},
			booked:      []string{"10:00 AM", "10:30 AM"},
			wantOneHour: []string{"09:00 AM", "11:00 AM"},
			wantTwoHour: []string{"11:00 AM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.open, tt.booked)
			if !reflect.DeepEqual(got.OneHourStarts, tt.wantOneHour) {
				t.Errorf("one hour starts: expected %v, got %v", tt.wantOneHour, got.OneHourStarts)
			}
			if !reflect.DeepEqual(got.TwoHourStarts, tt.wantTwoHour) {
				t.Errorf("two hour starts: expected %v, got %v", tt.wantTwoHour, got.TwoHourStarts)
			}
		})
	}
}

func TestComputeSortsByGridOrderNotLexically(t *testing.T) {
	// "01:00 PM" < "08:00 AM" < "11:00 AM" lexically, but the grid order is
	// 08:00 AM, 11:00 AM, 01:00 PM. A lexical sort would reorder afternoons
	// before mornings.
	open := []string{"01:00 PM", "08:00 AM", "11:00 AM"}
	got := Compute(open, nil)

	want := []string{"08:00 AM", "11:00 AM", "01:00 PM"}
	if !reflect.DeepEqual(got.OneHourStarts, want) {
		t.Errorf("expected chronological order %v, got %v", want, got.OneHourStarts)
	}
	if !reflect.DeepEqual(got.TwoHourStarts, want) {
		t.Errorf("expected chronological order %v, got %v", want, got.TwoHourStarts)
	}
}

func TestComputeSoundness(t *testing.T) {
	// Every reported start must have all of its granules absent from the
	// booked set, and every open start whose granules are all free must be
	// reported (completeness).
	open := []string{"08:00 AM", "08:30 AM", "09:00 AM", "09:30 AM", "10:00 AM"}
	booked := []string{"09:00 AM"}

	got := Compute(open, booked)

	wantOne := []string{"08:00 AM", "09:30 AM", "10:00 AM"}
	wantTwo := []string{"09:30 AM", "10:00 AM"}
	if !reflect.DeepEqual(got.OneHourStarts, wantOne) {
		t.Errorf("one hour starts: expected %v, got %v", wantOne, got.OneHourStarts)
	}
	if !reflect.DeepEqual(got.TwoHourStarts, wantTwo) {
		t.Errorf("two hour starts: expected %v, got %v", wantTwo, got.TwoHourStarts)
	}
}

func TestComputeDoesNotMutateInputs(t *testing.T) {
	open := []string{"01:00 PM", "08:00 AM"}
	booked := []string{"02:00 PM"}

	Compute(open, booked)

	if open[0] != "01:00 PM" || open[1] != "08:00 AM" {
		t.Error("open start times were reordered in place")
	}
	if booked[0] != "02:00 PM" {
		t.Error("booked granules were mutated")
	}
}

func TestCanStart(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		booked   []string
		want     bool
	}{
		{"free one hour", "09:00 AM", 1, nil, true},
		{"free two hours", "09:00 AM", 2, nil, true},
		{"overlapping granule", "09:00 AM", 1, []string{"09:30 AM"}, false},
		{"tail granule booked for two hours", "09:00 AM", 2, []string{"10:30 AM"}, false},
		{"no trailing capacity", "08:00 PM", 1, nil, false},
		{"off-grid start", "09:15 AM", 1, nil, false},
		{"unsupported duration", "09:00 AM", 3, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanStart(tt.start, tt.duration, tt.booked); got != tt.want {
				t.Errorf("CanStart(%q, %d): expected %v, got %v", tt.start, tt.duration, tt.want, got)
			}
		})
	}
}
