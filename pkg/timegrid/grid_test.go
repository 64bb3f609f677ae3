package timegrid

import (
	"errors"
	"testing"
)

func TestGridShape(t *testing.T) {
	if Len() != 25 {
		t.Fatalf("expected 25 granules in a business day, got %d", Len())
	}

	first, ok := LabelAt(0)
	if !ok || first != "08:00 AM" {
		t.Errorf("expected first label 08:00 AM, got %q (ok=%v)", first, ok)
	}

	last, ok := LabelAt(Len() - 1)
	if !ok || last != "08:00 PM" {
		t.Errorf("expected last label 08:00 PM, got %q (ok=%v)", last, ok)
	}

	if _, ok := LabelAt(Len()); ok {
		t.Error("expected LabelAt past the end of the grid to fail")
	}
	if _, ok := LabelAt(-1); ok {
		t.Error("expected LabelAt(-1) to fail")
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		label string
		index int
		ok    bool
	}{
		{"08:00 AM", 0, true},
		{"12:00 PM", 8, true},
		{"12:30 PM", 9, true},
		{"01:00 PM", 10, true},
		{"08:00 PM", 24, true},
		{"8:00 AM", 0, false},  // not zero-padded
		{"08:00 am", 0, false}, // wrong case
		{"08:15 AM", 0, false}, // off-grid granularity
		{"09:00 PM", 0, false}, // after closing
		{"", 0, false},
	}

	for _, tt := range tests {
		i, ok := Index(tt.label)
		if ok != tt.ok {
			t.Errorf("Index(%q): expected ok=%v, got %v", tt.label, tt.ok, ok)
			continue
		}
		if ok && i != tt.index {
			t.Errorf("Index(%q): expected %d, got %d", tt.label, tt.index, i)
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	for i := 0; i < Len(); i++ {
		label, ok := LabelAt(i)
		if !ok {
			t.Fatalf("LabelAt(%d) failed inside grid bounds", i)
		}
		back, ok := Index(label)
		if !ok || back != i {
			t.Errorf("Index(LabelAt(%d)) = %d (ok=%v), expected %d", i, back, ok, i)
		}
	}
}

func TestGranulesFor(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     []string
		wantErr  error
	}{
		{
			name:     "one hour mid-morning",
			start:    "09:00 AM",
			duration: 1,
			want:     []string{"09:00 AM", "09:30 AM"},
		},
		{
			name:     "two hours across noon",
			start:    "11:30 AM",
			duration: 2,
			want:     []string{"11:30 AM", "12:00 PM", "12:30 PM", "01:00 PM"},
		},
		{
			name:     "one hour truncated at closing",
			start:    "08:00 PM",
			duration: 1,
			want:     []string{"08:00 PM"},
		},
		{
			name:     "two hours truncated at closing",
			start:    "07:00 PM",
			duration: 2,
			want:     []string{"07:00 PM", "07:30 PM", "08:00 PM"},
		},
		{
			name:     "invalid duration zero",
			start:    "09:00 AM",
			duration: 0,
			wantErr:  ErrInvalidDuration,
		},
		{
			name:     "invalid duration three hours",
			start:    "09:00 AM",
			duration: 3,
			wantErr:  ErrInvalidDuration,
		},
		{
			name:     "start not on grid",
			start:    "09:15 AM",
			duration: 1,
			wantErr:  ErrInvalidLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GranulesFor(tt.start, tt.duration)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d granules, got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("granule %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestGranulesForTruncationIsDetectable(t *testing.T) {
	// A truncated expansion must be shorter than RequiredGranules so callers
	// can reject the booking instead of honoring a partial slot set.
	granules, err := GranulesFor("07:30 PM", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(granules) >= RequiredGranules(2) {
		t.Fatalf("expected truncated result shorter than %d, got %d", RequiredGranules(2), len(granules))
	}
}

func TestLabelsReturnsCopy(t *testing.T) {
	a := Labels()
	a[0] = "tampered"
	b := Labels()
	if b[0] != "08:00 AM" {
		t.Fatal("mutating the returned slice must not affect the grid")
	}
}
