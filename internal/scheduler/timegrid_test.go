package scheduler

import (
	"testing"
	"time"
)

func mustGrid(t *testing.T) Grid {
	t.Helper()
	g, err := NewGrid(8, 18, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestNewGrid(t *testing.T) {
	g := mustGrid(t)
	if g.SlotsPerDay() != 20 {
		t.Errorf("expected 20 slots per day, got %d", g.SlotsPerDay())
	}

	if _, err := NewGrid(8, 18, 45); err == nil {
		t.Error("expected error for a granularity that does not divide the window")
	}
	if _, err := NewGrid(18, 8, 30); err == nil {
		t.Error("expected error for an inverted window")
	}
	if _, err := NewGrid(8, 18, 0); err == nil {
		t.Error("expected error for zero slot minutes")
	}
}

func TestTimeFromSlot(t *testing.T) {
	g := mustGrid(t)

	cases := []struct {
		slot          int
		hours, minute int
	}{
		{0, 8, 0},
		{1, 8, 30},
		{2, 9, 0},
		{19, 17, 30},
	}
	for _, tc := range cases {
		h, m := g.TimeFromSlot(tc.slot)
		if h != tc.hours || m != tc.minute {
			t.Errorf("slot %d: expected %02d:%02d, got %02d:%02d", tc.slot, tc.hours, tc.minute, h, m)
		}
	}
}

func TestSlotOfTimeRoundTrips(t *testing.T) {
	g := mustGrid(t)
	for slot := 0; slot < g.SlotsPerDay(); slot++ {
		h, m := g.TimeFromSlot(slot)
		at := time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
		if got := g.SlotOfTime(at); got != slot {
			t.Fatalf("slot %d round-tripped to %d", slot, got)
		}
	}
}

func TestCombineDateTimeZeroesSeconds(t *testing.T) {
	date := time.Date(2026, 3, 2, 23, 59, 58, 123456, time.UTC)
	got := CombineDateTime(date, 10, 30)
	want := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
	}{
		{"monday itself", time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)},
		{"midweek", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)},
		{"saturday", time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC)},
		{"sunday maps back six days", time.Date(2026, 3, 8, 1, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StartOfWeek(tc.in); !got.Equal(monday) {
				t.Errorf("expected %v, got %v", monday, got)
			}
		})
	}
}

func TestSlotFromOffset(t *testing.T) {
	const rowHeight, totalSlots = 32, 140

	cases := []struct {
		offsetY float64
		want    int
	}{
		{0, 0},
		{15, 0},   // rounds down
		{17, 1},   // rounds up
		{64, 2},
		{-50, 0},  // clamped low
		{1e6, totalSlots - 1}, // clamped high
	}
	for _, tc := range cases {
		if got := SlotFromOffset(tc.offsetY, rowHeight, totalSlots); got != tc.want {
			t.Errorf("offset %.0f: expected slot %d, got %d", tc.offsetY, tc.want, got)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same calendar day")
	}
	if SameDay(b, c) {
		t.Error("adjacent days must not match")
	}
}
