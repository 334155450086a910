package scheduler

import (
	"fmt"
	"math"
	"time"
)

// Grid maps between slot indexes and wall-clock times for the calendar.
// A day is divided into SlotsPerDay slots of SlotMinutes each, starting
// at StartHour.
type Grid struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
}

// NewGrid validates the slot configuration. The day window must divide
// evenly into slots; a granularity that does not is a configuration
// error, not something to round away.
func NewGrid(startHour, endHour, slotMinutes int) (Grid, error) {
	if slotMinutes <= 0 {
		return Grid{}, fmt.Errorf("slot minutes must be positive, got %d", slotMinutes)
	}
	if endHour <= startHour {
		return Grid{}, fmt.Errorf("end hour %d must be after start hour %d", endHour, startHour)
	}
	window := (endHour - startHour) * 60
	if window%slotMinutes != 0 {
		return Grid{}, fmt.Errorf("slot granularity %dm does not divide the %dh day window evenly",
			slotMinutes, endHour-startHour)
	}
	return Grid{StartHour: startHour, EndHour: endHour, SlotMinutes: slotMinutes}, nil
}

func (g Grid) SlotsPerDay() int {
	return (g.EndHour - g.StartHour) * 60 / g.SlotMinutes
}

// TimeFromSlot converts a slot index within a day to its hour/minute.
// slotInDay is assumed in [0, SlotsPerDay); range checks belong to the
// caller, which is where pixel offsets get clamped.
func (g Grid) TimeFromSlot(slotInDay int) (hours, minutes int) {
	totalMinutes := slotInDay * g.SlotMinutes
	return g.StartHour + totalMinutes/60, totalMinutes % 60
}

// SlotOfTime is the inverse mapping, in minutes from StartHour.
func (g Grid) SlotOfTime(t time.Time) int {
	return ((t.Hour()-g.StartHour)*60 + t.Minute()) / g.SlotMinutes
}

// SlotFromOffset snaps a vertical pixel offset inside the grid to the
// nearest slot, clamped to [0, totalSlots-1].
func SlotFromOffset(offsetY float64, rowHeight, totalSlots int) int {
	snapped := int(math.Round(offsetY / float64(rowHeight)))
	if snapped < 0 {
		return 0
	}
	if snapped > totalSlots-1 {
		return totalSlots - 1
	}
	return snapped
}

// CombineDateTime keeps the calendar day of date and sets the given
// time-of-day, zeroing seconds and below.
func CombineDateTime(date time.Time, hours, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hours, minutes, 0, 0, date.Location())
}

// StartOfWeek returns the Monday 00:00:00 of the week containing date.
// Sundays map back six days.
func StartOfWeek(date time.Time) time.Time {
	diff := int(time.Monday - date.Weekday())
	if date.Weekday() == time.Sunday {
		diff = -6
	}
	d := date.AddDate(0, 0, diff)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
