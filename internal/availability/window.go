// Package availability computes the derived booking window: which calendar
// dates are bookable, which time slots exist, and which stylists can be
// picked. The window is recomputed per call and never consults booking
// records, so it reflects calendar availability only, not remaining capacity.
package availability

import "time"

// DateLayout is the ISO form bookable dates are exchanged in.
const DateLayout = "2006-01-02"

// WindowDays is the length of the rolling booking window, today inclusive.
const WindowDays = 60

var timeSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

var stylists = []string{
	"Alyssa",
	"Bianca",
	"Carlos",
	"Diane",
}

// TimeSlots returns the fixed ordered list of hourly slot labels.
// A fresh slice is returned so callers cannot mutate the shared set.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// Stylists returns the fixed stylist roster.
func Stylists() []string {
	out := make([]string, len(stylists))
	copy(out, stylists)
	return out
}

// Dates returns the bookable dates as ISO strings, earliest first: the
// WindowDays consecutive calendar days starting at today, with Sundays
// removed. Deterministic for a given today.
func Dates(today time.Time) []string {
	start := Midnight(today)
	out := make([]string, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		d := start.AddDate(0, 0, i)
		if d.Weekday() == time.Sunday {
			continue
		}
		out = append(out, d.Format(DateLayout))
	}
	return out
}

// DateSelectable reports whether candidate may be picked on a calendar
// showing displayedMonth. True only if candidate is not before today (both
// truncated to midnight, so same-day booking stays open until the date rolls
// over), falls within the displayed month, and is a member of Dates(today).
func DateSelectable(candidate, displayedMonth, today time.Time) bool {
	c := Midnight(candidate)
	t := Midnight(today)

	if c.Before(t) {
		return false
	}
	if candidate.Year() != displayedMonth.Year() || candidate.Month() != displayedMonth.Month() {
		return false
	}
	return inWindow(c, t)
}

// ValidDate reports whether the ISO date string is a member of Dates(today).
func ValidDate(iso string, today time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, iso, today.Location())
	if err != nil {
		return false
	}
	return inWindow(d, Midnight(today))
}

// ValidSlot reports whether label is one of the fixed time slots.
func ValidSlot(label string) bool {
	for _, s := range timeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// ValidStylist reports whether name is on the roster.
func ValidStylist(name string) bool {
	for _, s := range stylists {
		if s == name {
			return true
		}
	}
	return false
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// inWindow expects both arguments truncated to midnight.
func inWindow(d, today time.Time) bool {
	if d.Weekday() == time.Sunday {
		return false
	}
	if d.Before(today) {
		return false
	}
	last := today.AddDate(0, 0, WindowDays-1)
	return !d.After(last)
}
