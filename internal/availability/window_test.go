package availability_test

import (
	"testing"
	"time"

	"github.com/schedly/schedly-api/internal/availability"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDatesSkipsSundays(t *testing.T) {
	// 2024-06-07 is a Friday; 2024-06-09 is the first Sunday in the window.
	today := date(2024, time.June, 7)
	dates := availability.Dates(today)

	want := []string{"2024-06-07", "2024-06-08", "2024-06-10"}
	for i, w := range want {
		if dates[i] != w {
			t.Fatalf("dates[%d] = %q, want %q", i, dates[i], w)
		}
	}
}

func TestDatesWindowProperties(t *testing.T) {
	todays := []time.Time{
		date(2024, time.June, 7),
		date(2024, time.June, 9),  // today itself a Sunday
		date(2024, time.December, 28),
		date(2024, time.February, 27), // leap year boundary
	}

	for _, today := range todays {
		dates := availability.Dates(today)

		sundays := 0
		for i := 0; i < availability.WindowDays; i++ {
			if today.AddDate(0, 0, i).Weekday() == time.Sunday {
				sundays++
			}
		}
		if got, want := len(dates), availability.WindowDays-sundays; got != want {
			t.Errorf("today=%s: got %d dates, want %d", today.Format("2006-01-02"), got, want)
		}

		seen := make(map[string]bool)
		prev := ""
		for _, iso := range dates {
			d, err := time.Parse(availability.DateLayout, iso)
			if err != nil {
				t.Fatalf("unparseable date %q: %v", iso, err)
			}
			if d.Weekday() == time.Sunday {
				t.Errorf("today=%s: Sunday %s present", today.Format("2006-01-02"), iso)
			}
			if seen[iso] {
				t.Errorf("duplicate date %s", iso)
			}
			seen[iso] = true
			if prev != "" && iso <= prev {
				t.Errorf("dates not ascending: %s after %s", iso, prev)
			}
			prev = iso
		}

		if dates[len(dates)-1] > today.AddDate(0, 0, availability.WindowDays-1).Format(availability.DateLayout) {
			t.Errorf("today=%s: window extends past day %d", today.Format("2006-01-02"), availability.WindowDays-1)
		}
	}
}

func TestDateSelectable(t *testing.T) {
	today := date(2024, time.June, 7) // Friday
	june := date(2024, time.June, 1)
	july := date(2024, time.July, 1)

	cases := []struct {
		name      string
		candidate time.Time
		month     time.Time
		want      bool
	}{
		{"today", today, june, true},
		{"tomorrow", date(2024, time.June, 8), june, true},
		{"yesterday", date(2024, time.June, 6), june, false},
		{"sunday", date(2024, time.June, 9), june, false},
		{"outside displayed month", date(2024, time.July, 1), june, false},
		{"next month displayed", date(2024, time.July, 1), july, true},
		{"last day of window", date(2024, time.August, 5), date(2024, time.August, 1), true},
		{"past end of window", date(2024, time.August, 6), date(2024, time.August, 1), false},
	}

	for _, tc := range cases {
		if got := availability.DateSelectable(tc.candidate, tc.month, today); got != tc.want {
			t.Errorf("%s: DateSelectable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDateSelectableSameDayUntilRollover(t *testing.T) {
	// "Today" at almost midnight still allows booking today: comparison is
	// at midnight granularity, not clock time.
	now := time.Date(2024, time.June, 7, 23, 45, 0, 0, time.UTC)
	candidate := date(2024, time.June, 7)
	if !availability.DateSelectable(candidate, date(2024, time.June, 1), now) {
		t.Fatal("same-day booking rejected before date rollover")
	}
}

func TestValidSlotAndStylist(t *testing.T) {
	slots := availability.TimeSlots()
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}
	if slots[0] != "09:00 AM" || slots[len(slots)-1] != "05:00 PM" {
		t.Fatalf("unexpected slot boundaries: %v", slots)
	}
	for _, s := range slots {
		if !availability.ValidSlot(s) {
			t.Errorf("slot %q not valid", s)
		}
	}
	if availability.ValidSlot("06:00 PM") {
		t.Error("06:00 PM should not be a valid slot")
	}

	if len(availability.Stylists()) != 4 {
		t.Fatalf("expected 4 stylists, got %d", len(availability.Stylists()))
	}
	if availability.ValidStylist("Nobody") {
		t.Error("unknown stylist accepted")
	}
}

func TestSharedSetsAreNotMutable(t *testing.T) {
	slots := availability.TimeSlots()
	slots[0] = "mutated"
	if availability.TimeSlots()[0] != "09:00 AM" {
		t.Fatal("TimeSlots exposes shared mutable slice")
	}
}

func TestValidDate(t *testing.T) {
	today := date(2024, time.June, 7)
	if !availability.ValidDate("2024-06-07", today) {
		t.Error("today should be a valid booking date")
	}
	if availability.ValidDate("2024-06-09", today) {
		t.Error("Sunday accepted")
	}
	if availability.ValidDate("2024-06-06", today) {
		t.Error("past date accepted")
	}
	if availability.ValidDate("not-a-date", today) {
		t.Error("garbage accepted")
	}
}
