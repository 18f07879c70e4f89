package notification

import (
	"testing"
	"time"

	"github.com/schedly/schedly-api/internal/domain/booking"
	"github.com/schedly/schedly-api/internal/domain/catalog"
)

var feedNow = time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)

func decidedBooking(status booking.Status, updatedAt time.Time) *booking.Booking {
	return &booking.Booking{
		Service:   "Haircut",
		Date:      "2024-06-20",
		TimeSlot:  "10:00 AM",
		Stylist:   "Alyssa",
		Status:    status,
		UpdatedAt: updatedAt,
	}
}

func TestProjectSkipsPendingBookings(t *testing.T) {
	bookings := []*booking.Booking{
		decidedBooking(booking.StatusPending, feedNow.Add(-time.Hour)),
		decidedBooking(booking.StatusApproved, feedNow.Add(-2*time.Hour)),
	}

	feed := Project(bookings, nil, feedNow)
	if len(feed) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(feed))
	}
	if feed[0].Title != "Booking confirmed" {
		t.Errorf("unexpected title %q", feed[0].Title)
	}
}

func TestProjectTitlesPerStatus(t *testing.T) {
	cases := []struct {
		status booking.Status
		title  string
	}{
		{booking.StatusApproved, "Booking confirmed"},
		{booking.StatusRejected, "Booking rejected"},
		{booking.StatusCompleted, "Booking completed"},
	}

	for _, tc := range cases {
		feed := Project([]*booking.Booking{decidedBooking(tc.status, feedNow.Add(-time.Minute))}, nil, feedNow)
		if len(feed) != 1 {
			t.Fatalf("%s: expected 1 entry, got %d", tc.status, len(feed))
		}
		if feed[0].Title != tc.title {
			t.Errorf("%s: expected title %q, got %q", tc.status, tc.title, feed[0].Title)
		}
	}
}

func TestProjectDropsOldServicesOnly(t *testing.T) {
	services := []*catalog.Service{
		{Name: "Perm", Price: "$80", CreatedAt: feedNow.Add(-10 * 24 * time.Hour)},
		{Name: "Balayage", Price: "$120", CreatedAt: feedNow.Add(-time.Hour)},
	}

	feed := Project(nil, services, feedNow)
	if len(feed) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(feed))
	}
	if feed[0].Title != "New service: Balayage" {
		t.Errorf("unexpected entry %q", feed[0].Title)
	}
}

func TestProjectKeepsDecidedBookingsRegardlessOfAge(t *testing.T) {
	bookings := []*booking.Booking{
		decidedBooking(booking.StatusApproved, feedNow.Add(-9*24*time.Hour)),
		decidedBooking(booking.StatusCompleted, feedNow.Add(-30*24*time.Hour)),
	}

	feed := Project(bookings, nil, feedNow)
	if len(feed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(feed))
	}
	if feed[0].Title != "Booking confirmed" || feed[1].Title != "Booking completed" {
		t.Errorf("unexpected entries %q, %q", feed[0].Title, feed[1].Title)
	}
}

func TestProjectOrdersNewestFirst(t *testing.T) {
	bookings := []*booking.Booking{
		decidedBooking(booking.StatusApproved, feedNow.Add(-3*time.Hour)),
		decidedBooking(booking.StatusRejected, feedNow.Add(-time.Hour)),
	}
	services := []*catalog.Service{
		{Name: "Blowout", Price: "$45", CreatedAt: feedNow.Add(-2 * time.Hour)},
	}

	feed := Project(bookings, services, feedNow)
	if len(feed) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].CreatedAt.After(feed[i-1].CreatedAt) {
			t.Fatalf("feed out of order at index %d", i)
		}
	}
	if feed[0].Title != "Booking rejected" || feed[1].Title != "New service: Blowout" {
		t.Errorf("unexpected ordering: %q, %q, %q", feed[0].Title, feed[1].Title, feed[2].Title)
	}
}

func TestProjectServiceEntryBody(t *testing.T) {
	services := []*catalog.Service{
		{Name: "Keratin Treatment", Price: "$150", CreatedAt: feedNow.Add(-time.Minute)},
	}

	feed := Project(nil, services, feedNow)
	if len(feed) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(feed))
	}
	if feed[0].Kind != KindService {
		t.Errorf("expected kind %q, got %q", KindService, feed[0].Kind)
	}
	if feed[0].Body != "Keratin Treatment is now available for $150" {
		t.Errorf("unexpected body %q", feed[0].Body)
	}
}

func TestProjectEmptyInputs(t *testing.T) {
	feed := Project(nil, nil, feedNow)
	if len(feed) != 0 {
		t.Fatalf("expected empty feed, got %d entries", len(feed))
	}
}
