package notification

import (
	"fmt"
	"sort"
	"time"

	"github.com/schedly/schedly-api/internal/domain/booking"
	"github.com/schedly/schedly-api/internal/domain/catalog"
)

// MaxAge bounds how far back service announcements reach. Booking entries
// are not age-limited: a decided booking stays in the feed.
const MaxAge = 7 * 24 * time.Hour

// Notification is a feed entry derived from bookings and catalog changes.
// Nothing is persisted; the feed is rebuilt from source rows on every read.
type Notification struct {
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	KindBooking = "booking"
	KindService = "service"
)

// Project builds the notification feed for one user. Bookings must already be
// scoped to that user and contribute an entry for every decided status;
// services are global announcements and only those created within MaxAge of
// now appear. The result is newest first.
func Project(bookings []*booking.Booking, services []*catalog.Service, now time.Time) []Notification {
	cutoff := now.Add(-MaxAge)
	out := make([]Notification, 0, len(bookings)+len(services))

	for _, b := range bookings {
		title, ok := bookingTitle(b.Status)
		if !ok {
			continue
		}
		out = append(out, Notification{
			Kind:      KindBooking,
			Title:     title,
			Body:      fmt.Sprintf("%s on %s at %s with %s", b.Service, b.Date, b.TimeSlot, b.Stylist),
			CreatedAt: b.UpdatedAt,
		})
	}

	for _, s := range services {
		if s.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, Notification{
			Kind:      KindService,
			Title:     "New service: " + s.Name,
			Body:      fmt.Sprintf("%s is now available for %s", s.Name, s.Price),
			CreatedAt: s.CreatedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// bookingTitle reports the feed title for a status. Pending bookings have not
// been decided yet and produce no entry.
func bookingTitle(s booking.Status) (string, bool) {
	switch s {
	case booking.StatusApproved:
		return "Booking confirmed", true
	case booking.StatusRejected:
		return "Booking rejected", true
	case booking.StatusCompleted:
		return "Booking completed", true
	default:
		return "", false
	}
}
