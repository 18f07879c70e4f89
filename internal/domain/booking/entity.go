package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status represents booking status (matches booking_status enum)
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the enumerated statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no transition leads out of s
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// Actor is the role performing a booking action
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
)

// Booking represents one requested appointment
type Booking struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Service   string    `db:"service" json:"service"`
	Date      string    `db:"date" json:"date"` // ISO YYYY-MM-DD
	TimeSlot  string    `db:"time_slot" json:"time_slot"`
	Stylist   string    `db:"stylist" json:"stylist"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// transitions is the only legal status table. Every listed transition is
// admin-only; customers never set a status directly.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted},
}

// ValidateTransition checks the from→to move against the transition table.
// A move absent from the table is ErrInvalidTransition regardless of actor;
// a listed move requested by a non-admin is ErrForbidden.
func ValidateTransition(from, to Status, actor Actor) error {
	allowed := false
	for _, next := range transitions[from] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidTransition
	}
	if actor != ActorAdmin {
		return ErrForbidden
	}
	return nil
}

// Transition applies a validated status change, touching only the status
// and update timestamp.
func (b *Booking) Transition(to Status, actor Actor, now time.Time) error {
	if err := ValidateTransition(b.Status, to, actor); err != nil {
		return err
	}
	b.Status = to
	b.UpdatedAt = now
	return nil
}

// CancelableBy checks the delete rules: a customer may delete their own
// booking while it is pending; an admin may delete any booking.
func (b *Booking) CancelableBy(userID uuid.UUID, actor Actor) error {
	if actor == ActorAdmin {
		return nil
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	if b.Status != StatusPending {
		return ErrForbidden
	}
	return nil
}

// OwnedBy reports whether the booking belongs to userID
func (b *Booking) OwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}
