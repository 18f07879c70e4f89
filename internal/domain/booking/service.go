package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Publisher pushes booking change events to the live feed
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Service handles booking business logic
type Service struct {
	repo Repository
	feed Publisher
	now  func() time.Time
}

// NewService creates booking service. feed may be nil when no live feed is
// wired (tests, batch tools).
func NewService(repo Repository, feed Publisher) *Service {
	return &Service{repo: repo, feed: feed, now: time.Now}
}

// NewServiceWithClock creates booking service with an explicit clock
func NewServiceWithClock(repo Repository, feed Publisher, now func() time.Time) *Service {
	return &Service{repo: repo, feed: feed, now: now}
}

// Create runs the wizard over the confirm payload and creates a pending
// booking owned by userID. The creator can never supply a status or an
// owner: both are fixed here.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateBookingRequest) (*Booking, error) {
	now := s.now()

	draft, err := runWizard(now, req.Service, req.Date, req.TimeSlot, req.Stylist)
	if err != nil {
		return nil, err
	}

	s.warnIfSlotTaken(ctx, draft)

	b := &Booking{
		ID:        uuid.New(),
		UserID:    userID,
		Service:   draft.Service,
		Date:      draft.Date,
		TimeSlot:  draft.TimeSlot,
		Stylist:   draft.Stylist,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventBookingCreated, Booking: b})
	return b, nil
}

// GetByID returns a booking visible to the caller: its owner or an admin
func (s *Service) GetByID(ctx context.Context, userID uuid.UUID, actor Actor, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != ActorAdmin && !b.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListForUser returns the caller's bookings, newest first
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every booking, optionally filtered by status. Admin only;
// the route gating enforces the role, this is the data path.
func (s *Service) ListAll(ctx context.Context, status *Status) ([]*Booking, error) {
	if status != nil && !status.Valid() {
		return nil, ValidationErrors{"status": "Invalid status filter"}
	}
	return s.repo.ListAll(ctx, status)
}

// Update edits a booking in place through the same wizard rules as Create.
// The booking keeps its id, owner, status, and creation timestamp.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *UpdateBookingRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(userID) {
		return nil, ErrForbidden
	}

	now := s.now()
	draft, err := runWizard(now, req.Service, req.Date, req.TimeSlot, req.Stylist)
	if err != nil {
		return nil, err
	}

	s.warnIfSlotTaken(ctx, draft)

	b.Service = draft.Service
	b.Date = draft.Date
	b.TimeSlot = draft.TimeSlot
	b.Stylist = draft.Stylist
	b.UpdatedAt = now

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventBookingUpdated, Booking: b})
	return b, nil
}

// Transition moves a booking to a new status under the transition table
func (s *Service) Transition(ctx context.Context, actor Actor, id uuid.UUID, to Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Transition(to, actor, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, b.UpdatedAt); err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventBookingUpdated, Booking: b})
	return b, nil
}

// Cancel deletes a booking under the cancellation rules: customers only
// their own pending booking, admins any booking. No status transition is
// recorded, the record is removed.
func (s *Service) Cancel(ctx context.Context, userID uuid.UUID, actor Actor, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := b.CancelableBy(userID, actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, Event{Type: EventBookingDeleted, Booking: b})
	return nil
}

func (s *Service) publish(ctx context.Context, event Event) {
	if s.feed != nil {
		s.feed.Publish(ctx, event)
	}
}

// warnIfSlotTaken surfaces double-booking of a (date, time, stylist) triple.
// Capacity is not enforced: overlapping bookings are accepted and left to
// the admin review queue, this only makes them visible in the logs.
func (s *Service) warnIfSlotTaken(ctx context.Context, draft *Draft) {
	count, err := s.repo.CountAtSlot(ctx, draft.Date, draft.TimeSlot, draft.Stylist)
	if err != nil {
		log.Warn().Err(err).Msg("slot occupancy check failed")
		return
	}
	if count > 0 {
		log.Warn().
			Str("date", draft.Date).
			Str("time_slot", draft.TimeSlot).
			Str("stylist", draft.Stylist).
			Int("existing", count).
			Msg("slot already booked, accepting anyway")
	}
}
