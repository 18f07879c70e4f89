package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/schedly/schedly-api/internal/domain/booking"
)

// fakeRepo is an in-memory booking.Repository
type fakeRepo struct {
	bookings map[uuid.UUID]*booking.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *booking.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, b *booking.Booking) error {
	stored, ok := r.bookings[b.ID]
	if !ok {
		return booking.ErrBookingNotFound
	}
	stored.Service = b.Service
	stored.Date = b.Date
	stored.TimeSlot = b.TimeSlot
	stored.Stylist = b.Stylist
	stored.UpdatedAt = b.UpdatedAt
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status booking.Status, updatedAt time.Time) error {
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = updatedAt
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.bookings[id]; !ok {
		return booking.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context, status *booking.Status) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.bookings {
		if status != nil && b.Status != *status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) CountAtSlot(_ context.Context, date, timeSlot, stylist string) (int, error) {
	count := 0
	for _, b := range r.bookings {
		if b.Date == date && b.TimeSlot == timeSlot && b.Stylist == stylist {
			count++
		}
	}
	return count, nil
}

// recordingFeed captures published events
type recordingFeed struct {
	events []booking.Event
}

func (f *recordingFeed) Publish(_ context.Context, e booking.Event) {
	f.events = append(f.events, e)
}

func fixedClock() time.Time {
	return time.Date(2024, time.June, 7, 12, 0, 0, 0, time.UTC)
}

func newTestService() (*booking.Service, *fakeRepo, *recordingFeed) {
	repo := newFakeRepo()
	feed := &recordingFeed{}
	return booking.NewServiceWithClock(repo, feed, fixedClock), repo, feed
}

func validCreateReq() *booking.CreateBookingRequest {
	return &booking.CreateBookingRequest{
		Service:  "Haircut",
		Date:     "2024-06-10",
		TimeSlot: "10:00 AM",
		Stylist:  "Alyssa",
	}
}

func TestCreateSetsPendingAndOwner(t *testing.T) {
	svc, repo, feed := newTestService()
	userID := uuid.New()

	b, err := svc.Create(context.Background(), userID, validCreateReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if b.Status != booking.StatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.UserID != userID {
		t.Error("booking not owned by its creator")
	}
	if b.ID == uuid.Nil {
		t.Error("no id assigned")
	}
	if _, ok := repo.bookings[b.ID]; !ok {
		t.Error("booking not persisted")
	}
	if len(feed.events) != 1 || feed.events[0].Type != booking.EventBookingCreated {
		t.Errorf("expected one booking_created event, got %+v", feed.events)
	}
}

func TestCreateRejectsIncompleteWizard(t *testing.T) {
	svc, _, feed := newTestService()

	req := validCreateReq()
	req.Stylist = ""
	_, err := svc.Create(context.Background(), uuid.New(), req)

	var verr booking.ValidationErrors
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationErrors", err)
	}
	if len(feed.events) != 0 {
		t.Error("event published for failed create")
	}
}

func TestUpdatePreservesIdentityAndStatus(t *testing.T) {
	svc, repo, _ := newTestService()
	userID := uuid.New()

	b, err := svc.Create(context.Background(), userID, validCreateReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Admin approves, then the owner edits the slot.
	if _, err := svc.Transition(context.Background(), booking.ActorAdmin, b.ID, booking.StatusApproved); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), userID, b.ID, &booking.UpdateBookingRequest{
		Service:  "Hair Color",
		Date:     "2024-06-11",
		TimeSlot: "02:00 PM",
		Stylist:  "Diane",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.ID != b.ID || updated.UserID != userID {
		t.Error("edit changed booking identity")
	}
	if updated.Status != booking.StatusApproved {
		t.Errorf("edit changed status to %s", updated.Status)
	}
	stored := repo.bookings[b.ID]
	if stored.Service != "Hair Color" || stored.Date != "2024-06-11" ||
		stored.TimeSlot != "02:00 PM" || stored.Stylist != "Diane" {
		t.Errorf("edit not persisted: %+v", stored)
	}
}

func TestUpdateByNonOwnerForbidden(t *testing.T) {
	svc, _, _ := newTestService()

	b, err := svc.Create(context.Background(), uuid.New(), validCreateReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), uuid.New(), b.ID, &booking.UpdateBookingRequest{
		Service:  "Haircut",
		Date:     "2024-06-10",
		TimeSlot: "10:00 AM",
		Stylist:  "Alyssa",
	})
	if !errors.Is(err, booking.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestCancelPendingByOwnerDeletes(t *testing.T) {
	svc, repo, feed := newTestService()
	userID := uuid.New()

	b, _ := svc.Create(context.Background(), userID, validCreateReq())

	if err := svc.Cancel(context.Background(), userID, booking.ActorCustomer, b.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, ok := repo.bookings[b.ID]; ok {
		t.Error("booking still present after cancel")
	}
	last := feed.events[len(feed.events)-1]
	if last.Type != booking.EventBookingDeleted {
		t.Errorf("last event = %s, want booking_deleted", last.Type)
	}
}

func TestCancelApprovedByCustomerForbidden(t *testing.T) {
	svc, repo, _ := newTestService()
	userID := uuid.New()

	b, _ := svc.Create(context.Background(), userID, validCreateReq())
	if _, err := svc.Transition(context.Background(), booking.ActorAdmin, b.ID, booking.StatusApproved); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	err := svc.Cancel(context.Background(), userID, booking.ActorCustomer, b.ID)
	if !errors.Is(err, booking.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if _, ok := repo.bookings[b.ID]; !ok {
		t.Error("booking deleted despite forbidden cancel")
	}

	// Admin can still remove it.
	if err := svc.Cancel(context.Background(), uuid.New(), booking.ActorAdmin, b.ID); err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
}

func TestTransitionOutOfRejectedFails(t *testing.T) {
	svc, _, _ := newTestService()

	b, _ := svc.Create(context.Background(), uuid.New(), validCreateReq())
	if _, err := svc.Transition(context.Background(), booking.ActorAdmin, b.ID, booking.StatusRejected); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	_, err := svc.Transition(context.Background(), booking.ActorAdmin, b.ID, booking.StatusApproved)
	if !errors.Is(err, booking.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestDoubleBookingIsAccepted(t *testing.T) {
	// Two customers picking the identical (date, time, stylist) triple both
	// succeed: capacity is not tracked.
	svc, repo, _ := newTestService()

	if _, err := svc.Create(context.Background(), uuid.New(), validCreateReq()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), uuid.New(), validCreateReq()); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if len(repo.bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(repo.bookings))
	}
}
