package booking

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest for POST /bookings — the wizard's confirm payload
type CreateBookingRequest struct {
	Service  string `json:"service" validate:"required,max=200"`
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required,time_slot"`
	Stylist  string `json:"stylist" validate:"required,stylist"`
}

// UpdateBookingRequest for PUT /bookings/{id} — edit in place
type UpdateBookingRequest struct {
	Service  string `json:"service" validate:"required,max=200"`
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required,time_slot"`
	Stylist  string `json:"stylist" validate:"required,stylist"`
}

// UpdateStatusRequest for PATCH /admin/bookings/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

// BookingResponse is the wire form of a booking
type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	Stylist   string    `json:"stylist"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingResponseFromEntity converts entity to response DTO
func BookingResponseFromEntity(b *Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Service:   b.Service,
		Date:      b.Date,
		TimeSlot:  b.TimeSlot,
		Stylist:   b.Stylist,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BookingListResponse converts a list of entities
func BookingListResponse(bookings []*Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingResponseFromEntity(b))
	}
	return out
}
