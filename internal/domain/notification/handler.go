package notification

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/schedly/schedly-api/internal/domain/booking"
	"github.com/schedly/schedly-api/internal/domain/catalog"
	"github.com/schedly/schedly-api/internal/middleware"
	"github.com/schedly/schedly-api/internal/pkg/response"
)

// BookingSource provides the caller's bookings.
type BookingSource interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Booking, error)
}

// ServiceSource provides recently added catalog services.
type ServiceSource interface {
	ListCreatedSince(ctx context.Context, since time.Time) ([]*catalog.Service, error)
}

// Handler serves the synthesized notification feed
type Handler struct {
	bookings BookingSource
	services ServiceSource
	now      func() time.Time
}

// NewHandler creates notification handler
func NewHandler(bookings BookingSource, services ServiceSource) *Handler {
	return &Handler{
		bookings: bookings,
		services: services,
		now:      time.Now,
	}
}

// List handles GET /notifications
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	now := h.now()

	owned, err := h.bookings.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load bookings for feed")
		response.InternalError(w)
		return
	}

	recent, err := h.services.ListCreatedSince(r.Context(), now.Add(-MaxAge))
	if err != nil {
		log.Error().Err(err).Msg("failed to load recent services for feed")
		response.InternalError(w)
		return
	}

	response.OK(w, Project(owned, recent, now))
}

// Routes returns notification router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
	})

	return r
}
