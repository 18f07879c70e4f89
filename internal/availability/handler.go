package availability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/schedly/schedly-api/internal/pkg/response"
)

// Handler serves the derived availability window.
type Handler struct {
	now func() time.Time
}

// NewHandler creates availability handler
func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// Dates handles GET /availability/dates
func (h *Handler) Dates(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"dates": Dates(h.now()),
	})
}

// Slots handles GET /availability/slots
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"slots": TimeSlots(),
	})
}

// StylistList handles GET /availability/stylists
func (h *Handler) StylistList(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"stylists": Stylists(),
	})
}

// Routes returns availability router. All endpoints are public: the window
// is calendar-derived and carries no user data.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dates", h.Dates)
	r.Get("/slots", h.Slots)
	r.Get("/stylists", h.StylistList)
	return r
}
