package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/schedly/schedly-api/internal/middleware"
	"github.com/schedly/schedly-api/internal/pkg/response"
	"github.com/schedly/schedly-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service  *Service
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates booking handler
func NewHandler(service *Service, hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Create handles POST /bookings — the wizard confirm
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	b, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, BookingResponseFromEntity(b))
}

// ListMy handles GET /bookings
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookings, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, BookingListResponse(bookings))
}

// GetByID handles GET /bookings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	b, err := h.service.GetByID(r.Context(), userID, actorFromContext(r), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, BookingResponseFromEntity(b))
}

// Update handles PUT /bookings/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	b, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, BookingResponseFromEntity(b))
}

// Cancel handles DELETE /bookings/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.Cancel(r.Context(), userID, actorFromContext(r), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

// ListAll handles GET /admin/bookings
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	var status *Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := Status(s)
		status = &st
	}

	bookings, err := h.service.ListAll(r.Context(), status)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, BookingListResponse(bookings))
}

// UpdateStatus handles PATCH /admin/bookings/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.service.Transition(r.Context(), actorFromContext(r), id, Status(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, BookingResponseFromEntity(b))
}

// WebSocket handles GET /ws — the live booking feed subscription
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &Connection{
		UserID:  userID,
		IsAdmin: middleware.GetRole(r.Context()) == "admin",
		send:    make(chan []byte, 32),
	}
	h.hub.Register(conn)

	go writePump(ws, conn)
	readPump(ws, conn, h.hub)
}

func writePump(ws *websocket.Conn, conn *Connection) {
	defer ws.Close()
	for payload := range conn.send {
		ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	ws.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards client messages; the feed is one-way. Exits on close
// or error, unregistering the connection.
func readPump(ws *websocket.Conn, conn *Connection, hub *Hub) {
	defer hub.Unregister(conn)
	ws.SetReadLimit(512)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr ValidationErrors
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr)
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(w, "You cannot perform this action on this booking")
	case errors.Is(err, ErrInvalidTransition):
		response.Conflict(w, "INVALID_TRANSITION", "Status transition not allowed")
	default:
		response.InternalError(w)
	}
}

func actorFromContext(r *http.Request) Actor {
	if middleware.GetRole(r.Context()) == "admin" {
		return ActorAdmin
	}
	return ActorCustomer
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
