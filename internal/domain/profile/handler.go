package profile

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schedly/schedly-api/internal/middleware"
	"github.com/schedly/schedly-api/internal/pkg/response"
	"github.com/schedly/schedly-api/internal/pkg/validator"
)

// UpdateProfileRequest for PUT /profile
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
	Email    string `json:"email" validate:"required,email"`
}

// ProfileResponse is the wire form of a profile
type ProfileResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	PhotoURL string    `json:"photo_url,omitempty"`
	Email    string    `json:"email"`
}

// Handler handles profile HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates profile handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Get handles GET /profile
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	p, err := h.repo.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.NotFound(w, "Profile not set up yet")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, &ProfileResponse{
		UserID:   p.UserID,
		Name:     p.Name,
		PhotoURL: p.PhotoURL.String,
		Email:    p.Email,
	})
}

// Update handles PUT /profile — creates the document on first write
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	p := &Profile{
		UserID:    userID,
		Name:      req.Name,
		PhotoURL:  sql.NullString{String: req.PhotoURL, Valid: req.PhotoURL != ""},
		Email:     req.Email,
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Upsert(r.Context(), p); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, &ProfileResponse{
		UserID:   p.UserID,
		Name:     p.Name,
		PhotoURL: p.PhotoURL.String,
		Email:    p.Email,
	})
}

// Routes returns profile router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Get)
		r.Put("/", h.Update)
	})

	return r
}
