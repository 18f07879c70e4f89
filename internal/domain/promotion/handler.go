package promotion

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schedly/schedly-api/internal/pkg/response"
	"github.com/schedly/schedly-api/internal/pkg/validator"
)

// Handler handles promotion HTTP requests. Promotions are simple enough
// that the handler talks to the repository directly.
type Handler struct {
	repo Repository
}

// NewHandler creates promotion handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListActive handles GET /promotions
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.repo.ListActive(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, ListFromEntities(promotions))
}

// ListAll handles GET /admin/promotions
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.repo.ListAll(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, ListFromEntities(promotions))
}

// Create handles POST /admin/promotions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now()
	p := &Promotion{
		ID:        uuid.New(),
		IsActive:  true,
		CreatedAt: now,
	}
	req.apply(p, now)

	if err := h.repo.Create(r.Context(), p); err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, FromEntity(p))
}

// Update handles PUT /admin/promotions/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid promotion ID")
		return
	}

	var req PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	req.apply(p, time.Now())

	if err := h.repo.Update(r.Context(), p); err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, FromEntity(p))
}

// Delete handles DELETE /admin/promotions/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid promotion ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrPromotionNotFound) {
		response.NotFound(w, "Promotion not found")
		return
	}
	response.InternalError(w)
}

// Routes returns the public promotions router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListActive)
	return r
}

// AdminRoutes returns the admin promotions router
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminOnly)
		r.Get("/", h.ListAll)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
