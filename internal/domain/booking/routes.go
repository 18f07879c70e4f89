package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the customer-facing booking router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/", h.ListMy)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Cancel)
	})

	return r
}

// AdminRoutes returns the admin review router
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminOnly)
		r.Get("/", h.ListAll)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Delete("/{id}", h.Cancel)
	})

	return r
}
