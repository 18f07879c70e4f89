package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public catalog router. Reads are open: the catalog is
// browsable before signing in.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	return r
}

// AdminRoutes returns the admin catalog management router
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminOnly)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/image", h.UploadImage)
	})

	return r
}
