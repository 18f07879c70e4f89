package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schedly/schedly-api/internal/pkg/imaging"
	"github.com/schedly/schedly-api/internal/pkg/response"
	"github.com/schedly/schedly-api/internal/pkg/validator"
)

// Handler handles catalog HTTP requests
type Handler struct {
	catalog *Catalog
}

// NewHandler creates catalog handler
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// List handles GET /services
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, ServiceListResponse(services))
}

// GetByID handles GET /services/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	s, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, ServiceResponseFromEntity(s))
}

// Create handles POST /admin/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s, err := h.catalog.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, ServiceResponseFromEntity(s))
}

// Update handles PUT /admin/services/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	var req UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s, err := h.catalog.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, ServiceResponseFromEntity(s))
}

// Delete handles DELETE /admin/services/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	response.NoContent(w)
}

// UploadImage handles POST /admin/services/{id}/image (multipart upload)
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	if err := r.ParseMultipartForm(imaging.MaxFileSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Missing image file")
		return
	}
	defer file.Close()

	s, err := h.catalog.SetImage(r.Context(), id, header.Filename, header.Size, file)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, ServiceResponseFromEntity(s))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrServiceNotFound):
		response.NotFound(w, "Service not found")
	case errors.Is(err, ErrInvalidImage):
		response.BadRequest(w, "Unsupported image file")
	case errors.Is(err, ErrImageTooLarge):
		response.BadRequest(w, "Image exceeds the size limit")
	default:
		response.InternalError(w)
	}
}
