package catalog

import (
	"time"

	"github.com/google/uuid"
)

// CreateServiceRequest for POST /admin/services
type CreateServiceRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Price       string `json:"price" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateServiceRequest for PUT /admin/services/{id}
type UpdateServiceRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Price       string `json:"price" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// ServiceResponse is the wire form of a catalog service
type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	ThumbURL    string    `json:"thumb_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ServiceResponseFromEntity converts entity to response DTO
func ServiceResponseFromEntity(s *Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Price:       s.Price,
		Description: s.Description.String,
		ImageURL:    s.ImageURL.String,
		ThumbURL:    s.ThumbURL.String,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ServiceListResponse converts a list of entities
func ServiceListResponse(services []*Service) []*ServiceResponse {
	out := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponseFromEntity(s))
	}
	return out
}
