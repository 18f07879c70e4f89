package promotion

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PromotionRequest for admin create/update
type PromotionRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Discount    string `json:"discount" validate:"required,max=50"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool  `json:"is_active"`
}

// PromotionResponse is the wire form of a promotion
type PromotionResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Discount    string    `json:"discount"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromEntity converts entity to response DTO
func FromEntity(p *Promotion) *PromotionResponse {
	return &PromotionResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description.String,
		Discount:    p.Discount,
		ImageURL:    p.ImageURL.String,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

// ListFromEntities converts a list of entities
func ListFromEntities(promotions []*Promotion) []*PromotionResponse {
	out := make([]*PromotionResponse, 0, len(promotions))
	for _, p := range promotions {
		out = append(out, FromEntity(p))
	}
	return out
}

func (req *PromotionRequest) apply(p *Promotion, now time.Time) {
	p.Title = req.Title
	p.Description = sql.NullString{String: req.Description, Valid: req.Description != ""}
	p.Discount = req.Discount
	p.ImageURL = sql.NullString{String: req.ImageURL, Valid: req.ImageURL != ""}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = now
}
