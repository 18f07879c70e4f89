package promotion

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Promotion represents a promo deal shown on the home screen
type Promotion struct {
	ID          uuid.UUID      `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Discount    string         `db:"discount"` // display label, e.g. "20% OFF"
	ImageURL    sql.NullString `db:"image_url"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
