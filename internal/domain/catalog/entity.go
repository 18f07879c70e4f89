package catalog

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Service represents a catalog offering. Price is a free-text display
// string, range formats like "₱250 - ₱400" are allowed.
type Service struct {
	ID          uuid.UUID      `db:"id"`
	Name        string         `db:"name"`
	Price       string         `db:"price"`
	Description sql.NullString `db:"description"`
	ImageURL    sql.NullString `db:"image_url"`
	ThumbURL    sql.NullString `db:"thumb_url"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
