package profile

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Profile is the per-user display document: what other screens need to
// render a name and an avatar, nothing more.
type Profile struct {
	UserID    uuid.UUID      `db:"user_id"`
	Name      string         `db:"name"`
	PhotoURL  sql.NullString `db:"photo_url"`
	Email     string         `db:"email"`
	UpdatedAt time.Time      `db:"updated_at"`
}
