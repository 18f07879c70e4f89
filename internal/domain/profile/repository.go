package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

// Repository defines profile data access interface
type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new profile repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	query := `SELECT user_id, name, photo_url, email, updated_at FROM profiles WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, photo_url, email, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET name = EXCLUDED.name, photo_url = EXCLUDED.photo_url,
			email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, p.UserID, p.Name, p.PhotoURL, p.Email, p.UpdatedAt)
	return err
}
