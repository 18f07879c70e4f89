package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines catalog data access interface. The store is the only
// catalog source; there is no in-memory fallback.
type Repository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Service, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]*Service, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const serviceColumns = `id, name, price, description, image_url, thumb_url, created_at, updated_at`

func (r *repository) Create(ctx context.Context, s *Service) error {
	query := `
		INSERT INTO services (id, name, price, description, image_url, thumb_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Price, s.Description, s.ImageURL, s.ThumbURL, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	var s Service
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Service) error {
	query := `
		UPDATE services
		SET name = $2, price = $3, description = $4, image_url = $5, thumb_url = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Price, s.Description, s.ImageURL, s.ThumbURL, s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]*Service, error) {
	services := []*Service{}
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY name`
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repository) ListCreatedSince(ctx context.Context, since time.Time) ([]*Service, error) {
	services := []*Service{}
	query := `SELECT ` + serviceColumns + ` FROM services WHERE created_at >= $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &services, query, since); err != nil {
		return nil, err
	}
	return services, nil
}
