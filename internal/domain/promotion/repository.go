package promotion

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrPromotionNotFound = errors.New("promotion not found")

// Repository defines promotion data access interface
type Repository interface {
	Create(ctx context.Context, p *Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	Update(ctx context.Context, p *Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]*Promotion, error)
	ListAll(ctx context.Context) ([]*Promotion, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new promotion repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const promotionColumns = `id, title, description, discount, image_url, is_active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, p *Promotion) error {
	query := `
		INSERT INTO promotions (id, title, description, discount, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.Discount, p.ImageURL, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	var p Promotion
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Promotion) error {
	query := `
		UPDATE promotions
		SET title = $2, description = $3, discount = $4, image_url = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.Discount, p.ImageURL, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

func (r *repository) ListActive(ctx context.Context) ([]*Promotion, error) {
	promotions := []*Promotion{}
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE is_active ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &promotions, query); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *repository) ListAll(ctx context.Context) ([]*Promotion, error) {
	promotions := []*Promotion{}
	query := `SELECT ` + promotionColumns + ` FROM promotions ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &promotions, query); err != nil {
		return nil, err
	}
	return promotions, nil
}
