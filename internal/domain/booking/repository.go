package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines booking data access interface
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, updatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	ListAll(ctx context.Context, status *Status) ([]*Booking, error)
	CountAtSlot(ctx context.Context, date, timeSlot, stylist string) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `id, user_id, service, date, time_slot, stylist, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, service, date, time_slot, stylist, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.Service, b.Date, b.TimeSlot, b.Stylist, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, b *Booking) error {
	query := `
		UPDATE bookings
		SET service = $2, date = $3, time_slot = $4, stylist = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		b.ID, b.Service, b.Date, b.TimeSlot, b.Stylist, b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, updatedAt time.Time) error {
	query := `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	bookings := []*Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListAll(ctx context.Context, status *Status) ([]*Booking, error) {
	bookings := []*Booking{}
	if status != nil {
		query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY created_at DESC`
		if err := r.db.SelectContext(ctx, &bookings, query, *status); err != nil {
			return nil, err
		}
		return bookings, nil
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountAtSlot counts live bookings sharing a (date, time, stylist) triple.
// Capacity is not enforced at write time; callers use this to surface
// double-booking, not to reject it.
func (r *repository) CountAtSlot(ctx context.Context, date, timeSlot, stylist string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE date = $1 AND time_slot = $2 AND stylist = $3 AND status IN ('pending', 'approved')
	`
	if err := r.db.GetContext(ctx, &count, query, date, timeSlot, stylist); err != nil {
		return 0, err
	}
	return count, nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}
