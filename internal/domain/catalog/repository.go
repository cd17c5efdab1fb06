package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines service catalog data access interface
type Repository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListPublic(ctx context.Context, filter PublicFilter) ([]*Detail, error)
	CountPublic(ctx context.Context, filter PublicFilter) (int, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Service, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Detail, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, s *Service) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAppointments(ctx context.Context, id uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const detailColumns = `
	s.*,
	p.name AS provider_name,
	p.status AS provider_status,
	c.name AS category_name
`

func (r *repository) Create(ctx context.Context, s *Service) error {
	query := `
		INSERT INTO services
			(id, provider_id, category_id, name, description, price, duration_minutes, image_key, is_active, created_at, updated_at)
		VALUES
			(:id, :provider_id, :category_id, :name, :description, :price, :duration_minutes, :image_key, :is_active, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, s)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	var s Service
	err := r.db.GetContext(ctx, &s, `SELECT * FROM services WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	var d Detail
	query := `
		SELECT ` + detailColumns + `
		FROM services s
		JOIN providers p ON p.id = s.provider_id
		JOIN categories c ON c.id = s.category_id
		WHERE s.id = $1
	`
	err := r.db.GetContext(ctx, &d, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// publicWhere keeps the listing to active services of active providers.
const publicWhere = `
	s.is_active = TRUE
	AND p.status = 'ACTIVE'
	AND ($1::uuid IS NULL OR s.category_id = $1)
	AND ($2 = '' OR s.name ILIKE '%' || $2 || '%')
`

func (r *repository) ListPublic(ctx context.Context, filter PublicFilter) ([]*Detail, error) {
	var details []*Detail
	query := `
		SELECT ` + detailColumns + `
		FROM services s
		JOIN providers p ON p.id = s.provider_id
		JOIN categories c ON c.id = s.category_id
		WHERE ` + publicWhere + `
		ORDER BY s.created_at DESC
		LIMIT $3 OFFSET $4
	`
	offset := (filter.Page - 1) * filter.Limit
	err := r.db.SelectContext(ctx, &details, query,
		filter.CategoryID, filter.Query, filter.Limit, offset)
	return details, err
}

func (r *repository) CountPublic(ctx context.Context, filter PublicFilter) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM services s
		JOIN providers p ON p.id = s.provider_id
		WHERE ` + publicWhere + `
	`
	err := r.db.GetContext(ctx, &count, query, filter.CategoryID, filter.Query)
	return count, err
}

func (r *repository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Service, error) {
	var services []*Service
	query := `SELECT * FROM services WHERE provider_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &services, query, providerID)
	return services, err
}

func (r *repository) ListAll(ctx context.Context, limit, offset int) ([]*Detail, error) {
	var details []*Detail
	query := `
		SELECT ` + detailColumns + `
		FROM services s
		JOIN providers p ON p.id = s.provider_id
		JOIN categories c ON c.id = s.category_id
		ORDER BY s.created_at DESC
		LIMIT $1 OFFSET $2
	`
	err := r.db.SelectContext(ctx, &details, query, limit, offset)
	return details, err
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM services`)
	return count, err
}

func (r *repository) Update(ctx context.Context, s *Service) error {
	s.UpdatedAt = time.Now()
	query := `
		UPDATE services
		SET category_id = :category_id, name = :name, description = :description,
		    price = :price, duration_minutes = :duration_minutes, image_key = :image_key,
		    updated_at = :updated_at
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, s)
	return err
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE services SET is_active = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
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
		return ErrNotFound
	}
	return nil
}

func (r *repository) CountAppointments(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM appointments a
		JOIN schedules sc ON sc.id = a.schedule_id
		WHERE sc.service_id = $1 AND a.status IN ('SCHEDULED', 'CONFIRMED')
	`
	err := r.db.GetContext(ctx, &count, query, id)
	return count, err
}
