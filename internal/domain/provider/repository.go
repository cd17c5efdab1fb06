package provider

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines provider data access interface
type Repository interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Provider, error)
	ListAll(ctx context.Context) ([]*Provider, error)
	ListByStatus(ctx context.Context, status Status) ([]*Provider, error)
	Update(ctx context.Context, p *Provider) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new provider repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Provider) error {
	query := `
		INSERT INTO providers (id, owner_id, name, description, address, phone, status, created_at, updated_at)
		VALUES (:id, :owner_id, :name, :description, :address, :phone, :status, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	var p Provider
	err := r.db.GetContext(ctx, &p, `SELECT * FROM providers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Provider, error) {
	var providers []*Provider
	query := `SELECT * FROM providers WHERE owner_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &providers, query, ownerID)
	return providers, err
}

func (r *repository) ListAll(ctx context.Context) ([]*Provider, error) {
	var providers []*Provider
	err := r.db.SelectContext(ctx, &providers, `SELECT * FROM providers ORDER BY created_at DESC`)
	return providers, err
}

func (r *repository) ListByStatus(ctx context.Context, status Status) ([]*Provider, error) {
	var providers []*Provider
	query := `SELECT * FROM providers WHERE status = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &providers, query, status)
	return providers, err
}

func (r *repository) Update(ctx context.Context, p *Provider) error {
	p.UpdatedAt = time.Now()
	query := `
		UPDATE providers
		SET name = :name, description = :description, address = :address, phone = :phone,
		    logo_key = :logo_key, banner_key = :banner_key, updated_at = :updated_at
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE providers SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
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

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM providers`)
	return count, err
}
