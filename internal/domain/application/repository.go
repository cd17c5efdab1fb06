package application

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines application data access interface
type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*Application, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Application, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
	HasPending(ctx context.Context, applicantID uuid.UUID) (bool, error)
	Update(ctx context.Context, a *Application) error
	SetReview(ctx context.Context, id uuid.UUID, status Status, reviewerID uuid.UUID, rejectReason string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new application repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO provider_applications
			(id, applicant_id, business_name, description, address, phone, license_key, status, created_at, updated_at)
		VALUES
			(:id, :applicant_id, :business_name, :description, :address, :phone, :license_key, :status, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, a)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	err := r.db.GetContext(ctx, &a, `SELECT * FROM provider_applications WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*Application, error) {
	var apps []*Application
	query := `SELECT * FROM provider_applications WHERE applicant_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &apps, query, applicantID)
	return apps, err
}

func (r *repository) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Application, error) {
	var apps []*Application
	query := `
		SELECT * FROM provider_applications
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &apps, query, status, limit, offset)
	return apps, err
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM provider_applications WHERE status = $1`, status)
	return count, err
}

func (r *repository) HasPending(ctx context.Context, applicantID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM provider_applications WHERE applicant_id = $1 AND status = 'PENDING'`, applicantID)
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, a *Application) error {
	a.UpdatedAt = time.Now()
	query := `
		UPDATE provider_applications
		SET business_name = :business_name, description = :description, address = :address,
		    phone = :phone, license_key = :license_key, updated_at = :updated_at
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, a)
	return err
}

func (r *repository) SetReview(ctx context.Context, id uuid.UUID, status Status, reviewerID uuid.UUID, rejectReason string) error {
	query := `
		UPDATE provider_applications
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(),
		    reject_reason = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, reviewerID, rejectReason, id)
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM provider_applications WHERE id = $1`, id)
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
