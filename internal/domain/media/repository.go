package media

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const maxAttempts = 3

// Repository defines upload data access interface
type Repository interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, id uuid.UUID) (*Upload, error)
	GetByKey(ctx context.Context, key string) (*Upload, error)
	// ClaimNextUnprocessed picks one unprocessed upload and bumps its attempt
	// counter so concurrent workers never grab the same row.
	ClaimNextUnprocessed(ctx context.Context) (*Upload, error)
	MarkProcessed(ctx context.Context, id uuid.UUID, thumbKey string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new upload repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *Upload) error {
	query := `
		INSERT INTO uploads (id, owner_id, kind, key, content_type, size_bytes, processed, attempts, created_at)
		VALUES (:id, :owner_id, :kind, :key, :content_type, :size_bytes, :processed, :attempts, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, u)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Upload, error) {
	var u Upload
	err := r.db.GetContext(ctx, &u, `SELECT * FROM uploads WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByKey(ctx context.Context, key string) (*Upload, error) {
	var u Upload
	err := r.db.GetContext(ctx, &u, `SELECT * FROM uploads WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) ClaimNextUnprocessed(ctx context.Context) (*Upload, error) {
	query := `
		UPDATE uploads
		SET attempts = attempts + 1
		WHERE id = (
			SELECT id FROM uploads
			WHERE processed = FALSE AND attempts < $1
			ORDER BY created_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING *
	`
	var u Upload
	err := r.db.GetContext(ctx, &u, query, maxAttempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) MarkProcessed(ctx context.Context, id uuid.UUID, thumbKey string) error {
	query := `
		UPDATE uploads
		SET processed = TRUE, thumb_key = $1, processed_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.ExecContext(ctx, query, thumbKey, id)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = $1`, id)
	return err
}
