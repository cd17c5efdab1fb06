package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines schedule data access interface
type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	CreateBatch(ctx context.Context, schedules []*Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]*Schedule, error)
	ListAvailable(ctx context.Context, serviceID uuid.UUID, after time.Time) ([]*Schedule, error)
	ListOverlapping(ctx context.Context, serviceID uuid.UUID, start, end time.Time, excludeID uuid.UUID) ([]*Schedule, error)
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new schedule repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const insertQuery = `
	INSERT INTO schedules (id, service_id, start_time, end_time, capacity, booked_count, created_at, updated_at)
	VALUES (:id, :service_id, :start_time, :end_time, :capacity, :booked_count, :created_at, :updated_at)
`

func (r *repository) Create(ctx context.Context, s *Schedule) error {
	_, err := r.db.NamedExecContext(ctx, insertQuery, s)
	return err
}

// CreateBatch inserts a recurring series atomically.
func (r *repository) CreateBatch(ctx context.Context, schedules []*Schedule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range schedules {
		if _, err := tx.NamedExecContext(ctx, insertQuery, s); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	var s Schedule
	err := r.db.GetContext(ctx, &s, `SELECT * FROM schedules WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*Schedule, error) {
	var schedules []*Schedule
	query := `SELECT * FROM schedules WHERE service_id = $1 ORDER BY start_time`
	err := r.db.SelectContext(ctx, &schedules, query, serviceID)
	return schedules, err
}

func (r *repository) ListAvailable(ctx context.Context, serviceID uuid.UUID, after time.Time) ([]*Schedule, error) {
	var schedules []*Schedule
	query := `
		SELECT * FROM schedules
		WHERE service_id = $1 AND start_time > $2 AND booked_count < capacity
		ORDER BY start_time
	`
	err := r.db.SelectContext(ctx, &schedules, query, serviceID, after)
	return schedules, err
}

// ListOverlapping finds slots of the service intersecting the half-open
// [start, end) interval. excludeID skips the slot being edited.
func (r *repository) ListOverlapping(ctx context.Context, serviceID uuid.UUID, start, end time.Time, excludeID uuid.UUID) ([]*Schedule, error) {
	var schedules []*Schedule
	query := `
		SELECT * FROM schedules
		WHERE service_id = $1 AND start_time < $3 AND end_time > $2 AND id != $4
	`
	err := r.db.SelectContext(ctx, &schedules, query, serviceID, start, end, excludeID)
	return schedules, err
}

func (r *repository) Update(ctx context.Context, s *Schedule) error {
	s.UpdatedAt = time.Now()
	query := `
		UPDATE schedules
		SET start_time = :start_time, end_time = :end_time, capacity = :capacity, updated_at = :updated_at
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, s)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
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
