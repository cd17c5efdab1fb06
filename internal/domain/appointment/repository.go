package appointment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines appointment data access interface
type Repository interface {
	// Create books the slot inside one transaction: the schedule row is
	// locked, capacity and start time re-checked, the appointment inserted
	// and the booked counter incremented. Returns ErrScheduleNotAvailable
	// when the re-check fails.
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Detail, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, status Status) ([]*Detail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	// Cancel marks the appointment cancelled and releases its slot capacity
	// in the same transaction.
	Cancel(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status Status) (int, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new appointment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Appointment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var slot struct {
		StartTime   time.Time `db:"start_time"`
		Capacity    int       `db:"capacity"`
		BookedCount int       `db:"booked_count"`
	}
	err = tx.GetContext(ctx, &slot,
		`SELECT start_time, capacity, booked_count FROM schedules WHERE id = $1 FOR UPDATE`,
		a.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScheduleNotAvailable
		}
		return err
	}

	if slot.BookedCount >= slot.Capacity || !slot.StartTime.After(time.Now()) {
		return ErrScheduleNotAvailable
	}

	query := `
		INSERT INTO appointments (id, schedule_id, user_id, status, note, created_at, updated_at)
		VALUES (:id, :schedule_id, :user_id, :status, :note, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, a); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE schedules SET booked_count = booked_count + 1, updated_at = NOW() WHERE id = $1`,
		a.ScheduleID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	var a Appointment
	err := r.db.GetContext(ctx, &a, `SELECT * FROM appointments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

const detailQuery = `
	SELECT
		a.*,
		sc.start_time, sc.end_time,
		s.id AS service_id, s.name AS service_name, s.price,
		p.id AS provider_id, p.name AS provider_name, p.owner_id,
		u.full_name AS customer_name
	FROM appointments a
	JOIN schedules sc ON sc.id = a.schedule_id
	JOIN services s ON s.id = sc.service_id
	JOIN providers p ON p.id = s.provider_id
	JOIN users u ON u.id = a.user_id
`

func (r *repository) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	var d Detail
	err := r.db.GetContext(ctx, &d, detailQuery+` WHERE a.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Detail, error) {
	var details []*Detail
	query := detailQuery + ` WHERE a.user_id = $1 ORDER BY sc.start_time DESC`
	err := r.db.SelectContext(ctx, &details, query, userID)
	return details, err
}

func (r *repository) ListByProvider(ctx context.Context, providerID uuid.UUID, status Status) ([]*Detail, error) {
	var details []*Detail
	query := detailQuery + `
		WHERE p.id = $1 AND ($2 = '' OR a.status = $2)
		ORDER BY sc.start_time
	`
	err := r.db.SelectContext(ctx, &details, query, providerID, status)
	return details, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
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

func (r *repository) Cancel(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var scheduleID uuid.UUID
	err = tx.GetContext(ctx, &scheduleID,
		`UPDATE appointments SET status = 'CANCELLED', updated_at = NOW()
		 WHERE id = $1 RETURNING schedule_id`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE schedules SET booked_count = GREATEST(booked_count - 1, 0), updated_at = NOW()
		 WHERE id = $1`, scheduleID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM appointments WHERE status = $1`, status)
	return count, err
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments`)
	return count, err
}
