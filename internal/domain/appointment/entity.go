package appointment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents appointment status (matches appointment_status enum)
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// IsValidStatus checks a status string coming from query params
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition enforces the forward-only status lifecycle.
// SCHEDULED -> CONFIRMED -> COMPLETED, with CANCELLED reachable from the
// two open states.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusScheduled:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// Appointment represents a booked slot (matches appointments table)
type Appointment struct {
	ID         uuid.UUID      `db:"id"`
	ScheduleID uuid.UUID      `db:"schedule_id"`
	UserID     uuid.UUID      `db:"user_id"`
	Status     Status         `db:"status"`
	Note       sql.NullString `db:"note"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// IsOpen reports whether the appointment still occupies schedule capacity
func (a *Appointment) IsOpen() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// Detail is an appointment joined with what lists and notifications need
type Detail struct {
	Appointment
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	ServiceID    uuid.UUID `db:"service_id"`
	ServiceName  string    `db:"service_name"`
	Price        int64     `db:"price"`
	ProviderID   uuid.UUID `db:"provider_id"`
	ProviderName string    `db:"provider_name"`
	OwnerID      uuid.UUID `db:"owner_id"`
	CustomerName string    `db:"customer_name"`
}
