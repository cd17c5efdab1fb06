package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Schedule represents a bookable time slot for a service (matches schedules table).
// booked_count never exceeds capacity; the appointment transaction enforces it
// under a row lock.
type Schedule struct {
	ID          uuid.UUID `db:"id"`
	ServiceID   uuid.UUID `db:"service_id"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	Capacity    int       `db:"capacity"`
	BookedCount int       `db:"booked_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Remaining returns how many more appointments the slot can take
func (s *Schedule) Remaining() int {
	return s.Capacity - s.BookedCount
}

// IsBooked reports whether any appointment holds the slot
func (s *Schedule) IsBooked() bool {
	return s.BookedCount > 0
}

// Overlaps checks the slot against a half-open [start, end) interval.
// Touching endpoints do not conflict.
func (s *Schedule) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}
