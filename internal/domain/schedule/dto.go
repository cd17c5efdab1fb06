package schedule

import (
	"time"

	"github.com/google/uuid"
)

// CreateScheduleRequest creates one slot, or a series when repeat is set
type CreateScheduleRequest struct {
	ServiceID   uuid.UUID  `json:"serviceId" validate:"required"`
	StartTime   time.Time  `json:"startTime" validate:"required"`
	EndTime     time.Time  `json:"endTime" validate:"required"`
	Capacity    int        `json:"capacity" validate:"required,min=1,max=500"`
	Repeat      string     `json:"repeat,omitempty" validate:"omitempty,oneof=NONE DAILY WEEKLY"`
	RepeatUntil *time.Time `json:"repeatUntil,omitempty"`
}

// UpdateScheduleRequest edits an unbooked slot
type UpdateScheduleRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	Capacity  int       `json:"capacity" validate:"required,min=1,max=500"`
}

// ScheduleResponse represents a slot returned to the frontend
type ScheduleResponse struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"serviceId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Capacity    int       `json:"capacity"`
	BookedCount int       `json:"bookedCount"`
	Remaining   int       `json:"remaining"`
}

// CreateSeriesResponse reports what a recurring create actually produced.
// Occurrences that collided with existing slots are skipped, not errors.
type CreateSeriesResponse struct {
	Created []*ScheduleResponse `json:"created"`
	Skipped int                 `json:"skipped"`
}

// ToResponse converts a schedule entity
func ToResponse(s *Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:          s.ID,
		ServiceID:   s.ServiceID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Capacity:    s.Capacity,
		BookedCount: s.BookedCount,
		Remaining:   s.Remaining(),
	}
}

// ToResponseList converts a list of schedule entities
func ToResponseList(schedules []*Schedule) []*ScheduleResponse {
	out := make([]*ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, ToResponse(s))
	}
	return out
}
