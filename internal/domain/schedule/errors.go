package schedule

import "errors"

var (
	ErrNotFound         = errors.New("schedule not found")
	ErrNotOwner         = errors.New("not the schedule owner")
	ErrOverlap          = errors.New("schedule overlaps an existing slot")
	ErrHasBookings      = errors.New("schedule already has bookings")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInPast           = errors.New("schedule starts in the past")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
)
