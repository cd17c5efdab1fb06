package appointment

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")
	ErrNotOwner = errors.New("not the appointment owner")

	// ErrScheduleNotAvailable is the booking conflict: the slot filled up,
	// was removed, or already started between the customer picking it and
	// submitting. Handlers surface it as a 409 the frontend recovers from
	// by re-fetching availability.
	ErrScheduleNotAvailable = errors.New("schedule not available")

	ErrInvalidTransition = errors.New("invalid status transition")
)
