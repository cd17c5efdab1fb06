package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vietlong/booking-api/internal/domain/provider"
)

// Notifier delivers booking events to users. Delivery failures must not fail
// the booking itself.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind, title, message string) error
}

// Service handles appointment business logic
type Service struct {
	repo      Repository
	providers provider.Repository
	notifier  Notifier // nil disables notifications
}

// NewService creates appointment service
func NewService(repo Repository, providers provider.Repository, notifier Notifier) *Service {
	return &Service{repo: repo, providers: providers, notifier: notifier}
}

// Create books a slot for the customer. The repository re-checks the slot
// under a row lock; a full, removed or started slot surfaces as
// ErrScheduleNotAvailable and nothing is written.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateAppointmentRequest) (*Detail, error) {
	now := time.Now()
	a := &Appointment{
		ID:         uuid.New(),
		ScheduleID: req.ScheduleID,
		UserID:     userID,
		Status:     StatusScheduled,
		Note:       sql.NullString{String: req.Note, Valid: req.Note != ""},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	d, err := s.repo.GetDetail(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}

	s.notify(ctx, d.OwnerID, "booking.created", "New booking",
		fmt.Sprintf("%s booked %s on %s", d.CustomerName, d.ServiceName,
			d.StartTime.Format("02 Jan 15:04")))

	return d, nil
}

// ListMine returns the customer's bookings, newest slot first
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*Detail, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetMine returns one of the customer's own bookings
func (s *Service) GetMine(ctx context.Context, id, userID uuid.UUID) (*Detail, error) {
	d, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}
	if d.UserID != userID {
		return nil, ErrNotOwner
	}
	return d, nil
}

// CancelMine cancels the customer's own open booking and frees the slot.
func (s *Service) CancelMine(ctx context.Context, id, userID uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	if a.UserID != userID {
		return ErrNotOwner
	}
	if !CanTransition(a.Status, StatusCancelled) {
		return ErrInvalidTransition
	}

	d, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}

	if d != nil {
		s.notify(ctx, d.OwnerID, "booking.cancelled", "Booking cancelled",
			fmt.Sprintf("%s cancelled %s on %s", d.CustomerName, d.ServiceName,
				d.StartTime.Format("02 Jan 15:04")))
	}
	return nil
}

// ListForProvider returns bookings across a provider's services, optionally
// filtered by status. Only the provider owner may see them.
func (s *Service) ListForProvider(ctx context.Context, ownerID, providerID uuid.UUID, status Status) ([]*Detail, error) {
	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return s.repo.ListByProvider(ctx, providerID, status)
}

// Confirm moves a booking SCHEDULED -> CONFIRMED (provider owner only)
func (s *Service) Confirm(ctx context.Context, id, ownerID uuid.UUID) (*Detail, error) {
	return s.transition(ctx, id, ownerID, StatusConfirmed, "booking.confirmed",
		"Booking confirmed", "Your booking for %s on %s was confirmed")
}

// Complete moves a booking CONFIRMED -> COMPLETED (provider owner only)
func (s *Service) Complete(ctx context.Context, id, ownerID uuid.UUID) (*Detail, error) {
	return s.transition(ctx, id, ownerID, StatusCompleted, "booking.completed",
		"Booking completed", "Your booking for %s on %s was completed")
}

// CancelForProvider lets the provider owner decline an open booking.
func (s *Service) CancelForProvider(ctx context.Context, id, ownerID uuid.UUID) error {
	d, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrNotFound
	}
	if d.OwnerID != ownerID {
		return ErrNotOwner
	}
	if !CanTransition(d.Status, StatusCancelled) {
		return ErrInvalidTransition
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, d.UserID, "booking.cancelled", "Booking cancelled",
		fmt.Sprintf("Your booking for %s on %s was cancelled by the provider",
			d.ServiceName, d.StartTime.Format("02 Jan 15:04")))
	return nil
}

func (s *Service) transition(ctx context.Context, id, ownerID uuid.UUID, to Status, kind, title, messageFormat string) (*Detail, error) {
	d, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}
	if d.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if !CanTransition(d.Status, to) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	d.Status = to

	s.notify(ctx, d.UserID, kind, title,
		fmt.Sprintf(messageFormat, d.ServiceName, d.StartTime.Format("02 Jan 15:04")))

	return d, nil
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, kind, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, kind, title, message); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("Failed to deliver booking notification")
	}
}
