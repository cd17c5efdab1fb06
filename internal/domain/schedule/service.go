package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vietlong/booking-api/internal/domain/catalog"
	"github.com/vietlong/booking-api/internal/domain/provider"
)

// Service handles schedule business logic
type Service struct {
	repo      Repository
	services  catalog.Repository
	providers provider.Repository
}

// NewService creates schedule service
func NewService(repo Repository, services catalog.Repository, providers provider.Repository) *Service {
	return &Service{repo: repo, services: services, providers: providers}
}

// ListAvailable returns future slots of a service that still have room,
// ordered by start time. This is the public browsing feed.
func (s *Service) ListAvailable(ctx context.Context, serviceID uuid.UUID) ([]*Schedule, error) {
	return s.repo.ListAvailable(ctx, serviceID, time.Now())
}

// Get returns one slot. Used by the booking flow to re-check a slot the
// client still holds on screen.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	sched, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, ErrNotFound
	}
	return sched, nil
}

// ListByService returns all slots of a service for its owner, past and full
// ones included.
func (s *Service) ListByService(ctx context.Context, ownerID, serviceID uuid.UUID) ([]*Schedule, error) {
	if err := s.checkServiceOwner(ctx, serviceID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByService(ctx, serviceID)
}

// Create adds one slot, or a recurring series when repeat is set. Occurrences
// that would overlap an existing slot are skipped; a single non-repeating slot
// that overlaps is an error instead.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateScheduleRequest) ([]*Schedule, int, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, 0, ErrInvalidTimeRange
	}
	if req.StartTime.Before(time.Now()) {
		return nil, 0, ErrInPast
	}
	if err := s.checkServiceOwner(ctx, req.ServiceID, ownerID); err != nil {
		return nil, 0, err
	}

	rec := RecurrenceNone
	if req.Repeat != "" {
		rec = Recurrence(req.Repeat)
	}
	until := req.StartTime
	if req.RepeatUntil != nil {
		until = *req.RepeatUntil
	}

	occurrences := Expand(req.StartTime, req.EndTime, rec, until)

	now := time.Now()
	var created []*Schedule
	skipped := 0
	for _, occ := range occurrences {
		conflicts, err := s.repo.ListOverlapping(ctx, req.ServiceID, occ.Start, occ.End, uuid.Nil)
		if err != nil {
			return nil, 0, err
		}
		if len(conflicts) > 0 {
			if rec == RecurrenceNone {
				return nil, 0, ErrOverlap
			}
			skipped++
			continue
		}
		created = append(created, &Schedule{
			ID:        uuid.New(),
			ServiceID: req.ServiceID,
			StartTime: occ.Start,
			EndTime:   occ.End,
			Capacity:  req.Capacity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if len(created) > 0 {
		if err := s.repo.CreateBatch(ctx, created); err != nil {
			return nil, 0, err
		}
	}

	if skipped > 0 {
		log.Debug().
			Str("service_id", req.ServiceID.String()).
			Int("created", len(created)).
			Int("skipped", skipped).
			Msg("Recurring schedule expanded with conflicts skipped")
	}

	return created, skipped, nil
}

// Update edits a slot. Booked slots are frozen so customers keep the time
// they reserved.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, req *UpdateScheduleRequest) (*Schedule, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	sched, err := s.ownedSchedule(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if sched.IsBooked() {
		return nil, ErrHasBookings
	}

	conflicts, err := s.repo.ListOverlapping(ctx, sched.ServiceID, req.StartTime, req.EndTime, id)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrOverlap
	}

	sched.StartTime = req.StartTime
	sched.EndTime = req.EndTime
	sched.Capacity = req.Capacity

	if err := s.repo.Update(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// Delete removes an unbooked slot.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	sched, err := s.ownedSchedule(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if sched.IsBooked() {
		return ErrHasBookings
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ownedSchedule(ctx context.Context, id, ownerID uuid.UUID) (*Schedule, error) {
	sched, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, ErrNotFound
	}
	if err := s.checkServiceOwner(ctx, sched.ServiceID, ownerID); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *Service) checkServiceOwner(ctx context.Context, serviceID, ownerID uuid.UUID) error {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrNotFound
	}
	p, err := s.providers.GetByID(ctx, svc.ProviderID)
	if err != nil {
		return err
	}
	if p == nil || p.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}
