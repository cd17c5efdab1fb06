package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/catalog"
	"github.com/vietlong/booking-api/internal/domain/provider"
)

type fakeScheduleRepo struct {
	schedules map[uuid.UUID]*Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: map[uuid.UUID]*Schedule{}}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s *Schedule) error {
	f.schedules[s.ID] = s
	return nil
}
func (f *fakeScheduleRepo) CreateBatch(ctx context.Context, schedules []*Schedule) error {
	for _, s := range schedules {
		f.schedules[s.ID] = s
	}
	return nil
}
func (f *fakeScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	return f.schedules[id], nil
}
func (f *fakeScheduleRepo) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*Schedule, error) {
	var out []*Schedule
	for _, s := range f.schedules {
		if s.ServiceID == serviceID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeScheduleRepo) ListAvailable(ctx context.Context, serviceID uuid.UUID, after time.Time) ([]*Schedule, error) {
	var out []*Schedule
	for _, s := range f.schedules {
		if s.ServiceID == serviceID && s.StartTime.After(after) && s.Remaining() > 0 {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeScheduleRepo) ListOverlapping(ctx context.Context, serviceID uuid.UUID, start, end time.Time, excludeID uuid.UUID) ([]*Schedule, error) {
	var out []*Schedule
	for _, s := range f.schedules {
		if s.ServiceID == serviceID && s.ID != excludeID && s.Overlaps(start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeScheduleRepo) Update(ctx context.Context, s *Schedule) error {
	f.schedules[s.ID] = s
	return nil
}
func (f *fakeScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.schedules[id] == nil {
		return ErrNotFound
	}
	delete(f.schedules, id)
	return nil
}

type fakeCatalogRepo struct {
	services map[uuid.UUID]*catalog.Service
}

func (f *fakeCatalogRepo) Create(ctx context.Context, s *catalog.Service) error { return nil }
func (f *fakeCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	return f.services[id], nil
}
func (f *fakeCatalogRepo) GetDetail(ctx context.Context, id uuid.UUID) (*catalog.Detail, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ListPublic(ctx context.Context, filter catalog.PublicFilter) ([]*catalog.Detail, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) CountPublic(ctx context.Context, filter catalog.PublicFilter) (int, error) {
	return 0, nil
}
func (f *fakeCatalogRepo) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*catalog.Service, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ListAll(ctx context.Context, limit, offset int) ([]*catalog.Detail, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) Count(ctx context.Context) (int, error)                    { return 0, nil }
func (f *fakeCatalogRepo) Update(ctx context.Context, s *catalog.Service) error      { return nil }
func (f *fakeCatalogRepo) SetActive(ctx context.Context, id uuid.UUID, a bool) error { return nil }
func (f *fakeCatalogRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (f *fakeCatalogRepo) CountAppointments(ctx context.Context, id uuid.UUID) (int, error) {
	return 0, nil
}

type fakeProviderRepo struct {
	providers map[uuid.UUID]*provider.Provider
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *provider.Provider) error { return nil }
func (f *fakeProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	return f.providers[id], nil
}
func (f *fakeProviderRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*provider.Provider, error) {
	return nil, nil
}
func (f *fakeProviderRepo) ListAll(ctx context.Context) ([]*provider.Provider, error) {
	return nil, nil
}
func (f *fakeProviderRepo) ListByStatus(ctx context.Context, status provider.Status) ([]*provider.Provider, error) {
	return nil, nil
}
func (f *fakeProviderRepo) Update(ctx context.Context, p *provider.Provider) error { return nil }
func (f *fakeProviderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status provider.Status) error {
	return nil
}
func (f *fakeProviderRepo) Count(ctx context.Context) (int, error) { return 0, nil }

type testEnv struct {
	svc        *Service
	repo       *fakeScheduleRepo
	ownerID    uuid.UUID
	serviceID  uuid.UUID
	providerID uuid.UUID
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:       newFakeScheduleRepo(),
		ownerID:    uuid.New(),
		serviceID:  uuid.New(),
		providerID: uuid.New(),
	}
	catalogRepo := &fakeCatalogRepo{services: map[uuid.UUID]*catalog.Service{
		env.serviceID: {ID: env.serviceID, ProviderID: env.providerID},
	}}
	providerRepo := &fakeProviderRepo{providers: map[uuid.UUID]*provider.Provider{
		env.providerID: {ID: env.providerID, OwnerID: env.ownerID, Status: provider.StatusActive},
	}}
	env.svc = NewService(env.repo, catalogRepo, providerRepo)
	return env
}

func futureSlot(hours int) (time.Time, time.Time) {
	start := time.Now().Add(time.Duration(hours) * time.Hour).Truncate(time.Minute)
	return start, start.Add(time.Hour)
}

func TestCreateSingleSlotRejectsOverlap(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	start, end := futureSlot(24)

	req := &CreateScheduleRequest{ServiceID: env.serviceID, StartTime: start, EndTime: end, Capacity: 3}
	if _, _, err := env.svc.Create(ctx, env.ownerID, req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	clash := &CreateScheduleRequest{
		ServiceID: env.serviceID,
		StartTime: start.Add(30 * time.Minute),
		EndTime:   end.Add(30 * time.Minute),
		Capacity:  3,
	}
	if _, _, err := env.svc.Create(ctx, env.ownerID, clash); err != ErrOverlap {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestCreateRecurringSkipsConflictingOccurrences(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	start, end := futureSlot(24)

	// Pre-existing slot exactly where the second daily occurrence lands.
	blocker := &Schedule{
		ID:        uuid.New(),
		ServiceID: env.serviceID,
		StartTime: start.Add(24 * time.Hour),
		EndTime:   end.Add(24 * time.Hour),
		Capacity:  1,
	}
	env.repo.Create(ctx, blocker)

	until := start.AddDate(0, 0, 2)
	req := &CreateScheduleRequest{
		ServiceID:   env.serviceID,
		StartTime:   start,
		EndTime:     end,
		Capacity:    3,
		Repeat:      "DAILY",
		RepeatUntil: &until,
	}

	created, skipped, err := env.svc.Create(ctx, env.ownerID, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created slots, got %d", len(created))
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped occurrence, got %d", skipped)
	}
}

func TestCreateRejectsPastAndInvertedSlots(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	req := &CreateScheduleRequest{ServiceID: env.serviceID, StartTime: past, EndTime: past.Add(time.Hour), Capacity: 1}
	if _, _, err := env.svc.Create(ctx, env.ownerID, req); err != ErrInPast {
		t.Fatalf("expected ErrInPast, got %v", err)
	}

	start, _ := futureSlot(24)
	req = &CreateScheduleRequest{ServiceID: env.serviceID, StartTime: start, EndTime: start, Capacity: 1}
	if _, _, err := env.svc.Create(ctx, env.ownerID, req); err != ErrInvalidTimeRange {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestCreateRequiresServiceOwnership(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	start, end := futureSlot(24)

	req := &CreateScheduleRequest{ServiceID: env.serviceID, StartTime: start, EndTime: end, Capacity: 1}
	if _, _, err := env.svc.Create(ctx, uuid.New(), req); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestBookedSlotCannotBeEditedOrDeleted(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	start, end := futureSlot(24)

	booked := &Schedule{
		ID:          uuid.New(),
		ServiceID:   env.serviceID,
		StartTime:   start,
		EndTime:     end,
		Capacity:    3,
		BookedCount: 1,
	}
	env.repo.Create(ctx, booked)

	edit := &UpdateScheduleRequest{StartTime: start.Add(time.Hour), EndTime: end.Add(time.Hour), Capacity: 3}
	if _, err := env.svc.Update(ctx, booked.ID, env.ownerID, edit); err != ErrHasBookings {
		t.Fatalf("expected ErrHasBookings on update, got %v", err)
	}
	if err := env.svc.Delete(ctx, booked.ID, env.ownerID); err != ErrHasBookings {
		t.Fatalf("expected ErrHasBookings on delete, got %v", err)
	}
}

func TestListAvailableExcludesFullAndPastSlots(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	start, end := futureSlot(24)
	open := &Schedule{ID: uuid.New(), ServiceID: env.serviceID, StartTime: start, EndTime: end, Capacity: 2, BookedCount: 1}
	full := &Schedule{ID: uuid.New(), ServiceID: env.serviceID, StartTime: start.Add(2 * time.Hour), EndTime: end.Add(2 * time.Hour), Capacity: 1, BookedCount: 1}
	past := &Schedule{ID: uuid.New(), ServiceID: env.serviceID, StartTime: time.Now().Add(-2 * time.Hour), EndTime: time.Now().Add(-time.Hour), Capacity: 5}

	env.repo.Create(ctx, open)
	env.repo.Create(ctx, full)
	env.repo.Create(ctx, past)

	available, err := env.svc.ListAvailable(ctx, env.serviceID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(available) != 1 || available[0].ID != open.ID {
		t.Fatalf("expected only the open future slot, got %d slots", len(available))
	}
}
