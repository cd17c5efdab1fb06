package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/provider"
)

type fakeSlot struct {
	startTime   time.Time
	capacity    int
	bookedCount int
}

type fakeAppointmentRepo struct {
	slots        map[uuid.UUID]*fakeSlot
	appointments map[uuid.UUID]*Appointment

	// joined-row fields every detail carries
	providerID uuid.UUID
	ownerID    uuid.UUID
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		slots:        map[uuid.UUID]*fakeSlot{},
		appointments: map[uuid.UUID]*Appointment{},
	}
}

// Create mirrors the locked re-check the real repository does in SQL.
func (f *fakeAppointmentRepo) Create(ctx context.Context, a *Appointment) error {
	slot := f.slots[a.ScheduleID]
	if slot == nil {
		return ErrScheduleNotAvailable
	}
	if slot.bookedCount >= slot.capacity || !slot.startTime.After(time.Now()) {
		return ErrScheduleNotAvailable
	}
	f.appointments[a.ID] = a
	slot.bookedCount++
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return f.appointments[id], nil
}

func (f *fakeAppointmentRepo) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	a := f.appointments[id]
	if a == nil {
		return nil, nil
	}
	d := &Detail{
		Appointment:  *a,
		ServiceName:  "Haircut",
		ProviderID:   f.providerID,
		OwnerID:      f.ownerID,
		CustomerName: "Nguyen Van A",
	}
	if slot := f.slots[a.ScheduleID]; slot != nil {
		d.StartTime = slot.startTime
	}
	return d, nil
}

func (f *fakeAppointmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Detail, error) {
	var out []*Detail
	for id, a := range f.appointments {
		if a.UserID == userID {
			d, _ := f.GetDetail(ctx, id)
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByProvider(ctx context.Context, providerID uuid.UUID, status Status) ([]*Detail, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	a := f.appointments[id]
	if a == nil {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	a := f.appointments[id]
	if a == nil {
		return ErrNotFound
	}
	a.Status = StatusCancelled
	if slot := f.slots[a.ScheduleID]; slot != nil && slot.bookedCount > 0 {
		slot.bookedCount--
	}
	return nil
}

func (f *fakeAppointmentRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	count := 0
	for _, a := range f.appointments {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeAppointmentRepo) Count(ctx context.Context) (int, error) {
	return len(f.appointments), nil
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

type sentNotification struct {
	userID uuid.UUID
	kind   string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, kind, title, message string) error {
	f.sent = append(f.sent, sentNotification{userID: userID, kind: kind})
	return nil
}

type bookingEnv struct {
	svc        *Service
	repo       *fakeAppointmentRepo
	notifier   *fakeNotifier
	scheduleID uuid.UUID
	providerID uuid.UUID
	ownerID    uuid.UUID
}

func newBookingEnv(capacity int) *bookingEnv {
	env := &bookingEnv{
		repo:       newFakeAppointmentRepo(),
		notifier:   &fakeNotifier{},
		scheduleID: uuid.New(),
		providerID: uuid.New(),
		ownerID:    uuid.New(),
	}
	env.repo.slots[env.scheduleID] = &fakeSlot{
		startTime: time.Now().Add(24 * time.Hour),
		capacity:  capacity,
	}
	env.repo.providerID = env.providerID
	env.repo.ownerID = env.ownerID
	providers := &fakeProviderRepo{providers: map[uuid.UUID]*provider.Provider{
		env.providerID: {ID: env.providerID, OwnerID: env.ownerID},
	}}
	env.svc = NewService(env.repo, providers, env.notifier)
	return env
}

func (env *bookingEnv) book(t *testing.T, userID uuid.UUID) *Detail {
	t.Helper()
	d, err := env.svc.Create(context.Background(), userID, &CreateAppointmentRequest{
		ScheduleID: env.scheduleID,
		Note:       "please be on time",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	return d
}

func TestCreateBooksSlotAndReturnsAppointment(t *testing.T) {
	env := newBookingEnv(2)
	userID := uuid.New()

	d := env.book(t, userID)

	if d.ID == uuid.Nil {
		t.Fatal("expected an appointment ID")
	}
	if d.Status != StatusScheduled {
		t.Fatalf("expected SCHEDULED, got %s", d.Status)
	}
	if env.repo.slots[env.scheduleID].bookedCount != 1 {
		t.Fatalf("expected booked count 1, got %d", env.repo.slots[env.scheduleID].bookedCount)
	}
}

func TestCreateFullSlotReturnsScheduleNotAvailable(t *testing.T) {
	env := newBookingEnv(1)

	env.book(t, uuid.New())

	_, err := env.svc.Create(context.Background(), uuid.New(), &CreateAppointmentRequest{
		ScheduleID: env.scheduleID,
	})
	if err != ErrScheduleNotAvailable {
		t.Fatalf("expected ErrScheduleNotAvailable, got %v", err)
	}

	// The failed attempt must leave nothing behind.
	if len(env.repo.appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(env.repo.appointments))
	}
	if env.repo.slots[env.scheduleID].bookedCount != 1 {
		t.Fatal("failed booking must not change the counter")
	}
}

func TestCreateStartedSlotReturnsScheduleNotAvailable(t *testing.T) {
	env := newBookingEnv(5)
	env.repo.slots[env.scheduleID].startTime = time.Now().Add(-time.Minute)

	_, err := env.svc.Create(context.Background(), uuid.New(), &CreateAppointmentRequest{
		ScheduleID: env.scheduleID,
	})
	if err != ErrScheduleNotAvailable {
		t.Fatalf("expected ErrScheduleNotAvailable, got %v", err)
	}
}

func TestCreateNotifiesProviderOwner(t *testing.T) {
	env := newBookingEnv(2)
	userID := uuid.New()

	env.book(t, userID)

	if len(env.notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(env.notifier.sent))
	}
	if env.notifier.sent[0].kind != "booking.created" {
		t.Fatalf("unexpected notification kind %s", env.notifier.sent[0].kind)
	}
	if env.notifier.sent[0].userID != env.ownerID {
		t.Fatal("notification must go to the provider owner")
	}
}

func TestCancelReleasesCapacity(t *testing.T) {
	env := newBookingEnv(1)
	userID := uuid.New()

	d := env.book(t, userID)

	// Slot is full now; a second booking fails.
	if _, err := env.svc.Create(context.Background(), uuid.New(), &CreateAppointmentRequest{ScheduleID: env.scheduleID}); err != ErrScheduleNotAvailable {
		t.Fatalf("expected full slot, got %v", err)
	}

	if err := env.svc.CancelMine(context.Background(), d.ID, userID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if env.repo.slots[env.scheduleID].bookedCount != 0 {
		t.Fatal("cancel must release the slot")
	}

	// The freed slot is bookable again.
	env.book(t, uuid.New())
}

func TestCancelMineChecksOwnership(t *testing.T) {
	env := newBookingEnv(2)
	userID := uuid.New()

	d := env.book(t, userID)

	if err := env.svc.CancelMine(context.Background(), d.ID, uuid.New()); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestStatusTransitionsAreForwardOnly(t *testing.T) {
	env := newBookingEnv(2)
	userID := uuid.New()

	d := env.book(t, userID)

	// COMPLETED requires CONFIRMED first.
	if _, err := env.svc.Complete(context.Background(), d.ID, env.ownerID); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	confirmed, err := env.svc.Confirm(context.Background(), d.ID, env.ownerID)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", confirmed.Status)
	}

	completed, err := env.svc.Complete(context.Background(), d.ID, env.ownerID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", completed.Status)
	}

	// Nothing moves out of COMPLETED.
	if err := env.svc.CancelMine(context.Background(), d.ID, userID); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition after completion, got %v", err)
	}
}

func TestProviderTransitionsRequireOwnership(t *testing.T) {
	env := newBookingEnv(2)
	userID := uuid.New()

	d := env.book(t, userID)

	if _, err := env.svc.Confirm(context.Background(), d.ID, uuid.New()); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestGroupByDateIsLossless(t *testing.T) {
	day1 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)

	details := []*Detail{
		{Appointment: Appointment{ID: uuid.New()}, StartTime: day1},
		{Appointment: Appointment{ID: uuid.New()}, StartTime: day2},
		{Appointment: Appointment{ID: uuid.New()}, StartTime: day1.Add(2 * time.Hour)},
	}

	groups := GroupByDate(details)
	if len(groups) != 2 {
		t.Fatalf("expected 2 date groups, got %d", len(groups))
	}

	total := 0
	seen := map[uuid.UUID]bool{}
	for _, g := range groups {
		for _, a := range g.Appointments {
			total++
			if seen[a.ID] {
				t.Fatal("appointment appears in more than one group")
			}
			seen[a.ID] = true
			if a.StartTime.Format("2006-01-02") != g.Date {
				t.Fatalf("appointment on %s grouped under %s",
					a.StartTime.Format("2006-01-02"), g.Date)
			}
		}
	}
	if total != len(details) {
		t.Fatalf("grouping lost appointments: %d != %d", total, len(details))
	}
}
