package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/provider"
	"github.com/vietlong/booking-api/internal/domain/user"
)

type fakeAppRepo struct {
	apps map[uuid.UUID]*Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: map[uuid.UUID]*Application{}}
}

func (f *fakeAppRepo) Create(ctx context.Context, a *Application) error {
	f.apps[a.ID] = a
	return nil
}
func (f *fakeAppRepo) GetByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	return f.apps[id], nil
}
func (f *fakeAppRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*Application, error) {
	var out []*Application
	for _, a := range f.apps {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeAppRepo) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Application, error) {
	var out []*Application
	for _, a := range f.apps {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeAppRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	count := 0
	for _, a := range f.apps {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}
func (f *fakeAppRepo) HasPending(ctx context.Context, applicantID uuid.UUID) (bool, error) {
	for _, a := range f.apps {
		if a.ApplicantID == applicantID && a.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeAppRepo) Update(ctx context.Context, a *Application) error {
	f.apps[a.ID] = a
	return nil
}
func (f *fakeAppRepo) SetReview(ctx context.Context, id uuid.UUID, status Status, reviewerID uuid.UUID, rejectReason string) error {
	a := f.apps[id]
	if a == nil {
		return ErrNotFound
	}
	a.Status = status
	a.ReviewedBy = uuid.NullUUID{UUID: reviewerID, Valid: true}
	a.ReviewedAt.Time = time.Now()
	a.ReviewedAt.Valid = true
	if rejectReason != "" {
		a.RejectReason.String = rejectReason
		a.RejectReason.Valid = true
	}
	return nil
}
func (f *fakeAppRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.apps[id] == nil {
		return ErrNotFound
	}
	delete(f.apps, id)
	return nil
}

type fakeUserRepo struct {
	roles map[uuid.UUID]user.Role
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error                 { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)  { return nil, nil }
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count(ctx context.Context) (int, error) { return 0, nil }
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}
func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, key string) error { return nil }
func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	f.roles[id] = role
	return nil
}
func (f *fakeUserRepo) UpdateBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	return nil
}
func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, ip string) error {
	return nil
}

type fakeProviderRepo struct {
	created []*provider.Provider
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *provider.Provider) error {
	f.created = append(f.created, p)
	return nil
}
func (f *fakeProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	return nil, nil
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

func newTestService() (*Service, *fakeAppRepo, *fakeUserRepo, *fakeProviderRepo) {
	apps := newFakeAppRepo()
	users := &fakeUserRepo{roles: map[uuid.UUID]user.Role{}}
	providers := &fakeProviderRepo{}
	return NewService(apps, users, providers, nil), apps, users, providers
}

func TestSubmitRejectsSecondPendingApplication(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	applicant := uuid.New()

	req := &SubmitApplicationRequest{BusinessName: "Spa An Nhien", Address: "12 Le Loi", Phone: "0901234567"}
	if _, err := svc.Submit(ctx, applicant, req, ""); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.Submit(ctx, applicant, req, ""); err != ErrAlreadyPending {
		t.Fatalf("expected ErrAlreadyPending, got %v", err)
	}
}

func TestApproveCreatesProviderAndPromotesApplicant(t *testing.T) {
	svc, _, users, providers := newTestService()
	ctx := context.Background()
	applicant := uuid.New()
	admin := uuid.New()

	a, err := svc.Submit(ctx, applicant, &SubmitApplicationRequest{
		BusinessName: "Spa An Nhien", Address: "12 Le Loi", Phone: "0901234567",
	}, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	p, err := svc.Approve(ctx, a.ID, admin)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if len(providers.created) != 1 {
		t.Fatalf("expected 1 provider created, got %d", len(providers.created))
	}
	if p.OwnerID != applicant {
		t.Fatal("provider owner must be the applicant")
	}
	if p.Name != "Spa An Nhien" {
		t.Fatalf("provider name not carried over, got %q", p.Name)
	}
	if users.roles[applicant] != user.RoleProvider {
		t.Fatalf("expected applicant promoted to PROVIDER, got %s", users.roles[applicant])
	}
}

func TestApproveRefusesReviewedApplication(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	applicant := uuid.New()
	admin := uuid.New()

	a, _ := svc.Submit(ctx, applicant, &SubmitApplicationRequest{
		BusinessName: "Spa", Address: "A", Phone: "0901234567",
	}, "")

	if err := svc.Reject(ctx, a.ID, admin, "incomplete license"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Approve(ctx, a.ID, admin); err != ErrAlreadyReviewed {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestRejectStoresReason(t *testing.T) {
	svc, apps, _, _ := newTestService()
	ctx := context.Background()
	applicant := uuid.New()
	admin := uuid.New()

	a, _ := svc.Submit(ctx, applicant, &SubmitApplicationRequest{
		BusinessName: "Spa", Address: "A", Phone: "0901234567",
	}, "")

	if err := svc.Reject(ctx, a.ID, admin, "incomplete license"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	stored := apps.apps[a.ID]
	if stored.Status != StatusRejected {
		t.Fatalf("expected REJECTED, got %s", stored.Status)
	}
	if !stored.RejectReason.Valid || stored.RejectReason.String != "incomplete license" {
		t.Fatal("reject reason not stored")
	}
}

func TestUpdateOnlyByApplicantWhilePending(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	applicant := uuid.New()
	stranger := uuid.New()
	admin := uuid.New()

	a, _ := svc.Submit(ctx, applicant, &SubmitApplicationRequest{
		BusinessName: "Spa", Address: "A", Phone: "0901234567",
	}, "")

	edit := &SubmitApplicationRequest{BusinessName: "Spa Moi", Address: "B", Phone: "0901234567"}

	if _, err := svc.UpdateMine(ctx, a.ID, stranger, edit, ""); err != ErrNotApplicant {
		t.Fatalf("expected ErrNotApplicant, got %v", err)
	}

	updated, err := svc.UpdateMine(ctx, a.ID, applicant, edit, "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.BusinessName != "Spa Moi" {
		t.Fatal("update not applied")
	}

	if _, err := svc.Approve(ctx, a.ID, admin); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := svc.UpdateMine(ctx, a.ID, applicant, edit, ""); err != ErrAlreadyReviewed {
		t.Fatalf("expected ErrAlreadyReviewed after review, got %v", err)
	}
}
