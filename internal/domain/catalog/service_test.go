package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/category"
	"github.com/vietlong/booking-api/internal/domain/provider"
)

type fakeCatalogRepo struct {
	services     map[uuid.UUID]*Service
	appointments map[uuid.UUID]int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		services:     map[uuid.UUID]*Service{},
		appointments: map[uuid.UUID]int{},
	}
}

func (f *fakeCatalogRepo) Create(ctx context.Context, s *Service) error {
	f.services[s.ID] = s
	return nil
}
func (f *fakeCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	return f.services[id], nil
}
func (f *fakeCatalogRepo) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	s := f.services[id]
	if s == nil {
		return nil, nil
	}
	return &Detail{Service: *s, ProviderStatus: string(provider.StatusActive)}, nil
}
func (f *fakeCatalogRepo) ListPublic(ctx context.Context, filter PublicFilter) ([]*Detail, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) CountPublic(ctx context.Context, filter PublicFilter) (int, error) {
	return 0, nil
}
func (f *fakeCatalogRepo) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Service, error) {
	var out []*Service
	for _, s := range f.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeCatalogRepo) ListAll(ctx context.Context, limit, offset int) ([]*Detail, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) Count(ctx context.Context) (int, error) { return len(f.services), nil }
func (f *fakeCatalogRepo) Update(ctx context.Context, s *Service) error {
	f.services[s.ID] = s
	return nil
}
func (f *fakeCatalogRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if s := f.services[id]; s != nil {
		s.IsActive = active
	}
	return nil
}
func (f *fakeCatalogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.services, id)
	return nil
}
func (f *fakeCatalogRepo) CountAppointments(ctx context.Context, id uuid.UUID) (int, error) {
	return f.appointments[id], nil
}

type fakeProviderRepo struct {
	providers map[uuid.UUID]*provider.Provider
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *provider.Provider) error {
	f.providers[p.ID] = p
	return nil
}
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

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*category.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *category.Category) error { return nil }
func (f *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return f.categories[id], nil
}
func (f *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) ListAll(ctx context.Context) ([]*category.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) ListActive(ctx context.Context) ([]*category.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) Update(ctx context.Context, c *category.Category) error { return nil }
func (f *fakeCategoryRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}
func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeCategoryRepo) CountServices(ctx context.Context, id uuid.UUID) (int, error) {
	return 0, nil
}

type catalogEnv struct {
	catalog    *Catalog
	repo       *fakeCatalogRepo
	ownerID    uuid.UUID
	providerID uuid.UUID
	categoryID uuid.UUID
}

func newCatalogEnv() *catalogEnv {
	env := &catalogEnv{
		repo:       newFakeCatalogRepo(),
		ownerID:    uuid.New(),
		providerID: uuid.New(),
		categoryID: uuid.New(),
	}

	providers := &fakeProviderRepo{providers: map[uuid.UUID]*provider.Provider{
		env.providerID: {ID: env.providerID, OwnerID: env.ownerID, Status: provider.StatusActive},
	}}
	categories := &fakeCategoryRepo{categories: map[uuid.UUID]*category.Category{
		env.categoryID: {ID: env.categoryID, Name: "Haircut", IsActive: true},
	}}

	env.catalog = NewCatalog(env.repo, providers, categories, nil)
	return env
}

func (e *catalogEnv) saveRequest() *SaveServiceRequest {
	return &SaveServiceRequest{
		CategoryID:      e.categoryID,
		Name:            "Men's haircut",
		Price:           150000,
		DurationMinutes: 45,
	}
}

func TestCreateRejectsForeignProvider(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()

	_, err := env.catalog.Create(ctx, uuid.New(), env.providerID, env.saveRequest(), "")
	if err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if len(env.repo.services) != 0 {
		t.Fatal("no service should have been created")
	}
}

func TestCreateRejectsInactiveCategory(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()

	req := env.saveRequest()
	req.CategoryID = uuid.New()

	_, err := env.catalog.Create(ctx, env.ownerID, env.providerID, req, "")
	if err != ErrCategoryInvalid {
		t.Fatalf("expected ErrCategoryInvalid, got %v", err)
	}
}

func TestDeleteRefusedWhileAppointmentsExist(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()

	s, err := env.catalog.Create(ctx, env.ownerID, env.providerID, env.saveRequest(), "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	env.repo.appointments[s.ID] = 2

	if err := env.catalog.Delete(ctx, s.ID, env.ownerID); err != ErrHasAppointments {
		t.Fatalf("expected ErrHasAppointments, got %v", err)
	}
	if env.repo.services[s.ID] == nil {
		t.Fatal("service should still exist")
	}

	env.repo.appointments[s.ID] = 0
	if err := env.catalog.Delete(ctx, s.ID, env.ownerID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestGetPublicHidesInactiveService(t *testing.T) {
	env := newCatalogEnv()
	ctx := context.Background()

	s, err := env.catalog.Create(ctx, env.ownerID, env.providerID, env.saveRequest(), "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := env.catalog.GetPublic(ctx, s.ID); err != nil {
		t.Fatalf("active service should be visible: %v", err)
	}

	if err := env.catalog.SetActive(ctx, s.ID, env.ownerID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := env.catalog.GetPublic(ctx, s.ID); err != ErrNotFound {
		t.Fatalf("hidden service should look missing, got %v", err)
	}
}
