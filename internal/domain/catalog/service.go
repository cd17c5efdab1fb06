package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/category"
	"github.com/vietlong/booking-api/internal/domain/media"
	"github.com/vietlong/booking-api/internal/domain/provider"
)

// Catalog handles service catalog business logic
type Catalog struct {
	repo       Repository
	providers  provider.Repository
	categories category.Repository
	media      *media.Service
}

// NewCatalog creates catalog service
func NewCatalog(repo Repository, providers provider.Repository, categories category.Repository, mediaSvc *media.Service) *Catalog {
	return &Catalog{repo: repo, providers: providers, categories: categories, media: mediaSvc}
}

// ListPublic returns paginated services browsable without authentication.
// Inactive services and services of suspended providers are excluded.
func (c *Catalog) ListPublic(ctx context.Context, filter PublicFilter) ([]*Detail, int, error) {
	details, err := c.repo.ListPublic(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := c.repo.CountPublic(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// GetPublic returns a single service detail for browsing.
// Hidden services look the same as missing ones to the public.
func (c *Catalog) GetPublic(ctx context.Context, id uuid.UUID) (*Detail, error) {
	d, err := c.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.IsActive || d.ProviderStatus != string(provider.StatusActive) {
		return nil, ErrNotFound
	}
	return d, nil
}

// ListMine returns all services of a provider the user owns, hidden ones included.
func (c *Catalog) ListMine(ctx context.Context, ownerID, providerID uuid.UUID) ([]*Service, error) {
	if _, err := c.ownedProvider(ctx, providerID, ownerID); err != nil {
		return nil, err
	}
	return c.repo.ListByProvider(ctx, providerID)
}

// Create adds a service under a provider the user owns.
func (c *Catalog) Create(ctx context.Context, ownerID, providerID uuid.UUID, req *SaveServiceRequest, imageKey string) (*Service, error) {
	if _, err := c.ownedProvider(ctx, providerID, ownerID); err != nil {
		return nil, err
	}
	if err := c.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Service{
		ID:              uuid.New(),
		ProviderID:      providerID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     sql.NullString{String: req.Description, Valid: req.Description != ""},
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		ImageKey:        sql.NullString{String: imageKey, Valid: imageKey != ""},
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update edits a service the user owns. imageKey is empty when not resent.
func (c *Catalog) Update(ctx context.Context, id, ownerID uuid.UUID, req *SaveServiceRequest, imageKey string) (*Service, error) {
	s, err := c.ownedService(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != s.CategoryID {
		if err := c.checkCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	s.CategoryID = req.CategoryID
	s.Name = req.Name
	s.Description = sql.NullString{String: req.Description, Valid: req.Description != ""}
	s.Price = req.Price
	s.DurationMinutes = req.DurationMinutes
	if imageKey != "" {
		s.ImageKey = sql.NullString{String: imageKey, Valid: true}
	}

	if err := c.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetActive shows or hides a service the user owns.
func (c *Catalog) SetActive(ctx context.Context, id, ownerID uuid.UUID, active bool) error {
	if _, err := c.ownedService(ctx, id, ownerID); err != nil {
		return err
	}
	return c.repo.SetActive(ctx, id, active)
}

// Delete removes a service the user owns. Services with open appointments
// must be hidden instead of deleted.
func (c *Catalog) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if _, err := c.ownedService(ctx, id, ownerID); err != nil {
		return err
	}
	count, err := c.repo.CountAppointments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasAppointments
	}
	return c.repo.Delete(ctx, id)
}

// ListAll returns every service, paginated (admin)
func (c *Catalog) ListAll(ctx context.Context, page, limit int) ([]*Detail, int, error) {
	offset := (page - 1) * limit
	details, err := c.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := c.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (c *Catalog) ownedProvider(ctx context.Context, providerID, ownerID uuid.UUID) (*provider.Provider, error) {
	p, err := c.providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProviderInvalid
	}
	if p.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return p, nil
}

func (c *Catalog) ownedService(ctx context.Context, id, ownerID uuid.UUID) (*Service, error) {
	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotFound
	}
	if _, err := c.ownedProvider(ctx, s.ProviderID, ownerID); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Catalog) checkCategory(ctx context.Context, id uuid.UUID) error {
	cat, err := c.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil || !cat.IsActive {
		return ErrCategoryInvalid
	}
	return nil
}

// ToResponse converts a bare service entity
func (c *Catalog) ToResponse(s *Service) *ServiceResponse {
	resp := &ServiceResponse{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		CategoryID:      s.CategoryID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
	}
	if s.Description.Valid {
		resp.Description = s.Description.String
	}
	if s.ImageKey.Valid {
		resp.ImageURL = c.media.URL(s.ImageKey.String)
	}
	return resp
}

// ToDetailResponse converts a service joined with provider and category names
func (c *Catalog) ToDetailResponse(d *Detail) *ServiceResponse {
	resp := c.ToResponse(&d.Service)
	resp.ProviderName = d.ProviderName
	resp.CategoryName = d.CategoryName
	return resp
}

// ToResponseList converts bare service entities
func (c *Catalog) ToResponseList(services []*Service) []*ServiceResponse {
	out := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, c.ToResponse(s))
	}
	return out
}

// ToDetailResponseList converts joined service rows
func (c *Catalog) ToDetailResponseList(details []*Detail) []*ServiceResponse {
	out := make([]*ServiceResponse, 0, len(details))
	for _, d := range details {
		out = append(out, c.ToDetailResponse(d))
	}
	return out
}
