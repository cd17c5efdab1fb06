package provider

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/media"
)

// Service handles provider business logic
type Service struct {
	repo  Repository
	media *media.Service
}

// NewService creates provider service
func NewService(repo Repository, mediaSvc *media.Service) *Service {
	return &Service{repo: repo, media: mediaSvc}
}

// Get returns a provider by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Provider, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// ListMine returns providers owned by the user
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*Provider, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// ListAll returns every provider (admin)
func (s *Service) ListAll(ctx context.Context) ([]*Provider, error) {
	return s.repo.ListAll(ctx)
}

// ListByStatus returns providers filtered by status (admin)
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]*Provider, error) {
	return s.repo.ListByStatus(ctx, status)
}

// Update modifies a provider's profile; only the owner may do so.
// logoKey / bannerKey are empty when the corresponding file was not resent.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, req *UpdateProviderRequest, logoKey, bannerKey string) (*Provider, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	p.Name = req.Name
	p.Description = sql.NullString{String: req.Description, Valid: req.Description != ""}
	p.Address = req.Address
	p.Phone = req.Phone
	if logoKey != "" {
		p.LogoKey = sql.NullString{String: logoKey, Valid: true}
	}
	if bannerKey != "" {
		p.BannerKey = sql.NullString{String: bannerKey, Valid: true}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ChangeStatus sets provider status (admin)
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, Status(status))
}

// ToResponse converts a provider entity, resolving stored image keys to URLs
func (s *Service) ToResponse(p *Provider) *ProviderResponse {
	resp := &ProviderResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Address:   p.Address,
		Phone:     p.Phone,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
	if p.Description.Valid {
		resp.Description = p.Description.String
	}
	if p.LogoKey.Valid {
		resp.LogoURL = s.media.URL(p.LogoKey.String)
	}
	if p.BannerKey.Valid {
		resp.BannerURL = s.media.URL(p.BannerKey.String)
	}
	return resp
}

// ToResponseList converts a list of provider entities
func (s *Service) ToResponseList(providers []*Provider) []*ProviderResponse {
	out := make([]*ProviderResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, s.ToResponse(p))
	}
	return out
}
