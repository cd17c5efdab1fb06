package category

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Service handles category business logic
type Service struct {
	repo Repository
}

// NewService creates category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListPublic returns active categories for the storefront
func (s *Service) ListPublic(ctx context.Context) ([]*Category, error) {
	return s.repo.ListActive(ctx)
}

// ListAll returns every category (admin)
func (s *Service) ListAll(ctx context.Context) ([]*Category, error) {
	return s.repo.ListAll(ctx)
}

// Get returns a category by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// Create adds a new category (admin)
func (s *Service) Create(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	now := time.Now()
	c := &Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: sql.NullString{String: req.Description, Valid: req.Description != ""},
		Icon:        sql.NullString{String: req.Icon, Valid: req.Icon != ""},
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update modifies a category (admin)
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != c.Name {
		existing, err := s.repo.GetByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrNameTaken
		}
	}

	c.Name = req.Name
	c.Description = sql.NullString{String: req.Description, Valid: req.Description != ""}
	c.Icon = sql.NullString{String: req.Icon, Valid: req.Icon != ""}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetActive toggles category visibility (admin)
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

// Delete removes a category; rejected while services still reference it
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountServices(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasServices
	}
	return s.repo.Delete(ctx, id)
}
