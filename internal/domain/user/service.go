package user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/pkg/password"
)

// Service handles user profile business logic
type Service struct {
	repo Repository
}

// NewService creates user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a user by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateProfile updates the mutable profile fields
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	u.FullName = req.FullName
	u.Phone = sql.NullString{String: req.Phone, Valid: req.Phone != ""}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, req *ChangePasswordRequest) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !password.Verify(req.CurrentPassword, u.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

// SetAvatar stores the avatar storage key on the user
func (s *Service) SetAvatar(ctx context.Context, id uuid.UUID, avatarKey string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.UpdateAvatar(ctx, u.ID, avatarKey)
}
