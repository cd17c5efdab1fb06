package admin

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vietlong/booking-api/internal/domain/application"
	"github.com/vietlong/booking-api/internal/domain/appointment"
	"github.com/vietlong/booking-api/internal/domain/catalog"
	"github.com/vietlong/booking-api/internal/domain/provider"
	"github.com/vietlong/booking-api/internal/domain/user"
	"github.com/vietlong/booking-api/internal/pkg/password"
)

// Service aggregates cross-domain data for the admin panel
type Service struct {
	users        user.Repository
	providers    provider.Repository
	services     catalog.Repository
	appointments appointment.Repository
	applications application.Repository
}

// NewService creates admin service
func NewService(users user.Repository, providers provider.Repository, services catalog.Repository,
	appointments appointment.Repository, applications application.Repository) *Service {
	return &Service{
		users:        users,
		providers:    providers,
		services:     services,
		appointments: appointments,
		applications: applications,
	}
}

// Dashboard collects the counters the admin landing page shows
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{AppointmentsByState: map[string]int{}}

	var err error
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Providers, err = s.providers.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Services, err = s.services.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Appointments, err = s.appointments.Count(ctx); err != nil {
		return nil, err
	}
	for _, status := range []appointment.Status{
		appointment.StatusScheduled,
		appointment.StatusConfirmed,
		appointment.StatusCompleted,
		appointment.StatusCancelled,
	} {
		count, err := s.appointments.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.AppointmentsByState[string(status)] = count
	}
	if stats.PendingApplications, err = s.applications.CountByStatus(ctx, application.StatusPending); err != nil {
		return nil, err
	}

	return stats, nil
}

// ListUsers returns paginated user accounts
func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]*user.User, int, error) {
	offset := (page - 1) * limit
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetUser returns one user account
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// CreateUser creates an account with any role from the admin panel
func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*user.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailAlreadyUsed
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Role:         user.Role(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("Admin created user")
	return u, nil
}

// UpdateUser edits an account's profile fields
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*user.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	u.FullName = req.FullName
	u.Phone = sql.NullString{String: req.Phone, Valid: req.Phone != ""}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangeRole switches an account's role
func (s *Service) ChangeRole(ctx context.Context, id uuid.UUID, role string) error {
	if !user.IsValidRole(role) {
		return user.ErrInvalidRole
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.users.UpdateRole(ctx, id, user.Role(role))
}

// SetBanned bans or unbans an account. Admin accounts cannot be banned.
func (s *Service) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin() && banned {
		return user.ErrCannotDeleteAdmin
	}
	return s.users.UpdateBanned(ctx, id, banned)
}

// DeleteUser removes an account. Admin accounts cannot be deleted.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return user.ErrCannotDeleteAdmin
	}
	return s.users.Delete(ctx, id)
}
