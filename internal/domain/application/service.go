package application

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vietlong/booking-api/internal/domain/media"
	"github.com/vietlong/booking-api/internal/domain/provider"
	"github.com/vietlong/booking-api/internal/domain/user"
)

// Service handles the provider application review workflow
type Service struct {
	repo      Repository
	users     user.Repository
	providers provider.Repository
	media     *media.Service
}

// NewService creates application service
func NewService(repo Repository, users user.Repository, providers provider.Repository, mediaSvc *media.Service) *Service {
	return &Service{repo: repo, users: users, providers: providers, media: mediaSvc}
}

// Submit files a new application. A user may only have one pending application.
func (s *Service) Submit(ctx context.Context, applicantID uuid.UUID, req *SubmitApplicationRequest, licenseKey string) (*Application, error) {
	pending, err := s.repo.HasPending(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAlreadyPending
	}

	now := time.Now()
	a := &Application{
		ID:           uuid.New(),
		ApplicantID:  applicantID,
		BusinessName: req.BusinessName,
		Description:  sql.NullString{String: req.Description, Valid: req.Description != ""},
		Address:      req.Address,
		Phone:        req.Phone,
		LicenseKey:   sql.NullString{String: licenseKey, Valid: licenseKey != ""},
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListMine returns all applications the user has filed
func (s *Service) ListMine(ctx context.Context, applicantID uuid.UUID) ([]*Application, error) {
	return s.repo.ListByApplicant(ctx, applicantID)
}

// Get returns an application visible to its applicant or an admin
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// UpdateMine edits an application; allowed only for the applicant while pending.
// licenseKey is empty when the file was not resent.
func (s *Service) UpdateMine(ctx context.Context, id, applicantID uuid.UUID, req *SubmitApplicationRequest, licenseKey string) (*Application, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ApplicantID != applicantID {
		return nil, ErrNotApplicant
	}
	if !a.IsPending() {
		return nil, ErrAlreadyReviewed
	}

	a.BusinessName = req.BusinessName
	a.Description = sql.NullString{String: req.Description, Valid: req.Description != ""}
	a.Address = req.Address
	a.Phone = req.Phone
	if licenseKey != "" {
		a.LicenseKey = sql.NullString{String: licenseKey, Valid: true}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Withdraw removes a pending application; allowed only for the applicant.
func (s *Service) Withdraw(ctx context.Context, id, applicantID uuid.UUID) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.ApplicantID != applicantID {
		return ErrNotApplicant
	}
	if !a.IsPending() {
		return ErrAlreadyReviewed
	}
	return s.repo.Delete(ctx, id)
}

// ListByStatus returns paginated applications in a status (admin)
func (s *Service) ListByStatus(ctx context.Context, status Status, page, limit int) ([]*Application, int, error) {
	offset := (page - 1) * limit
	apps, err := s.repo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// Approve accepts a pending application: a provider business is created from
// its details and the applicant is promoted to the PROVIDER role.
func (s *Service) Approve(ctx context.Context, id, reviewerID uuid.UUID) (*provider.Provider, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsPending() {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	p := &provider.Provider{
		ID:          uuid.New(),
		OwnerID:     a.ApplicantID,
		Name:        a.BusinessName,
		Description: a.Description,
		Address:     a.Address,
		Phone:       a.Phone,
		Status:      provider.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.providers.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.repo.SetReview(ctx, id, StatusApproved, reviewerID, ""); err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, a.ApplicantID, user.RoleProvider); err != nil {
		// Provider exists but role upgrade failed; surface it so the admin retries.
		log.Error().Err(err).
			Str("applicant_id", a.ApplicantID.String()).
			Msg("Failed to promote applicant to provider role")
		return nil, err
	}

	log.Info().
		Str("application_id", id.String()).
		Str("provider_id", p.ID.String()).
		Msg("Provider application approved")

	return p, nil
}

// Reject declines a pending application with a reason shown to the applicant.
func (s *Service) Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !a.IsPending() {
		return ErrAlreadyReviewed
	}
	return s.repo.SetReview(ctx, id, StatusRejected, reviewerID, reason)
}

// ToResponse converts an application entity, resolving the license key to a URL
func (s *Service) ToResponse(a *Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:           a.ID,
		ApplicantID:  a.ApplicantID,
		BusinessName: a.BusinessName,
		Address:      a.Address,
		Phone:        a.Phone,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
	}
	if a.Description.Valid {
		resp.Description = a.Description.String
	}
	if a.LicenseKey.Valid {
		resp.LicenseURL = s.media.URL(a.LicenseKey.String)
	}
	if a.RejectReason.Valid {
		resp.RejectReason = a.RejectReason.String
	}
	if a.ReviewedAt.Valid {
		t := a.ReviewedAt.Time
		resp.ReviewedAt = &t
	}
	return resp
}

// ToResponseList converts a list of application entities
func (s *Service) ToResponseList(apps []*Application) []*ApplicationResponse {
	out := make([]*ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, s.ToResponse(a))
	}
	return out
}
