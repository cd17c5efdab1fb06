package auth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vietlong/booking-api/internal/domain/user"
	"github.com/vietlong/booking-api/internal/pkg/jwt"
	"github.com/vietlong/booking-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
	tokens     TokenStore
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, tokens TokenStore) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokens:     tokens,
	}
}

// Register creates a new user account with the USER role
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
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
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

// Login authenticates a user by email and password
func (s *Service) Login(ctx context.Context, req *LoginRequest, ip string) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if u.IsBanned {
		return nil, ErrUserBanned
	}

	if err := s.userRepo.UpdateLastLogin(ctx, u.ID, ip); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("Failed to record last login")
	}

	return s.issueTokens(ctx, u)
}

// Logout revokes the presented access token
func (s *Service) Logout(ctx context.Context, jti string) error {
	return s.tokens.Revoke(ctx, jti, s.jwtService.GetAccessTTL())
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	if u.IsBanned {
		return nil, ErrUserBanned
	}

	return s.issueTokens(ctx, u)
}

// Introspect reports whether an access token is valid and not revoked
func (s *Service) Introspect(ctx context.Context, token string) *IntrospectResponse {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return &IntrospectResponse{Valid: false}
	}

	revoked, err := s.tokens.IsBlacklisted(ctx, claims.ID)
	if err != nil || revoked {
		return &IntrospectResponse{Valid: false}
	}

	return &IntrospectResponse{
		Valid:     true,
		UserID:    claims.UserID.String(),
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
}

// ActiveTokens lists live token JTIs for a user (admin)
func (s *Service) ActiveTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.tokens.ActiveTokens(ctx, userID)
}

// ForceLogout revokes every live token of a user (admin)
func (s *Service) ForceLogout(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.tokens.RevokeAllForUser(ctx, userID, s.jwtService.GetAccessTTL())
}

// BlacklistStats returns blacklist counters (admin)
func (s *Service) BlacklistStats(ctx context.Context) (*BlacklistStats, error) {
	return s.tokens.Stats(ctx)
}

// CleanupBlacklist drops stale token-tracking entries (admin)
func (s *Service) CleanupBlacklist(ctx context.Context) (int, error) {
	return s.tokens.Cleanup(ctx)
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	access, jti, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role), u.IsBanned)
	if err != nil {
		return nil, err
	}

	refresh, _, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Track(ctx, u.ID, jti, s.jwtService.GetAccessTTL()); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("Failed to track issued token")
	}

	return &AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         user.ToProfileResponse(u, ""),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
