package auth

import (
	"time"

	"github.com/vietlong/booking-api/internal/domain/user"
)

// RegisterRequest represents registration payload
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,min=8,max=20"`
}

// LoginRequest represents login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// IntrospectRequest represents token introspection payload
type IntrospectRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse represents tokens plus the authenticated profile
type AuthResponse struct {
	Token        string                `json:"token"`
	RefreshToken string                `json:"refreshToken"`
	ExpiresAt    time.Time             `json:"expiresAt"`
	User         *user.ProfileResponse `json:"user"`
}

// IntrospectResponse reports token validity
type IntrospectResponse struct {
	Valid     bool      `json:"valid"`
	UserID    string    `json:"userId,omitempty"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}
