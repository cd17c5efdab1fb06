package user

import (
	"time"

	"github.com/google/uuid"
)

// UpdateProfileRequest represents profile update payload
type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,min=8,max=20"`
}

// ChangePasswordRequest represents password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// ProfileResponse represents a user profile returned to the frontend
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	IsBanned  bool      `json:"isBanned"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToProfileResponse converts a user entity. avatarURL is resolved by the
// caller since URL resolution lives in the media service.
func ToProfileResponse(u *User, avatarURL string) *ProfileResponse {
	resp := &ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		AvatarURL: avatarURL,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
	}
	if u.Phone.Valid {
		resp.Phone = u.Phone.String
	}
	return resp
}
