package provider

import (
	"time"

	"github.com/google/uuid"
)

// UpdateProviderRequest represents provider profile update payload.
// Logo and banner travel as multipart files next to these fields.
type UpdateProviderRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Description string `json:"description" validate:"max=2000"`
	Address     string `json:"address" validate:"required,max=300"`
	Phone       string `json:"phone" validate:"required,min=8,max=20"`
}

// ProviderResponse represents a provider returned to the frontend
type ProviderResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	BannerURL   string    `json:"bannerUrl,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
