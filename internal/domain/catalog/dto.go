package catalog

import (
	"time"

	"github.com/google/uuid"
)

// SaveServiceRequest represents the create/update payload for a service.
// Handlers read it from multipart form fields; the image travels as a file.
type SaveServiceRequest struct {
	CategoryID      uuid.UUID `json:"categoryId" validate:"required"`
	Name            string    `json:"name" validate:"required,min=2,max=150"`
	Description     string    `json:"description" validate:"max=2000"`
	Price           int64     `json:"price" validate:"required,min=0"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,min=5,max=480"`
}

// PublicFilter narrows the public service listing
type PublicFilter struct {
	CategoryID *uuid.UUID
	Query      string
	Page       int
	Limit      int
}

// ServiceResponse represents a service returned to the frontend
type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	ProviderID      uuid.UUID `json:"providerId"`
	ProviderName    string    `json:"providerName,omitempty"`
	CategoryID      uuid.UUID `json:"categoryId"`
	CategoryName    string    `json:"categoryName,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           int64     `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}
