package application

import (
	"time"

	"github.com/google/uuid"
)

// SubmitApplicationRequest represents the form a user submits to become a provider.
// The business license travels as a multipart file next to these fields.
type SubmitApplicationRequest struct {
	BusinessName string `json:"businessName" validate:"required,min=2,max=150"`
	Description  string `json:"description" validate:"max=2000"`
	Address      string `json:"address" validate:"required,max=300"`
	Phone        string `json:"phone" validate:"required,min=8,max=20"`
}

// RejectApplicationRequest carries the admin's rejection reason
type RejectApplicationRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

// ApplicationResponse represents an application returned to the frontend
type ApplicationResponse struct {
	ID           uuid.UUID  `json:"id"`
	ApplicantID  uuid.UUID  `json:"applicantId"`
	BusinessName string     `json:"businessName"`
	Description  string     `json:"description,omitempty"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	LicenseURL   string     `json:"licenseUrl,omitempty"`
	Status       Status     `json:"status"`
	RejectReason string     `json:"rejectReason,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
