package application

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents provider application status (matches application_status enum)
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// IsValidStatus checks a status string coming from query params
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Application represents a request to become a provider (matches provider_applications table)
type Application struct {
	ID           uuid.UUID      `db:"id"`
	ApplicantID  uuid.UUID      `db:"applicant_id"`
	BusinessName string         `db:"business_name"`
	Description  sql.NullString `db:"description"`
	Address      string         `db:"address"`
	Phone        string         `db:"phone"`
	LicenseKey   sql.NullString `db:"license_key"`
	Status       Status         `db:"status"`
	RejectReason sql.NullString `db:"reject_reason"`
	ReviewedBy   uuid.NullUUID  `db:"reviewed_by"`
	ReviewedAt   sql.NullTime   `db:"reviewed_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// IsPending reports whether the application can still be modified or reviewed
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}
