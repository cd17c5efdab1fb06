package provider

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents provider status (matches provider_status enum)
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// IsValidStatus checks a status string coming from the admin panel
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusSuspended:
		return true
	default:
		return false
	}
}

// Provider represents a business offering services (matches providers table)
type Provider struct {
	ID          uuid.UUID      `db:"id"`
	OwnerID     uuid.UUID      `db:"owner_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Address     string         `db:"address"`
	Phone       string         `db:"phone"`
	LogoKey     sql.NullString `db:"logo_key"`
	BannerKey   sql.NullString `db:"banner_key"`
	Status      Status         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// IsActive reports whether the provider can take bookings
func (p *Provider) IsActive() bool {
	return p.Status == StatusActive
}
