package catalog

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Service represents a bookable service offered by a provider (matches services table).
// Price is stored in VND, so an integer is exact.
type Service struct {
	ID              uuid.UUID      `db:"id"`
	ProviderID      uuid.UUID      `db:"provider_id"`
	CategoryID      uuid.UUID      `db:"category_id"`
	Name            string         `db:"name"`
	Description     sql.NullString `db:"description"`
	Price           int64          `db:"price"`
	DurationMinutes int            `db:"duration_minutes"`
	ImageKey        sql.NullString `db:"image_key"`
	IsActive        bool           `db:"is_active"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Detail is a service joined with the names browsers need on cards
type Detail struct {
	Service
	ProviderName   string `db:"provider_name"`
	ProviderStatus string `db:"provider_status"`
	CategoryName   string `db:"category_name"`
}
