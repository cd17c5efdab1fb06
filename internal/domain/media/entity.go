package media

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kind tells the image-worker and URL resolution what an upload is for.
type Kind string

const (
	KindAvatar         Kind = "avatar"
	KindLicense        Kind = "license"
	KindServiceImage   Kind = "service_image"
	KindProviderLogo   Kind = "provider_logo"
	KindProviderBanner Kind = "provider_banner"
)

// Upload represents a stored file awaiting (or past) thumbnail processing
type Upload struct {
	ID          uuid.UUID      `db:"id"`
	OwnerID     uuid.UUID      `db:"owner_id"`
	Kind        Kind           `db:"kind"`
	Key         string         `db:"key"`
	ThumbKey    sql.NullString `db:"thumb_key"`
	ContentType string         `db:"content_type"`
	SizeBytes   int64          `db:"size_bytes"`
	Processed   bool           `db:"processed"`
	Attempts    int            `db:"attempts"`
	CreatedAt   time.Time      `db:"created_at"`
	ProcessedAt sql.NullTime   `db:"processed_at"`
}
