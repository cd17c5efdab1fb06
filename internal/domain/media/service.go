package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vietlong/booking-api/internal/pkg/imaging"
	"github.com/vietlong/booking-api/internal/pkg/storage"
)

// WakeChannel is the Redis pub/sub channel the API pings after storing an
// upload so the image-worker polls immediately instead of waiting a tick.
const WakeChannel = "uploads:wake"

var (
	ErrInvalidFileType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
)

// Service stores uploaded files and enqueues them for thumbnail processing
type Service struct {
	repo    Repository
	storage storage.Storage
	redis   *redis.Client // nil disables worker wakeups
	maxSize int64
}

// NewService creates media service
func NewService(repo Repository, st storage.Storage, rdb *redis.Client, maxSizeMB int) *Service {
	return &Service{
		repo:    repo,
		storage: st,
		redis:   rdb,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
	}
}

// Store validates and persists an uploaded image, records it for the worker
// and returns the created upload row.
func (s *Service) Store(ctx context.Context, ownerID uuid.UUID, kind Kind, filename, contentType string, size int64, reader io.Reader) (*Upload, error) {
	if !imaging.ValidateType(filename) {
		return nil, ErrInvalidFileType
	}
	if !imaging.ValidateSize(size, s.maxSize) {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s/%s%s", kind, ownerID, uuid.New(), ext)

	if err := s.storage.Put(ctx, key, reader, contentType); err != nil {
		return nil, err
	}

	upload := &Upload{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Kind:        kind,
		Key:         key,
		ContentType: contentType,
		SizeBytes:   size,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, upload); err != nil {
		// Best effort: don't leave an orphaned object behind.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Failed to clean up orphaned upload")
		}
		return nil, err
	}

	s.wakeWorker(ctx)

	return upload, nil
}

// Remove deletes the stored object, its thumbnail and the tracking row.
func (s *Service) Remove(ctx context.Context, upload *Upload) error {
	if err := s.storage.Delete(ctx, upload.Key); err != nil {
		return err
	}
	if upload.ThumbKey.Valid {
		if err := s.storage.Delete(ctx, upload.ThumbKey.String); err != nil {
			log.Warn().Err(err).Str("key", upload.ThumbKey.String).Msg("Failed to delete thumbnail")
		}
	}
	return s.repo.Delete(ctx, upload.ID)
}

// URL resolves the public URL for a storage key. Empty keys resolve to "".
func (s *Service) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.storage.URL(key)
}

func (s *Service) wakeWorker(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Publish(ctx, WakeChannel, "1").Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to publish worker wakeup")
	}
}
