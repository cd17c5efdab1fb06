package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vietlong/booking-api/internal/config"
	"github.com/vietlong/booking-api/internal/domain/media"
	"github.com/vietlong/booking-api/internal/pkg/database"
	"github.com/vietlong/booking-api/internal/pkg/imaging"
	"github.com/vietlong/booking-api/internal/pkg/storage"
)

const pollInterval = 5 * time.Second

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().Msg("Starting image-worker")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	var st storage.Storage
	if cfg.UseS3() {
		st, err = storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage client")
		}
	} else {
		st, err = storage.NewLocalStorage(cfg.LocalStorageDir, "/uploads")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
	}

	uploads := media.NewRepository(db)
	processor := imaging.NewProcessor(imaging.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis pub/sub wakeups make processing near-instant; polling still
	// runs as the fallback so a missed message never strands an upload.
	wake := make(chan struct{}, 1)
	go subscribeWakeups(ctx, rdb, wake)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info().Msg("Shutdown signal received")
		cancel()
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	lastIdleLog := time.Time{}
	idleLogEvery := 1 * time.Minute

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("image-worker stopped")
			return
		case <-wake:
			// immediate poll
		case <-ticker.C:
		}

		// Drain the queue before going back to sleep.
		for {
			upload, err := uploads.ClaimNextUnprocessed(ctx)
			if err != nil {
				log.Error().Err(err).Msg("DB error while claiming upload")
				break
			}
			if upload == nil {
				now := time.Now()
				if lastIdleLog.IsZero() || now.Sub(lastIdleLog) >= idleLogEvery {
					log.Debug().Msg("Idle: no unprocessed uploads")
					lastIdleLog = now
				}
				break
			}

			start := time.Now()
			thumbKey, err := processOne(ctx, st, processor, upload)
			if err != nil {
				log.Error().
					Err(err).
					Str("upload_id", upload.ID.String()).
					Str("key", upload.Key).
					Int("attempts", upload.Attempts).
					Msg("Processing failed")
				continue
			}

			if err := uploads.MarkProcessed(ctx, upload.ID, thumbKey); err != nil {
				log.Error().Err(err).Str("upload_id", upload.ID.String()).Msg("Failed to mark upload processed")
				continue
			}

			log.Info().
				Str("upload_id", upload.ID.String()).
				Str("thumb_key", thumbKey).
				Dur("took", time.Since(start)).
				Msg("Processing done")
		}
	}
}

// processOne downloads the original, re-encodes it web-optimized, writes it
// back and stores the thumbnail next to it.
func processOne(ctx context.Context, st storage.Storage, processor *imaging.Processor, upload *media.Upload) (string, error) {
	rc, err := st.Get(ctx, upload.Key)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer rc.Close()

	img, err := processor.Process(rc)
	if err != nil {
		return "", fmt.Errorf("process: %w", err)
	}

	if err := st.Put(ctx, upload.Key, bytes.NewReader(img.Original), img.ContentType); err != nil {
		return "", fmt.Errorf("upload optimized: %w", err)
	}

	thumbKey := imaging.ThumbKey(upload.Key)
	if err := st.Put(ctx, thumbKey, bytes.NewReader(img.Thumbnail), img.ContentType); err != nil {
		return "", fmt.Errorf("upload thumb: %w", err)
	}

	return thumbKey, nil
}

func subscribeWakeups(ctx context.Context, rdb *redis.Client, wake chan<- struct{}) {
	sub := rdb.Subscribe(ctx, media.WakeChannel)
	defer func() { _ = sub.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Channel():
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
