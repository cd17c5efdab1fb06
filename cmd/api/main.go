package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vietlong/booking-api/internal/config"
	"github.com/vietlong/booking-api/internal/domain/admin"
	"github.com/vietlong/booking-api/internal/domain/application"
	"github.com/vietlong/booking-api/internal/domain/appointment"
	"github.com/vietlong/booking-api/internal/domain/auth"
	"github.com/vietlong/booking-api/internal/domain/catalog"
	"github.com/vietlong/booking-api/internal/domain/category"
	"github.com/vietlong/booking-api/internal/domain/media"
	"github.com/vietlong/booking-api/internal/domain/notification"
	"github.com/vietlong/booking-api/internal/domain/provider"
	"github.com/vietlong/booking-api/internal/domain/schedule"
	"github.com/vietlong/booking-api/internal/domain/user"
	"github.com/vietlong/booking-api/internal/middleware"
	"github.com/vietlong/booking-api/internal/pkg/database"
	"github.com/vietlong/booking-api/internal/pkg/jwt"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().Str("env", cfg.Env).Msg("Starting booking-api")

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

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

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
		log.Warn().Str("dir", cfg.LocalStorageDir).Msg("S3 not configured, using local storage")
	}

	// Repositories
	userRepo := user.NewRepository(db)
	categoryRepo := category.NewRepository(db)
	mediaRepo := media.NewRepository(db)
	providerRepo := provider.NewRepository(db)
	applicationRepo := application.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	appointmentRepo := appointment.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// WebSocket hub for notification push
	hub := notification.NewHub(rdb)
	go hub.Run()
	defer hub.Shutdown()

	// Services
	blacklist := auth.NewBlacklist(rdb)
	authService := auth.NewService(userRepo, jwtService, blacklist)
	userService := user.NewService(userRepo)
	categoryService := category.NewService(categoryRepo)
	mediaService := media.NewService(mediaRepo, st, rdb, cfg.MaxUploadSizeMB)
	providerService := provider.NewService(providerRepo, mediaService)
	applicationService := application.NewService(applicationRepo, userRepo, providerRepo, mediaService)
	catalogService := catalog.NewCatalog(catalogRepo, providerRepo, categoryRepo, mediaService)
	scheduleService := schedule.NewService(scheduleRepo, catalogRepo, providerRepo)
	notificationService := notification.NewService(notificationRepo, hub)
	appointmentService := appointment.NewService(appointmentRepo, providerRepo, notificationService)
	adminService := admin.NewService(userRepo, providerRepo, catalogRepo, appointmentRepo, applicationRepo)

	// Handlers
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService, mediaService)
	categoryHandler := category.NewHandler(categoryService)
	providerHandler := provider.NewHandler(providerService, mediaService)
	applicationHandler := application.NewHandler(applicationService, mediaService)
	catalogHandler := catalog.NewHandler(catalogService, mediaService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	appointmentHandler := appointment.NewHandler(appointmentService)
	notificationHandler := notification.NewHandler(notificationService, hub, cfg.AllowedOrigins)
	adminHandler := admin.NewHandler(adminService)

	// Middleware
	authMiddleware := middleware.Auth(jwtService, blacklist)
	providerOnly := middleware.RequireProvider()
	adminOnly := middleware.RequireAdmin()

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// Browsers cannot set headers on WebSocket dials, so the frontend passes
	// the access token as a query parameter and we promote it here.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("Authorization") == "" {
				if token := req.URL.Query().Get("token"); token != "" {
					req.Header.Set("Authorization", "Bearer "+token)
				}
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	if !cfg.UseS3() {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.LocalStorageDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/user", userHandler.Routes(authMiddleware))
		r.Mount("/categories", categoryHandler.PublicRoutes())
		r.Mount("/providers", providerHandler.PublicRoutes())
		r.Mount("/services", catalogHandler.PublicRoutes())
		r.Mount("/schedules", scheduleHandler.PublicRoutes())
		r.Mount("/provider-applications", applicationHandler.Routes(authMiddleware))
		r.Mount("/appointments", appointmentHandler.Routes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))

		// Provider cabinet
		r.Route("/provider", func(r chi.Router) {
			r.Mount("/providers", providerHandler.OwnerRoutes(authMiddleware, providerOnly))
			r.Mount("/services", catalogHandler.OwnerRoutes(authMiddleware, providerOnly))
			r.Mount("/schedules", scheduleHandler.OwnerRoutes(authMiddleware, providerOnly))
			r.Mount("/appointments", appointmentHandler.OwnerRoutes(authMiddleware, providerOnly))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/", adminHandler.Routes(authMiddleware, adminOnly))
		r.Mount("/categories", categoryHandler.AdminRoutes(authMiddleware, adminOnly))
		r.Mount("/providers", providerHandler.AdminRoutes(authMiddleware, adminOnly))
		r.Mount("/services", catalogHandler.AdminRoutes(authMiddleware, adminOnly))
		r.Mount("/applications", applicationHandler.AdminRoutes(authMiddleware, adminOnly))
		r.Mount("/blacklist", authHandler.AdminBlacklistRoutes(authMiddleware, adminOnly))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped")
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
