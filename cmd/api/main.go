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

	"github.com/schedly/schedly-api/internal/availability"
	"github.com/schedly/schedly-api/internal/config"
	"github.com/schedly/schedly-api/internal/domain/auth"
	"github.com/schedly/schedly-api/internal/domain/booking"
	"github.com/schedly/schedly-api/internal/domain/catalog"
	"github.com/schedly/schedly-api/internal/domain/notification"
	"github.com/schedly/schedly-api/internal/domain/profile"
	"github.com/schedly/schedly-api/internal/domain/promotion"
	"github.com/schedly/schedly-api/internal/middleware"
	"github.com/schedly/schedly-api/internal/pkg/database"
	"github.com/schedly/schedly-api/internal/pkg/imaging"
	"github.com/schedly/schedly-api/internal/pkg/jwt"
	pkgresponse "github.com/schedly/schedly-api/internal/pkg/response"
	"github.com/schedly/schedly-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Schedly API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Repositories ----------
	userRepo := auth.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	promotionRepo := promotion.NewRepository(db)
	profileRepo := profile.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := booking.NewHub(redis)
	go hub.Run()
	defer hub.Close()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService)
	bookingService := booking.NewService(bookingRepo, hub)
	catalogService := catalog.NewCatalog(catalogRepo, store, processor)

	// Seed the admin account before accepting traffic
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin account")
	}
	cancelSeed()

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	availabilityHandler := availability.NewHandler()
	bookingHandler := booking.NewHandler(bookingService, hub, cfg.AllowedOrigins)
	catalogHandler := catalog.NewHandler(catalogService)
	promotionHandler := promotion.NewHandler(promotionRepo)
	profileHandler := profile.NewHandler(profileRepo)
	notificationHandler := notification.NewHandler(bookingRepo, catalogRepo)

	authMiddleware := middleware.Auth(jwtService)
	adminOnly := middleware.RequireAdmin()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (browser clients pass the token as a query param)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(bookingHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/availability", availabilityHandler.Routes())
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
		r.Mount("/services", catalogHandler.Routes())
		r.Mount("/promotions", promotionHandler.Routes())
		r.Mount("/profile", profileHandler.Routes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))

		r.Route("/admin", func(r chi.Router) {
			r.Mount("/bookings", bookingHandler.AdminRoutes(authMiddleware, adminOnly))
			r.Mount("/services", catalogHandler.AdminRoutes(authMiddleware, adminOnly))
			r.Mount("/promotions", promotionHandler.AdminRoutes(authMiddleware, adminOnly))
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// newStorage builds the configured object storage backend
func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "local" {
		local, err := storage.NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
		if err != nil {
			return nil, err
		}
		return local, nil
	}
	s3, err := storage.NewS3Storage(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, err
	}
	return s3, nil
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
