// Command server runs the dormitory maintenance portal API.
//
// Startup order:
//  1. Load .env (best effort) and the environment config
//  2. Configure zerolog (level, optional pretty console)
//  3. Open SQLite, migrate the schema, optionally seed demo accounts
//  4. Initialize OpenTelemetry (when enabled)
//  5. Wire the Gin router and serve with graceful shutdown
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dormhub/go-dorm-backend/internal/auth"
	"github.com/dormhub/go-dorm-backend/internal/config"
	httpapi "github.com/dormhub/go-dorm-backend/internal/http"
	"github.com/dormhub/go-dorm-backend/internal/observability"
	"github.com/dormhub/go-dorm-backend/internal/repo"
	"github.com/dormhub/go-dorm-backend/internal/services"
	"github.com/dormhub/go-dorm-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting go-dorm-backend")

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTEL.Enabled {
		shutdown, err := observability.SetupOTel(ctx, cfg.OTEL, version)
		if err != nil {
			log.Fatal().Err(err).Msg("otel setup")
		}
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutCtx); err != nil {
				log.Warn().Err(err).Msg("otel shutdown")
			}
		}()
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin")
		}
	}

	if cfg.SeedDemo {
		seedDemo(ctx, db)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	sessions := auth.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	httpapi.RegisterRoutes(r, db, sessions, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()
	log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// seedDemo registers a demo resident and technician so a fresh instance can
// be exercised immediately. Reruns are harmless: the duplicate-email check
// skips accounts that already exist.
func seedDemo(ctx context.Context, db *gorm.DB) {
	accounts := &services.AccountService{DB: db}

	if _, err := accounts.RegisterUser(ctx, services.RegisterUserInput{
		Name:     "Uma Patel",
		Email:    "u1@dorm.local",
		Password: "123",
		Building: "B",
		Floor:    "2",
		Room:     "204",
	}); err != nil && !errors.Is(err, services.ErrEmailRegistered) {
		log.Warn().Err(err).Msg("seed demo resident")
	}

	if _, err := accounts.RegisterTechnician(ctx, services.RegisterTechnicianInput{
		Name:     "Tariq Aziz",
		Email:    "t1@dorm.local",
		Password: "123",
		Phone:    "555-0101",
	}); err != nil && !errors.Is(err, services.ErrEmailRegistered) {
		log.Warn().Err(err).Msg("seed demo technician")
	}

	log.Info().Msg("demo accounts seeded (u1@dorm.local / t1@dorm.local, password 123)")
}
