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

	"github.com/storepulse/backend/internal/ai"
	"github.com/storepulse/backend/internal/config"
	"github.com/storepulse/backend/internal/db"
	httpapi "github.com/storepulse/backend/internal/http"
	"github.com/storepulse/backend/internal/logging"
	"github.com/storepulse/backend/internal/service"
	"github.com/storepulse/backend/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg, "storepulse-api")
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if cfg.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
	}

	provider, closeProvider, err := ai.FromConfig(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure AI provider")
	}
	defer func() { _ = closeProvider() }()
	logger.Info().Str("provider", provider.Name()).Msg("AI provider ready")

	telemetry.Register()

	svc := httpapi.Services{
		DB:        store,
		Sales:     &service.SalesService{Stores: store, Sales: store, Logger: logger},
		Dashboard: &service.DashboardService{Stores: store, Sales: store, Logger: logger},
		Reports: &service.ReportService{
			Stores:   store,
			Sales:    store,
			Feedback: store,
			Reports:  store,
			Provider: provider,
			Config: service.ReportConfig{
				DefaultPeriodDays: cfg.DefaultPeriodDays,
				MaxPeriodDays:     cfg.MaxPeriodDays,
				ProviderTimeout:   cfg.ProviderTimeout,
				Language:          cfg.ReportLanguage,
				FontPath:          cfg.PDFFontPath,
				ArtifactDir:       cfg.PDFArtifactDir,
			},
			Logger: logger,
		},
	}
	router := httpapi.Router(cfg, svc, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
