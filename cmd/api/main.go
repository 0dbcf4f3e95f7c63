package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voucher-api/internal/config"
	"voucher-api/internal/database"
	"voucher-api/internal/discount"
	"voucher-api/internal/handler"
	"voucher-api/internal/metrics"
	"voucher-api/internal/middleware"
	"voucher-api/internal/repository"
	"voucher-api/internal/router"
	"voucher-api/internal/seed"
	"voucher-api/internal/service"
	"voucher-api/internal/validation"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting voucher API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m := metrics.New()
	validator := validation.New()

	// Repositories
	voucherRepo := repository.NewVoucherRepository(pool, logger)
	promotionRepo := repository.NewPromotionRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Services
	voucherService := service.NewVoucherService(voucherRepo, logger)
	promotionService := service.NewPromotionService(promotionRepo, logger)
	orderService := service.NewOrderService(
		orderRepo,
		voucherRepo,
		promotionRepo,
		discount.NewVoucherValidator(voucherRepo, time.Now, logger),
		discount.NewPromotionValidator(promotionRepo, time.Now, logger),
		m,
		logger,
	)

	if cfg.Seed.Enabled {
		importer := seed.NewImporter(newSeedLoader(ctx, cfg, logger), voucherService, promotionService, validator, m, logger)
		if _, err := importer.Run(ctx, cfg.Seed.Files); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	handlers := router.Handlers{
		Vouchers:   handler.NewVoucherHandler(voucherService, validator, logger),
		Promotions: handler.NewPromotionHandler(promotionService, validator, logger),
		Orders:     handler.NewOrderHandler(orderService, validator, logger),
	}

	mux := router.New(handlers, pool, m, router.Config{
		APIKey:         cfg.Auth.APIKey,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger),
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newSeedLoader reads seed files from S3 when enabled, falling back to local
// disk for any file S3 cannot serve.
func newSeedLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) seed.Loader {
	fileLoader := seed.NewFileLoader(logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for catalog files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialise S3 loader, using local file system only")
		return fileLoader
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
}
