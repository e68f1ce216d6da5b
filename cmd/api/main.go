package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-reconciler/config"
	monobankClient "order-reconciler/internal/adapter/client/monobank"
	resendClient "order-reconciler/internal/adapter/client/resend"
	httpHandler "order-reconciler/internal/adapter/http/handler"
	pgStorage "order-reconciler/internal/adapter/storage/postgres"
	redisStorage "order-reconciler/internal/adapter/storage/redis"
	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"
	"order-reconciler/internal/service"
	"order-reconciler/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Order Reconciler")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize storage adapters
	orderRepo := pgStorage.NewOrderRepo(pool)
	deliveryCache := redisStorage.NewDeliveryCache(rdb)

	// Initialize verification per provider
	keyFetcher := monobankClient.NewPubkeyClient(cfg.Providers.Monobank)
	keyCache := service.NewPublicKeyCache(keyFetcher, cfg.Providers.Monobank.KeyTTL, nil, log)
	verifiers := map[domain.Provider]ports.WebhookVerifier{
		domain.ProviderMonobank: service.NewECDSAVerifier(keyCache),
		domain.ProviderWhitepay: service.NewHMACVerifier(cfg.Providers.Whitepay.WebhookSecret),
	}

	// Initialize business services
	emailSender := resendClient.NewClient(cfg.Email)
	notificationSvc := service.NewNotificationService(cfg.Products, emailSender, log)
	reconcileSvc := service.NewReconcileService(orderRepo, notificationSvc, log)
	webhookSvc := service.NewWebhookService(reconcileSvc, deliveryCache, verifiers, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WebhookSvc:     webhookSvc,
		ReconcileSvc:   reconcileSvc,
		OrderRepo:      orderRepo,
		OperatorSecret: cfg.Operator.Secret,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
