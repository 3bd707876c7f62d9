package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/tenco/bankcore/internal/adapter/http"
	"github.com/tenco/bankcore/internal/adapter/http/handler"
	postgresRepo "github.com/tenco/bankcore/internal/adapter/repository/postgres"
	redisRepo "github.com/tenco/bankcore/internal/adapter/repository/redis"
	"github.com/tenco/bankcore/internal/infrastructure/auth"
	"github.com/tenco/bankcore/internal/infrastructure/config"
	"github.com/tenco/bankcore/internal/infrastructure/logger"
	"github.com/tenco/bankcore/internal/infrastructure/metrics"
	"github.com/tenco/bankcore/internal/infrastructure/postgres"
	"github.com/tenco/bankcore/internal/infrastructure/redis"
	"github.com/tenco/bankcore/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories and adapters
	txManager := postgresRepo.NewTxManager(pool, cfg.LockTimeout)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	historyRepo := postgresRepo.NewHistoryRepository(pool)
	retrier := postgresRepo.NewRetrier(m)
	refGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	hasher := auth.NewPasswordHasher()

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, hasher, cache, m)
	transactionUC := usecase.NewTransactionUseCase(txManager, accountRepo, historyRepo, retrier, hasher, refGen, cache, m)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	historyHandler := handler.NewHistoryHandler(transactionUC, accountUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var jwtManager *auth.JWTManager
	var authHandler *handler.AuthHandler
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		authHandler = handler.NewAuthHandler(jwtManager)
	} else {
		log.Warn().Msg("token auth disabled, trusting X-User-ID header")
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		HistoryHandler:     historyHandler,
		HealthHandler:      healthHandler,
		AuthHandler:        authHandler,
		Logger:             appLogger,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
