package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/finbooks/finbooks/internal/adapter/http"
	"github.com/finbooks/finbooks/internal/adapter/http/handler"
	"github.com/finbooks/finbooks/internal/adapter/http/middleware"
	postgresRepo "github.com/finbooks/finbooks/internal/adapter/repository/postgres"
	redisRepo "github.com/finbooks/finbooks/internal/adapter/repository/redis"
	"github.com/finbooks/finbooks/internal/infrastructure/config"
	"github.com/finbooks/finbooks/internal/infrastructure/logger"
	"github.com/finbooks/finbooks/internal/infrastructure/metrics"
	"github.com/finbooks/finbooks/internal/infrastructure/postgres"
	"github.com/finbooks/finbooks/internal/infrastructure/redis"
	"github.com/finbooks/finbooks/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
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

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()
	currencyRepo := postgresRepo.NewCurrencyRepository(pool)
	rateRepo := postgresRepo.NewRateRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	clientRepo := postgresRepo.NewClientBalanceRepository(pool)
	registerRepo := postgresRepo.NewRegisterRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)

	cache := redisRepo.NewCache(redisClient)
	notifier := redisRepo.NewNotifier(redisClient, cache, log)

	// Use cases
	rateUC := usecase.NewRateUseCase(txManager, currencyRepo, rateRepo, idGen, m)
	entryUC := usecase.NewEntryUseCase(txManager, retrier, entryRepo, clientRepo, registerRepo, rateUC, idGen, notifier, m)
	transferUC := usecase.NewTransferUseCase(txManager, retrier, registerRepo, transferRepo, entryUC, rateUC, idGen, notifier, m)
	currencyUC := usecase.NewCurrencyUseCase(currencyRepo, idGen)
	registerUC := usecase.NewRegisterUseCase(registerRepo, currencyRepo, idGen)
	reconcileUC := usecase.NewReconcileUseCase(clientRepo, entryRepo, rateUC)

	var balanceCache usecase.Cache
	if cfg.BalanceCacheEnabled {
		balanceCache = cache
	}
	balanceUC := usecase.NewBalanceUseCase(clientRepo, registerRepo, balanceCache)

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:    handler.NewEntryHandler(entryUC),
		TransferHandler: handler.NewTransferHandler(transferUC),
		RateHandler:     handler.NewRateHandler(rateUC),
		CurrencyHandler: handler.NewCurrencyHandler(currencyUC),
		RegisterHandler: handler.NewRegisterHandler(registerUC, balanceUC),
		ClientHandler:   handler.NewClientHandler(balanceUC, reconcileUC),
		HealthHandler:   handler.NewHealthHandler(pool, redisClient),
		Logger:          log,
		RateLimiter:     middleware.NewRateLimiter(float64(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
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
