package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/storeledger/internal/adapter/http"
	"github.com/iho/storeledger/internal/adapter/http/handler"
	"github.com/iho/storeledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/storeledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/storeledger/internal/adapter/repository/redis"
	"github.com/iho/storeledger/internal/infrastructure/config"
	"github.com/iho/storeledger/internal/infrastructure/logger"
	"github.com/iho/storeledger/internal/infrastructure/metrics"
	"github.com/iho/storeledger/internal/infrastructure/postgres"
	"github.com/iho/storeledger/internal/infrastructure/redis"
	"github.com/iho/storeledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(log.WithContext(ctx), cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancel()

	pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.RunMigrations {
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log).Up(); err != nil {
			return err
		}
	}

	redisClient := connectRedis(connectCtx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rateLimiter := newRateLimiter(cfg)
	if rateLimiter != nil {
		go cleanupLimiters(ctx, rateLimiter, 10*time.Minute)
	}

	routerCfg := buildRouterConfig(cfg, log, reg, dependencies{
		txManager:    postgresRepo.NewTxManager(pool),
		accountRepo:  postgresRepo.NewAccountRepository(pool),
		entryRepo:    postgresRepo.NewEntryRepository(pool),
		transferRepo: postgresRepo.NewTransferRepository(pool),
		retrier:      postgresRepo.NewRetrier(),
		idGen:        postgresRepo.NewULIDGenerator(),
		postgres:     handler.PingerFunc(pool.Ping),
		redis:        redisClient,
	})
	routerCfg.RateLimiter = rateLimiter

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return log.WithContext(context.Background()) },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// dependencies are the storage-backed collaborators the HTTP layer is built from.
type dependencies struct {
	txManager    usecase.TransactionManager
	accountRepo  usecase.AccountRepository
	entryRepo    usecase.EntryRepository
	transferRepo usecase.TransferRepository
	retrier      usecase.Retrier
	idGen        usecase.IDGenerator
	postgres     handler.Pinger
	redis        *goredis.Client
}

// buildRouterConfig wires use cases and handlers. Without Redis, reports are not cached
// and idempotency keys are not honored.
func buildRouterConfig(cfg *config.Config, log zerolog.Logger, reg *prometheus.Registry, deps dependencies) httpAdapter.RouterConfig {
	ledgerMetrics := metrics.New(reg)

	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
		redisPinger      handler.Pinger
	)
	if deps.redis != nil {
		cache = redisRepo.NewCache(deps.redis)
		idempotencyStore = redisRepo.NewIdempotencyStore(deps.redis)
		redisPinger = handler.PingerFunc(redis.Ping(deps.redis))
	}
	reports := usecase.NewReportCache(cache, cfg.ReportCacheTTL)

	accountUC := usecase.NewAccountUseCase(deps.accountRepo, deps.idGen, reports, ledgerMetrics)
	entryUC := usecase.NewEntryUseCase(deps.txManager, deps.accountRepo, deps.entryRepo, deps.idGen, deps.retrier, reports, ledgerMetrics)
	transferUC := usecase.NewTransferUseCase(deps.txManager, deps.accountRepo, deps.transferRepo, deps.entryRepo, deps.idGen, deps.retrier, reports, ledgerMetrics)
	reportUC := usecase.NewReportUseCase(deps.accountRepo, deps.entryRepo, reports, ledgerMetrics)
	reconciliationUC := usecase.NewReconciliationUseCase(deps.accountRepo, deps.entryRepo, deps.transferRepo, ledgerMetrics)

	return httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		EntryHandler:     handler.NewEntryHandler(entryUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		ReportHandler:    handler.NewReportHandler(reportUC),
		LedgerHandler:    handler.NewLedgerHandler(reconciliationUC),
		HealthHandler:    handler.NewHealthHandler(deps.postgres, redisPinger),
		Logger:           log,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		HTTPMetrics:      middleware.NewHTTPMetrics(reg),
		MetricsHandler:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
}

// connectRedis returns nil when Redis is disabled or unreachable; the service then runs
// without report caching and idempotency.
func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *goredis.Client {
	if !cfg.RedisEnabled {
		log.Info().Msg("redis disabled")
		return nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache and idempotency")
		return nil
	}

	log.Info().Msg("connected to redis")
	return client
}

func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(every)
		}
	}
}
