package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/memberledger/internal/adapter/http"
	"github.com/iho/memberledger/internal/adapter/http/handler"
	"github.com/iho/memberledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/memberledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/memberledger/internal/adapter/repository/redis"
	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/infrastructure/auth"
	"github.com/iho/memberledger/internal/infrastructure/config"
	"github.com/iho/memberledger/internal/infrastructure/logger"
	"github.com/iho/memberledger/internal/infrastructure/metrics"
	"github.com/iho/memberledger/internal/infrastructure/postgres"
	"github.com/iho/memberledger/internal/infrastructure/redis"
	"github.com/iho/memberledger/internal/usecase"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, appLog zerolog.Logger) error {
	if cfg.MigrateOnStart {
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, appLog).Up(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	appLog.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	appLog.Info().Msg("connected to redis")

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	memberRepo := postgresRepo.NewMemberRepository(pool)
	billRepo := postgresRepo.NewBillRepository(pool)
	dictRepo := postgresRepo.NewDictRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	balanceUC := usecase.NewBalanceUseCase(
		txManager, memberRepo, billRepo, idGen,
		postgresRepo.NewRetrier(postgresRepo.WithRetryObserver(m)), balancePolicy(cfg), m,
	)
	memberUC := usecase.NewMemberUseCase(memberRepo)
	billUC := usecase.NewBillUseCase(txManager, memberRepo, billRepo)
	dictUC := usecase.NewDictUseCase(dictRepo, redisRepo.NewCache(redisClient), cfg.DictCacheTTL, m)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithObserver(m)
	go cleanupLimiters(ctx, rateLimiter)

	routerCfg := httpAdapter.RouterConfig{
		MemberHandler:    handler.NewMemberHandler(memberUC),
		BalanceHandler:   handler.NewBalanceHandler(balanceUC),
		BillHandler:      handler.NewBillHandler(billUC),
		DictHandler:      handler.NewDictHandler(dictUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisPinger(redisClient)),
		Logger:           appLog,
		Metrics:          m,
		MetricsHandler:   promhttp.Handler(),
		RateLimiter:      rateLimiter,
		IdempotencyStore: redisRepo.NewIdempotencyStore(redisClient),
		IdempotencyTTL:   cfg.IdempotencyTTL,
	}

	if cfg.AuthEnabled {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		tokenStore := redisRepo.NewTokenStore(redisClient)
		userUC := usecase.NewUserUseCase(postgresRepo.NewUserRepository(pool), idGen, jwtManager, tokenStore, m)

		if cfg.AdminEmail != "" {
			if err := userUC.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				return fmt.Errorf("ensure admin user: %w", err)
			}
			appLog.Info().Str("email", cfg.AdminEmail).Msg("admin user ready")
		}

		routerCfg.AuthHandler = handler.NewAuthHandler(userUC)
		routerCfg.UserHandler = handler.NewUserHandler(userUC)
		routerCfg.TokenVerifier = jwtManager
		routerCfg.TokenStore = tokenStore
	} else {
		appLog.Warn().Msg("authentication disabled")
	}

	server := newServer(cfg, httpAdapter.NewRouter(routerCfg))

	errCh := make(chan error, 1)
	go func() {
		appLog.Info().Str("port", cfg.HTTPPort).Msg("starting server")
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

	appLog.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLog.Info().Msg("server stopped")
	return nil
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           h,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
}

func balancePolicy(cfg *config.Config) domain.BalancePolicy {
	return domain.BalancePolicy{
		AllowNegativeBalance:  cfg.AllowNegativeBalance,
		AllowNegativeIntegral: cfg.AllowNegativeIntegral,
	}
}

func redisPinger(client *goredis.Client) handler.Pinger {
	return handler.PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(limiterIdleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(limiterIdleTimeout)
		}
	}
}
