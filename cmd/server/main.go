package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/moneyman/moneyman/internal/adapter/accessmem"
	httpadapter "github.com/moneyman/moneyman/internal/adapter/http"
	"github.com/moneyman/moneyman/internal/adapter/http/handler"
	"github.com/moneyman/moneyman/internal/adapter/http/middleware"
	"github.com/moneyman/moneyman/internal/adapter/realtime"
	postgresrepo "github.com/moneyman/moneyman/internal/adapter/repository/postgres"
	redisrepo "github.com/moneyman/moneyman/internal/adapter/repository/redis"
	"github.com/moneyman/moneyman/internal/infrastructure/config"
	"github.com/moneyman/moneyman/internal/infrastructure/logger"
	"github.com/moneyman/moneyman/internal/infrastructure/metrics"
	"github.com/moneyman/moneyman/internal/infrastructure/postgres"
	"github.com/moneyman/moneyman/internal/infrastructure/redis"
	"github.com/moneyman/moneyman/internal/infrastructure/token"
	"github.com/moneyman/moneyman/internal/usecase"
)

const accessSweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	hub := realtime.NewHub(log, m)

	// Repositories
	txManager := postgresrepo.NewTxManager(pool)
	accountRepo := postgresrepo.NewAccountRepository(pool)
	categoryRepo := postgresrepo.NewCategoryRepository(pool)
	txnRepo := postgresrepo.NewTransactionRepository(pool)
	transferRepo := postgresrepo.NewTransferRepository(pool)
	investmentRepo := postgresrepo.NewInvestmentRepository(pool)
	notificationRepo := postgresrepo.NewNotificationRepository(pool)
	userRepo := postgresrepo.NewUserRepository(pool)
	backupRepo := postgresrepo.NewBackupRepository(pool)
	sessionStore := redisrepo.NewSessionStore(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	accessStore := accessmem.NewStore()
	idGen := postgresrepo.NewULIDGenerator()
	shareCodec := token.NewShareCodec(cfg.ShareSecret, cfg.ShareTTL)

	// Use cases
	userUC := usecase.NewUserUseCase(txManager, userRepo, accountRepo, categoryRepo, txnRepo, backupRepo, notificationRepo, sessionStore, hub, idGen)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, txnRepo, hub, idGen)
	categoryUC := usecase.NewCategoryUseCase(txManager, categoryRepo, txnRepo, hub, idGen)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, txnRepo, categoryRepo, notificationRepo, hub, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, txnRepo, notificationRepo, hub, idGen)
	investmentUC := usecase.NewInvestmentUseCase(txManager, accountRepo, investmentRepo, txnRepo, notificationRepo, hub, idGen)
	accessUC := usecase.NewAccessUseCase(accessStore, accountRepo, userRepo, hub, idGen)
	shareUC := usecase.NewShareUseCase(shareCodec, userRepo, accountRepo, txnRepo)

	cookie := handler.CookieConfig{
		Name:   cfg.SessionCookieName,
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		AuthHandler:        handler.NewAuthHandler(userUC, cookie),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		TransferHandler:    handler.NewTransferHandler(transferUC),
		InvestHandler:      handler.NewInvestHandler(investmentUC),
		AccessHandler:      handler.NewAccessHandler(accessUC, userUC, cookie),
		ShareHandler:       handler.NewShareHandler(shareUC),
		UserHandler:        handler.NewUserHandler(userUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),

		Hub:              hub,
		SessionResolver:  userUC,
		SessionCookie:    cfg.SessionCookieName,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
		Metrics:          m,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepLoop(sweepCtx, log, accessUC, rateLimiter)

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

// sweepLoop periodically drops expired pairing requests and idle
// rate limiter buckets.
func sweepLoop(ctx context.Context, log zerolog.Logger, access *usecase.AccessUseCase, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(accessSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := access.Sweep(ctx); n > 0 {
				log.Debug().Int("expired", n).Msg("swept expired access requests")
			}
			rl.Cleanup(10 * time.Minute)
		}
	}
}
