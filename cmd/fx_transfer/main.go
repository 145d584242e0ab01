package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"time"

	_ "github.com/SscSPs/fx_transfer_app/cmd/docs"
	"github.com/SscSPs/fx_transfer_app/internal/adapters/auth"
	rediscache "github.com/SscSPs/fx_transfer_app/internal/adapters/cache/redis"
	"github.com/SscSPs/fx_transfer_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/fx_transfer_app/internal/adapters/events/kafka"
	"github.com/SscSPs/fx_transfer_app/internal/adapters/ledger"
	"github.com/SscSPs/fx_transfer_app/internal/adapters/ratesource"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	"github.com/SscSPs/fx_transfer_app/internal/core/services"
	"github.com/SscSPs/fx_transfer_app/internal/handlers"
	"github.com/SscSPs/fx_transfer_app/internal/metrics"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
	"github.com/SscSPs/fx_transfer_app/internal/platform/config"
	"github.com/SscSPs/fx_transfer_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title FX Transfer API
// @version 1.0
// @description Money transfers between ledger accounts with currency conversion.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var redisClient goredis.UniversalClient
	if len(cfg.RedisAddrs) > 0 {
		redisClient = rediscache.NewClient(cfg.RedisAddrs, cfg.RedisPassword)
		defer closeQuietly(logger, "redis", redisClient)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("Failed to reach redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// A nil store makes the repository provider fall back to Postgres.
	var rateStore portsrepo.ExchangeRateStore
	if cfg.RateStoreBackend == config.RateStoreRedis {
		rateStore = rediscache.NewExchangeRateStore(redisClient, cfg.RateCacheTTL)
	}
	repos := pgsql.NewRepositoryProvider(dbPool, cfg.RateCacheTTL, rateStore)

	rateProvider, err := newRateProvider(cfg)
	if err != nil {
		logger.Error("Failed to initialize rate provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publisher := newPublisher(cfg)
	defer closeQuietly(logger, "event publisher", publisher)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	transferMetrics := metrics.NewTransferMetrics(registry)

	serviceContainer := services.NewServiceContainer(repos, clients.ClientProvider{
		RateProvider: rateProvider,
		Ledger:       ledger.NewClient(cfg.LedgerServiceURL, cfg.LedgerAPIKey, cfg.LedgerTimeout),
		Publisher:    publisher,
	}, transferMetrics)

	var tokenValidator clients.TokenValidator
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		tokenValidator = auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer)
	default:
		tokenValidator = auth.NewRemoteValidator(cfg.AuthServiceURL, cfg.AuthTimeout)
	}

	rateLimiter, err := newRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
		middleware.RateLimit(rateLimiter),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, tokenValidator, registry); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("rate_store", cfg.RateStoreBackend),
		slog.String("rate_provider", cfg.RateProvider),
		slog.String("auth_mode", cfg.AuthMode),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies every pending "up" migration through a temporary
// database/sql connection on the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL, migrationsPath string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func newRateProvider(cfg *config.Config) (clients.RateProvider, error) {
	if cfg.RateProvider == config.RateProviderHTTP {
		return ratesource.NewHTTPProvider(cfg.ExchangeAPIURL, cfg.ExchangeAPIAccessKey, cfg.ExchangeAPITimeout), nil
	}
	return ratesource.NewStaticProvider(ratesource.DefaultQuotes, time.Now)
}

// publisherCloser is an event publisher owning a connection that must be released on shutdown.
type publisherCloser interface {
	clients.TransferEventPublisher
	io.Closer
}

func newPublisher(cfg *config.Config) publisherCloser {
	if len(cfg.KafkaBrokers) == 0 {
		return kafka.NoopPublisher{}
	}
	return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTransferTopic, cfg.KafkaReconciliationTopic)
}

// newRateLimiter shares counters through redis when a client is configured.
func newRateLimiter(formatted string, client goredis.UniversalClient) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}

	if client == nil {
		return limiter.New(memory.NewStore(), rate), nil
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "fx_transfer_limiter"})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", handlers.IdempotencyKeyHeader)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}

func closeQuietly(logger *slog.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Error("Failed to close "+name, slog.String("error", err.Error()))
	}
}
