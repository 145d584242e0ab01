package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Rate store backends.
const (
	RateStorePostgres = "postgres"
	RateStoreRedis    = "redis"
)

// Rate providers.
const (
	RateProviderHTTP   = "http"
	RateProviderStatic = "static"
)

// Token validation modes.
const (
	AuthModeRemote = "remote"
	AuthModeJWT    = "jwt"
)

// Config holds application configuration.
type Config struct {
	Port           string
	IsProduction   bool
	LogLevel       slog.Level
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	RateCacheTTL     time.Duration
	RateStoreBackend string
	RedisAddrs       []string
	RedisPassword    string

	RateProvider         string
	ExchangeAPIURL       string
	ExchangeAPIAccessKey string
	ExchangeAPITimeout   time.Duration

	LedgerServiceURL string
	LedgerAPIKey     string
	LedgerTimeout    time.Duration

	AuthMode       string
	AuthServiceURL string
	AuthTimeout    time.Duration
	JWTSecret      string
	JWTIssuer      string
	AdminUserIDs   []string

	KafkaBrokers             []string
	KafkaTransferTopic       string
	KafkaReconciliationTopic string

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RATE_CACHE_TTL", "1h")
	viper.SetDefault("RATE_STORE_BACKEND", RateStorePostgres)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("RATE_PROVIDER", RateProviderStatic)
	viper.SetDefault("EXCHANGE_API_URL", "")
	viper.SetDefault("EXCHANGE_API_ACCESS_KEY", "")
	viper.SetDefault("EXCHANGE_API_TIMEOUT", "5s")
	viper.SetDefault("LEDGER_SERVICE_URL", "")
	viper.SetDefault("LEDGER_API_KEY", "")
	viper.SetDefault("LEDGER_TIMEOUT", "10s")
	viper.SetDefault("AUTH_MODE", AuthModeRemote)
	viper.SetDefault("AUTH_SERVICE_URL", "")
	viper.SetDefault("AUTH_TIMEOUT", "5s")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "fx-transfer-app")
	viper.SetDefault("ADMIN_USER_IDS", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TRANSFER_TOPIC", "fx.transfers")
	viper.SetDefault("KAFKA_RECONCILIATION_TOPIC", "fx.transfers.reconciliation")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                     viper.GetString("PORT"),
		IsProduction:             viper.GetBool("IS_PRODUCTION"),
		DatabaseURL:              viper.GetString("PGSQL_URL"),
		EnableDBCheck:            viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:           viper.GetString("MIGRATIONS_PATH"),
		RateStoreBackend:         strings.ToLower(viper.GetString("RATE_STORE_BACKEND")),
		RedisAddrs:               splitList(viper.GetString("REDIS_ADDR")),
		RedisPassword:            viper.GetString("REDIS_PASSWORD"),
		RateProvider:             strings.ToLower(viper.GetString("RATE_PROVIDER")),
		ExchangeAPIURL:           strings.TrimRight(viper.GetString("EXCHANGE_API_URL"), "/"),
		ExchangeAPIAccessKey:     viper.GetString("EXCHANGE_API_ACCESS_KEY"),
		LedgerServiceURL:         viper.GetString("LEDGER_SERVICE_URL"),
		LedgerAPIKey:             viper.GetString("LEDGER_API_KEY"),
		AuthMode:                 strings.ToLower(viper.GetString("AUTH_MODE")),
		AuthServiceURL:           viper.GetString("AUTH_SERVICE_URL"),
		JWTSecret:                viper.GetString("JWT_SECRET"),
		JWTIssuer:                viper.GetString("JWT_ISSUER"),
		AdminUserIDs:             splitList(viper.GetString("ADMIN_USER_IDS")),
		KafkaBrokers:             splitList(viper.GetString("KAFKA_BROKERS")),
		KafkaTransferTopic:       viper.GetString("KAFKA_TRANSFER_TOPIC"),
		KafkaReconciliationTopic: viper.GetString("KAFKA_RECONCILIATION_TOPIC"),
		RateLimit:                viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:       splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"RATE_CACHE_TTL", &cfg.RateCacheTTL},
		{"EXCHANGE_API_TIMEOUT", &cfg.ExchangeAPITimeout},
		{"LEDGER_TIMEOUT", &cfg.LedgerTimeout},
		{"AUTH_TIMEOUT", &cfg.AuthTimeout},
	}
	for _, d := range durations {
		raw := viper.GetString(d.key)
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid value for %s (%q): must be a positive duration", d.key, raw)
		}
		*d.target = parsed
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that every selected mode has what it needs.
func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	if c.LedgerServiceURL == "" {
		return fmt.Errorf("LEDGER_SERVICE_URL is required")
	}

	switch c.RateStoreBackend {
	case RateStorePostgres:
	case RateStoreRedis:
		if len(c.RedisAddrs) == 0 {
			return fmt.Errorf("REDIS_ADDR is required when RATE_STORE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown RATE_STORE_BACKEND %q", c.RateStoreBackend)
	}

	switch c.RateProvider {
	case RateProviderStatic:
		if c.IsProduction {
			slog.Warn("RATE_PROVIDER=static serves fixed development quotes in production")
		}
	case RateProviderHTTP:
		if c.ExchangeAPIURL == "" {
			return fmt.Errorf("EXCHANGE_API_URL is required when RATE_PROVIDER=http")
		}
	default:
		return fmt.Errorf("unknown RATE_PROVIDER %q", c.RateProvider)
	}

	switch c.AuthMode {
	case AuthModeRemote:
		if c.AuthServiceURL == "" {
			return fmt.Errorf("AUTH_SERVICE_URL is required when AUTH_MODE=remote")
		}
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	if len(c.AdminUserIDs) == 0 {
		slog.Warn("ADMIN_USER_IDS not set. Admin endpoints will reject every caller.")
	}
	return nil
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
