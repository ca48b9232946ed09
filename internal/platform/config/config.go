package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Location used to decide what "today" means for dashboard alerts.
	Timezone *time.Location

	CORSAllowedOrigins []string
	LoginRateLimit     string
	MigrationsPath     string

	// Idempotency is disabled when RedisURL is empty.
	RedisURL       string
	IdempotencyTTL time.Duration

	DocumentDir      string
	DocumentMaxBytes int64
	DocumentBaseURL  string

	// Reserved for gateway reconciliation, which is not implemented.
	PaymentGatewayAPIKey string `mapstructure:"PAYMENT_GATEWAY_API_KEY"`
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "hk-loans-app")
	viper.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("DOCUMENT_DIR", "./uploads")
	viper.SetDefault("DOCUMENT_MAX_BYTES", 5<<20)
	viper.SetDefault("DOCUMENT_BASE_URL", "/files")
	viper.SetDefault("PAYMENT_GATEWAY_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOr("JWT_EXPIRY_DURATION", 24*time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "hk-loans-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	tzName := viper.GetString("APP_TIMEZONE")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Warning: Invalid value for APP_TIMEZONE ('%s'). Defaulting to UTC.\n", tzName)
		loc = time.UTC
	}
	cfg.Timezone = loc

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.IdempotencyTTL = durationOr("IDEMPOTENCY_TTL", 24*time.Hour)

	cfg.DocumentDir = viper.GetString("DOCUMENT_DIR")
	cfg.DocumentMaxBytes = viper.GetInt64("DOCUMENT_MAX_BYTES")
	if cfg.DocumentMaxBytes <= 0 {
		cfg.DocumentMaxBytes = 5 << 20
	}
	cfg.DocumentBaseURL = strings.TrimRight(viper.GetString("DOCUMENT_BASE_URL"), "/")

	cfg.PaymentGatewayAPIKey = viper.GetString("PAYMENT_GATEWAY_API_KEY")

	return cfg, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
