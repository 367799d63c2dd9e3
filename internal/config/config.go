package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName        string
	AppEnv         string
	AppURL         string
	Port           string
	SupportEmail   string
	AllowedOrigins []string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration
	OTPExpiry time.Duration

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Email
	EmailFrom    string
	EmailSender  string
	ResendAPIKey string

	// Rate limiting (requests per second, burst) for auth/OTP endpoints
	AuthRateLimit float64
	AuthRateBurst int

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region          string
	S3Bucket          string
	S3AccessKey       string
	S3SecretKey       string
	S3Endpoint        string
	MaxAttachmentSize int64
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:        envString("APP_NAME", "ValueAIM"),
		AppEnv:         envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:         envString("APP_URL", "http://localhost:8000"),
		Port:           envString("PORT", "8000"),
		SupportEmail:   envString("SUPPORT_EMAIL", "support@valueaim.com"),
		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/valueaim.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		OTPExpiry: envDuration("OTP_EXPIRY", 5*time.Minute),

		// OAuth
		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  envString("GOOGLE_REDIRECT_URL", ""),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "no_reply@valueaim.com"),
		EmailSender:  envString("EMAIL_SENDER", "ValueAIM"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Rate limiting
		AuthRateLimit: envFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst: envInt("AUTH_RATE_BURST", 10),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:          envString("S3_REGION", "us-east-1"),
		S3Bucket:          envString("S3_BUCKET", "valueaim-uploads"),
		S3AccessKey:       envString("S3_ACCESS_KEY", ""),
		S3SecretKey:       envString("S3_SECRET_KEY", ""),
		S3Endpoint:        envString("S3_ENDPOINT", ""),
		MaxAttachmentSize: envInt64("MAX_ATTACHMENT_SIZE", 20<<20), // 20 MB
	}

	if cfg.IsProduction() && cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set in production, OTP delivery will fail")
	}

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func envString(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func envRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration, using fallback", "key", key, "value", value)
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer, using fallback", "key", key, "value", value)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		slog.Warn("invalid integer, using fallback", "key", key, "value", value)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		slog.Warn("invalid float, using fallback", "key", key, "value", value)
		return fallback
	}
	return f
}

func envList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
