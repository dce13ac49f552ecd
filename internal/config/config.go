package config

import (
	"os"
	"time"
)

type Config struct {
	// Database (optional, only used as the error log sink)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	LogRetention time.Duration

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Simulated latency of the auth flows
	LoginDelay    time.Duration
	RegisterDelay time.Duration
	ResetDelay    time.Duration

	// Catalog override (empty uses the embedded tables)
	CatalogPath string

	// Email
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string

	// Server
	Port        string
	CORSOrigins string
	SiteURL     string
	AppEnv      string
	SentryDSN   string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "vitalrecife"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    parseDuration(getEnv("SESSION_TTL", "2h"), 2*time.Hour),
		SweepInterval: parseDuration(getEnv("SESSION_SWEEP_INTERVAL", "1m"), time.Minute),

		LoginDelay:    parseDuration(getEnv("LOGIN_DELAY", "1500ms"), 1500*time.Millisecond),
		RegisterDelay: parseDuration(getEnv("REGISTER_DELAY", "2s"), 2*time.Second),
		ResetDelay:    parseDuration(getEnv("RESET_DELAY", "1500ms"), 1500*time.Millisecond),

		CatalogPath: getEnv("CATALOG_PATH", ""),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@vitalrecife.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Vital Recife Suplementos"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		SiteURL:     getEnv("SITE_URL", "https://vitalrecife.com"),
		AppEnv:      getEnv("APP_ENV", "development"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
	}
}

// DatabaseEnabled reports whether a Postgres log sink was configured.
func (c *Config) DatabaseEnabled() bool {
	return c.DBPassword != ""
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
