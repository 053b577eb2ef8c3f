package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings, read once from the environment at startup
// and passed explicitly to whoever needs it.
type Config struct {
	Port string

	// DBURL selects Postgres when set; otherwise SQLitePath is used.
	DBURL      string
	SQLitePath string

	JWTSecret      string
	JWTExpiryHours int

	BusinessName    string
	PublicURL       string
	CooldownMinutes int

	// Optional Redis-backed session store for the submission rate limiter.
	RedisURL string

	// Daily digest (optional, requires Twilio credentials and a digest_phone
	// business setting).
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	DigestCron       string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		DBURL:            os.Getenv("DB_URL"),
		SQLitePath:       getEnv("SQLITE_PATH", "feedback.db"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-key-change-in-production"),
		JWTExpiryHours:   getEnvInt("JWT_EXPIRY_HOURS", 24),
		BusinessName:     getEnv("BUSINESS_NAME", "My Restaurant"),
		PublicURL:        getEnv("PUBLIC_URL", "http://localhost:8080"),
		CooldownMinutes:  getEnvInt("FEEDBACK_COOLDOWN_MINUTES", 5),
		RedisURL:         os.Getenv("REDIS_URL"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		DigestCron:       getEnv("DIGEST_CRON", "0 9 * * *"),
	}
}

// Cooldown is the minimum gap between two submissions from one visitor session.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownMinutes) * time.Minute
}

// DigestEnabled reports whether the Twilio daily digest can be started.
func (c *Config) DigestEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
