package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret string
	// TokenTTL of zero issues permanent tokens; revocation is then purely
	// token_version based.
	TokenTTL time.Duration

	// Object storage
	AWSRegion      string
	S3Bucket       string
	UploadURLTTL   time.Duration
	DownloadURLTTL time.Duration

	// Subscription webhook
	WebhookSecret string

	// Admin
	AdminUserIDs string
	AdminToken   string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "stroll_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  parseDuration(getEnv("TOKEN_TTL", "0"), 0),

		AWSRegion:      getEnv("AWS_REGION", "ap-northeast-2"),
		S3Bucket:       getEnv("AWS_S3_BUCKET", "stroll-photo-bucket"),
		UploadURLTTL:   parseDuration(getEnv("UPLOAD_URL_TTL", "10m"), 10*time.Minute),
		DownloadURLTTL: parseDuration(getEnv("DOWNLOAD_URL_TTL", "1h"), time.Hour),

		WebhookSecret: getEnv("WEBHOOK_SECRET", ""),

		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),
		AdminToken:   getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
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
	if err != nil {
		return fallback
	}
	return d
}
