package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Env            string
	AppSecret      string
	DatabaseURL    string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	Port           string
	GoogleClientID string
	RedisURL       string
	CORSOrigins    []string
	LogLevel       string
	LogFormat      string
	CacheTTL       time.Duration
}

// Load 加载配置
func Load() *Config {
	accessMinutes, _ := strconv.Atoi(getEnv("JWT_ACCESS_MINUTES", "60"))
	refreshHours, _ := strconv.Atoi(getEnv("JWT_REFRESH_HOURS", "168"))
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "cinestream")
		dbSSL := getEnv("DB_SSLMODE", "disable")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
	}

	env := getEnv("APP_ENV", "development")
	logFormat := "console"
	if env == "production" {
		logFormat = "json"
	}

	return &Config{
		Env:            env,
		AppSecret:      getEnv("APP_SECRET", getEnv("JWT_SECRET", defaultSecret)),
		DatabaseURL:    dbURL,
		AccessTTL:      time.Duration(accessMinutes) * time.Minute,
		RefreshTTL:     time.Duration(refreshHours) * time.Hour,
		Port:           getEnv("PORT", "8000"),
		GoogleClientID: os.Getenv("GOOGLE_OAUTH2_CLIENT_ID"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", logFormat),
		CacheTTL:       cacheTTL,
	}
}

// IsProduction 是否为生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDefaultSecret 是否仍在使用默认密钥
func (c *Config) UsesDefaultSecret() bool {
	return c.AppSecret == defaultSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
