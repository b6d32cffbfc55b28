package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first, without overriding variables already
// present in the process environment.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddrHTTP = getEnv("ADDRESS", config.EndpointAddrHTTP)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.RedisAddr = getEnv("REDIS_ADDR", config.RedisAddr)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.SessionValidityDuration = getEnvAsDuration("SESSION_VALIDITY", config.SessionValidityDuration)
	config.SessionCleanupInterval = getEnvAsDuration("SESSION_CLEANUP_INTERVAL", config.SessionCleanupInterval)
	config.BcryptCost = getEnvAsInt("BCRYPT_COST", config.BcryptCost)
	config.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", config.CORSAllowedOrigins)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts either a Go duration string ("24h") or a plain
// integer number of seconds ("86400").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
