package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects everything the server reads from the environment.
// Values are loaded once in main and passed down explicitly.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string

	JWTSecret string
	JWTExpiry time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration

	ListCacheTTL time.Duration
	UserCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGODB_DATABASE", "property-listing"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 900)) * time.Second,

		ListCacheTTL: time.Duration(getEnvInt("CACHE_LIST_TTL_SECONDS", 300)) * time.Second,
		UserCacheTTL: time.Duration(getEnvInt("CACHE_USER_TTL_SECONDS", 3600)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
