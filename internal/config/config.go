package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the upstream inventory service. It can be overridden
// with API_BASE_URL, mainly for tests and staging.
const DefaultAPIBaseURL = "https://inventory-backend-v5i9.vercel.app"

// Config holds the process configuration, read from the environment with an
// optional .env file.
type Config struct {
	APIBaseURL        string
	RequestTimeoutSec int
	Port              int

	// Token store; the in-memory store is used when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Export archive; disabled when MinioEndpoint is empty.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// Load reads configuration, loading a .env file first when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: failed to load .env file: %v", err)
	}

	return &Config{
		APIBaseURL:        envOr("API_BASE_URL", DefaultAPIBaseURL),
		RequestTimeoutSec: envIntOr("REQUEST_TIMEOUT_SECONDS", 30),
		Port:              envIntOr("PORT", 8080),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           envIntOr("REDIS_DB", 0),
		MinioEndpoint:     os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:    envOr("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:    envOr("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:       envOr("MINIO_BUCKET", "stockview-exports"),
		MinioUseSSL:       os.Getenv("MINIO_USE_SSL") == "true",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
