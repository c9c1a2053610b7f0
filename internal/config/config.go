// Package config reads service settings from the environment, with an
// optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/services/vector"
)

type Config struct {
	HTTPPort        string
	DatabaseURL     string
	LogLevel        string
	JWTSecret       string
	JWTExpiresIn    time.Duration
	MaxMessageBits  int
	MCTRounds       int
	ShutdownTimeout time.Duration
}

// Load reads .env when present; a missing file is not an error.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiresIn:    getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),
		MaxMessageBits:  getEnvInt("MAX_MESSAGE_BITS", bits.DefaultMaxBits),
		MCTRounds:       getEnvInt("MCT_ROUNDS", vector.DefaultMCTRounds),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
