package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration. It is loaded once at startup
// and treated as immutable afterwards.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
}

// Load loads configuration from environment variables or sets defaults.
// JWT_EXPIRATION is expressed in milliseconds.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	expirationMs, err := strconv.Atoi(getEnv("JWT_EXPIRATION", "3600000"))
	if err != nil {
		return nil, err
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./users.db"),
		JWTSecret:    secret,
		TokenTTL:     time.Duration(expirationMs) * time.Millisecond,
		BcryptCost:   bcryptCost,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
