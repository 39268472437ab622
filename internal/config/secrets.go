package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvJWTSecret        = "FITTRACK_JWT_SECRET"
	EnvPostgresPassword = "FITTRACK_DB_PASSWORD"
	EnvRedisPassword    = "FITTRACK_REDIS_PASS"
	EnvSentryDSN        = "SENTRY_DSN"
	EnvHoneycombEnabled = "HONEYCOMB_ENABLED"
)

// Secrets never live in the TOML file.
type Secrets struct {
	JWTSecret        string
	PostgresPassword string
	RedisPassword    string
	SentryDSN        string
	HoneycombEnabled bool
}

// LoadSecrets reads the secrets from the environment. Files in envFiles are
// loaded first, without overriding variables that are already set; missing
// files are skipped.
func LoadSecrets(envFiles ...string) (*Secrets, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	secrets := &Secrets{
		JWTSecret:        os.Getenv(EnvJWTSecret),
		PostgresPassword: os.Getenv(EnvPostgresPassword),
		RedisPassword:    os.Getenv(EnvRedisPassword),
		SentryDSN:        os.Getenv(EnvSentryDSN),
		HoneycombEnabled: os.Getenv(EnvHoneycombEnabled) == "true",
	}
	if secrets.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret not set, use %s", EnvJWTSecret)
	}

	return secrets, nil
}
