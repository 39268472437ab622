package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	// timezones resolve without a system zoneinfo database
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	MetricsHost string `toml:"metrics_host"`
	MetricsPort int    `toml:"metrics_port"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// auth
	TokenIssuer            string   `toml:"token_issuer"`
	SessionTTL             string   `toml:"session_ttl"`
	SessionCleanupSchedule string   `toml:"session_cleanup_schedule"`
	LoginRateLimitPerMin   int      `toml:"login_rate_limit_per_min"`
	AllowedOrigins         []string `toml:"allowed_origins"`
	// statistics
	Timezone            string `toml:"timezone"`
	CalendarDays        int    `toml:"calendar_days"`
	CompactCalendarDays int    `toml:"compact_calendar_days"`
	WeightDays          int    `toml:"weight_days"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the config of env, with
// defaults filled in.
func Load(env, path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(env, string(content))
}

func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.MetricsHost == "" {
		c.MetricsHost = "localhost"
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "fittrack"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.TokenIssuer == "" {
		c.TokenIssuer = "fittrack"
	}
	if c.SessionTTL == "" {
		c.SessionTTL = "720h"
	}
	if c.SessionCleanupSchedule == "" {
		c.SessionCleanupSchedule = "@every 1h"
	}
	if c.LoginRateLimitPerMin == 0 {
		c.LoginRateLimitPerMin = 10
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.CalendarDays == 0 {
		c.CalendarDays = 365
	}
	if c.CompactCalendarDays == 0 {
		c.CompactCalendarDays = 90
	}
	if c.WeightDays == 0 {
		c.WeightDays = 30
	}
}

func (c *Config) Validate() error {
	if _, err := c.SessionDuration(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.CalendarDays < 1 || c.CompactCalendarDays < 1 || c.WeightDays < 0 {
		return errors.New("calendar and weight windows must be positive")
	}
	if c.LoginRateLimitPerMin < 1 {
		return errors.New("login rate limit must be positive")
	}
	return nil
}

func (c *Config) SessionDuration() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("parse session ttl [%s]: %w", c.SessionTTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	return ttl, nil
}

// Location is the time zone "today" and calendar days are computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone [%s]: %w", c.Timezone, err)
	}
	return loc, nil
}
