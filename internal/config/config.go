package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InsecureDefaultSecret is used to sign tokens when JWT_SECRET is not provided outside production.
const InsecureDefaultSecret = "supersecretkey"

const (
	minTokenTTL = time.Hour
	maxTokenTTL = 12 * time.Hour
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	LogLevel               string
	Database               DatabaseConfig
	RedisURL               string
	FacultyCacheTTL        time.Duration
	NATSURL                string
	EventsSubjectPrefix    string
	JWTSecret              string
	JWTTTL                 time.Duration
	InsecureJWTSecret      bool
	AccessUnscopedFallback bool
	AuthRateLimit          int
	AuthRateWindow         time.Duration
	CORSAllowOrigins       string
}

// DatabaseConfig describes how to reach the relational store.
type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	URL          string
	MaxOpenConns int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether the service runs with production safeguards.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

var envBindings = map[string]string{
	"app.name":                 "APP_NAME",
	"app.env":                  "APP_ENV",
	"app.port":                 "PORT",
	"log.level":                "LOG_LEVEL",
	"database.driver":          "DB_DRIVER",
	"database.host":            "DB_HOST",
	"database.port":            "DB_PORT",
	"database.user":            "DB_USER",
	"database.password":        "DB_PASSWORD",
	"database.name":            "DB_NAME",
	"database.url":             "DATABASE_URL",
	"database.max_open_conns":  "DB_MAX_OPEN_CONNS",
	"redis.url":                "REDIS_URL",
	"faculty.cache_ttl":        "FACULTY_CACHE_TTL",
	"nats.url":                 "NATS_URL",
	"events.subject_prefix":    "EVENTS_SUBJECT_PREFIX",
	"jwt.secret":               "JWT_SECRET",
	"jwt.ttl":                  "JWT_TTL",
	"access.unscoped_fallback": "ACCESS_UNSCOPED_FALLBACK",
	"auth.rate_limit":          "AUTH_RATE_LIMIT",
	"auth.rate_window":         "AUTH_RATE_WINDOW",
	"cors.allow_origins":       "CORS_ALLOW_ORIGINS",
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetDefault("app.name", "Course Reporting API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("faculty.cache_ttl", "30s")
	v.SetDefault("events.subject_prefix", "reporting")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("access.unscoped_fallback", true)
	v.SetDefault("auth.rate_limit", 0)
	v.SetDefault("auth.rate_window", "1m")
	v.SetDefault("cors.allow_origins", "*")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cacheTTL, err := parseDuration(v.GetString("faculty.cache_ttl"), 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid faculty cache ttl: %w", err)
	}

	tokenTTL, err := parseDuration(v.GetString("jwt.ttl"), maxTokenTTL)
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	rateWindow, err := parseDuration(v.GetString("auth.rate_window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid auth rate window: %w", err)
	}

	cfg := Config{
		AppName:  v.GetString("app.name"),
		AppEnv:   v.GetString("app.env"),
		AppPort:  v.GetString("app.port"),
		LogLevel: strings.ToLower(v.GetString("log.level")),
		Database: DatabaseConfig{
			Driver:       strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
			Host:         v.GetString("database.host"),
			Port:         v.GetString("database.port"),
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			Name:         v.GetString("database.name"),
			URL:          v.GetString("database.url"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
		},
		RedisURL:               v.GetString("redis.url"),
		FacultyCacheTTL:        cacheTTL,
		NATSURL:                v.GetString("nats.url"),
		EventsSubjectPrefix:    v.GetString("events.subject_prefix"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTTTL:                 clampTokenTTL(tokenTTL),
		AccessUnscopedFallback: v.GetBool("access.unscoped_fallback"),
		AuthRateLimit:          v.GetInt("auth.rate_limit"),
		AuthRateWindow:         rateWindow,
		CORSAllowOrigins:       v.GetString("cors.allow_origins"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, fmt.Errorf("jwt secret must be provided in production")
		}
		cfg.JWTSecret = InsecureDefaultSecret
		cfg.InsecureJWTSecret = true
	}

	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func clampTokenTTL(ttl time.Duration) time.Duration {
	switch {
	case ttl < minTokenTTL:
		return minTokenTTL
	case ttl > maxTokenTTL:
		return maxTokenTTL
	default:
		return ttl
	}
}
