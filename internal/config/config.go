// Package config reads service settings from the environment, after loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TokenStoreSQLite   = "sqlite"
	TokenStorePostgres = "postgres"
)

type Config struct {
	Port      string
	PublicURL string

	StravaClientID     string
	StravaClientSecret string
	SessionSecret      string
	SessionTTL         time.Duration

	TokenStore  string
	DBPath      string
	DatabaseURL string

	RedisAddr        string
	RedisPassword    string
	ActivityCacheTTL time.Duration

	ActivityPages   int
	ActivityPerPage int

	Location *time.Location
}

// RedirectURL is where Strava sends the athlete back after authorizing.
func (c Config) RedirectURL() string {
	return strings.TrimRight(c.PublicURL, "/") + "/auth/callback"
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (Config, error) {
	var errs []error

	c := Config{
		Port:               Get("PORT", "8080"),
		StravaClientID:     strings.TrimSpace(os.Getenv("STRAVA_CLIENT_ID")),
		StravaClientSecret: strings.TrimSpace(os.Getenv("STRAVA_CLIENT_SECRET")),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		TokenStore:         strings.ToLower(Get("TOKEN_STORE", TokenStoreSQLite)),
		DBPath:             Get("DB_PATH", "data/app.db"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
	}
	c.PublicURL = Get("PUBLIC_URL", "http://localhost:"+c.Port)

	if c.StravaClientID == "" {
		errs = append(errs, errors.New("STRAVA_CLIENT_ID is required"))
	}
	if c.StravaClientSecret == "" {
		errs = append(errs, errors.New("STRAVA_CLIENT_SECRET is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}

	switch c.TokenStore {
	case TokenStoreSQLite:
	case TokenStorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when TOKEN_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("TOKEN_STORE must be %q or %q, got %q", TokenStoreSQLite, TokenStorePostgres, c.TokenStore))
	}

	var err error
	if c.SessionTTL, err = GetDuration("SESSION_TTL", 7*24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if c.ActivityCacheTTL, err = GetDuration("ACTIVITY_CACHE_TTL", 15*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if c.ActivityPages, err = GetInt("ACTIVITY_PAGES", 1); err != nil {
		errs = append(errs, err)
	}
	if c.ActivityPerPage, err = GetInt("ACTIVITY_PER_PAGE", 200); err != nil {
		errs = append(errs, err)
	}

	tz := Get("TIMEZONE", "UTC")
	if c.Location, err = time.LoadLocation(tz); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", tz, err))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return c, nil
}

// Get returns the value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// GetDuration accepts Go duration strings such as "15m" or "1h30m".
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
