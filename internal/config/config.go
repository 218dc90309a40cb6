package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all console configuration loaded from environment variables.
type Config struct {
	API  APIConfig
	Fake FakeConfig

	// PageLimit is the default page size for paginated listings.
	PageLimit int `validate:"gte=1,lte=100"`
}

// APIConfig holds the admin backend connection settings.
type APIConfig struct {
	BaseURL string `validate:"required,url"`
	Token   string
	Timeout time.Duration `validate:"gt=0"`

	// RequestsPerSecond throttles outbound requests; 0 disables the
	// limiter.
	RequestsPerSecond float64 `validate:"gte=0"`
	Burst             int     `validate:"gte=0"`
}

// FakeConfig holds the development backend settings (taskdeck serve-fake).
type FakeConfig struct {
	Addr      string `validate:"required"`
	JWTSecret string
	Seed      int64
}

var validate = validator.New()

// Load reads configuration from environment variables. Defaults are safe
// for local development against the fake backend.
func Load() (*Config, error) {
	timeout, err := getEnvDuration("TASKDECK_API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rps, err := getEnvFloat("TASKDECK_API_RATE_LIMIT", 5)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	burst, err := getEnvInt("TASKDECK_API_BURST", 10)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	pageLimit, err := getEnvInt("TASKDECK_PAGE_LIMIT", 10)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	seed, err := getEnvInt("TASKDECK_FAKE_SEED", 1)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:           getEnv("TASKDECK_API_BASE_URL", "http://localhost:8080"),
			Token:             getEnv("TASKDECK_API_TOKEN", ""),
			Timeout:           timeout,
			RequestsPerSecond: rps,
			Burst:             burst,
		},
		Fake: FakeConfig{
			Addr:      getEnv("TASKDECK_FAKE_ADDR", ":8080"),
			JWTSecret: getEnv("TASKDECK_FAKE_JWT_SECRET", "taskdeck-dev-secret-not-for-production"),
			Seed:      int64(seed),
		},
		PageLimit: pageLimit,
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}
