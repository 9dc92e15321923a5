package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"factskill/internal/infrastructure/scoring"
)

type Config struct {
	HTTPAddr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	// Empty means the catalogs embedded in the binary.
	LocalesDir string `env:"LOCALES_DIR"`

	RecommendationURL          string        `env:"RECOMMENDATION_URL"`
	RecommendationTimeout      time.Duration `env:"RECOMMENDATION_TIMEOUT" envDefault:"0s"`
	RecommendationDefaultLevel int64         `env:"RECOMMENDATION_DEFAULT_LEVEL" envDefault:"100"`
	WorkerPoolSize             int           `env:"WORKER_POOL_SIZE" envDefault:"64"`

	// Optional. The interaction journal is disabled when empty.
	DatabaseURL string `env:"DATABASE_URL"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads envFile when it exists, then parses and validates the process
// environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JournalEnabled reports whether interactions are persisted.
func (c *Config) JournalEnabled() bool {
	return c.DatabaseURL != ""
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("config: HTTP_ADDR must not be empty")
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		return fmt.Errorf("config: DEFAULT_LOCALE must not be empty")
	}

	if c.RecommendationDefaultLevel < scoring.MinLevel || c.RecommendationDefaultLevel > scoring.MaxLevel {
		return fmt.Errorf("config: RECOMMENDATION_DEFAULT_LEVEL must be in [%d, %d], got %d",
			scoring.MinLevel, scoring.MaxLevel, c.RecommendationDefaultLevel)
	}
	if c.RecommendationTimeout < 0 {
		return fmt.Errorf("config: RECOMMENDATION_TIMEOUT must not be negative")
	}
	if c.RecommendationURL != "" {
		if err := checkURL("RECOMMENDATION_URL", c.RecommendationURL, "http", "https"); err != nil {
			return err
		}
	}
	if c.WorkerPoolSize <= 0 {
		return fmt.Errorf("config: WORKER_POOL_SIZE must be positive, got %d", c.WorkerPoolSize)
	}

	if c.DatabaseURL != "" {
		if err := checkURL("DATABASE_URL", c.DatabaseURL, "postgres", "postgresql"); err != nil {
			return err
		}
	}

	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("config: LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT %q is not one of text, json", c.LogFormat)
	}
	return nil
}

func checkURL(name, raw string, schemes ...string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: invalid %s (%q): %w", name, raw, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("config: invalid %s (%q): missing host", name, raw)
	}
	for _, s := range schemes {
		if parsed.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("config: invalid %s (%q): scheme must be one of %s", name, raw, strings.Join(schemes, ", "))
}
