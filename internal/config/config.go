package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultPort            = "3000"
	defaultMaxOpenConns    = "25"
	defaultMaxIdleConns    = "5"
	defaultConnMaxLifetime = "30m"
	defaultLogLevel        = "info"
)

// Config: runtime-настройки API, собираются из переменных окружения.
type Config struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	AllowedOrigins  []string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logrus.Level
}

// Load reads the environment. DATABASE_URL may be empty here: the connection
// manager reports a missing target when the database is first acquired.
func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.AllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	cfg.MaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	if err != nil {
		return nil, err
	}
	cfg.MaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", defaultMaxIdleConns)
	if err != nil {
		return nil, err
	}
	cfg.ConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", defaultConnMaxLifetime)
	if err != nil {
		return nil, err
	}

	levelRaw := strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.LogLevel, err = logrus.ParseLevel(levelRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL value %q: %w", levelRaw, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.MaxOpenConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 0")
	}
	if cfg.MaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.ConnMaxLifetime < 0 {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME must be >= 0")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("in prod/release DATABASE_URL must be set")
		}
		for _, o := range cfg.AllowedOrigins {
			if o == "*" {
				return fmt.Errorf("in prod/release CORS_ALLOWED_ORIGINS must not contain *")
			}
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

// пример: CORS_ALLOWED_ORIGINS=https://app.com,https://admin.app.com
func parseListEnv(name string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
