package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

type Config struct {
	Server   ServerConfig
	Report   ReportConfig
	Logger   LoggerConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type ReportConfig struct {
	TopProducts  int
	Workers      int
	MaxBodyBytes int64
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

// Load reads configuration from the environment. Variables from ENV_FILE
// (default .env) are applied first without overriding ones already set.
func Load() (*Config, error) {
	if err := loadEnvFile(env("ENV_FILE", defaultEnvFile, asString)); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            env("SERVER_HOST", "localhost", asString),
			Port:            env("SERVER_PORT", 8080, strconv.Atoi),
			ReadTimeout:     env("SERVER_READ_TIMEOUT", 10*time.Second, time.ParseDuration),
			WriteTimeout:    env("SERVER_WRITE_TIMEOUT", 10*time.Second, time.ParseDuration),
			IdleTimeout:     env("SERVER_IDLE_TIMEOUT", 60*time.Second, time.ParseDuration),
			ShutdownTimeout: env("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second, time.ParseDuration),
		},
		Report: ReportConfig{
			TopProducts:  env("REPORT_TOP_PRODUCTS", 10, strconv.Atoi),
			Workers:      env("REPORT_WORKERS", 1, strconv.Atoi),
			MaxBodyBytes: env("REPORT_MAX_BODY_BYTES", int64(32<<20), parseInt64),
		},
		Logger: LoggerConfig{
			Level:  env("LOG_LEVEL", "info", asString),
			Format: env("LOG_FORMAT", "json", asString),
		},
		Security: SecurityConfig{
			EnableRateLimit: env("SECURITY_RATE_LIMIT_ENABLED", true, strconv.ParseBool),
			RateLimitRPS:    env("SECURITY_RATE_LIMIT_RPS", 100, strconv.Atoi),
			RateLimitBurst:  env("SECURITY_RATE_LIMIT_BURST", 10, strconv.Atoi),
			AllowedOrigins:  env("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:8080"}, asList),
			TrustedProxies:  env("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}, asList),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Report.TopProducts <= 0 {
		return fmt.Errorf("report top products must be positive, got %d", c.Report.TopProducts)
	}

	if c.Report.Workers <= 0 {
		return fmt.Errorf("report workers must be positive, got %d", c.Report.Workers)
	}

	if c.Report.MaxBodyBytes <= 0 {
		return fmt.Errorf("report max body bytes must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// env returns the parsed value of key, or def when key is unset or does not parse.
func env[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func asString(s string) (string, error) { return s, nil }

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func asList(s string) ([]string, error) { return strings.Split(s, ","), nil }

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
