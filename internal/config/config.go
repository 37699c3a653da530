package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port         string
	RateLimitRPS float64
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
}

// DatabaseConfig points at Postgres. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string
}

type KafkaConfig struct {
	Brokers         []string
	GroupID         string
	InventoryTopics []string
}

// HoursConfig holds the zone used for pantries that do not declare their own.
type HoursConfig struct {
	DefaultTimezone string
	Location        *time.Location
}

type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Security SecurityConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Hours    HoursConfig
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads the configuration through lookup and validates it.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	env := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: env("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Directory: env("LOG_DIR", "./logs"),
			Level:     env("LOG_LEVEL", "info"),
			Format:    env("LOG_FORMAT", "text"),
		},
		Security: SecurityConfig{
			JWTSecret:    env("JWT_SECRET", ""),
			JWTPublicKey: strings.ReplaceAll(env("JWT_PUBLIC_KEY", ""), `\n`, "\n"),
		},
		Database: DatabaseConfig{
			URL: env("DATABASE_URL", ""),
		},
		Kafka: KafkaConfig{
			// KAFKA_BROKER is the legacy single-broker name.
			Brokers:         splitList(env("KAFKA_BROKERS", env("KAFKA_BROKER", ""))),
			GroupID:         env("KAFKA_GROUP_ID", "pantry-hub"),
			InventoryTopics: splitList(env("KAFKA_INVENTORY_TOPICS", "pantry.inventory")),
		},
		Hours: HoursConfig{
			DefaultTimezone: env("DEFAULT_TIMEZONE", "UTC"),
		},
	}

	var errs []error

	rps, err := strconv.ParseFloat(env("RATE_LIMIT_RPS", "20"), 64)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
	case rps < 0:
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", rps))
	default:
		cfg.Server.RateLimitRPS = rps
	}

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a valid port number, got %q", cfg.Server.Port))
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.Logging.Format))
	}

	if cfg.Security.JWTSecret == "" && cfg.Security.JWTPublicKey == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PUBLIC_KEY must be set"))
	}

	loc, err := time.LoadLocation(cfg.Hours.DefaultTimezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_TIMEZONE: %w", err))
	} else {
		cfg.Hours.Location = loc
	}

	if len(cfg.Kafka.Brokers) > 0 && len(cfg.Kafka.InventoryTopics) == 0 {
		errs = append(errs, errors.New("KAFKA_INVENTORY_TOPICS must list at least one topic when brokers are set"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
