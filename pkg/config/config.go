package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for lead-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8090"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Timezone used for date-range resolution and volume bucketing.
	// Bucket generation and lead classification must share this location,
	// otherwise leads can silently miss their bucket.
	Timezone string `yaml:"timezone" env:"TIMEZONE" env-default:"Local"`

	// CORSAllowedOrigins is a comma-separated list for the browser dashboard.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`

	// Database configuration (PostgreSQL lead store, externally owned)
	Database DatabaseConfig `yaml:"database"`

	// Realtime change-stream configuration
	Realtime RealtimeConfig `yaml:"realtime"`

	// Redis configuration (notification persistence; optional)
	Redis RedisConfig `yaml:"redis"`

	// Notifications configuration
	Notifications NotificationsConfig `yaml:"notifications"`

	// Webhook configuration for the qualification pipeline trigger
	Webhook WebhookConfig `yaml:"webhook"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"leadpilot"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"leadpilot"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// RealtimeConfig holds change-notification stream settings.
type RealtimeConfig struct {
	// Channel is the Postgres NOTIFY channel the ingestion triggers publish on.
	Channel string `yaml:"channel" env:"REALTIME_CHANNEL" env-default:"lead_engine_changes"`
	// MaxReconnectInterval caps the listener's reconnect backoff.
	MaxReconnectInterval time.Duration `yaml:"max_reconnect_interval" env:"REALTIME_MAX_RECONNECT_INTERVAL" env-default:"30s"`
}

// RedisConfig holds Redis configuration for notification persistence.
// Redis is optional; when Host is empty the file store is used instead.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// NotificationsConfig holds notification list settings.
type NotificationsConfig struct {
	// Max is the cap on retained notifications; oldest evicted first.
	Max int `yaml:"max" env:"NOTIFICATIONS_MAX" env-default:"10"`
	// StorageKey is the key the list is persisted under.
	StorageKey string `yaml:"storage_key" env:"NOTIFICATIONS_STORAGE_KEY" env-default:"lead_notifications"`
	// FilePath backs the file store when Redis is not configured.
	FilePath string `yaml:"file_path" env:"NOTIFICATIONS_FILE_PATH" env-default:"lead_notifications.json"`
}

// WebhookConfig holds the outbound qualification-trigger endpoint.
type WebhookConfig struct {
	URL     string        `yaml:"url" env:"WEBHOOK_URL" env-default:""`
	Timeout time.Duration `yaml:"timeout" env:"WEBHOOK_TIMEOUT" env-default:"10s"`
	// TriggeredFrom identifies this deployment in the webhook payload.
	TriggeredFrom string `yaml:"triggered_from" env:"WEBHOOK_TRIGGERED_FROM" env-default:"lead-engine"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
// Environment variables override YAML values. Secrets (PGPASSWORD,
// REDIS_PASSWORD) must come from environment variables (yaml:"-" fields).
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	// Load config from YAML file with environment variable overrides
	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if cfg.Notifications.Max <= 0 {
		return nil, fmt.Errorf("notifications.max must be positive, got %d", cfg.Notifications.Max)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
