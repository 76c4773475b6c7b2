package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/designdesk/session-gateway/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Session cache backends
const (
	CacheBackendFile     = "file"
	CacheBackendPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Assistant channel configuration
	AssistantCfg AssistantChannelConfig `envPrefix:"ASSISTANT_"`

	// External service configurations
	RequirementsCfg RequirementsConnectorConfig `envPrefix:"REQUIREMENTS_"`
	TasksCfg        TasksConnectorConfig        `envPrefix:"TASKS_"`
	DesignersCfg    DesignersConnectorConfig    `envPrefix:"DESIGNERS_"`
	ReportsCfg      ReportsConnectorConfig      `envPrefix:"REPORTS_"`

	// Session cache configuration
	SessionCacheCfg SessionCacheConfig `envPrefix:"SESSION_CACHE_"`

	// Database configuration (used only with the postgres cache backend)
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Reference image upload configuration
	UploadCfg UploadConfig `envPrefix:"UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Environment (set from flag, not from env var)
	Environment string
}

// AssistantChannelConfig holds the WebSocket channel settings. The reconnect
// policy defaults to a fixed 5-second interval with unbounded attempts.
type AssistantChannelConfig struct {
	URL                  string        `env:"WS_URL,notEmpty"`
	HandshakeTimeout     time.Duration `env:"HANDSHAKE_TIMEOUT" envDefault:"10s"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ReadLimit            int64         `env:"READ_LIMIT" envDefault:"1048576"`
	ReconnectInterval    time.Duration `env:"RECONNECT_INTERVAL" envDefault:"5s"`
	ReconnectMaxAttempts int           `env:"RECONNECT_MAX_ATTEMPTS" envDefault:"0"` // 0 = retry forever
}

type RequirementsConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type TasksConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type DesignersConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ReportsConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// SessionCacheConfig selects and tunes the durable session cache backend.
type SessionCacheConfig struct {
	Backend      string        `env:"BACKEND" envDefault:"file"`
	FilePath     string        `env:"FILE_PATH" envDefault:"data/sessions.json"`
	SaveInterval time.Duration `env:"SAVE_INTERVAL" envDefault:"2s"`
}

// UploadConfig holds reference image upload limits
type UploadConfig struct {
	MaxImageSize int64 `env:"MAX_IMAGE_SIZE" envDefault:"5242880"` // 5 MiB, exclusive
	MaxImages    int   `env:"MAX_IMAGES" envDefault:"16"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate assistant channel configuration
	if cfg.AssistantCfg.ReconnectInterval < time.Second || cfg.AssistantCfg.ReconnectInterval > time.Minute {
		errors = append(errors, fmt.Sprintf("ASSISTANT_RECONNECT_INTERVAL must be between 1s and 1m, got %s", cfg.AssistantCfg.ReconnectInterval))
	}

	if cfg.AssistantCfg.ReconnectMaxAttempts < 0 {
		errors = append(errors, fmt.Sprintf("ASSISTANT_RECONNECT_MAX_ATTEMPTS must not be negative, got %d", cfg.AssistantCfg.ReconnectMaxAttempts))
	}

	if !strings.HasPrefix(cfg.AssistantCfg.URL, "ws://") && !strings.HasPrefix(cfg.AssistantCfg.URL, "wss://") {
		errors = append(errors, fmt.Sprintf("ASSISTANT_WS_URL must be a ws:// or wss:// URL, got %q", cfg.AssistantCfg.URL))
	}

	// Validate session cache configuration
	switch cfg.SessionCacheCfg.Backend {
	case CacheBackendFile, CacheBackendPostgres:
	default:
		errors = append(errors, fmt.Sprintf("SESSION_CACHE_BACKEND must be %q or %q, got %q", CacheBackendFile, CacheBackendPostgres, cfg.SessionCacheCfg.Backend))
	}

	if cfg.SessionCacheCfg.Backend == CacheBackendPostgres && cfg.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL is required with the postgres session cache backend")
	}

	// Validate upload configuration
	if cfg.UploadCfg.MaxImageSize < 1024 || cfg.UploadCfg.MaxImageSize > 64<<20 {
		errors = append(errors, fmt.Sprintf("UPLOAD_MAX_IMAGE_SIZE must be between 1KiB and 64MiB, got %d", cfg.UploadCfg.MaxImageSize))
	}

	if cfg.UploadCfg.MaxImages < 1 || cfg.UploadCfg.MaxImages > 64 {
		errors = append(errors, fmt.Sprintf("UPLOAD_MAX_IMAGES must be between 1 and 64, got %d", cfg.UploadCfg.MaxImages))
	}

	// Validate database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
