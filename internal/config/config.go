package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const defaultSQLiteURL = "file:daily-challenge.db"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string `mapstructure:"-"`   // Telegram API token loaded from environment
	RedisURL         string `mapstructure:"-"`   // optional, question bank cache is off when empty
	Source           Source `mapstructure:"source"`
	DB               DB     `mapstructure:"database"`
	Quiz             Quiz   `mapstructure:"quiz"`
	Events           Events `mapstructure:"events"`
}

// Source describes where question banks are fetched from.
type Source struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// DB contains database-related configuration parameters.
type DB struct {
	Driver          string        `mapstructure:"driver"`            // postgres or sqlite
	URL             string        `mapstructure:"-"`                 // connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Quiz holds session sizing.
type Quiz struct {
	SessionSize              int `mapstructure:"session_size"`
	MatchingSessionSize      int `mapstructure:"matching_session_size"`
	MatchingFailureThreshold int `mapstructure:"matching_failure_threshold"`
}

type Events struct {
	Buffer int64 `mapstructure:"buffer"` // failed item channel capacity
}

// Load reads configuration from config files and environment variables.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("source.base_url", "https://nyinyiz.github.io/daily_challenges_data/")
	v.SetDefault("source.timeout", "10s")
	v.SetDefault("source.cache_ttl", "30m")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("quiz.session_size", 10)
	v.SetDefault("quiz.matching_session_size", 3)
	v.SetDefault("quiz.matching_failure_threshold", 3)
	v.SetDefault("events.buffer", 64)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.RedisURL = v.GetString("redis_url")

	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	cfg.DB.URL = v.GetString("database_url")
	switch cfg.DB.Driver {
	case DriverPostgres:
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	case DriverSQLite:
		if cfg.DB.URL == "" {
			cfg.DB.URL = defaultSQLiteURL
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	if !strings.HasSuffix(cfg.Source.BaseURL, "/") {
		cfg.Source.BaseURL += "/"
	}

	return &cfg, nil
}
