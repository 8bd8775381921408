package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://bot@localhost/bot")
	t.Setenv("REDIS_URL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramAPIToken)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "postgres://bot@localhost/bot", cfg.DB.URL)
	assert.Equal(t, 20, cfg.DB.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.DB.MaxConnLifetime)
	assert.Equal(t, "https://nyinyiz.github.io/daily_challenges_data/", cfg.Source.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Source.CacheTTL)
	assert.Equal(t, 10, cfg.Quiz.SessionSize)
	assert.Equal(t, 3, cfg.Quiz.MatchingSessionSize)
	assert.Equal(t, 3, cfg.Quiz.MatchingFailureThreshold)
	assert.EqualValues(t, 64, cfg.Events.Buffer)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://bot@localhost/bot")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_DRIVER", "postgres")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoad_SQLiteDefaultsURL(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SOURCE_BASE_URL", "http://localhost:8080/data")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, defaultSQLiteURL, cfg.DB.URL)
	assert.Equal(t, "http://localhost:8080/data/", cfg.Source.BaseURL)
}

func TestDSN(t *testing.T) {
	_, err := DB{}.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)

	dsn, err := DB{URL: "file:test.db"}.DSN()
	require.NoError(t, err)
	assert.Equal(t, "file:test.db", dsn)
}
