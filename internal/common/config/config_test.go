// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalConfig() *Config {
	cfg := &Config{}
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Postgres.Database = "themes"
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := minimalConfig()
	applyDefaults(cfg)

	assert.Equal(t, "monetization-engine", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Database.Redis.Address)
	assert.Equal(t, "themes", cfg.Database.Elasticsearch.ThemeIndex)
	assert.Equal(t, 90, cfg.Engine.HistoryRetentionDays)
	assert.Equal(t, 30, cfg.Engine.TrendWindowDays)
	assert.Equal(t, 600, cfg.Engine.CacheTTLSeconds)
	assert.Equal(t, 60, cfg.Batch.IntervalMinutes)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, 100, cfg.Batch.PageSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := minimalConfig()
	cfg.Batch.Concurrency = 2
	cfg.Engine.HistoryRetentionDays = 365

	applyDefaults(cfg)

	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, 365, cfg.Engine.HistoryRetentionDays)
}

func TestValidateConfig(t *testing.T) {
	t.Run("minimal config is valid", func(t *testing.T) {
		cfg := minimalConfig()
		applyDefaults(cfg)
		assert.NoError(t, validateConfig(cfg))
	})

	t.Run("missing postgres host", func(t *testing.T) {
		cfg := minimalConfig()
		cfg.Database.Postgres.Host = ""
		require.Error(t, validateConfig(cfg))
	})

	t.Run("missing postgres database", func(t *testing.T) {
		cfg := minimalConfig()
		cfg.Database.Postgres.Database = ""
		require.Error(t, validateConfig(cfg))
	})

	t.Run("score decimals out of range", func(t *testing.T) {
		cfg := minimalConfig()
		cfg.Engine.ScoreDecimals = 5
		require.Error(t, validateConfig(cfg))
	})

	t.Run("known weight names pass", func(t *testing.T) {
		cfg := minimalConfig()
		cfg.Engine.Weights = map[string]float64{
			"marketSize":         0.5,
			"paymentWillingness": 0.5,
		}
		assert.NoError(t, validateConfig(cfg))
	})

	t.Run("unknown weight name fails", func(t *testing.T) {
		cfg := minimalConfig()
		cfg.Engine.Weights = map[string]float64{"brandStrength": 0.5}
		err := validateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "brandStrength")
	})
}

func TestPostgresDSN(t *testing.T) {
	cfg := minimalConfig()
	cfg.Database.Postgres.Port = 5432
	cfg.Database.Postgres.User = "engine"
	cfg.Database.Postgres.Password = "secret"
	cfg.Database.Postgres.SSLMode = "disable"

	dsn := cfg.Database.Postgres.GetDSN()

	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=themes")
	assert.Contains(t, dsn, "sslmode=disable")
}
