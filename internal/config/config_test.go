package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, defaultUsaceURL, cfg.UsaceURL)
	assert.Equal(t, defaultSwpaBaseURL, cfg.SwpaBaseURL)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "*/15 * * * *", cfg.RefreshCron)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("USACE_URL", "http://localhost:8081/norfork.htm")
	t.Setenv("SWPA_BASE_URL", "http://localhost:8082/schedules/")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REFRESH_CRON", "*/5 * * * *")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8081/norfork.htm", cfg.UsaceURL)
	assert.Equal(t, "http://localhost:8082/schedules/", cfg.SwpaBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "*/5 * * * *", cfg.RefreshCron)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-reports", cfg.KafkaTopic)
}

func TestLoad_NormalizesBaseURL(t *testing.T) {
	t.Setenv("SWPA_BASE_URL", "http://localhost:8082/schedules")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8082/schedules/", cfg.SwpaBaseURL)
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"CACHE_TTL", "FETCH_TIMEOUT", "SHUTDOWN_TIMEOUT"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "not-a-duration")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}

	t.Run("negative", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "-5m")

		_, err := Load()
		require.Error(t, err)
	})
}
