package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-catalog-service/internal/usgs"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, usgs.DefaultBaseURL, cfg.USGSBaseURL)
	assert.Equal(t, 10*time.Second, cfg.USGSTimeout)
	assert.Equal(t, "US", cfg.CountryCode)
	assert.Equal(t, 0.0, cfg.MinMagnitude)
	assert.Equal(t, 10.0, cfg.MaxMagnitude)
	assert.Equal(t, usgs.AlertAll, cfg.AlertLevel)
	assert.Equal(t, usgs.OrderTime, cfg.OrderBy)
	assert.Equal(t, 5*time.Minute, cfg.PollInterval)
	assert.Equal(t, 10*time.Minute, cfg.WindowOverlap)
	assert.Equal(t, 10000, cfg.SeenCacheSize)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "quake-events", cfg.KafkaSinkTopic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("USGS_BASE_URL", "http://localhost:9999/fdsnws/event/1/query")
	t.Setenv("USGS_TIMEOUT", "30s")
	t.Setenv("COUNTRY_CODE", "TR")
	t.Setenv("MIN_MAGNITUDE", "4.5")
	t.Setenv("MAX_MAGNITUDE", "9")
	t.Setenv("ALERT_LEVEL", "orange")
	t.Setenv("ORDER_BY", "magnitude")
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("WINDOW_OVERLAP", "5m")
	t.Setenv("SEEN_CACHE_SIZE", "500")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-quakes")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/fdsnws/event/1/query", cfg.USGSBaseURL)
	assert.Equal(t, 30*time.Second, cfg.USGSTimeout)
	assert.Equal(t, "TR", cfg.CountryCode)
	assert.Equal(t, 4.5, cfg.MinMagnitude)
	assert.Equal(t, 9.0, cfg.MaxMagnitude)
	assert.Equal(t, usgs.AlertOrange, cfg.AlertLevel)
	assert.Equal(t, usgs.OrderMagnitude, cfg.OrderBy)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.WindowOverlap)
	assert.Equal(t, 500, cfg.SeenCacheSize)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-quakes", cfg.KafkaSinkTopic)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CountryCodeNone(t *testing.T) {
	t.Setenv("COUNTRY_CODE", "none")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.CountryCode)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"USGS_TIMEOUT":  "soon",
		"POLL_INTERVAL": "-5m",
		"MIN_MAGNITUDE": "weak",
		"MAX_MAGNITUDE": "strong",
		"ALERT_LEVEL":   "purple",
		"ORDER_BY":      "depth",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_OverlapSanityCheck(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("WINDOW_OVERLAP", "2h")

	_, err := Load()
	require.Error(t, err)
}
