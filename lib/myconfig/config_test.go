package myconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(key string) string {
		return m[key]
	}
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := load(envOf(nil))
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
		assert.Equal(t, "http://localhost:8080", cfg.ProductServiceURL)
		assert.Equal(t, "http://localhost:8080", cfg.RecommendationServiceURL)
		assert.Equal(t, "http://localhost:8080", cfg.ReviewServiceURL)
		assert.Equal(t, 5*time.Second, cfg.HTTPClientTimeout)
		assert.False(t, cfg.Tracing.Enabled)
	})

	t.Run("Environment", func(t *testing.T) {
		cfg, err := load(envOf(map[string]string{
			"PORT":                "9090",
			"PRODUCT_SERVICE_URL": "http://product:7001",
			"HTTP_CLIENT_TIMEOUT": "750ms",
			"OTEL_ENABLED":        "true",
			"OTEL_SAMPLER_RATIO":  "3",
			"REDIS_ADDR":          "redis:6379",
		}))
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:9090", cfg.PublicBaseURL)
		assert.Equal(t, "http://product:7001", cfg.ProductServiceURL)
		assert.Equal(t, "http://localhost:9090", cfg.ReviewServiceURL)
		assert.Equal(t, 750*time.Millisecond, cfg.HTTPClientTimeout)
		assert.True(t, cfg.Tracing.Enabled)
		assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
	})

	t.Run("File overridden by environment", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(filename, []byte(`
port: "7000"
reviewServiceUrl: http://review:7003/
httpClientTimeout: 2s
tracing:
  enabled: true
  otlpEndpoint: collector:4318
`), 0o600)
		require.NoError(t, err)

		cfg, err := load(envOf(map[string]string{
			"CONFIG_FILE": filename,
			"PORT":        "7777",
		}))
		require.NoError(t, err)

		assert.Equal(t, "7777", cfg.Port)
		assert.Equal(t, "http://review:7003/", cfg.ReviewServiceURL)
		assert.Equal(t, 2*time.Second, cfg.HTTPClientTimeout)
		assert.True(t, cfg.Tracing.Enabled)
		assert.Equal(t, "collector:4318", cfg.Tracing.OTLPEndpoint)
	})

	t.Run("Invalid timeout", func(t *testing.T) {
		_, err := load(envOf(map[string]string{"HTTP_CLIENT_TIMEOUT": "soon"}))
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := load(envOf(map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"}))
		assert.Error(t, err)
	})
}
