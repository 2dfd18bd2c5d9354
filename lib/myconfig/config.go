package myconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is assembled from defaults, then the optional YAML file named by CONFIG_FILE,
// then environment variables.
type Config struct {
	Port                     string        `yaml:"port"`
	PublicBaseURL            string        `yaml:"publicBaseUrl"`
	ProductServiceURL        string        `yaml:"productServiceUrl"`
	RecommendationServiceURL string        `yaml:"recommendationServiceUrl"`
	ReviewServiceURL         string        `yaml:"reviewServiceUrl"`
	ReviewDatabaseDSN        string        `yaml:"reviewDatabaseDsn"`
	RedisAddr                string        `yaml:"redisAddr"`
	HTTPClientTimeout        time.Duration `yaml:"httpClientTimeout"`
	GoogleCloudProject       string        `yaml:"googleCloudProject"`
	Tracing                  Tracing       `yaml:"tracing"`
}

type Tracing struct {
	Enabled      bool    `yaml:"enabled"`
	OTLPEndpoint string  `yaml:"otlpEndpoint"`
	SampleRatio  float64 `yaml:"sampleRatio"`
	ServiceName  string  `yaml:"serviceName"`
}

func defaults() Config {
	return Config{
		Port:              "8080",
		HTTPClientTimeout: 5 * time.Second,
		Tracing: Tracing{
			SampleRatio: 0.1,
			ServiceName: "productcomposite",
		},
	}
}

func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := defaults()

	if filename := strings.TrimSpace(getenv("CONFIG_FILE")); filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", filename, err)
		}
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("error parsing config file %s: %w", filename, err)
		}
	}

	overrideString(getenv, "PORT", &cfg.Port)
	overrideString(getenv, "PUBLIC_BASE_URL", &cfg.PublicBaseURL)
	overrideString(getenv, "PRODUCT_SERVICE_URL", &cfg.ProductServiceURL)
	overrideString(getenv, "RECOMMENDATION_SERVICE_URL", &cfg.RecommendationServiceURL)
	overrideString(getenv, "REVIEW_SERVICE_URL", &cfg.ReviewServiceURL)
	overrideString(getenv, "REVIEW_DATABASE_DSN", &cfg.ReviewDatabaseDSN)
	overrideString(getenv, "REDIS_ADDR", &cfg.RedisAddr)
	overrideString(getenv, "GOOGLE_CLOUD_PROJECT", &cfg.GoogleCloudProject)
	overrideString(getenv, "OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.Tracing.OTLPEndpoint)
	overrideString(getenv, "OTEL_SERVICE_NAME", &cfg.Tracing.ServiceName)

	if v := strings.TrimSpace(getenv("HTTP_CLIENT_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HTTP_CLIENT_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPClientTimeout = d
	}
	if v := strings.TrimSpace(strings.ToLower(getenv("OTEL_ENABLED"))); v != "" {
		cfg.Tracing.Enabled = v == "1" || v == "true" || v == "yes" || v == "on"
	}
	if v := strings.TrimSpace(getenv("OTEL_SAMPLER_RATIO")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OTEL_SAMPLER_RATIO %q: %w", v, err)
		}
		cfg.Tracing.SampleRatio = f
	}

	cfg.applyDerivedDefaults()

	return cfg, nil
}

// applyDerivedDefaults points every unset service url at this process, which hosts all services.
func (cfg *Config) applyDerivedDefaults() {
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	cfg.PublicBaseURL = strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if cfg.ProductServiceURL == "" {
		cfg.ProductServiceURL = cfg.PublicBaseURL
	}
	if cfg.RecommendationServiceURL == "" {
		cfg.RecommendationServiceURL = cfg.PublicBaseURL
	}
	if cfg.ReviewServiceURL == "" {
		cfg.ReviewServiceURL = cfg.PublicBaseURL
	}
	if cfg.Tracing.SampleRatio < 0 {
		cfg.Tracing.SampleRatio = 0
	}
	if cfg.Tracing.SampleRatio > 1 {
		cfg.Tracing.SampleRatio = 1
	}
}

func overrideString(getenv func(string) string, key string, target *string) {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		*target = v
	}
}
