package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Insight InsightConfig `mapstructure:"insight"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type StorageConfig struct {
	// Backend is "memory" or "file".
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

type InsightConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	RequestsPerMin int    `mapstructure:"requests_per_min"`
}

func (c InsightConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// envOverrides are the secrets and knobs that may come from the
// environment rather than the config file, prefixed HEALTHLINK_.
type envOverrides struct {
	InsightAPIKey string `envconfig:"INSIGHT_API_KEY"`
	StorageDir    string `envconfig:"STORAGE_DIR"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
}

// Load reads config.yaml from the working directory or ./config, applies
// defaults, then environment overrides. A missing file is fine; defaults
// carry the portal.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.dir", "data")
	v.SetDefault("insight.model", "gemini-3-flash-preview")
	v.SetDefault("insight.timeout_seconds", 10)
	v.SetDefault("insight.requests_per_min", 10)
	v.SetDefault("logging.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("healthlink", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.InsightAPIKey != "" {
		cfg.Insight.APIKey = env.InsightAPIKey
	}
	if env.StorageDir != "" {
		cfg.Storage.Dir = env.StorageDir
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}

	return &cfg, nil
}
