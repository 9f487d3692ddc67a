package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/crmdeck/crmdeck/pkg/helper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// APIServerConfig represents the CRM backend configuration
	APIServerConfig struct {
		Port       int             `yaml:"port"`
		Database   DatabaseConfig  `yaml:"database"`
		Logger     LoggerConfig    `yaml:"logger"`
		JWT        JWTConfig       `yaml:"jwt"`
		TokenStore TokenStoreConfig `yaml:"token_store"`
		I18n       I18nConfig      `yaml:"i18n"`
		Metrics    MetricsConfig   `yaml:"metrics"`
		Tracing    TracingConfig   `yaml:"tracing"`
		CORS       CORSConfig      `yaml:"cors"`
	}

	// ConsoleConfig represents the crmctl console configuration
	ConsoleConfig struct {
		BaseURL string   `yaml:"base_url"` // CRM backend address
		Timeout Duration `yaml:"timeout"`  // HTTP client timeout, 0 keeps the library default
		// SessionPath overrides where the session file lives. Empty
		// means the per-user config directory.
		SessionPath string        `yaml:"session_path"`
		ToastTTL    Duration      `yaml:"toast_ttl"` // how long a toast stays up
		Logger      LoggerConfig  `yaml:"logger"`
		Tracing     TracingConfig `yaml:"tracing"`
	}

	// DatabaseConfig holds the connection settings for the backing store
	DatabaseConfig struct {
		Type     string `yaml:"type"`     // mysql, postgres, sqlite
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"` // file path for sqlite
		SSLMode  string `yaml:"sslmode"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps
		TimeFormat string `yaml:"time_format"` // time format for log timestamps
	}

	// JWTConfig configures the tokens issued at login
	JWTConfig struct {
		SecretKey string   `yaml:"secret_key"`
		Duration  Duration `yaml:"duration"`
	}

	// TokenStoreConfig selects where issued tokens are tracked
	TokenStoreConfig struct {
		Type  string           `yaml:"type"` // "memory" or "redis"
		Redis RedisStoreConfig `yaml:"redis"`
	}

	// RedisStoreConfig represents the Redis connection for the token store
	RedisStoreConfig struct {
		Addr     string   `yaml:"addr"`
		Username string   `yaml:"username"`
		Password string   `yaml:"password"`
		DB       int      `yaml:"db"`
		Prefix   string   `yaml:"prefix"`
		TTL      Duration `yaml:"ttl"`
	}

	// I18nConfig represents the internationalization configuration
	I18nConfig struct {
		Path string `yaml:"path"` // path to translation files
	}

	// MetricsConfig configures the prometheus registry
	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}

	// TracingConfig configures OpenTelemetry export
	TracingConfig struct {
		Enabled     bool    `yaml:"enabled"`
		ServiceName string  `yaml:"service_name"`
		Endpoint    string  `yaml:"endpoint"` // e.g. localhost:4317 or http://localhost:4318
		Protocol    string  `yaml:"protocol"` // grpc or http
		Insecure    bool    `yaml:"insecure"`
		SamplerRate float64 `yaml:"sampler_rate"` // 0.0~1.0
		Environment string  `yaml:"environment"`
	}

	// CORSConfig controls the browser-facing CORS headers
	CORSConfig struct {
		AllowOrigins []string `yaml:"allow_origins"`
	}
)

// Duration is a time.Duration that decodes from strings like "24h"
// or "4.5s" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Type interface {
	APIServerConfig | ConsoleConfig
}

// LoadConfig loads configuration from a YAML file with environment variable support
func LoadConfig[T Type](filename string) (*T, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	data = resolveEnv(data)
	var cfg T
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	return &cfg, cfgPath, nil
}

// resolveEnv expands ${VAR} and ${VAR:default} references in the raw config
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
