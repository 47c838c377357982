package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Log     LogConfig     `mapstructure:"log"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Review  ReviewConfig  `mapstructure:"review"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type StorageConfig struct {
	Driver   string         `mapstructure:"driver"` // "memory", "sqlite" or "postgres"
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Memory   MemoryConfig   `mapstructure:"memory"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type MemoryConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

type ArchiveConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig controls the rotating log file. An empty File logs to the console only.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
}

type ClaudeConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// ReviewConfig holds AI review coach settings.
type ReviewConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	MaxTokens         int     `mapstructure:"max_tokens"`
	RequestsPerMinute float64 `mapstructure:"requests_per_minute"` // 0 disables throttling
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TracingConfig controls OpenTelemetry spans. File empty writes to stderr.
type TracingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

// Load reads configuration from file, layered over Defaults.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v, Defaults())

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.sqlite.path", d.Storage.SQLite.Path)
	v.SetDefault("storage.postgres.max_conns", d.Storage.Postgres.MaxConns)
	v.SetDefault("storage.memory.max_size", d.Storage.Memory.MaxSize)
	v.SetDefault("archive.type", d.Archive.Type)
	v.SetDefault("archive.path", d.Archive.Path)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("llm.claude.model", d.LLM.Claude.Model)
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.claude.base_url", d.LLM.Claude.BaseURL)
	v.SetDefault("llm.openai.base_url", d.LLM.OpenAI.BaseURL)
	v.SetDefault("review.max_tokens", d.Review.MaxTokens)
	v.SetDefault("review.requests_per_minute", d.Review.RequestsPerMinute)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			SQLite: SQLiteConfig{
				Path: "data/tradejournal.db",
			},
			Postgres: PostgresConfig{
				MaxConns: 10,
			},
			Memory: MemoryConfig{
				MaxSize: 10000,
			},
		},
		Archive: ArchiveConfig{
			Type: "localfs",
			Path: "data/archive",
		},
		Log: LogConfig{
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
		},
		LLM: LLMConfig{
			Claude: ClaudeConfig{Model: "claude-sonnet-4-20250514"},
			OpenAI: OpenAIConfig{Model: "gpt-4o"},
		},
		Review: ReviewConfig{
			MaxTokens:         1024,
			RequestsPerMinute: 10,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	// Storage validation; an empty driver means memory
	switch c.Storage.Driver {
	case "", DriverMemory:
		if c.Storage.Memory.MaxSize < 0 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("memory max_size cannot be negative, got %d", c.Storage.Memory.MaxSize))
		}
	case DriverSQLite:
		if c.Storage.SQLite.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("sqlite path required when driver is sqlite"))
		}
	case DriverPostgres:
		if c.Storage.Postgres.DSN == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("postgres dsn required when driver is postgres"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	// Archive validation
	switch c.Archive.Type {
	case "", "localfs":
	case "s3":
		if c.Archive.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when archive type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type %q", c.Archive.Type))
	}

	// LLM validation - if provider set, check config exists
	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "claude":
			if c.LLM.Claude.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("claude api_key required when provider is claude"))
			}
		case "openai":
			if c.LLM.OpenAI.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("openai api_key required when provider is openai"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
		}
	}

	if c.Review.Enabled && c.LLM.Provider == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("llm provider required when review is enabled"))
	}
	if c.Review.RequestsPerMinute < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("review requests_per_minute must not be negative"))
	}

	return nil
}
