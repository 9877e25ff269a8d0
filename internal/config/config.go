// Package config loads ai-skills settings from defaults, an optional
// config.yaml, AI_SKILLS_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment overrides, e.g. AI_SKILLS_REGISTRY_URL.
	EnvPrefix = "AI_SKILLS"
	// FileName is the config file name (without extension) looked up in the home dir.
	FileName = "config"
	// FileType is the config file format.
	FileType = "yaml"

	// DefaultRegistryURL serves .index.json and <name>/SKILLS.md.
	DefaultRegistryURL = "https://raw.githubusercontent.com/ai-open-source/ai-skillls/main/packages/skills-registry/skills"
)

// Keys used in viper and the config file.
const (
	KeyRegistryURL    = "registry_url"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
	KeyRequestTimeout = "request_timeout"
	KeyRetryAttempts  = "retry.attempts"
	KeyRetryDelay     = "retry.delay"
	KeyRetryMaxDelay  = "retry.max_delay"
	KeyCacheIndex     = "cache_index"
)

// Config is the effective ai-skills configuration.
type Config struct {
	RegistryURL    string        `mapstructure:"registry_url" yaml:"registry_url"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat      string        `mapstructure:"log_format" yaml:"log_format"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	Retry          RetryConfig   `mapstructure:"retry" yaml:"retry"`
	CacheIndex     bool          `mapstructure:"cache_index" yaml:"cache_index"`
}

// RetryConfig controls registry fetch retries.
type RetryConfig struct {
	Attempts uint          `mapstructure:"attempts" yaml:"attempts"`
	Delay    time.Duration `mapstructure:"delay" yaml:"delay"`
	MaxDelay time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
}

// SetDefaults registers every known key so env overrides apply on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRegistryURL, DefaultRegistryURL)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "fmt")
	v.SetDefault(KeyRequestTimeout, 30*time.Second)
	v.SetDefault(KeyRetryAttempts, 3)
	v.SetDefault(KeyRetryDelay, 500*time.Millisecond)
	v.SetDefault(KeyRetryMaxDelay, 5*time.Second)
	v.SetDefault(KeyCacheIndex, true)
}

// New builds a viper instance with defaults and environment bindings, then
// reads configFile if given, or config.yaml from homeDir when present.
// A missing default config file is not an error; an explicit one is.
func New(homeDir, configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName(FileName)
	v.SetConfigType(FileType)
	if homeDir != "" {
		v.AddConfigPath(homeDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late inside a command.
func (c Config) Validate() error {
	if strings.TrimSpace(c.RegistryURL) == "" {
		return fmt.Errorf("%s must not be empty", KeyRegistryURL)
	}
	if u, err := url.Parse(c.RegistryURL); err == nil && u.Scheme != "" && !filepath.IsAbs(c.RegistryURL) {
		switch u.Scheme {
		case "http", "https", "file":
		default:
			return fmt.Errorf("%s: unsupported scheme %q", KeyRegistryURL, u.Scheme)
		}
	}
	switch c.LogFormat {
	case "fmt", "text", "json":
	default:
		return fmt.Errorf("%s: unknown format %q (valid: fmt, text, json)", KeyLogFormat, c.LogFormat)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%s must not be negative", KeyRequestTimeout)
	}
	if c.Retry.Attempts == 0 {
		return fmt.Errorf("%s must be at least 1", KeyRetryAttempts)
	}
	return nil
}
