// Package config loads driver configuration from SUPEX_* environment
// variables with sensible defaults, so the driver works out of the box
// against a runtime on localhost:9876.
//
// Recognized variables:
//
//	SUPEX_HOST          runtime host (default "localhost")
//	SUPEX_PORT          runtime port (default 9876)
//	SUPEX_TIMEOUT       request timeout in seconds (default 15)
//	SUPEX_RETRIES       extra send attempts after the first (default 2)
//	SUPEX_MAX_RESPONSE  response size cap in bytes (default 10 MiB)
//	SUPEX_AUTH_TOKEN    optional auth token for the hello handshake
//	SUPEX_MAX_IDLE      idle seconds before a forced reconnect (default 300)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/supexhq/supex-go/internal/conn"
)

// Validation errors.
var (
	ErrInvalidPort        = errors.New("port must be between 1 and 65535")
	ErrInvalidTimeout     = errors.New("timeout must be positive")
	ErrInvalidRetries     = errors.New("retries must not be negative")
	ErrInvalidMaxResponse = errors.New("max response size must be positive")
)

// Defaults.
const (
	DefaultHost             = "localhost"
	DefaultPort             = 9876
	DefaultTimeoutSeconds   = 15
	DefaultRetries          = 2
	DefaultMaxResponseBytes = 10 * 1024 * 1024
	DefaultMaxIdleSeconds   = 300
)

// Config is the configuration surface consumed by the connection layer.
type Config struct {
	Host             string  `mapstructure:"host"`
	Port             int     `mapstructure:"port"`
	TimeoutSeconds   float64 `mapstructure:"timeout"`
	Retries          int     `mapstructure:"retries"`
	MaxResponseBytes int     `mapstructure:"max_response"`
	AuthToken        string  `mapstructure:"auth_token"`
	MaxIdleSeconds   float64 `mapstructure:"max_idle"`
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SUPEX")
	v.AutomaticEnv()

	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("timeout", DefaultTimeoutSeconds)
	v.SetDefault("retries", DefaultRetries)
	v.SetDefault("max_response", DefaultMaxResponseBytes)
	v.SetDefault("auth_token", "")
	v.SetDefault("max_idle", DefaultMaxIdleSeconds)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks ranges; env-sourced values are user input.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeout, c.TimeoutSeconds)
	}

	if c.Retries < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRetries, c.Retries)
	}

	if c.MaxResponseBytes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxResponse, c.MaxResponseBytes)
	}

	return nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// MaxIdle returns the idle budget as a duration.
func (c *Config) MaxIdle() time.Duration {
	return time.Duration(c.MaxIdleSeconds * float64(time.Second))
}

// ConnOptions maps the configuration to connection options for the given
// agent identity.
func (c *Config) ConnOptions(agent string, log *slog.Logger) conn.Options {
	return conn.Options{
		Host:             c.Host,
		Port:             c.Port,
		Timeout:          c.Timeout(),
		Agent:            agent,
		Token:            c.AuthToken,
		MaxRetries:       c.Retries,
		MaxResponseBytes: c.MaxResponseBytes,
		MaxIdle:          c.MaxIdle(),
		Logger:           log,
	}
}
