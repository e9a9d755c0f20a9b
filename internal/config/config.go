// Package config defines the server configuration and how it is loaded
package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// Config contains process configuration
type Config struct {
	// CatalogBaseURL is the PokeAPI root, e.g. https://pokeapi.co/api/v2
	CatalogBaseURL string `koanf:"catalog_base_url"`

	// HTTPTimeout bounds each outbound PokeAPI request
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	// LoadTimeout bounds one background catalog load
	LoadTimeout time.Duration `koanf:"load_timeout"`

	// SessionTTL is how long a display session can be read
	SessionTTL time.Duration `koanf:"session_ttl"`

	GRPCPort    int    `koanf:"grpc_port"`
	MetricsAddr string `koanf:"metrics_addr"`
	RedisAddr   string `koanf:"redis_addr"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json
	LogFormat string `koanf:"log_format"`
}

// New returns a Config holding the defaults
func New() *Config {
	return &Config{
		CatalogBaseURL: "https://pokeapi.co/api/v2",
		HTTPTimeout:    30 * time.Second,
		LoadTimeout:    2 * time.Minute,
		SessionTTL:     time.Hour,
		GRPCPort:       50051,
		MetricsAddr:    ":9090",
		RedisAddr:      "localhost:6379",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Validate checks every field
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if u, err := url.Parse(c.CatalogBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.InvalidField("catalog_base_url", "must be an absolute URL")
	}
	errors.ValidatePositive("http_timeout", c.HTTPTimeout, vb)
	errors.ValidatePositive("load_timeout", c.LoadTimeout, vb)
	errors.ValidatePositive("session_ttl", c.SessionTTL, vb)
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.InvalidField("grpc_port", "must be between 1 and 65535")
	}
	errors.ValidateRequired("redis_addr", c.RedisAddr, vb)

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		vb.InvalidField("log_level", "must be debug, info, warn or error")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		vb.InvalidField("log_format", "must be text or json")
	}

	return vb.Build()
}
