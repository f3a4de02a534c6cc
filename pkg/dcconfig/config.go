// Copyright 2025 SGNL.ai, Inc.

// Package dcconfig defines the process-wide Client configuration of
// spec.md §6. Config is a passive value object: it is sourced by this
// package's loader, consumed once by the Client at construction, and never
// mutated by the core afterwards (spec.md §3 "Lifecycle").
package dcconfig

import (
	"strings"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// DatabaseConfig carries the nested database connection parameters of
// spec.md §6.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password Secret `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// Config is the process-wide client configuration of spec.md §6.
type Config struct {
	URL          string         `mapstructure:"url"`
	Username     string         `mapstructure:"username"`
	Password     Secret         `mapstructure:"password"`
	Timeout      int            `mapstructure:"timeout"`
	VerifySSL    bool           `mapstructure:"verify_ssl"`
	MaxRetries   int            `mapstructure:"max_retries"`
	RetryBackoff float64        `mapstructure:"retry_backoff"`
	Debug        bool           `mapstructure:"debug"`
	Database     DatabaseConfig `mapstructure:"database"`
}

// Defaults returns a Config with spec.md §6's documented defaults applied.
func Defaults() Config {
	return Config{
		Timeout:      30,
		VerifySSL:    true,
		MaxRetries:   2,
		RetryBackoff: 0.5,
	}
}

// Validate enforces the construction contract of spec.md §4.1: URL must be
// present and start with http(s), numeric bounds must hold. It does NOT
// enforce that Username/Password are set here — that requirement is
// conditional on the absence of an explicit AuthProvider and is therefore
// checked by the Client constructor (pkg/dcapix), not by Config in
// isolation.
func (c *Config) Validate() error {
	if c.URL == "" {
		return dcerrors.NewConfigurationError("url is required")
	}

	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return dcerrors.NewConfigurationError("url must start with http:// or https://")
	}

	c.URL = strings.TrimRight(c.URL, "/")

	if c.Timeout <= 0 {
		return dcerrors.NewConfigurationError("timeout must be > 0")
	}

	if c.MaxRetries < 0 {
		return dcerrors.NewConfigurationError("max_retries must be >= 0")
	}

	if c.RetryBackoff <= 0 {
		return dcerrors.NewConfigurationError("retry_backoff must be > 0")
	}

	return nil
}
