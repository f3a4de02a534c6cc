// Copyright 2025 SGNL.ai, Inc.
package dcconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// Source supplies the dotenv-formatted key/value pairs for one layer of the
// configuration overlay. Tests construct a Loader over an in-memory Source
// instead of mutating process-wide environment state, per spec.md §9's
// monkey-patching note.
type Source interface {
	// Load returns this source's key/value pairs, or an empty map if the
	// source does not exist (e.g. a missing profile file).
	Load() (map[string]string, error)
}

// FileSource reads a dotenv-formatted file from disk. A missing file is not
// an error: Load returns an empty map.
type FileSource struct {
	Path string
}

func (f FileSource) Load() (map[string]string, error) {
	vals, err := godotenv.Read(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}

		return nil, fmt.Errorf("dcconfig: failed to read %s: %w", f.Path, err)
	}

	return vals, nil
}

// MapSource is an in-memory Source, used by tests.
type MapSource map[string]string

func (m MapSource) Load() (map[string]string, error) { return map[string]string(m), nil }

// EnvPrefix is the environment variable prefix for explicit Config fields,
// per spec.md §6 ("process environment variables prefixed API_").
const EnvPrefix = "API"

// Loader sources a Config in priority order: explicit constructor arguments
// (applied by the caller after Load returns) > process environment variables
// prefixed API_ > dotenv file > secret-file directory > defaults.
type Loader struct {
	// Dotenv is the base ".env"-equivalent source, lowest priority above
	// defaults.
	Dotenv Source

	// Profile, if non-nil, is overlaid on top of Dotenv — spec.md §6's
	// "profile P is loaded by overlaying .env.P (or equivalent) on top of
	// defaults."
	Profile Source

	// SecretDir, if set, is a directory of one-file-per-secret values
	// (e.g. Kubernetes-mounted secrets) consulted for "password" and
	// "database.password" when no other layer has set the corresponding
	// value.
	SecretDir string
}

// NewProfileLoader builds a Loader reading ".env" and ".env.<profile>" from
// dir, matching the layout netresearch-ldap-manager uses for its .env files.
func NewProfileLoader(dir, profile string) *Loader {
	l := &Loader{Dotenv: FileSource{Path: dir + "/.env"}}
	if profile != "" {
		l.Profile = FileSource{Path: dir + "/.env." + profile}
	}

	return l
}

// Load builds a Config by layering, lowest to highest priority: defaults,
// Dotenv, Profile, process environment (API_-prefixed, "__"-delimited for
// nested fields), then SecretDir, which fills a password field only when no
// earlier layer set it.
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	if err := l.applySource(v, l.Dotenv); err != nil {
		return cfg, err
	}

	if err := l.applySource(v, l.Profile); err != nil {
		return cfg, err
	}

	bindConfigKeys(v)

	if v.IsSet("url") {
		cfg.URL = v.GetString("url")
	}

	if v.IsSet("username") {
		cfg.Username = v.GetString("username")
	}

	if v.IsSet("password") {
		cfg.Password = NewSecret(v.GetString("password"))
	}

	if v.IsSet("timeout") {
		cfg.Timeout = v.GetInt("timeout")
	}

	if v.IsSet("verify_ssl") {
		cfg.VerifySSL = v.GetBool("verify_ssl")
	}

	if v.IsSet("max_retries") {
		cfg.MaxRetries = v.GetInt("max_retries")
	}

	if v.IsSet("retry_backoff") {
		cfg.RetryBackoff = v.GetFloat64("retry_backoff")
	}

	if v.IsSet("debug") {
		cfg.Debug = v.GetBool("debug")
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}

	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}

	if v.IsSet("database.username") {
		cfg.Database.Username = v.GetString("database.username")
	}

	if v.IsSet("database.password") {
		cfg.Database.Password = NewSecret(v.GetString("database.password"))
	}

	if v.IsSet("database.name") {
		cfg.Database.Name = v.GetString("database.name")
	}

	if v.IsSet("database.ssl_mode") {
		cfg.Database.SSLMode = v.GetString("database.ssl_mode")
	}

	if l.SecretDir != "" {
		applySecretDir(&cfg, l.SecretDir)
	}

	return cfg, nil
}

func (l *Loader) applySource(v *viper.Viper, src Source) error {
	if src == nil {
		return nil
	}

	vals, err := src.Load()
	if err != nil {
		return err
	}

	for k, val := range vals {
		v.SetDefault(strings.ToLower(k), val)
	}

	return nil
}

func bindConfigKeys(v *viper.Viper) {
	for _, key := range []string{
		"url", "username", "password", "timeout", "verify_ssl",
		"max_retries", "retry_backoff", "debug",
		"database.host", "database.port", "database.username",
		"database.password", "database.name", "database.ssl_mode",
	} {
		_ = v.BindEnv(key)
	}
}

func applySecretDir(cfg *Config, dir string) {
	if !cfg.Password.IsSet() {
		if raw, err := os.ReadFile(dir + "/password"); err == nil {
			cfg.Password = NewSecret(strings.TrimSpace(string(raw)))
		}
	}

	if !cfg.Database.Password.IsSet() {
		if raw, err := os.ReadFile(dir + "/database_password"); err == nil {
			cfg.Database.Password = NewSecret(strings.TrimSpace(string(raw)))
		}
	}
}

// RequireKeys fails with dcerrors.ConfigurationError naming the first
// missing key, per spec.md §6 "Missing required keys ⇒ ConfigError."
func RequireKeys(cfg Config, keys ...string) error {
	for _, k := range keys {
		switch k {
		case "url":
			if cfg.URL == "" {
				return dcerrors.NewConfigurationError("missing required config key: url")
			}
		case "username":
			if cfg.Username == "" {
				return dcerrors.NewConfigurationError("missing required config key: username")
			}
		case "password":
			if !cfg.Password.IsSet() {
				return dcerrors.NewConfigurationError("missing required config key: password")
			}
		}
	}

	return nil
}
