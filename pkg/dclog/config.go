// Copyright 2025 SGNL.ai, Inc.
package dclog

import "github.com/spf13/viper"

// Config controls the core's logger. It mirrors the teacher's
// pkg/logs/zaplogger.Config, trimmed to the fields this module actually
// exercises. New reads only Level and ServiceName: Mode and FilePath are
// accepted as configuration but not read, so every entry goes to zap's
// default stderr output and no log file is opened or rotated (see
// SPEC_FULL.md §1.1).
type Config struct {
	// Mode names the logging mode ("console" or "file"). New does not read
	// it.
	Mode []string `yaml:"mode" json:"mode" mapstructure:"mode"`

	// Level sets the logging level. Valid levels are: "DEBUG", "INFO",
	// "WARN", "ERROR", "DPANIC", "PANIC", and "FATAL".
	Level string `yaml:"level" json:"level" mapstructure:"level"`

	// FilePath names a log file for "file" mode. New does not read it.
	FilePath string `yaml:"file_path" json:"file_path" mapstructure:"file_path"`

	// ServiceName, if set, is attached to every log entry.
	ServiceName string `yaml:"service_name" json:"service_name" mapstructure:"service_name"`
}

// LoadConfig loads Config from environment variables prefixed DCAPIX_LOG,
// grounded on the teacher's logger.LoadConfig / zaplogger.LoadConfig.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DCAPIX_LOG")
	v.AutomaticEnv()

	v.SetDefault("level", "INFO")
	v.SetDefault("mode", "console")
	v.SetDefault("file_path", "")
	v.SetDefault("service_name", "")

	var cfg Config

	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
