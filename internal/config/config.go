package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config carries the probe settings supplied by an optional YAML file and
// the MEDIAMETA_* environment.
type Config struct {
	ProbeTimeout  time.Duration `yaml:"probe_timeout" env:"MEDIAMETA_PROBE_TIMEOUT" env-default:"5m" validate:"gt=0"`
	MediaInfoBin  string        `yaml:"mediainfo_bin" env:"MEDIAMETA_MEDIAINFO_BIN" env-default:"mediainfo" validate:"required"`
	MaxMoovSize   int64         `yaml:"max_moov_size" env:"MEDIAMETA_MAX_MOOV_SIZE" env-default:"16777216" validate:"gte=8"`
	LogLevel      string        `yaml:"log_level" env:"MEDIAMETA_LOG_LEVEL" env-default:"info" validate:"oneof=verbose debug info success warning warn error"`
	MetricsPrefix string        `yaml:"metrics_prefix" env:"MEDIAMETA_METRICS_PREFIX" env-default:"mediameta" validate:"required,alphanum"`
}

// Load reads path when given, otherwise the environment alone, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load configuration from %s - %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment - %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Usage describes every supported environment variable.
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return text
}
