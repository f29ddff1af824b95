package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Curation CurationConfig `yaml:"curation" envconfig:"CURATION"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/taxicli.log"`
}

// CurationConfig contains the outlier thresholds used by the curation
// pipeline. The values are bound once per run and are immutable afterwards;
// the defaults match the reference curation rules for the NYC taxi dataset.
type CurationConfig struct {
	MaxFare            float64 `yaml:"max_fare" envconfig:"MAX_FARE" default:"1000" validate:"gt=0"`
	MinDistance        float64 `yaml:"min_distance" envconfig:"MIN_DISTANCE" default:"0.05" validate:"gte=0"`
	MaxDistance        float64 `yaml:"max_distance" envconfig:"MAX_DISTANCE" default:"100" validate:"gtefield=MinDistance"`
	MaxDurationMinutes float64 `yaml:"max_duration_minutes" envconfig:"MAX_DURATION_MINUTES" default:"720" validate:"gte=0"`
}

// Load loads configuration from environment variables and, if present, the
// YAML config file. Environment variables take precedence over the file.
func Load() (*Config, error) {
	var cfg Config

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileConfig
	}

	// Environment variables override file values and fill in defaults
	if err := envconfig.Process("TAXI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// getConfigFilePath returns the config file location, overridable for tests
// and packaging via TAXI_CONFIG_FILE.
func getConfigFilePath() string {
	if p := os.Getenv("TAXI_CONFIG_FILE"); p != "" {
		return p
	}
	return "taxicli.yaml"
}

// Default returns a configuration with all default values applied and no
// file or environment lookups. Used by tools when Load fails.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/taxicli.log",
		},
		Curation: CurationConfig{
			MaxFare:            1000,
			MinDistance:        0.05,
			MaxDistance:        100,
			MaxDurationMinutes: 720,
		},
	}
}
