package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/open-edge-platform/report-tools/internal/config/validate"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is looked up in the working directory when no --config is given.
	DefaultConfigFile = "report-tools.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "REPORT_TOOLS_"

	DefaultVersionsURL = "https://testing.zephyrproject.org/daily_tests/versions.json"
	DefaultVersion     = "unknow"
	DefaultMaxSizeMB   = 5.0
	DefaultMaxErrors   = 50
	DefaultMaxFailures = 50
	DefaultOutputDir   = "."
	DefaultLogLevel    = "info"
	defaultEnvFile     = ".env"
)

// GlobalConfig is the configuration shared by report-convert and report-verify.
type GlobalConfig struct {
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Convert ConvertConfig `yaml:"convert" envPrefix:"CONVERT_"`
	Verify  VerifyConfig  `yaml:"verify" envPrefix:"VERIFY_"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// ConvertConfig holds report-convert defaults.
type ConvertConfig struct {
	OutputDir      string `yaml:"outputDir" env:"OUTPUT_DIR"`
	DefaultVersion string `yaml:"defaultVersion" env:"DEFAULT_VERSION"`
}

// VerifyConfig holds report-verify thresholds and the versions endpoint.
type VerifyConfig struct {
	VersionsURL string        `yaml:"versionsURL" env:"VERSIONS_URL"`
	HTTPTimeout time.Duration `yaml:"httpTimeout" env:"HTTP_TIMEOUT"`
	MaxSizeMB   float64       `yaml:"maxSizeMB" env:"MAX_SIZE_MB"`
	MaxErrors   int           `yaml:"maxErrors" env:"MAX_ERRORS"`
	MaxFailures int           `yaml:"maxFailures" env:"MAX_FAILURES"`
	SchemaFile  string        `yaml:"schemaFile" env:"SCHEMA_FILE"`
}

// DefaultGlobalConfig returns the built-in configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Convert: ConvertConfig{
			OutputDir:      DefaultOutputDir,
			DefaultVersion: DefaultVersion,
		},
		Verify: VerifyConfig{
			VersionsURL: DefaultVersionsURL,
			MaxSizeMB:   DefaultMaxSizeMB,
			MaxErrors:   DefaultMaxErrors,
			MaxFailures: DefaultMaxFailures,
		},
	}
}

var global = DefaultGlobalConfig()

// Global returns the configuration installed by SetGlobal, or the defaults.
func Global() *GlobalConfig {
	return global
}

// SetGlobal installs cfg as the process-wide configuration.
func SetGlobal(cfg *GlobalConfig) {
	if cfg == nil {
		cfg = DefaultGlobalConfig()
	}
	global = cfg
}

// LoadGlobalConfig builds the configuration from defaults, the YAML file at path and the
// environment, in that order. An empty path falls back to DefaultConfigFile when it exists.
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := parseYAMLConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseYAMLConfig(data []byte, cfg *GlobalConfig) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := validate.ValidateConfigYAML(data); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}

func applyEnv(cfg *GlobalConfig) error {
	// A missing .env file is not an error.
	_ = godotenv.Load(defaultEnvFile)

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing %s environment: %w", EnvPrefix, err)
	}
	return nil
}
