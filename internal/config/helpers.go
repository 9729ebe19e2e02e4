package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigHelpers provides convenient access to global configuration
type ConfigHelpers struct {
	config *GlobalConfig
}

// NewConfigHelpers creates a new config helpers instance
func NewConfigHelpers(config *GlobalConfig) *ConfigHelpers {
	if config == nil {
		config = DefaultGlobalConfig()
	}
	return &ConfigHelpers{config: config}
}

// OutputDir returns the absolute path to the converter output directory
func (c *ConfigHelpers) OutputDir() (string, error) {
	return filepath.Abs(c.config.Convert.OutputDir)
}

// DefaultVersion returns the version used when a report has no version property
func (c *ConfigHelpers) DefaultVersion() string {
	if c.config.Convert.DefaultVersion == "" {
		return DefaultVersion
	}
	return c.config.Convert.DefaultVersion
}

// VersionsURL returns the endpoint publishing the accepted versions
func (c *ConfigHelpers) VersionsURL() string {
	if c.config.Verify.VersionsURL == "" {
		return DefaultVersionsURL
	}
	return c.config.Verify.VersionsURL
}

// LogLevel returns the configured log level
func (c *ConfigHelpers) LogLevel() string {
	if c.config.Logging.Level == "" {
		return DefaultLogLevel
	}
	return c.config.Logging.Level
}

// EnsureDir checks that dir exists and is a directory.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}

// EnsureFile checks that path exists and is a regular file.
func EnsureFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file %s is a directory", path)
	}
	return nil
}
