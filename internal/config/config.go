// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Guliveer/bootlist/internal/services"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "500ms", "5s".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all bootlist configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Autostart AutostartConfig `yaml:"autostart"`
	Services  services.Config `yaml:"services"`
	Processes ProcessConfig   `yaml:"processes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AutostartConfig overrides the scanned startup locations.
// Empty directories mean the platform default.
type AutostartConfig struct {
	Dir          string `yaml:"dir"`
	StartupDir   string `yaml:"startup_dir"`
	ShowDisabled bool   `yaml:"show_disabled"`
}

// ProcessConfig controls the "running" annotation on listed entries.
type ProcessConfig struct {
	Detect      bool     `yaml:"detect"`
	ScanTimeout Duration `yaml:"scan_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
		Services: services.DefaultConfig(),
		Processes: ProcessConfig{
			Detect:      true,
			ScanTimeout: Duration{3 * time.Second},
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Empty strings are treated as "not set" and skipped.
type CLIOverrides struct {
	LogLevel string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// UserConfigPath returns the per-user configuration file location, the
// first entry of the search order.
func UserConfigPath() string {
	return configSearchPaths()[0]
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > YAML file > defaults.
//
// An optional configPath argument controls file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value → use that path ("" means no file)
//
// An explicitly named file that does not exist is an error; a missing
// auto-discovered file is not.
func LoadLayered(cli CLIOverrides, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	var filePath string
	explicit := len(configPath) > 0
	if explicit {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		case explicit || !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("BOOTLIST_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if dir := os.Getenv("BOOTLIST_AUTOSTART_DIR"); dir != "" {
		cfg.Autostart.Dir = dir
	}
	if dir := os.Getenv("BOOTLIST_STARTUP_DIR"); dir != "" {
		cfg.Autostart.StartupDir = dir
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", c.Logging.Level)
	}
	for name, dir := range map[string]string{
		"autostart.dir":         c.Autostart.Dir,
		"autostart.startup_dir": c.Autostart.StartupDir,
	} {
		if dir != "" && !filepath.IsAbs(dir) {
			return fmt.Errorf("%s must be an absolute path (got: %s)", name, dir)
		}
	}
	if c.Services.Systemctl == "" || c.Services.Escalation == "" || c.Services.SandboxSpawn == "" {
		return fmt.Errorf("services: systemctl, escalation and sandbox_spawn are required")
	}
	if c.Processes.ScanTimeout.Duration < 0 {
		return fmt.Errorf("processes.scan_timeout must not be negative")
	}
	return nil
}
