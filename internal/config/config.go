package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output formats accepted in Defaults.Output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Defaults represents default settings
type Defaults struct {
	Output   string `yaml:"output,omitempty"`    // table, json, yaml
	Strict   bool   `yaml:"strict,omitempty"`    // refuse calls with missing required parameters
	LogLevel string `yaml:"log_level,omitempty"` // debug, info, warn, error
}

// Config represents the configuration file
// (~/.config/stratus/config.yaml)
type Config struct {
	CurrentContext string              `yaml:"current_context,omitempty"`
	Contexts       map[string]*Context `yaml:"contexts,omitempty"`
	// Aliases maps an extra command name to "service:command", e.g.
	// "models: ml:get-ml-model-list".
	Aliases  map[string]string `yaml:"aliases,omitempty"`
	Defaults *Defaults         `yaml:"defaults,omitempty"`
}

func defaultConfig() *Config {
	return &Config{
		Contexts: make(map[string]*Context),
		Aliases:  make(map[string]string),
		Defaults: &Defaults{
			Output:   OutputTable,
			LogLevel: "warn",
		},
	}
}

// GetConfigDir returns the config directory path. XDG_CONFIG_HOME is honoured,
// otherwise ~/.config/stratus is used.
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stratus")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stratus"
	}
	return filepath.Join(home, ".config", "stratus")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration file. A missing file yields the
// defaults.
func LoadConfig() (*Config, error) {
	configPath := GetConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Initialize maps if nil
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = make(map[string]string)
	}
	if cfg.Defaults == nil {
		cfg.Defaults = defaultConfig().Defaults
	}
	if cfg.Defaults.Output == "" {
		cfg.Defaults.Output = OutputTable
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration file
func SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the output format and the current context reference.
func (c *Config) Validate() error {
	if c.Defaults != nil {
		switch c.Defaults.Output {
		case "", OutputTable, OutputJSON, OutputYAML:
		default:
			return fmt.Errorf("unknown output format %q", c.Defaults.Output)
		}
	}
	if c.CurrentContext != "" {
		if _, ok := c.Contexts[c.CurrentContext]; !ok {
			return fmt.Errorf("current context %q not found", c.CurrentContext)
		}
	}
	return nil
}
