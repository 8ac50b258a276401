package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvServerURL overrides the configured backend URL when set
const EnvServerURL = "WORKSPACE_AFRICA_API_URL"

// Config holds the teamctl configuration
type Config struct {
	Server struct {
		URL string `yaml:"url"`
	} `yaml:"server"`
	Output struct {
		Format string `yaml:"format"`
	} `yaml:"output"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// GetConfigDir returns the directory holding the config file
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teamctl"
	}
	return filepath.Join(home, ".teamctl")
}

// GetConfigPath returns the path of the config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Default returns the configuration written by 'teamctl init'
func Default() *Config {
	cfg := &Config{}
	cfg.Server.URL = "http://localhost:8090"
	cfg.Output.Format = "table"
	cfg.Logging.Level = "info"
	return cfg
}

// Load reads the config file and applies environment overrides
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(GetConfigPath())
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if envURL := os.Getenv(EnvServerURL); envURL != "" {
		cfg.Server.URL = envURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config file, creating the config directory if needed
func (c *Config) Save() error {
	if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server URL cannot be empty")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server URL %q is not a valid http(s) URL", c.Server.URL)
	}
	switch c.Output.Format {
	case "", "table", "json":
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}
	switch c.Logging.Level {
	case "", "info", "debug", "error":
	default:
		return fmt.Errorf("unknown logging level: %s", c.Logging.Level)
	}
	return nil
}
