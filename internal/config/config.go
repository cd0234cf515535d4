// Package config resolves tool configuration once at startup. Values are
// layered flag > environment > config file > defaults and the resulting
// Config is treated as immutable by everything downstream.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/reviewkit/klavex/internal/client"
)

// EnvAPIKey is the environment variable consulted when --api-key is not
// passed.
const EnvAPIKey = "KLAVIYO_API_KEY"

// DefaultOutput is the default CSV output path.
const DefaultOutput = "klaviyo_reviews.csv"

// Config holds the resolved settings for one invocation.
type Config struct {
	APIKey   string `mapstructure:"api_key" yaml:"api_key" json:"api_key"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
	Revision string `mapstructure:"revision" yaml:"revision" json:"revision"`
}

// Default returns the built-in configuration with no API key.
func Default() *Config {
	return &Config{
		BaseURL:  client.DefaultBaseURL,
		Revision: client.DefaultRevision,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".klavex", "config.yaml"), nil
}

// Load resolves configuration from the given config file (or the default
// location when empty), the KLAVIYO_API_KEY environment variable, and
// built-in defaults. A missing config file is not an error.
func Load(cfgFile string) (*Config, error) {
	if cfgFile == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgFile = path
	}

	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")

	v.SetDefault("base_url", client.DefaultBaseURL)
	v.SetDefault("revision", client.DefaultRevision)

	if err := v.BindEnv("api_key", EnvAPIKey); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// RequireAPIKey fails when no key was resolved from any source. Checked
// before the first network call.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key required: pass --api-key, set %s, or add api_key to the config file", EnvAPIKey)
	}
	return nil
}

// Save writes the configuration to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
