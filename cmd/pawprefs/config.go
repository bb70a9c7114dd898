package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/pawprefs/internal/model"
)

const maxImageCount = 100

// cliConfig holds the widget configuration.
type cliConfig struct {
	ImageCount   int           `mapstructure:"image-count"`
	Endpoint     string        `mapstructure:"endpoint"`
	FetchTimeout time.Duration `mapstructure:"fetch-timeout"`
	APIEnabled   bool          `mapstructure:"api-enabled"`
	APIAddr      string        `mapstructure:"api-addr"`
	LogPath      string        `mapstructure:"log-path"`
	ReverseDrag  bool          `mapstructure:"reverse-drag"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PAWPREFS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("image-count", model.DefaultImageCount)
	v.SetDefault("endpoint", model.DefaultEndpoint)
	v.SetDefault("fetch-timeout", model.DefaultFetchTimeout)
	v.SetDefault("api-enabled", true)
	v.SetDefault("api-addr", model.DefaultAPIAddr)
	v.SetDefault("log-path", filepath.Join(home, ".local", "state", "pawprefs", "pawprefs.log"))
	v.SetDefault("reverse-drag", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "pawprefs", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.validate()
}

func (c cliConfig) validate() error {
	if c.ImageCount < 1 || c.ImageCount > maxImageCount {
		return fmt.Errorf("image-count must be between 1 and %d, got %d", maxImageCount, c.ImageCount)
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an absolute http(s) URL, got %q", c.Endpoint)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch-timeout must not be negative, got %s", c.FetchTimeout)
	}
	return nil
}
