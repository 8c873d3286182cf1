package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Runner    RunnerConfig            `toml:"runner"`
	Storage   StorageConfig           `toml:"storage"`
	Server    ServerConfig            `toml:"server"`
	Recommend RecommendConfig         `toml:"recommend"`
	Sources   map[string]SourceConfig `toml:"sources"`
}

type RunnerConfig struct {
	Name     string `toml:"name"`
	Interval string `toml:"interval"`
	RunOnce  bool   `toml:"run_once"`
}

type StorageConfig struct {
	Type string `toml:"type"`
	Path string `toml:"path"`
}

type ServerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Port     string `toml:"port"`
	CacheTTL string `toml:"cache_ttl"`
}

type RecommendConfig struct {
	WindowDays   int  `toml:"window_days"`
	SampleSize   int  `toml:"sample_size"`
	SinglePerDay bool `toml:"single_per_day"`
}

type SourceConfig struct {
	Type     string                 `toml:"type"`
	Enabled  bool                   `toml:"enabled"`
	Settings map[string]interface{} `toml:"settings"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.Runner.Name == "" {
		config.Runner.Name = "hustlewire"
	}

	if config.Runner.Interval == "" {
		config.Runner.Interval = "1h"
	}

	if _, err := time.ParseDuration(config.Runner.Interval); err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "sqlite"
	}

	if config.Storage.Path == "" {
		config.Storage.Path = "./hustlewire.db"
	}

	if config.Server.Port == "" {
		config.Server.Port = "10000"
	}

	if config.Server.CacheTTL == "" {
		config.Server.CacheTTL = "60s"
	}

	if _, err := time.ParseDuration(config.Server.CacheTTL); err != nil {
		return fmt.Errorf("invalid cache_ttl: %w", err)
	}

	if config.Recommend.WindowDays <= 0 {
		config.Recommend.WindowDays = 2
	}

	if config.Recommend.SampleSize <= 0 {
		config.Recommend.SampleSize = 5
	}

	enabledSources := 0
	for _, src := range config.Sources {
		if src.Enabled {
			enabledSources++
		}
	}
	if enabledSources == 0 {
		return fmt.Errorf("at least one source must be enabled")
	}

	return nil
}

func GetString(settings map[string]interface{}, key string, defaultValue string) string {
	if val, ok := settings[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultValue
}

func GetInt(settings map[string]interface{}, key string, defaultValue int) int {
	if val, ok := settings[key]; ok {
		if i, ok := val.(int64); ok {
			return int(i)
		}
		if i, ok := val.(int); ok {
			return i
		}
	}
	return defaultValue
}
