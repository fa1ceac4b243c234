package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the collector configuration.
type Config struct {
	Store    StoreConfig `yaml:"store"`
	Output   string      `yaml:"output"`
	Rate     RateConfig  `yaml:"rate"`
	Schedule string      `yaml:"schedule"`
	Keywords []string    `yaml:"keywords"`
	MaxApps  int         `yaml:"max_apps"`
	Reviews  int         `yaml:"reviews_per_app"`
	Log      LogConfig   `yaml:"log"`
}

// StoreConfig locates the app-store bridge API.
type StoreConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// RateConfig bounds outbound calls to the bridge.
type RateConfig struct {
	RPS int `yaml:"rps"`
}

// LogConfig controls collector logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads the configuration from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.MaxApps <= 0 {
		cfg.MaxApps = 5
	}
	if cfg.Reviews <= 0 {
		cfg.Reviews = 200
	}
	if cfg.Rate.RPS <= 0 {
		cfg.Rate.RPS = 2
	}
	if cfg.Output == "" {
		cfg.Output = "data"
	}
	return &cfg, nil
}
