package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julienpequegnot/slopmon/internal/ngram"
)

type Config struct {
	Ngram NgramConfig `yaml:"ngram"`
	Watch WatchConfig `yaml:"watch"`
	Feeds FeedConfig  `yaml:"feeds"`
}

type NgramConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
	Top int `yaml:"top"`
}

type WatchConfig struct {
	Folder          string `yaml:"folder"`
	Extension       string `yaml:"extension"`
	IntervalSeconds int    `yaml:"interval_seconds"`
}

type FeedConfig struct {
	URLs           []string `yaml:"urls"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	UserAgent      string   `yaml:"user_agent"`
}

func Default() *Config {
	return &Config{
		Ngram: NgramConfig{
			Min: 4,
			Max: 6,
			Top: 10,
		},
		Watch: WatchConfig{
			Folder:          ".",
			Extension:       ".txt",
			IntervalSeconds: 5,
		},
		Feeds: FeedConfig{
			URLs:           []string{},
			TimeoutSeconds: 30,
			UserAgent:      "slopmon/1.0",
		},
	}
}

// Range returns the configured n-gram lengths.
func (c *Config) Range() ngram.Range {
	return ngram.Range{Min: c.Ngram.Min, Max: c.Ngram.Max}
}

func (c *Config) Validate() error {
	if err := c.Range().Validate(); err != nil {
		return err
	}
	if c.Ngram.Top < 1 {
		return fmt.Errorf("ngram.top must be positive, got %d", c.Ngram.Top)
	}
	if c.Watch.IntervalSeconds < 1 {
		return fmt.Errorf("watch.interval_seconds must be positive, got %d", c.Watch.IntervalSeconds)
	}
	if c.Feeds.TimeoutSeconds < 1 {
		return fmt.Errorf("feeds.timeout_seconds must be positive, got %d", c.Feeds.TimeoutSeconds)
	}
	return nil
}

func Dir() string {
	if dir := os.Getenv("SLOPMON_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".slopmon")
}

func DBPath() string {
	return filepath.Join(Dir(), "slopmon.db")
}

func configPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Load() (*Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath(), err)
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0644)
}
