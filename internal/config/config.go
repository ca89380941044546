package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file name.
const FileName = "florin.yaml"

// Config represents the top-level florin.yaml configuration.
type Config struct {
	User   UserConfig   `yaml:"user"`
	Import ImportConfig `yaml:"import"`
	Log    LogConfig    `yaml:"log"`
}

// UserConfig identifies the importing user.
type UserConfig struct {
	ID string `yaml:"id"`
}

// ImportConfig controls the statement import workflow.
type ImportConfig struct {
	// DataDir is where accounts.csv / transactions.csv live, relative
	// to the project root.
	DataDir string `yaml:"data_dir"`
	// ProgressEvery is the row interval between progress reports.
	ProgressEvery int `yaml:"progress_every"`
	// MaxConcurrentFiles bounds how many statement files import at once.
	MaxConcurrentFiles int `yaml:"max_concurrent_files"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a florin.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(userID string) *Config {
	return &Config{
		User: UserConfig{ID: userID},
		Import: ImportConfig{
			DataDir:            "data",
			ProgressEvery:      100,
			MaxConcurrentFiles: 3,
		},
		Log: LogConfig{Level: "info"},
	}
}
