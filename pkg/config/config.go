// Package config provides configuration loading and management for
// imageparam. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Image parameterization settings
	Image struct {
		// Height and Width are the spatial dimensions in pixels
		Height int `yaml:"height"`
		Width  int `yaml:"width"`

		// Channels is the number of color channels (3, or 4 with alpha)
		Channels int `yaml:"channels"`

		// Kind selects the latent representation: "pixel" or "frequency"
		Kind string `yaml:"kind"`

		// Decorrelation selects the color basis preset: "klt" or "i1i2i3"
		Decorrelation string `yaml:"decorrelation"`

		// Seed initializes the random coefficient draw; 0 uses the
		// shared non-deterministic source
		Seed int64 `yaml:"seed"`
	} `yaml:"image"`

	// Gradient-ascent settings
	Optimize struct {
		// Steps is the number of ascent iterations
		Steps int `yaml:"steps"`

		// LearningRate scales each gradient step
		LearningRate float64 `yaml:"learningRate"`

		// Momentum is the velocity decay factor; 0 disables momentum
		Momentum float64 `yaml:"momentum"`
	} `yaml:"optimize"`

	// Output settings
	Output struct {
		// Path is where the final image is written
		Path string `yaml:"path"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default parameterization settings
	cfg.Image.Height = 224
	cfg.Image.Width = 224
	cfg.Image.Channels = 3
	cfg.Image.Kind = "frequency"
	cfg.Image.Decorrelation = "klt"
	cfg.Image.Seed = 0

	// Set default optimization settings
	cfg.Optimize.Steps = 256
	cfg.Optimize.LearningRate = 0.05
	cfg.Optimize.Momentum = 0.9

	// Set default output settings
	cfg.Output.Path = "output.png"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
