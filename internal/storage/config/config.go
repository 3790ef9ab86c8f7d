package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mcw/internal/domain"
)

// Config holds global application settings
type Config struct {
	// InstanceDir is the Minecraft instance whose mods folder is managed
	InstanceDir string `yaml:"instance_dir"`
	// GameVersion is the default requested game version ("1.20.1")
	GameVersion string `yaml:"game_version"`
	// Loader is the default requested mod loader ("fabric")
	Loader string `yaml:"loader"`
	// DefaultCatalog is the provider used when none is given
	DefaultCatalog string `yaml:"default_catalog"`
	// CurseForgeAPIKey authenticates CurseForge API calls
	CurseForgeAPIKey string `yaml:"curseforge_api_key,omitempty"`
}

// Load reads configuration from the given directory
func Load(configDir string) (*Config, error) {
	cfg := &Config{
		DefaultCatalog: string(domain.ProviderModrinth),
	}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // Return defaults
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DefaultCatalog == "" {
		cfg.DefaultCatalog = string(domain.ProviderModrinth)
	}
	return cfg, nil
}

// Save writes configuration to the given directory
func (c *Config) Save(configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ModsDir returns the mods directory inside the configured instance
func (c *Config) ModsDir() string {
	if c.InstanceDir == "" {
		return ""
	}
	return filepath.Join(c.InstanceDir, "mods")
}
