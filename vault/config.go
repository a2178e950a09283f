// Package vault manages the Obsidian vault: configuration (where the vault
// lives and which folders hold which note types) and file operations.
package vault

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/dayscribe/core"
	"gopkg.in/yaml.v3"
)

// Config describes the vault layout, loaded from ~/.dayscribe/config.yaml.
type Config struct {
	Vault struct {
		Path      string            `yaml:"path"`
		Locations map[string]string `yaml:"locations"`
	} `yaml:"vault"`
	Calendar struct {
		// FolderOrganization nests event notes into date folders:
		// "year", "year/month", or "year/month/day". Empty means flat.
		FolderOrganization string `yaml:"folder_organization,omitempty"`
	} `yaml:"calendar,omitempty"`
}

// DefaultConfig returns a config with the conventional locations filled in.
func DefaultConfig(vaultPath string) *Config {
	cfg := &Config{}
	cfg.Vault.Path = vaultPath
	cfg.Vault.Locations = map[string]string{
		core.FolderCalendarEvents: "Calendar",
		core.FolderDailyNotes:     "Daily Notes",
	}
	return cfg
}

// DefaultConfigPath is ~/.dayscribe/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".dayscribe", "config.yaml"), nil
}

// LoadConfig reads and validates a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	if c.Vault.Path == "" {
		return fmt.Errorf("vault path is not configured")
	}
	switch c.Calendar.FolderOrganization {
	case "", "year", "year/month", "year/month/day":
	default:
		return fmt.Errorf("unknown folder organization %q", c.Calendar.FolderOrganization)
	}
	return nil
}

// Location resolves a folder type to an absolute path inside the vault.
// The vault root needs no configured location.
func (c *Config) Location(folderType string) (string, error) {
	if folderType == core.FolderVaultRoot {
		return c.Vault.Path, nil
	}
	rel, ok := c.Vault.Locations[folderType]
	if !ok {
		return "", fmt.Errorf("location type %q not configured", folderType)
	}
	return filepath.Join(c.Vault.Path, rel), nil
}
