package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/treelab/memfs"
	"github.com/treelab/memfs/internal/util"
)

// Perms is the per-class access triad stored on every node.
type Perms = memfs.Permissions

// Config contains runtime configuration values for the namespace and its
// interactive shell.
type Config struct {
	FilePerms Perms // Triads applied to files created by touch/write/append (Default 644)
	DirPerms  Perms // Triads applied to directories created by mkdir (Default 644)
	RootPerms Perms // Triads applied to the root directory at construction (Default 755)

	LogLvl util.LogLevel // Log verbosity (Default info)

	ShellPrompt            string // Prompt label for the interactive shell (Default "memfs")
	ConfirmRecursiveRemove bool   // Ask before rm -r of a populated directory (Default true)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions.
type ConfigOverride struct {
	FilePerms *Perms `yaml:"file_perms,omitempty" json:"file_perms,omitempty"`
	DirPerms  *Perms `yaml:"dir_perms,omitempty" json:"dir_perms,omitempty"`
	RootPerms *Perms `yaml:"root_perms,omitempty" json:"root_perms,omitempty"`

	LogLvl *util.LogLevel `yaml:"log_level,omitempty" json:"log_level,omitempty"`

	ShellPrompt            *string `yaml:"shell_prompt,omitempty" json:"shell_prompt,omitempty"`
	ConfirmRecursiveRemove *bool   `yaml:"confirm_recursive_remove,omitempty" json:"confirm_recursive_remove,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		FilePerms:              DefaultFilePerms,
		DirPerms:               DefaultDirPerms,
		RootPerms:              DefaultRootPerms,
		LogLvl:                 DefaultLogLvl,
		ShellPrompt:            DefaultShellPrompt,
		ConfirmRecursiveRemove: DefaultConfirmRecursiveRemove,
	}
}

// NewConfig creates a Config from defaults with the override applied on top.
// A nil override yields the defaults unchanged.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.FilePerms != nil {
		c.FilePerms = *override.FilePerms
	}
	if override.DirPerms != nil {
		c.DirPerms = *override.DirPerms
	}
	if override.RootPerms != nil {
		c.RootPerms = *override.RootPerms
	}
	if override.LogLvl != nil {
		c.LogLvl = *override.LogLvl
	}
	if override.ShellPrompt != nil {
		c.ShellPrompt = *override.ShellPrompt
	}
	if override.ConfirmRecursiveRemove != nil {
		c.ConfirmRecursiveRemove = *override.ConfirmRecursiveRemove
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults. This is a convenience function that combines NewDefaultConfig,
// LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
