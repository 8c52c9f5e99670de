package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a mode and validates it.
// Search order: customPath -> ~/.shooter/configs/<mode>.yaml -> ./configs/<mode>.yaml -> embedded default
func Load(mode, customPath string) (ShooterConfig, error) {
	cfg, err := load(mode, customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: invalid %s config: %w", mode, err)
	}
	return cfg, nil
}

func load(mode, customPath string) (ShooterConfig, error) {
	// Start from the defaults so a partial YAML only overrides what it names.
	cfg := DefaultFor(mode)

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := mode + ".yaml"

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultFor(mode)
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		candidate := DefaultFor(mode)
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	embedded := GetDefaultYAML(mode)
	if embedded == nil {
		return cfg, nil
	}
	candidate := DefaultFor(mode)
	if err := yaml.Unmarshal(embedded, &candidate); err != nil {
		return cfg, nil // Fallback to hardcoded if embed fails
	}
	return candidate, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shooter", "configs", filename)
}
