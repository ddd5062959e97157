package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the laserdodge configuration. Values missing from a file keep
// their built-in defaults.
// Search order: customPath -> ~/.laserdodge/config.yaml -> ./configs/laserdodge.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Custom path is explicit, so failures there are errors rather than
	// fallthroughs.
	if customPath != "" {
		cfg := Default()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfg := userConfigPath("config.yaml"); userCfg != "" {
		if data, err := os.ReadFile(userCfg); err == nil {
			cfg := Default()
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/laserdodge.yaml"); err == nil {
		cfg := Default()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".laserdodge", filename)
}

// ApplyPreset adjusts session rules for a named difficulty.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.Lives = 5
		cfg.Session.ZapCooldownSeconds = 1.5
	case DifficultyNormal:
		cfg.Session.Lives = 3
		cfg.Session.ZapCooldownSeconds = 1.0
	case DifficultyHard:
		cfg.Session.Lives = 1
		cfg.Session.ZapCooldownSeconds = 0.5
	}
}
