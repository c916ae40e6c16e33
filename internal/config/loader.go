package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "gemfall.yaml"

// LoadGemfall loads gemfall configuration.
// Search order: customPath -> ~/.gemfall/configs/gemfall.yaml -> ./configs/gemfall.yaml -> embedded default
func LoadGemfall(customPath string) (GemfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GemfallConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return GemfallConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultGemfallYAML)
	if err != nil {
		return DefaultGemfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Load resolves the config file, applies the difficulty preset and validates
// the result.
func Load(customPath string, preset DifficultyPreset) (GemfallConfig, error) {
	cfg, err := LoadGemfall(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parse decodes YAML over the built-in defaults so that omitted sections keep
// their default values.
func parse(data []byte) (GemfallConfig, error) {
	cfg := DefaultGemfallConfig()
	cfg.Gems = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GemfallConfig{}, err
	}
	if cfg.Gems == nil {
		cfg.Gems = DefaultGemfallConfig().Gems
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gemfall", "configs", filename)
}
