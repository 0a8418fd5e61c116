package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMarbles loads marbles configuration.
// Search order: customPath -> ~/.marbles/configs/marbles.yaml -> ./configs/marbles.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadMarbles(customPath string) (MarblesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultMarblesConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseMarbles(data)
		if err != nil {
			return DefaultMarblesConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("marbles.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseMarbles(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "marbles.yaml")); err == nil {
		if cfg, err := parseMarbles(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseMarbles(defaultMarblesYAML)
	if err != nil {
		return DefaultMarblesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseMarbles decodes YAML over the default configuration.
func parseMarbles(data []byte) (MarblesConfig, error) {
	cfg := DefaultMarblesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if _, err := ParsePreset(string(cfg.Difficulty.Preset)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".marbles", "configs", filename)
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg MarblesConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
