package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlocks loads the falling-block configuration.
// Search order: customPath -> ~/.blockfall/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the keys
// it changes.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blocks.yaml"); userCfgPath != "" {
		if c, ok := decodeFile(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := decodeFile(filepath.Join("configs", "blocks.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	embedded := DefaultBlocksConfig()
	if err := yaml.Unmarshal(defaultBlocksYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultBlocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// decodeFile reads an optional config file. Unreadable or invalid files are skipped.
func decodeFile(path string) (BlocksConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlocksConfig{}, false
	}
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlocksConfig{}, false
	}
	if cfg.Validate() != nil {
		return BlocksConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// ApplyBlocksPreset modifies the config based on a difficulty preset.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BaseInterval = 50
		cfg.Timing.LevelStep = 4
		cfg.Timing.SpawnDelay = 150
	case DifficultyHard:
		cfg.Timing.BaseInterval = 25
		cfg.Timing.LevelStep = 5
		cfg.Timing.SpawnDelay = 60
		cfg.Scoring.StartLevel = 3
	case DifficultyFixed:
		cfg.Timing.LevelStep = 0
	}
}
