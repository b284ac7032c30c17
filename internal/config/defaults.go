package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default falling-block configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Columns:        12,
			WidthFraction:  0.3,
			HeightFraction: 0.9,
			MinRows:        8,
		},
		Timing: TimingConfig{
			BaseInterval: 40,
			LevelStep:    5,
			MinInterval:  5,
			DropInterval: 4,
			SpawnDelay:   120, // 2s at 60fps
			ShiftDelay:   15,  // 0.25s at 60fps
		},
		Scoring: ScoringConfig{
			BasePoints:     5,
			LevelThreshold: 100,
			StartLevel:     1,
		},
		Randomizer: RandomizerUniform,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blocks", "blocks_bag":
		return defaultBlocksYAML
	default:
		return nil
	}
}
