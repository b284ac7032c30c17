// Package config provides YAML-based game configuration loading and
// difficulty management for blockfall.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// BlocksConfig contains all configuration for the falling-block game.
type BlocksConfig struct {
	Board      BoardConfig   `yaml:"board"`
	Timing     TimingConfig  `yaml:"timing"`
	Scoring    ScoringConfig `yaml:"scoring"`
	Randomizer string        `yaml:"randomizer"` // "uniform" or "bag"
}

// BoardConfig defines how the grid is fitted into the play area.
type BoardConfig struct {
	Columns        int     `yaml:"columns"`
	WidthFraction  float64 `yaml:"width_fraction"`
	HeightFraction float64 `yaml:"height_fraction"`
	MinRows        int     `yaml:"min_rows"`
}

// TimingConfig holds every interval and delay, in frames.
type TimingConfig struct {
	BaseInterval int `yaml:"base_interval"` // Frames per descent step at the start level
	LevelStep    int `yaml:"level_step"`    // Interval reduction per level gained
	MinInterval  int `yaml:"min_interval"`  // Fastest descent the progression may reach
	DropInterval int `yaml:"drop_interval"` // Descent interval while fast-falling
	SpawnDelay   int `yaml:"spawn_delay"`   // Frames between settle and next spawn
	ShiftDelay   int `yaml:"shift_delay"`   // Frames before shifted rows are announced
}

// ScoringConfig defines line-clear points and level thresholds.
type ScoringConfig struct {
	BasePoints     int `yaml:"base_points"`     // Clearing n rows awards base*2^(n+1)
	LevelThreshold int `yaml:"level_threshold"` // Points per level
	StartLevel     int `yaml:"start_level"`
}

// Randomizer policies.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// Validate checks that the configuration describes a playable board.
func (c BlocksConfig) Validate() error {
	switch {
	case c.Board.Columns < 4:
		return fmt.Errorf("%w: board.columns must be at least 4, got %d", ErrInvalid, c.Board.Columns)
	case c.Board.WidthFraction <= 0 || c.Board.WidthFraction > 1:
		return fmt.Errorf("%w: board.width_fraction must be in (0,1], got %v", ErrInvalid, c.Board.WidthFraction)
	case c.Board.HeightFraction <= 0 || c.Board.HeightFraction > 1:
		return fmt.Errorf("%w: board.height_fraction must be in (0,1], got %v", ErrInvalid, c.Board.HeightFraction)
	case c.Board.MinRows < 4:
		return fmt.Errorf("%w: board.min_rows must be at least 4, got %d", ErrInvalid, c.Board.MinRows)
	case c.Timing.BaseInterval <= 0:
		return fmt.Errorf("%w: timing.base_interval must be positive", ErrInvalid)
	case c.Timing.MinInterval <= 0:
		return fmt.Errorf("%w: timing.min_interval must be positive", ErrInvalid)
	case c.Timing.DropInterval <= 0:
		return fmt.Errorf("%w: timing.drop_interval must be positive", ErrInvalid)
	case c.Timing.LevelStep < 0:
		return fmt.Errorf("%w: timing.level_step must not be negative", ErrInvalid)
	case c.Timing.SpawnDelay < 0 || c.Timing.ShiftDelay < 0:
		return fmt.Errorf("%w: timing delays must not be negative", ErrInvalid)
	case c.Scoring.BasePoints <= 0:
		return fmt.Errorf("%w: scoring.base_points must be positive", ErrInvalid)
	case c.Scoring.LevelThreshold <= 0:
		return fmt.Errorf("%w: scoring.level_threshold must be positive", ErrInvalid)
	case c.Scoring.StartLevel < 1:
		return fmt.Errorf("%w: scoring.start_level must be at least 1", ErrInvalid)
	}

	switch c.Randomizer {
	case "", RandomizerUniform, RandomizerBag:
	default:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalid, c.Randomizer)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, s)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
