package config

import (
	_ "embed"
)

//go:embed defaults/marbles.yaml
var defaultMarblesYAML []byte

// DefaultMarblesConfig returns the default marbles configuration:
// the classic 9x9 board, five colors, lines of five.
func DefaultMarblesConfig() MarblesConfig {
	return MarblesConfig{
		Board: BoardConfig{
			Width:  9,
			Height: 9,
		},
		Rules: RulesConfig{
			Colors:     5,
			SpawnCount: 3,
			LineLength: 5,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
		Animation: AnimationConfig{
			MoveStepTicks: 2,
			SpawnTicks:    12,
			RemoveTicks:   18,
		},
	}
}

// MiniMarblesConfig returns the configuration of the small board variant:
// 7x7, two marbles per turn, lines of four.
func MiniMarblesConfig() MarblesConfig {
	cfg := DefaultMarblesConfig()
	cfg.Board = BoardConfig{Width: 7, Height: 7}
	cfg.Rules.SpawnCount = 2
	cfg.Rules.LineLength = 4
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "marbles", "marbles_mini":
		return defaultMarblesYAML
	default:
		return nil
	}
}
