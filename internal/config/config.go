// Package config provides YAML-based game configuration loading and
// difficulty presets for marbles.
package config

// MarblesConfig contains all configuration for a marbles game.
type MarblesConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Animation  AnimationConfig  `yaml:"animation"`
}

// BoardConfig defines the board dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RulesConfig defines the rules of a session.
type RulesConfig struct {
	Colors     int `yaml:"colors"`
	SpawnCount int `yaml:"spawn_count"`
	LineLength int `yaml:"line_length"`
}

// DifficultyConfig selects a difficulty preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// AnimationConfig defines animation lengths in simulation ticks.
type AnimationConfig struct {
	MoveStepTicks int `yaml:"move_step_ticks"`
	SpawnTicks    int `yaml:"spawn_ticks"`
	RemoveTicks   int `yaml:"remove_ticks"`
}
