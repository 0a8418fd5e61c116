package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in order of difficulty.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a user-supplied name to a preset.
// An empty name selects DifficultyFixed, leaving the loaded rules untouched.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyFixed, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// ColorsForPreset returns the number of marble colors for a preset.
// More colors make lines rarer. Returns 0 for DifficultyFixed and unknown
// presets, meaning the configured count is kept.
func ColorsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 4
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 7
	default:
		return 0
	}
}

// ApplyMarblesPreset modifies the config based on a difficulty preset.
func ApplyMarblesPreset(cfg *MarblesConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	if colors := ColorsForPreset(preset); colors > 0 {
		cfg.Rules.Colors = colors
	}
}
