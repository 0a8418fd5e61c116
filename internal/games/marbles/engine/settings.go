package engine

import (
	"fmt"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

// Settings are the rules of a session, fixed when the engine is created.
type Settings struct {
	Width      int `yaml:"width"`       // Board columns
	Height     int `yaml:"height"`      // Board rows
	Colors     int `yaml:"colors"`      // Number of marble colors
	SpawnCount int `yaml:"spawn_count"` // Marbles placed per spawn
	LineLength int `yaml:"line_length"` // Minimum run that clears
}

// ClassicSettings returns the standard 9x9 rules.
func ClassicSettings() Settings {
	return Settings{
		Width:      9,
		Height:     9,
		Colors:     5,
		SpawnCount: 3,
		LineLength: 5,
	}
}

// Validate checks that the settings describe a playable board.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: board %dx%d", board.ErrInvalidConfiguration, s.Width, s.Height)
	case s.Colors <= 0:
		return fmt.Errorf("%w: colors %d", board.ErrInvalidConfiguration, s.Colors)
	case s.SpawnCount <= 0:
		return fmt.Errorf("%w: spawn count %d", board.ErrInvalidConfiguration, s.SpawnCount)
	case s.LineLength < 2:
		// Single marbles would clear themselves and the board never fills.
		return fmt.Errorf("%w: line length %d, want at least 2", board.ErrInvalidConfiguration, s.LineLength)
	case s.Width*s.Height <= s.SpawnCount:
		return fmt.Errorf("%w: board %dx%d cannot hold more than %d marbles per spawn",
			board.ErrInvalidConfiguration, s.Width, s.Height, s.SpawnCount)
	}
	return nil
}
