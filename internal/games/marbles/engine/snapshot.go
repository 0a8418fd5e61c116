package engine

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

// Snapshot is the resumable state of a session.
type Snapshot struct {
	Settings   Settings       `yaml:"settings"`
	Phase      Phase          `yaml:"phase"`
	Score      int            `yaml:"score"`
	Marbles    []board.Marble `yaml:"marbles"`
	NextColors []board.Color  `yaml:"next_colors"`
}

// Snapshot captures the current session.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Settings:   e.settings,
		Phase:      e.phase,
		Score:      e.score,
		Marbles:    e.grid.Marbles(),
		NextColors: slices.Clone(e.nextColors),
	}
}

// Resume replaces the current session with a captured one. The presenter is
// shown the board and every marble, then play continues as after a spawn:
// the engine waits for a move, or finishes if the board is full.
//
// The snapshot must have been taken with the engine's settings, while the
// engine was waiting for a move or finished.
func (e *Engine) Resume(s Snapshot) error {
	if err := e.validateSnapshot(s); err != nil {
		return err
	}

	e.reset()
	for _, m := range s.Marbles {
		if err := e.grid.Place(m.At, m.Color); err != nil {
			// Unreachable after validation.
			e.reset()
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	e.score = s.Score
	e.nextColors = slices.Clone(s.NextColors)

	e.logger.Debug("session resumed", "score", e.score, "marbles", e.grid.Count())

	noop := func() {}
	e.presenter.BoardReady(noop)
	e.presenter.MarblesSpawned(e.grid.Marbles(), slices.Clone(e.nextColors), noop)
	e.presenter.ScoreChanged(e.score)

	e.transition(PhaseCheckFull)
	return nil
}

func (e *Engine) validateSnapshot(s Snapshot) error {
	if s.Settings != e.settings {
		return fmt.Errorf("%w: settings %+v do not match %+v", ErrInvalidSnapshot, s.Settings, e.settings)
	}
	switch s.Phase {
	case PhaseAwaitMove:
	case PhaseFinished:
		if len(s.Marbles) != e.grid.Capacity() {
			return fmt.Errorf("%w: finished with %d of %d cells taken", ErrInvalidSnapshot, len(s.Marbles), e.grid.Capacity())
		}
	default:
		// Other phases hold work not yet applied to the board.
		return fmt.Errorf("%w: cannot resume in phase %s", ErrInvalidSnapshot, s.Phase)
	}
	if s.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidSnapshot, s.Score)
	}
	if len(s.NextColors) != e.settings.SpawnCount {
		return fmt.Errorf("%w: %d next colors, want %d", ErrInvalidSnapshot, len(s.NextColors), e.settings.SpawnCount)
	}
	for _, c := range s.NextColors {
		if !e.validColor(c) {
			return fmt.Errorf("%w: next color %d out of range", ErrInvalidSnapshot, c)
		}
	}

	seen := make(map[board.Coord]struct{}, len(s.Marbles))
	for _, m := range s.Marbles {
		if !e.grid.InBounds(m.At) {
			return fmt.Errorf("%w: marble at %s: %w", ErrInvalidSnapshot, m.At, board.ErrOutOfBounds)
		}
		if !e.validColor(m.Color) {
			return fmt.Errorf("%w: marble at %s has color %d", ErrInvalidSnapshot, m.At, m.Color)
		}
		if _, dup := seen[m.At]; dup {
			return fmt.Errorf("%w: marble at %s: %w", ErrInvalidSnapshot, m.At, board.ErrCellOccupied)
		}
		seen[m.At] = struct{}{}
	}
	return nil
}

func (e *Engine) validColor(c board.Color) bool {
	return c >= 0 && int(c) < e.settings.Colors
}
