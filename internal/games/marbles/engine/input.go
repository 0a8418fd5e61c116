package engine

import (
	"fmt"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

// RequestSelect selects the marble at at. Selecting another marble while one
// is selected switches the selection; selecting the selected marble again
// does nothing.
//
// Requests outside AwaitMove, or naming an empty cell, are rejected without
// changing any state.
func (e *Engine) RequestSelect(at board.Coord) error {
	if !e.awaiting {
		return ErrNotAwaitingMove
	}
	if !e.grid.InBounds(at) {
		return fmt.Errorf("select %s: %w", at, board.ErrOutOfBounds)
	}
	if !e.grid.Occupied(at) {
		return fmt.Errorf("select %s: %w", at, board.ErrSourceEmpty)
	}
	if e.hasSelection && e.selected == at {
		return nil
	}

	e.clearSelection()
	e.selected = at
	e.hasSelection = true
	e.presenter.MarbleSelected(at)
	return nil
}

// RequestMove moves the selected marble at from to the empty cell to along
// a free path. On success the engine leaves AwaitMove and resumes once the
// presenter finishes the move animation.
//
// Rejected requests leave the engine, the grid and the selection unchanged.
func (e *Engine) RequestMove(from, to board.Coord) error {
	if !e.awaiting {
		return ErrNotAwaitingMove
	}
	if !e.hasSelection || e.selected != from {
		return fmt.Errorf("move %s->%s: %w", from, to, ErrNoSelection)
	}
	if from == to {
		return fmt.Errorf("move %s->%s: %w", from, to, ErrSameCell)
	}

	path, err := board.FindPath(e.grid, from, to)
	if err != nil {
		return err
	}
	if err := e.grid.Move(from, to); err != nil {
		return err
	}

	e.awaiting = false
	e.clearSelection()
	e.movedTo = to
	e.hasMoved = true

	e.logger.Debug("marble moved", "from", from, "to", to, "steps", len(path)-1)
	e.presenter.MarbleMoved(from, path, e.completion(PhaseResolveMoveLines))
	return nil
}

// Tap handles a tap on a cell the way a pointer-driven board does: an
// occupied cell is selected, an empty cell is a move target for the current
// selection.
func (e *Engine) Tap(at board.Coord) error {
	if !e.awaiting {
		return ErrNotAwaitingMove
	}
	if e.grid.Occupied(at) {
		return e.RequestSelect(at)
	}
	if !e.hasSelection {
		return fmt.Errorf("tap %s: %w", at, ErrNoSelection)
	}
	return e.RequestMove(e.selected, at)
}

// ClearSelection drops the current selection, if any.
func (e *Engine) ClearSelection() {
	if !e.awaiting {
		return
	}
	e.clearSelection()
}
