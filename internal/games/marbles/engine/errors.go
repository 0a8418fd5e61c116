package engine

import "errors"

var (
	// ErrNotAwaitingMove is returned for input received outside AwaitMove.
	ErrNotAwaitingMove = errors.New("engine: not awaiting a move")

	// ErrNoSelection is returned when moving a marble that is not selected.
	ErrNoSelection = errors.New("engine: no marble selected at source")

	// ErrSameCell is returned when source and destination coincide.
	ErrSameCell = errors.New("engine: source and destination are the same cell")

	// ErrInvalidSnapshot is returned when a snapshot cannot be resumed.
	ErrInvalidSnapshot = errors.New("engine: invalid snapshot")
)
