package board

import "errors"

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrCellOccupied is returned when a target cell already holds a marble.
	ErrCellOccupied = errors.New("cell occupied")

	// ErrSourceEmpty is returned when moving from a cell with no marble.
	ErrSourceEmpty = errors.New("source cell empty")

	// ErrNoPath is returned when the destination cannot be reached.
	ErrNoPath = errors.New("no path exists")

	// ErrInvalidConfiguration is returned for non-positive dimensions or counts.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
