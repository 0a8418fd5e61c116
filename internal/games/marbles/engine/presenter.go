package engine

import "github.com/vovakirdan/marbles/internal/games/marbles/board"

// Presenter displays what the engine does.
//
// Methods taking a done callback may animate for as long as they like; the
// engine does not leave the current phase until done is called. done may be
// called synchronously, and calls after the first are ignored. The remaining
// methods are notifications only.
type Presenter interface {
	// BoardReady is called once per session, when the empty board should be shown.
	BoardReady(done func())

	// MarblesSpawned reports newly placed marbles and the colors of the next batch.
	MarblesSpawned(spawned []board.Marble, next []board.Color, done func())

	// MarblesRemoved reports the cells cleared by completed lines.
	MarblesRemoved(removed []board.Coord, done func())

	// ScoreChanged reports the new score.
	ScoreChanged(score int)

	// MarbleMoved reports a marble travelling along path, starting at from.
	MarbleMoved(from board.Coord, path board.Path, done func())

	MarbleSelected(at board.Coord)
	MarbleDeselected(at board.Coord)

	// GameFinished is called once the board is full.
	GameFinished(score int, newHighScore bool)
}

// HighScores stores the best score between sessions.
type HighScores interface {
	HighScore() (int, error)
	RecordHighScore(score int) error
}

// MemoryHighScores keeps the best score in memory.
// It is used when no persistent store is supplied.
type MemoryHighScores struct {
	Best int
}

// HighScore returns the best recorded score.
func (m *MemoryHighScores) HighScore() (int, error) {
	return m.Best, nil
}

// RecordHighScore stores a new best score.
func (m *MemoryHighScores) RecordHighScore(score int) error {
	m.Best = score
	return nil
}
