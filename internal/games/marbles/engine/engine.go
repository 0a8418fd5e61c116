// Package engine sequences the turns of a marbles session:
// spawn, resolve lines, wait for a move, resolve lines, repeat until the
// board is full.
//
// The engine is single-threaded. It runs each phase to completion and stops
// only where a Presenter has been handed a done callback or while waiting for
// the player's move. Callers driving it from several goroutines must serialize
// access themselves.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

// Engine is the turn state machine of one marbles session.
type Engine struct {
	settings  Settings
	grid      *board.Grid
	presenter Presenter
	scores    HighScores
	rng       *rand.Rand
	logger    *log.Logger

	phase      Phase
	score      int
	nextColors []board.Color
	spawned    []board.Coord // Cells filled by the last spawn, in spawn order

	selected     board.Coord
	hasSelection bool
	awaiting     bool
	movedTo      board.Coord
	hasMoved     bool

	// Transitions run on a trampoline so synchronous completions do not recurse.
	session uint64
	pending []Phase
	running bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithHighScores sets the store consulted when the game finishes.
func WithHighScores(scores HighScores) Option {
	return func(e *Engine) {
		if scores != nil {
			e.scores = scores
		}
	}
}

// WithSeed seeds the random source used for spawns and colors.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for spawns and colors.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine for the given rules.
// It fails with board.ErrInvalidConfiguration if the settings are not playable.
func New(settings Settings, presenter Presenter, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if presenter == nil {
		return nil, errors.New("engine: presenter is required")
	}

	grid, err := board.NewGrid(settings.Width, settings.Height)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		settings:  settings,
		grid:      grid,
		presenter: presenter,
		scores:    &MemoryHighScores{},
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Start begins a new session, discarding any session in progress.
func (e *Engine) Start() {
	e.reset()
	e.logger.Debug("session started", "settings", fmt.Sprintf("%+v", e.settings))
	e.transition(PhaseStartup)
}

// reset clears all session state and invalidates outstanding callbacks.
func (e *Engine) reset() {
	e.session++
	e.pending = nil
	e.grid.Reset()
	e.phase = PhaseIdle
	e.score = 0
	e.nextColors = nil
	e.spawned = nil
	e.hasSelection = false
	e.awaiting = false
	e.hasMoved = false
}

// transition queues the next phase and runs queued phases unless a phase is
// already running further up the stack.
func (e *Engine) transition(next Phase) {
	e.pending = append(e.pending, next)
	if e.running {
		return
	}

	e.running = true
	defer func() { e.running = false }()
	for len(e.pending) > 0 {
		p := e.pending[0]
		e.pending = e.pending[1:]
		e.enter(p)
	}
}

// completion returns a callback that advances to next exactly once, provided
// the session it was issued in is still current.
func (e *Engine) completion(next Phase) func() {
	session := e.session
	fired := false
	return func() {
		if fired || session != e.session {
			return
		}
		fired = true
		e.transition(next)
	}
}

// enter runs the entry action of a phase.
func (e *Engine) enter(p Phase) {
	e.logger.Debug("phase", "from", e.phase, "to", p)
	e.phase = p

	switch p {
	case PhaseStartup:
		e.startup()
	case PhaseSpawn:
		e.spawn()
	case PhaseResolveSpawnLines:
		e.resolveSpawnLines()
	case PhaseCheckFull:
		e.checkFull()
	case PhaseAwaitMove:
		e.awaitMove()
	case PhaseResolveMoveLines:
		e.resolveMoveLines()
	case PhaseFinished:
		e.finish()
	}
}

func (e *Engine) startup() {
	e.nextColors = e.drawColors()
	e.presenter.BoardReady(e.completion(PhaseSpawn))
}

func (e *Engine) spawn() {
	spawned := make([]board.Marble, 0, len(e.nextColors))
	e.spawned = e.spawned[:0]

	for _, color := range e.nextColors {
		at, ok := e.grid.RandomEmpty(e.rng)
		if !ok {
			break
		}
		if err := e.grid.Place(at, color); err != nil {
			e.logger.Error("spawn failed", "at", at, "error", err)
			break
		}
		spawned = append(spawned, board.Marble{At: at, Color: color})
		e.spawned = append(e.spawned, at)
	}

	e.nextColors = e.drawColors()
	e.logger.Debug("spawned", "count", len(spawned), "marbles", e.grid.Count())
	e.presenter.MarblesSpawned(spawned, slices.Clone(e.nextColors), e.completion(PhaseResolveSpawnLines))
}

// resolveSpawnLines checks each spawned marble in spawn order against the
// grid as updated by earlier removals in the same batch.
func (e *Engine) resolveSpawnLines() {
	var removed []board.Coord
	for _, at := range e.spawned {
		// Already cleared by a line through an earlier spawn.
		if !e.grid.Occupied(at) {
			continue
		}
		removal := board.ResolveLines(e.grid, at, e.settings.LineLength)
		if removal.Empty() {
			continue
		}
		removed = append(removed, removal.Coords...)
		e.score += len(removal.Coords)
	}
	e.spawned = e.spawned[:0]

	if len(removed) == 0 {
		e.transition(PhaseCheckFull)
		return
	}

	e.logger.Debug("lines cleared after spawn", "removed", len(removed), "score", e.score)
	e.presenter.MarblesRemoved(removed, e.completion(PhaseCheckFull))
	e.presenter.ScoreChanged(e.score)
}

func (e *Engine) checkFull() {
	if e.grid.IsFull() {
		e.transition(PhaseFinished)
		return
	}
	e.transition(PhaseAwaitMove)
}

func (e *Engine) awaitMove() {
	e.clearSelection()
	e.hasMoved = false

	if e.grid.IsEmpty() {
		// Nothing to move.
		e.transition(PhaseResolveMoveLines)
		return
	}
	e.awaiting = true
}

func (e *Engine) resolveMoveLines() {
	if !e.hasMoved {
		e.transition(PhaseSpawn)
		return
	}
	e.hasMoved = false

	removal := board.ResolveLines(e.grid, e.movedTo, e.settings.LineLength)
	if removal.Empty() {
		e.transition(PhaseSpawn)
		return
	}

	e.score += len(removal.Coords)
	e.logger.Debug("lines cleared after move", "removed", len(removal.Coords), "score", e.score)

	// A successful line grants another move without a spawn.
	e.presenter.MarblesRemoved(removal.Coords, e.completion(PhaseAwaitMove))
	e.presenter.ScoreChanged(e.score)
}

func (e *Engine) finish() {
	newHighScore := false

	best, err := e.scores.HighScore()
	if err != nil {
		e.logger.Warn("could not read high score", "error", err)
	} else if e.score > best {
		newHighScore = true
		if err := e.scores.RecordHighScore(e.score); err != nil {
			e.logger.Warn("could not record high score", "score", e.score, "error", err)
		}
	}

	e.logger.Info("game finished", "score", e.score, "highScore", newHighScore)
	e.presenter.GameFinished(e.score, newHighScore)
}

// drawColors picks the colors of the next spawn batch.
func (e *Engine) drawColors() []board.Color {
	colors := make([]board.Color, e.settings.SpawnCount)
	for i := range colors {
		colors[i] = board.Color(e.rng.Intn(e.settings.Colors))
	}
	return colors
}

// clearSelection drops the selected marble, notifying the presenter.
func (e *Engine) clearSelection() {
	if !e.hasSelection {
		return
	}
	e.hasSelection = false
	e.presenter.MarbleDeselected(e.selected)
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Awaiting reports whether the engine is waiting for a move.
func (e *Engine) Awaiting() bool {
	return e.awaiting
}

// Finished reports whether the session has ended.
func (e *Engine) Finished() bool {
	return e.phase == PhaseFinished
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Settings returns the rules of the session.
func (e *Engine) Settings() Settings {
	return e.settings
}

// NextColors returns the colors of the next spawn batch.
func (e *Engine) NextColors() []board.Color {
	return slices.Clone(e.nextColors)
}

// Selected returns the selected marble's cell, if any.
func (e *Engine) Selected() (board.Coord, bool) {
	return e.selected, e.hasSelection
}

// Occupant returns the color of the marble at c, if any.
func (e *Engine) Occupant(c board.Coord) (board.Color, bool) {
	return e.grid.Occupant(c)
}

// Marbles returns every marble on the board, ordered by row then column.
func (e *Engine) Marbles() []board.Marble {
	return e.grid.Marbles()
}

// Reachable returns the cells the selected marble can move to.
func (e *Engine) Reachable() []board.Coord {
	if !e.hasSelection {
		return nil
	}
	return board.Reachable(e.grid, e.selected)
}
