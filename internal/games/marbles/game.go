// Package marbles implements the marbles puzzle for the terminal.
// Marbles of several colors drop onto a grid each turn; the player moves one
// marble per turn along a free path, and rows or columns of enough same-colored
// marbles vanish for points. The game ends when the board is full.
//
// The rules live in the board and engine subpackages. This package presents
// the engine: it keeps its own view of the board, animates what the engine
// reports and turns cursor, key and mouse input into engine requests.
package marbles

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/marbles/internal/config"
	"github.com/vovakirdan/marbles/internal/core"
	"github.com/vovakirdan/marbles/internal/games/marbles/board"
	"github.com/vovakirdan/marbles/internal/games/marbles/engine"
	"github.com/vovakirdan/marbles/internal/registry"
)

// Variant identifiers.
const (
	ClassicID = "marbles"
	MiniID    = "marbles_mini"
)

// hintTicks is how long a rejected-move hint stays on screen.
const hintTicks = 90

// Package-level variables for config
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the config file used by new games.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by new games.
// An empty preset uses the one from the config file.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger sets the logger used by games and their engines.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the marbles game on top of the turn engine.
type Game struct {
	id     string
	title  string
	base   func() (config.MarblesConfig, error)
	cfg    config.MarblesConfig
	engine *engine.Engine
	err    error // Configuration error; the game cannot start
	log    *log.Logger

	scores registry.HighScores // Defaults to an in-memory record

	rng  *rand.Rand
	tick uint64

	// View of the board as reported to the presenter
	marbles  map[board.Coord]board.Color
	next     []board.Color
	selected board.Coord
	selOn    bool
	hidden   mapset.Set[board.Coord] // Cells whose marble is being animated
	anims    []*animation

	score        int
	highScore    int
	newHighScore bool
	gameOver     bool
	paused       bool

	cursor    board.Coord
	hint      string
	hintUntil uint64

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a classic 9x9 game configured from the config file.
func New() *Game {
	return &Game{
		id:    ClassicID,
		title: "Marbles",
		base: func() (config.MarblesConfig, error) {
			return config.LoadMarbles(configPath)
		},
	}
}

// NewMini creates a game on the small 7x7 board.
func NewMini() *Game {
	return &Game{
		id:    MiniID,
		title: "Marbles (Mini)",
		base: func() (config.MarblesConfig, error) {
			return config.MiniMarblesConfig(), nil
		},
	}
}

func init() {
	registry.Register(ClassicID, func() registry.Game {
		return New()
	})
	registry.Register(MiniID, func() registry.Game {
		return NewMini()
	})
}

var (
	_ registry.Game            = (*Game)(nil)
	_ registry.HighScoreKeeper = (*Game)(nil)
	_ registry.Suspender       = (*Game)(nil)
	_ registry.Resizer         = (*Game)(nil)
)

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// UseHighScores makes the game compare against and record its best score
// in scores.
func (g *Game) UseHighScores(scores registry.HighScores) {
	g.scores = scores
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.log = logger.With("game", g.id)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false

	if g.scores == nil {
		g.scores = &engine.MemoryHighScores{}
	}

	g.engine = nil
	g.cfg, g.err = g.resolveConfig()
	if g.err == nil {
		g.engine, g.err = g.newEngine(settingsFromConfig(g.cfg))
	}
	if g.err != nil {
		g.log.Error("cannot start game", "error", g.err)
		g.clearView()
		g.checkScreenSize()
		return
	}

	g.refreshHighScore()
	g.checkScreenSize()
	g.start()
}

// resolveConfig loads the variant's configuration and applies the difficulty preset.
func (g *Game) resolveConfig() (config.MarblesConfig, error) {
	cfg, err := g.base()
	if err != nil {
		return cfg, err
	}

	name := difficultyPreset
	if name == "" {
		name = string(cfg.Difficulty.Preset)
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return cfg, err
	}
	config.ApplyMarblesPreset(&cfg, preset)
	return cfg, nil
}

// newEngine creates an engine for settings, wired to this game.
func (g *Game) newEngine(settings engine.Settings) (*engine.Engine, error) {
	return engine.New(settings, g,
		engine.WithRand(g.rng),
		engine.WithHighScores(g.scores),
		engine.WithLogger(g.log.WithPrefix("engine")),
	)
}

// start begins a new session on the current engine.
func (g *Game) start() {
	g.clearView()
	g.score = 0
	g.gameOver = false
	g.newHighScore = false
	w, h := g.boardSize()
	g.cursor = board.C(w/2, h/2)
	g.engine.Start()
}

// clearView drops all presentation state of the previous session.
func (g *Game) clearView() {
	g.marbles = make(map[board.Coord]board.Color)
	g.hidden = mapset.New[board.Coord]()
	g.next = nil
	g.anims = nil
	g.selOn = false
	g.hint = ""
}

// refreshHighScore reads the best score shown in the HUD.
func (g *Game) refreshHighScore() {
	best, err := g.scores.HighScore()
	if err != nil {
		g.log.Warn("could not read high score", "error", err)
		return
	}
	g.highScore = best
}

// boardSize returns the dimensions of the board in play.
func (g *Game) boardSize() (int, int) {
	if g.engine != nil {
		s := g.engine.Settings()
		return s.Width, s.Height
	}
	return g.cfg.Board.Width, g.cfg.Board.Height
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.engine == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart mid-game; after game over the platform resets us
	if in.Has(core.ActionRestart) && !g.gameOver {
		g.log.Info("restarting", "score", g.score)
		g.start()
		return core.StepResult{State: g.State()}
	}

	g.advanceAnimation()

	if !g.gameOver {
		g.handleInput(in)
	}

	return core.StepResult{State: g.State()}
}

// handleInput moves the cursor and forwards taps to the engine.
func (g *Game) handleInput(in core.InputFrame) {
	w, h := g.boardSize()

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y = core.Clamp(g.cursor.Y-1, 0, h-1)
	case in.Has(core.ActionDown):
		g.cursor.Y = core.Clamp(g.cursor.Y+1, 0, h-1)
	case in.Has(core.ActionLeft):
		g.cursor.X = core.Clamp(g.cursor.X-1, 0, w-1)
	case in.Has(core.ActionRight):
		g.cursor.X = core.Clamp(g.cursor.X+1, 0, w-1)
	}

	if in.Has(core.ActionBack) {
		g.engine.ClearSelection()
	}

	if p, ok := in.Pointer(); ok {
		if cell, ok := g.cellAt(p.X, p.Y); ok {
			g.cursor = cell
			g.tap(cell)
		}
		return
	}

	if in.Has(core.ActionConfirm) {
		g.tap(g.cursor)
	}
}

// tap forwards a tap to the engine and explains rejected moves.
func (g *Game) tap(at board.Coord) {
	err := g.engine.Tap(at)
	if err == nil {
		g.hint = ""
		return
	}

	g.log.Debug("tap rejected", "at", at, "error", err)
	switch {
	case errors.Is(err, engine.ErrNotAwaitingMove):
		return
	case errors.Is(err, board.ErrNoPath):
		g.showHint("No free path there")
	case errors.Is(err, engine.ErrNoSelection):
		g.showHint("Pick a marble first")
	default:
		g.showHint(fmt.Sprintf("Can't move to %s", at))
	}
}

func (g *Game) showHint(text string) {
	g.hint = text
	g.hintUntil = g.tick + hintTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:        g.score,
		HighScore:    g.highScore,
		NewHighScore: g.newHighScore,
		GameOver:     g.gameOver || g.err != nil,
		Paused:       g.paused,
	}
}

// Err returns the configuration error that prevented the game from starting.
func (g *Game) Err() error {
	return g.err
}

// settingsFromConfig converts a configuration to engine rules.
func settingsFromConfig(cfg config.MarblesConfig) engine.Settings {
	return engine.Settings{
		Width:      cfg.Board.Width,
		Height:     cfg.Board.Height,
		Colors:     cfg.Rules.Colors,
		SpawnCount: cfg.Rules.SpawnCount,
		LineLength: cfg.Rules.LineLength,
	}
}

// ResolveConfig returns the configuration a new game of the given variant
// would use, with the current config path and difficulty preset.
func ResolveConfig(gameID string) (config.MarblesConfig, error) {
	var g *Game
	switch gameID {
	case ClassicID:
		g = New()
	case MiniID:
		g = NewMini()
	default:
		return config.MarblesConfig{}, fmt.Errorf("marbles: unknown variant %q", gameID)
	}
	return g.resolveConfig()
}

// ResolveSettings returns the rules a new game of the given variant would use.
// It fails with board.ErrInvalidConfiguration if they are not playable.
func ResolveSettings(gameID string) (engine.Settings, error) {
	cfg, err := ResolveConfig(gameID)
	if err != nil {
		return engine.Settings{}, err
	}
	settings := settingsFromConfig(cfg)
	return settings, settings.Validate()
}
