package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/marbles/internal/core"
	"github.com/vovakirdan/marbles/internal/registry"
	"github.com/vovakirdan/marbles/internal/storage"
)

// settleTicks bounds how long quitting waits for a game to reach a state
// it can save.
const settleTicks = 600

// Options control how a game is run.
type Options struct {
	// Resume continues the saved session of the game, if there is one.
	Resume bool

	// SaveSlot is the key of the game's saved session.
	// Defaults to the game ID.
	SaveSlot string

	// Embedded models run inside a session and can go back to its menu
	// from the pause or game over screen.
	Embedded bool

	// Logger receives platform events. Defaults to discarding them.
	Logger *log.Logger

	// Renderer styles the output. Defaults to the local terminal.
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	renderer   *ScreenRenderer
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.SaveSlot == "" {
		opts.SaveSlot = game.ID()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if keeper, ok := game.(registry.HighScoreKeeper); ok && store != nil {
		keeper.UseHighScores(store.HighScores(game.ID()))
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger.With("game", game.ID()),
		renderer:   NewScreenRenderer(opts.Renderer),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	if m.opts.Resume {
		m.resume()
	}
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// resume replaces the fresh session with the saved one, if any.
func (m Model) resume() {
	s, ok := m.game.(registry.Suspender)
	if !ok || m.store == nil {
		return
	}

	saved, err := m.store.LoadGame(m.opts.SaveSlot)
	if errors.Is(err, storage.ErrNoSavedGame) {
		m.logger.Info("no saved session, starting a new one")
		return
	}
	if err != nil {
		m.logger.Warn("could not load saved session", "error", err)
		return
	}

	if err := s.ResumeFrom(saved.State); err != nil {
		m.logger.Warn("discarding unusable saved session", "error", err)
		//nolint:errcheck // Best-effort cleanup
		m.store.DeleteGame(m.opts.SaveSlot)
		return
	}
	m.logger.Info("resumed saved session", "saved", saved.UpdatedAt)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.suspend()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu from the pause or game over screen
	if m.opts.Embedded && m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.suspend()
		m.backToMenu = true
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games that cannot follow a resize start over
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recordGameOver()

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordGameOver saves the final score once and drops the saved session
// of a finished game.
func (m *Model) recordGameOver() {
	if !m.gameState.GameOver || m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil {
		return
	}

	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "score", m.gameState.Score, "error", err)
		}
	}
	if _, ok := m.game.(registry.Suspender); ok {
		//nolint:errcheck // Best-effort cleanup, game continues regardless
		m.store.DeleteGame(m.opts.SaveSlot)
	}
}

// suspend saves the running session so it can be resumed later.
// Animations still playing are run to completion first.
func (m *Model) suspend() {
	s, ok := m.game.(registry.Suspender)
	if !ok || m.store == nil {
		return
	}

	for range settleTicks {
		if m.gameState.GameOver {
			return
		}

		state, ok, err := s.Suspend()
		if err != nil {
			m.logger.Warn("could not suspend session", "error", err)
			return
		}
		if ok {
			if err := m.store.SaveGame(m.opts.SaveSlot, state); err != nil {
				m.logger.Warn("could not save session", "error", err)
				return
			}
			m.logger.Info("session saved", "score", m.gameState.Score)
			return
		}

		m.gameState = m.game.Step(core.NewInputFrame()).State
		m.recordGameOver()
	}

	// A stale save would resume an older position.
	m.logger.Warn("session not saved, game did not settle")
	//nolint:errcheck // Best-effort cleanup
	m.store.DeleteGame(m.opts.SaveSlot)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".marbles", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return m.renderer.Render(m.screen)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks select and drop marbles
	)

	_, err := p.Run()
	return err
}
