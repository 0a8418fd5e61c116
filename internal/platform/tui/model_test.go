package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/marbles/internal/core"
	"github.com/vovakirdan/marbles/internal/games/marbles"
	"github.com/vovakirdan/marbles/internal/registry"
	"github.com/vovakirdan/marbles/internal/storage"
)

// fakeGame is a scripted game that can be suspended.
type fakeGame struct {
	state       core.GameState
	steps       int
	settleAfter int // Steps before Suspend succeeds
	resumed     []byte
	scores      registry.HighScores
	resizes     int
}

func (f *fakeGame) ID() string                          { return "fake" }
func (f *fakeGame) Title() string                       { return "Fake" }
func (f *fakeGame) Reset(core.RuntimeConfig)            { f.steps = 0 }
func (f *fakeGame) State() core.GameState               { return f.state }
func (f *fakeGame) Render(dst *core.Screen)             { dst.DrawText(0, 0, "fake") }
func (f *fakeGame) Resize(int, int)                     { f.resizes++ }
func (f *fakeGame) UseHighScores(s registry.HighScores) { f.scores = s }

func (f *fakeGame) Step(core.InputFrame) core.StepResult {
	f.steps++
	return core.StepResult{State: f.state}
}

func (f *fakeGame) Suspend() ([]byte, bool, error) {
	if f.state.GameOver || f.steps < f.settleAfter {
		return nil, false, nil
	}
	return []byte("saved-state"), true, nil
}

func (f *fakeGame) ResumeFrom(state []byte) error {
	if string(state) == "corrupt" {
		return errors.New("corrupt save")
	}
	f.resumed = state
	return nil
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(game registry.Game, store *storage.Store, opts Options) Model {
	return NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	require.IsType(t, Model{}, next)
	return next.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim left", runeKey("h"), core.ActionLeft, false},
		{"wasd down", runeKey("s"), core.ActionDown, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"quit", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action, "MapKey(%q)", tt.msg.String())
			assert.Equal(t, tt.quit, quit, "MapKey(%q) quit", tt.msg.String())
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	release := tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	assert.False(t, km.MapMouseToFrame(release, &frame), "release should not click")

	press := tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	require.True(t, km.MapMouseToFrame(press, &frame), "left press should click")
	p, ok := frame.Pointer()
	assert.True(t, ok)
	assert.Equal(t, core.Point{X: 7, Y: 3}, p)
}

func TestQuitSavesSession(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{settleAfter: 3}
	m := newTestModel(game, store, Options{})
	m.Init()

	m = update(t, m, runeKey("q"))
	require.True(t, m.IsQuitting())
	assert.GreaterOrEqual(t, game.steps, 3, "game should run until it can be saved")

	saved, err := store.LoadGame("fake")
	require.NoError(t, err)
	assert.Equal(t, "saved-state", string(saved.State))
}

func TestResumeOnInit(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("fake", []byte("saved-state")))

	game := &fakeGame{}
	m := newTestModel(game, store, Options{Resume: true})
	m.Init()
	assert.Equal(t, "saved-state", string(game.resumed))

	fresh := &fakeGame{}
	m = newTestModel(fresh, store, Options{})
	m.Init()
	assert.Nil(t, fresh.resumed, "should not resume unless asked")
}

func TestCorruptSaveDiscarded(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("fake", []byte("corrupt")))

	m := newTestModel(&fakeGame{}, store, Options{Resume: true})
	m.Init()

	_, err := store.LoadGame("fake")
	assert.ErrorIs(t, err, storage.ErrNoSavedGame)
}

func TestQuitWhilePausedMidAnimationSaves(t *testing.T) {
	store := openStore(t)
	game := marbles.NewMini()
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}, Options{})
	m.Init()

	// The first spawn is still animating when the game is paused.
	m = update(t, m, runeKey("p"))
	m = update(t, m, TickMsg{})
	require.True(t, m.State().Paused)

	m = update(t, m, runeKey("q"))
	require.True(t, m.IsQuitting())

	saved, err := store.LoadGame(marbles.MiniID)
	require.NoError(t, err, "paused game should be saved")
	id, snap, err := marbles.DecodeSnapshot(saved.State)
	require.NoError(t, err)
	assert.Equal(t, marbles.MiniID, id)
	assert.NotEmpty(t, snap.Marbles)
}

func TestGameOverRecordsScore(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("fake", []byte("saved-state")))

	game := &fakeGame{state: core.GameState{Score: 42, GameOver: true}}
	m := newTestModel(game, store, Options{})
	m.Init()
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 42, scores[0].Score)

	_, err = store.LoadGame("fake")
	assert.ErrorIs(t, err, storage.ErrNoSavedGame, "finished game should drop its save")
}

func TestStoreHandedToKeeper(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{}
	newTestModel(game, store, Options{})
	require.NotNil(t, game.scores, "expected the store's high score record")

	require.NoError(t, game.scores.RecordHighScore(77))
	best, err := store.BestScore("fake")
	require.NoError(t, err)
	assert.Equal(t, 77, best)
}

func TestResizeKeepsSession(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, nil, Options{})
	m.Init()
	game.steps = 5

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 1, game.resizes)
	assert.Equal(t, 5, game.steps, "resize should not reset the game")
}

func TestEmbeddedBackToMenu(t *testing.T) {
	game := &fakeGame{state: core.GameState{Paused: true}}
	m := newTestModel(game, nil, Options{Embedded: true})
	m.Init()
	m = update(t, m, TickMsg{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu(), "esc while paused should go back to the menu")
	assert.False(t, m.IsQuitting(), "going back is not quitting")
}

func TestRenderScreenKeepsText(t *testing.T) {
	screen := core.NewScreen(10, 2)
	screen.DrawTextColored(0, 0, "red", core.ColorRed)
	screen.DrawText(0, 1, "plain")

	out := NewScreenRenderer(nil).Render(screen)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "red")
	assert.True(t, strings.HasPrefix(lines[1], "plain"), "unexpected output %q", out)
}

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

func TestMenuListsSavedGameFirst(t *testing.T) {
	store := openStore(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}

	m := NewMenuModel(store, cfg, "")
	items := fakeItems(m)
	require.Len(t, items, 1)
	assert.False(t, items[0].Resume)

	require.NoError(t, store.SaveGame("alice/fake", []byte("saved-state")))
	m = NewMenuModel(store, cfg, "alice/")
	items = fakeItems(m)
	require.Len(t, items, 2)
	assert.True(t, items[0].Resume, "saved game is listed first")
	assert.False(t, items[1].Resume)
	assert.Contains(t, m.View(), "Continue: Fake")

	for m.items[m.cursor].GameID != "fake" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(MenuModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := next.(MenuModel).Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "fake", sel.GameID)
	assert.True(t, sel.Resume)

	assert.Len(t, fakeItems(NewMenuModel(store, cfg, "bob/")), 1, "saves of other users should not be listed")
}

// fakeItems returns the menu entries of the fake game, in menu order.
func fakeItems(m MenuModel) []MenuItem {
	var items []MenuItem
	for _, item := range m.items {
		if item.GameID == "fake" {
			items = append(items, item)
		}
	}
	return items
}
