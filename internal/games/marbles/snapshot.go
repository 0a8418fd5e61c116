package marbles

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
	"github.com/vovakirdan/marbles/internal/games/marbles/engine"
)

// snapshotVersion is bumped whenever the saved layout changes incompatibly.
const snapshotVersion = 1

// ErrSnapshotVersion is returned when decoding a save written by an
// incompatible version.
var ErrSnapshotVersion = errors.New("marbles: unsupported snapshot version")

// savedGame is the on-disk form of a suspended session.
type savedGame struct {
	Version int             `yaml:"version"`
	Game    string          `yaml:"game"`
	Engine  engine.Snapshot `yaml:"engine"`
}

// EncodeSnapshot serializes an engine snapshot for the given variant.
func EncodeSnapshot(gameID string, snap engine.Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(savedGame{
		Version: snapshotVersion,
		Game:    gameID,
		Engine:  snap,
	})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses data written by EncodeSnapshot and returns the
// variant it belongs to.
func DecodeSnapshot(data []byte) (string, engine.Snapshot, error) {
	var saved savedGame
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return "", engine.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if saved.Version != snapshotVersion {
		return "", engine.Snapshot{}, fmt.Errorf("%w: %d", ErrSnapshotVersion, saved.Version)
	}
	return saved.Game, saved.Engine, nil
}

// Snapshot returns the engine state of the running session.
func (g *Game) Snapshot() (engine.Snapshot, bool) {
	if g.engine == nil {
		return engine.Snapshot{}, false
	}
	return g.engine.Snapshot(), true
}

// Suspend encodes the running session. Animations still playing are
// finished first, even while paused. Only a session then waiting for the
// player's move is saved.
func (g *Game) Suspend() ([]byte, bool, error) {
	if g.engine == nil || g.gameOver {
		return nil, false, nil
	}
	g.settle()
	if g.gameOver || g.animating() || !g.engine.Awaiting() {
		return nil, false, nil
	}

	data, err := EncodeSnapshot(g.id, g.engine.Snapshot())
	if err != nil {
		return nil, false, err
	}
	g.log.Debug("session suspended", "score", g.score)
	return data, true, nil
}

// ResumeFrom replaces the current session with a suspended one.
// The saved rules replace the configured ones for the resumed session.
func (g *Game) ResumeFrom(data []byte) error {
	id, snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	if id != g.id {
		return fmt.Errorf("%w: saved for %q, not %q", engine.ErrInvalidSnapshot, id, g.id)
	}
	if g.rng == nil {
		return errors.New("marbles: resume before reset")
	}

	e, err := g.newEngine(snap.Settings)
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrInvalidSnapshot, err)
	}

	previous := g.engine
	g.engine = e
	g.clearView()
	g.gameOver = false
	g.newHighScore = false
	g.paused = false
	if err := e.Resume(snap); err != nil {
		g.engine = previous
		if previous != nil {
			g.start()
		}
		return err
	}

	// Resumed marbles appear at once.
	g.anims = nil
	g.err = nil
	w, h := g.boardSize()
	g.cursor = board.C(w/2, h/2)
	g.checkScreenSize()
	g.log.Info("session resumed", "score", g.score)
	return nil
}
