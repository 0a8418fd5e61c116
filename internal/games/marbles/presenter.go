package marbles

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
	"github.com/vovakirdan/marbles/internal/games/marbles/engine"
)

var _ engine.Presenter = (*Game)(nil)

// BoardReady clears the view for a new session.
func (g *Game) BoardReady(done func()) {
	g.marbles = make(map[board.Coord]board.Color)
	g.hidden = mapset.New[board.Coord]()
	g.selOn = false
	done()
}

// MarblesSpawned shows new marbles growing into place.
func (g *Game) MarblesSpawned(spawned []board.Marble, next []board.Color, done func()) {
	for _, m := range spawned {
		g.marbles[m.At] = m.Color
	}
	g.next = slices.Clone(next)

	g.enqueue(&animation{
		kind:     animSpawn,
		marbles:  slices.Clone(spawned),
		duration: g.spawnTicks(),
		done:     done,
	})
}

// MarblesRemoved flashes the cleared cells before they go blank.
func (g *Game) MarblesRemoved(removed []board.Coord, done func()) {
	marbles := make([]board.Marble, 0, len(removed))
	for _, c := range removed {
		color, ok := g.marbles[c]
		if !ok {
			continue
		}
		marbles = append(marbles, board.Marble{At: c, Color: color})
		delete(g.marbles, c)
	}

	g.enqueue(&animation{
		kind:     animRemove,
		marbles:  marbles,
		duration: g.removeTicks(),
		done:     done,
	})
}

// ScoreChanged updates the score shown in the HUD.
func (g *Game) ScoreChanged(score int) {
	g.score = score
}

// MarbleMoved walks the marble along its path one cell at a time.
func (g *Game) MarbleMoved(from board.Coord, path board.Path, done func()) {
	color := g.marbles[from]
	delete(g.marbles, from)
	g.hidden.Put(path.To())

	g.enqueue(&animation{
		kind:     animMove,
		path:     slices.Clone(path),
		color:    color,
		duration: (len(path) - 1) * g.moveStepTicks(),
		done:     done,
	})
}

// MarbleSelected highlights the selected marble.
func (g *Game) MarbleSelected(at board.Coord) {
	g.selected = at
	g.selOn = true
}

// MarbleDeselected drops the highlight.
func (g *Game) MarbleDeselected(at board.Coord) {
	if g.selOn && g.selected == at {
		g.selOn = false
	}
}

// GameFinished shows the game over screen.
func (g *Game) GameFinished(score int, newHighScore bool) {
	g.score = score
	g.gameOver = true
	g.newHighScore = newHighScore
	if newHighScore || score > g.highScore {
		g.highScore = score
	}
	g.log.Info("game over", "score", score, "newHighScore", newHighScore)
}
