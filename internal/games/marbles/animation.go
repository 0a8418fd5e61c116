package marbles

import (
	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

// Default animation lengths in ticks (60 ticks per second).
const (
	defaultMoveStepTicks = 2
	defaultSpawnTicks    = 12
	defaultRemoveTicks   = 18
)

// maxSettleAnimations bounds settle for rules under which turns never
// stop clearing the board.
const maxSettleAnimations = 1000

// animKind identifies what an animation shows.
type animKind int

const (
	animSpawn animKind = iota
	animRemove
	animMove
)

// animation is one queued effect. Its done callback is the engine's
// completion and fires once the effect has played.
type animation struct {
	kind     animKind
	marbles  []board.Marble // Appearing or vanishing marbles
	path     board.Path     // Route of a moving marble
	color    board.Color    // Color of a moving marble
	duration int
	elapsed  int
	done     func()
}

// progress returns how far the animation has played, from 0 to 1.
func (a *animation) progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	return float64(a.elapsed) / float64(a.duration)
}

// pathIndex returns the index into path of the cell a moving marble is on.
func (a *animation) pathIndex(stepTicks int) int {
	if stepTicks <= 0 {
		stepTicks = 1
	}
	i := a.elapsed / stepTicks
	if i >= len(a.path) {
		i = len(a.path) - 1
	}
	return i
}

// enqueue adds an animation behind those already playing.
func (g *Game) enqueue(a *animation) {
	if a.duration < 1 {
		a.duration = 1
	}
	g.anims = append(g.anims, a)
}

// animating reports whether an effect is playing.
func (g *Game) animating() bool {
	return len(g.anims) > 0
}

// advanceAnimation plays the head of the queue for one tick and finishes it
// when its time is up. Finishing may queue further animations.
func (g *Game) advanceAnimation() {
	if len(g.anims) == 0 {
		return
	}

	head := g.anims[0]
	head.elapsed++
	if head.elapsed < head.duration {
		return
	}

	g.anims = g.anims[1:]
	g.finishAnimation(head)
	if head.done != nil {
		head.done()
	}
}

// settle plays every queued animation to its end at once, including the
// ones their completions queue. Pause does not hold it back.
func (g *Game) settle() {
	for range maxSettleAnimations {
		if len(g.anims) == 0 {
			return
		}
		head := g.anims[0]
		head.elapsed = max(head.elapsed, head.duration-1)
		g.advanceAnimation()
	}
}

// finishAnimation applies the final state of an animation to the view.
func (g *Game) finishAnimation(a *animation) {
	switch a.kind {
	case animMove:
		to := a.path.To()
		g.marbles[to] = a.color
		g.hidden.Remove(to)
	case animSpawn, animRemove:
		// The view was updated when the animation was queued.
	}
}

func (g *Game) moveStepTicks() int {
	if g.cfg.Animation.MoveStepTicks > 0 {
		return g.cfg.Animation.MoveStepTicks
	}
	return defaultMoveStepTicks
}

func (g *Game) spawnTicks() int {
	if g.cfg.Animation.SpawnTicks > 0 {
		return g.cfg.Animation.SpawnTicks
	}
	return defaultSpawnTicks
}

func (g *Game) removeTicks() int {
	if g.cfg.Animation.RemoveTicks > 0 {
		return g.cfg.Animation.RemoveTicks
	}
	return defaultRemoveTicks
}
