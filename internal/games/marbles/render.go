package marbles

import (
	"fmt"

	"github.com/vovakirdan/marbles/internal/core"
	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

const (
	cellWidth  = 4 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// Visual characters for rendering
const (
	marbleChar   = '●'
	selectedChar = '◉'
	growingChar  = '•'
	burstChar    = '✱'
	reachChar    = '·'
)

const helpText = "arrows move  enter pick/drop  esc cancel  p pause  r restart  q quit"

// layout returns the board's top-left corner and size on screen.
func (g *Game) layout() core.Rect {
	w, h := g.boardSize()
	boardW := w*cellWidth + 1
	boardH := h*cellHeight + 1
	return core.NewRect((g.screenW-boardW)/2, hudHeight, boardW, boardH)
}

// minScreenSize returns the smallest screen that fits the board, HUD and help line.
func (g *Game) minScreenSize() (int, int) {
	w, h := g.boardSize()
	boardW := w*cellWidth + 1
	boardH := h*cellHeight + 1
	return core.Max(boardW, len(helpText)), hudHeight + boardH + 1
}

// cellAt maps a screen position to the board cell drawn there.
func (g *Game) cellAt(x, y int) (board.Coord, bool) {
	r := g.layout()
	if !r.Contains(x, y) {
		return board.Coord{}, false
	}
	relX := x - r.X - 1
	relY := y - r.Y - 1
	if relX < 0 || relY < 0 {
		return board.Coord{}, false
	}

	c := board.C(relX/cellWidth, relY/cellHeight)
	w, h := g.boardSize()
	if c.X >= w || c.Y >= h {
		return board.Coord{}, false
	}
	return c, true
}

// cellOrigin returns the screen position of the marble glyph of a cell.
func cellOrigin(r core.Rect, c board.Coord) (int, int) {
	return r.X + c.X*cellWidth + 2, r.Y + c.Y*cellHeight + 1
}

// marbleColor maps a marble color to a screen color.
func marbleColor(c board.Color) core.Color {
	return core.PaletteColor(int(c))
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	r := g.layout()
	g.renderHUD(dst, r)
	g.renderGrid(dst, r)
	g.renderMarbles(dst, r)
	g.renderAnimation(dst, r)
	g.renderCursor(dst, r)
	g.renderFooter(dst, r)
	g.renderOverlays(dst, r)
}

// renderError shows why the game could not start.
func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCenteredColored(y-1, "Cannot start marbles", core.ColorBrightRed)
	dst.DrawTextCentered(y, g.err.Error())
	dst.DrawTextCenteredColored(y+2, "Press Q to quit", core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, g.screenW, g.screenH))
}

// renderHUD draws the title, score and the colors of the next spawn.
func (g *Game) renderHUD(dst *core.Screen, r core.Rect) {
	dst.DrawTextCenteredColored(0, g.title, core.ColorBrightWhite)

	dst.DrawText(r.X, 1, fmt.Sprintf("Score: %d", g.score))
	best := fmt.Sprintf("Best: %d", g.highScore)
	dst.DrawText(core.Max(r.X, r.Right()-len(best)), 1, best)

	label := "Next: "
	width := len(label) + 2*len(g.next)
	x := r.X + (r.W-width)/2
	dst.DrawTextColored(x, 2, label, core.ColorGray)
	for i, c := range g.next {
		dst.SetColored(x+len(label)+2*i, 2, marbleChar, marbleColor(c))
	}
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, r core.Rect) {
	w, h := g.boardSize()

	for y := 0; y <= h; y++ {
		for x := 0; x <= w; x++ {
			px := r.X + x*cellWidth
			py := r.Y + y*cellHeight
			dst.SetColored(px, py, junction(x, y, w, h), core.ColorGray)

			if x < w {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < h {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// junction returns the box-drawing rune where grid lines meet at (x, y).
func junction(x, y, w, h int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == w:
		return '┐'
	case y == h && x == 0:
		return '└'
	case y == h && x == w:
		return '┘'
	case y == 0:
		return '┬'
	case y == h:
		return '┴'
	case x == 0:
		return '├'
	case x == w:
		return '┤'
	default:
		return '┼'
	}
}

// renderMarbles draws the resting marbles and, for a selected marble, the
// cells it can reach.
func (g *Game) renderMarbles(dst *core.Screen, r core.Rect) {
	if g.selOn && !g.animating() && !g.gameOver {
		for _, c := range g.engine.Reachable() {
			x, y := cellOrigin(r, c)
			dst.SetColored(x, y, reachChar, core.ColorGray)
		}
	}

	for c, color := range g.marbles {
		if g.hidden.Has(c) {
			continue
		}
		glyph := marbleChar
		if g.selOn && c == g.selected && (g.tick/20)%2 == 0 {
			glyph = selectedChar
		}
		x, y := cellOrigin(r, c)
		dst.SetColored(x, y, glyph, marbleColor(color))
	}
}

// renderAnimation draws the effect at the head of the queue.
func (g *Game) renderAnimation(dst *core.Screen, r core.Rect) {
	if len(g.anims) == 0 {
		return
	}
	a := g.anims[0]

	switch a.kind {
	case animSpawn:
		if a.progress() >= 0.5 {
			return
		}
		for _, m := range a.marbles {
			x, y := cellOrigin(r, m.At)
			dst.SetColored(x, y, growingChar, marbleColor(m.Color))
		}

	case animRemove:
		glyph := burstChar
		if (a.elapsed/3)%2 == 1 {
			glyph = ' '
		}
		for _, m := range a.marbles {
			x, y := cellOrigin(r, m.At)
			dst.SetColored(x, y, glyph, marbleColor(m.Color))
		}

	case animMove:
		at := a.path[a.pathIndex(g.moveStepTicks())]
		x, y := cellOrigin(r, at)
		dst.SetColored(x, y, marbleChar, marbleColor(a.color))
	}
}

// renderCursor brackets the cell under the keyboard cursor.
func (g *Game) renderCursor(dst *core.Screen, r core.Rect) {
	if g.gameOver {
		return
	}
	x, y := cellOrigin(r, g.cursor)
	dst.SetColored(x-1, y, '[', core.ColorBrightWhite)
	dst.SetColored(x+1, y, ']', core.ColorBrightWhite)
}

// renderFooter draws the current hint, or the key help.
func (g *Game) renderFooter(dst *core.Screen, r core.Rect) {
	y := r.Bottom()
	if g.hint != "" && g.tick < g.hintUntil {
		dst.DrawTextCenteredColored(y, g.hint, core.ColorYellow)
		return
	}
	dst.DrawTextCenteredColored(y, helpText, core.ColorGray)
}

// renderOverlays draws pause and game over boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen, r core.Rect) {
	switch {
	case g.gameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", g.score)}
		if g.newHighScore {
			lines = append(lines, "New high score!")
		}
		lines = append(lines, "R restart  Q quit")
		g.renderBox(dst, r, lines)
	case g.paused:
		g.renderBox(dst, r, []string{"PAUSED", "P to resume"})
	}
}

// renderBox draws a framed message centered on the board.
func (g *Game) renderBox(dst *core.Screen, r core.Rect, lines []string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len(l))
	}
	box := core.NewRect(0, 0, width+4, len(lines)+2)
	cx, cy := r.Center()
	box.X = cx - box.W/2
	box.Y = cy - box.H/2

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box)
	for i, l := range lines {
		color := core.ColorBrightWhite
		if i == 0 && g.gameOver {
			color = core.ColorBrightRed
		}
		dst.DrawTextColored(box.X+2+(width-len(l))/2, box.Y+1+i, l, color)
	}
}
