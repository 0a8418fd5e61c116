package board

import (
	"fmt"
	"math/rand"
	"sort"
)

// Grid is a width x height rectangle of cells, each empty or holding one marble.
// Empty cells are additionally tracked in a free-list so that a random empty
// cell can be drawn in constant time however full the board is.
type Grid struct {
	width  int
	height int
	cells  map[Coord]Color

	free    []Coord       // Empty cells, unordered
	freeIdx map[Coord]int // Position of each empty cell in free
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidConfiguration, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
	}
	g.Reset()
	return g, nil
}

// Reset removes every marble.
func (g *Grid) Reset() {
	g.cells = make(map[Coord]Color, g.width*g.height)
	g.free = make([]Coord, 0, g.width*g.height)
	g.freeIdx = make(map[Coord]int, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.pushFree(C(x, y))
		}
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Capacity returns the number of cells.
func (g *Grid) Capacity() int {
	return g.width * g.height
}

// Count returns the number of marbles on the grid.
func (g *Grid) Count() int {
	return len(g.cells)
}

// IsFull reports whether every cell holds a marble.
func (g *Grid) IsFull() bool {
	return len(g.cells) == g.Capacity()
}

// IsEmpty reports whether the grid holds no marbles.
func (g *Grid) IsEmpty() bool {
	return len(g.cells) == 0
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Occupant returns the color of the marble at c, if any.
func (g *Grid) Occupant(c Coord) (Color, bool) {
	color, ok := g.cells[c]
	return color, ok
}

// Occupied reports whether a marble sits at c.
func (g *Grid) Occupied(c Coord) bool {
	_, ok := g.cells[c]
	return ok
}

// Place puts a marble of the given color at c.
// The grid is left unchanged on error.
func (g *Grid) Place(c Coord, color Color) error {
	if !g.InBounds(c) {
		return fmt.Errorf("place at %s: %w", c, ErrOutOfBounds)
	}
	if g.Occupied(c) {
		return fmt.Errorf("place at %s: %w", c, ErrCellOccupied)
	}
	g.cells[c] = color
	g.dropFree(c)
	return nil
}

// Remove clears c and returns the color that was there.
func (g *Grid) Remove(c Coord) (Color, bool) {
	color, ok := g.cells[c]
	if !ok {
		return 0, false
	}
	delete(g.cells, c)
	g.pushFree(c)
	return color, true
}

// Move relocates the marble at from to the empty cell to.
// It does not check reachability; see FindPath.
func (g *Grid) Move(from, to Coord) error {
	if !g.InBounds(from) || !g.InBounds(to) {
		return fmt.Errorf("move %s->%s: %w", from, to, ErrOutOfBounds)
	}
	color, ok := g.cells[from]
	if !ok {
		return fmt.Errorf("move %s->%s: %w", from, to, ErrSourceEmpty)
	}
	if g.Occupied(to) {
		return fmt.Errorf("move %s->%s: %w", from, to, ErrCellOccupied)
	}

	delete(g.cells, from)
	g.cells[to] = color
	g.pushFree(from)
	g.dropFree(to)
	return nil
}

// RandomEmpty returns a uniformly chosen empty cell.
// Returns false only when the grid is full.
func (g *Grid) RandomEmpty(rng *rand.Rand) (Coord, bool) {
	if len(g.free) == 0 {
		return Coord{}, false
	}
	return g.free[rng.Intn(len(g.free))], true
}

// Marbles returns all marbles ordered by row then column.
func (g *Grid) Marbles() []Marble {
	marbles := make([]Marble, 0, len(g.cells))
	for c, color := range g.cells {
		marbles = append(marbles, Marble{At: c, Color: color})
	}
	sort.Slice(marbles, func(i, j int) bool {
		return rowMajorLess(marbles[i].At, marbles[j].At)
	})
	return marbles
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		width:   g.width,
		height:  g.height,
		cells:   make(map[Coord]Color, len(g.cells)),
		free:    make([]Coord, len(g.free), cap(g.free)),
		freeIdx: make(map[Coord]int, len(g.freeIdx)),
	}
	for c, color := range g.cells {
		clone.cells[c] = color
	}
	copy(clone.free, g.free)
	for c, i := range g.freeIdx {
		clone.freeIdx[c] = i
	}
	return clone
}

// pushFree records c as empty.
func (g *Grid) pushFree(c Coord) {
	if _, ok := g.freeIdx[c]; ok {
		return
	}
	g.freeIdx[c] = len(g.free)
	g.free = append(g.free, c)
}

// dropFree removes c from the free-list by swapping in the last entry.
func (g *Grid) dropFree(c Coord) {
	i, ok := g.freeIdx[c]
	if !ok {
		return
	}
	last := len(g.free) - 1
	if i != last {
		moved := g.free[last]
		g.free[i] = moved
		g.freeIdx[moved] = i
	}
	g.free = g.free[:last]
	delete(g.freeIdx, c)
}

// rowMajorLess orders coordinates by row then column.
func rowMajorLess(a, b Coord) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// SortCoords orders coordinates by row then column, in place.
func SortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		return rowMajorLess(coords[i], coords[j])
	})
}
