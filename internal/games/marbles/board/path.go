package board

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// frame is one cell on the depth-first search stack.
type frame struct {
	at       Coord
	fallback bool // Biased directions exhausted, trying the rest
	next     int  // Index into searchOrder of the next direction to try
}

// FindPath searches for a route for the marble at from to the empty cell to,
// moving orthogonally through empty cells only.
//
// The search is depth-first over an explicit stack. From every cell it first
// tries the directions that bring it closer to the target (Up, Down, Left,
// Right order), and only once those are exhausted the remaining directions.
// Cells are never revisited, so every reachable cell is explored at most once:
// a path is found whenever one exists, though not necessarily a shortest one.
// The grid is not modified.
func FindPath(g *Grid, from, to Coord) (Path, error) {
	if !g.InBounds(from) || !g.InBounds(to) {
		return nil, fmt.Errorf("path %s->%s: %w", from, to, ErrOutOfBounds)
	}
	if !g.Occupied(from) {
		return nil, fmt.Errorf("path %s->%s: %w", from, to, ErrSourceEmpty)
	}
	if g.Occupied(to) {
		return nil, fmt.Errorf("path %s->%s: %w", from, to, ErrCellOccupied)
	}

	visited := mapset.New[Coord]()
	visited.Put(from)
	stack := []frame{{at: from}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.at == to {
			path := make(Path, len(stack))
			for i, f := range stack {
				path[i] = f.at
			}
			return path, nil
		}

		next, ok := advance(g, top, to, visited)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		visited.Put(next)
		stack = append(stack, frame{at: next})
	}

	return nil, fmt.Errorf("path %s->%s: %w", from, to, ErrNoPath)
}

// advance returns the next unvisited empty neighbour of f to explore,
// updating f's iteration state. Returns false once f is exhausted.
func advance(g *Grid, f *frame, target Coord, visited mapset.Set[Coord]) (Coord, bool) {
	for {
		for f.next < len(searchOrder) {
			d := searchOrder[f.next]
			f.next++

			// Biased directions are tried in the first pass only.
			if d.Toward(f.at, target) == f.fallback {
				continue
			}

			n := f.at.Step(d)
			if g.InBounds(n) && !g.Occupied(n) && !visited.Has(n) {
				return n, true
			}
		}

		if f.fallback {
			return Coord{}, false
		}
		f.fallback = true
		f.next = 0
	}
}

// Reachable returns every empty cell the marble at from could move to,
// ordered by row then column. Returns nil if from is empty or out of bounds.
func Reachable(g *Grid, from Coord) []Coord {
	if !g.InBounds(from) || !g.Occupied(from) {
		return nil
	}

	visited := mapset.New[Coord]()
	visited.Put(from)
	queue := []Coord{from}
	var cells []Coord

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range searchOrder {
			n := current.Step(d)
			if !g.InBounds(n) || g.Occupied(n) || visited.Has(n) {
				continue
			}
			visited.Put(n)
			cells = append(cells, n)
			queue = append(queue, n)
		}
	}

	SortCoords(cells)
	return cells
}
