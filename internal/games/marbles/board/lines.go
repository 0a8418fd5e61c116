package board

import "github.com/zyedidia/generic/mapset"

// FindLines returns the cells of every line through at that is at least
// minLength long: the maximal horizontal and vertical runs of at's color.
// Runs are measured independently per axis and merged, so a cell on both a
// qualifying row and a qualifying column appears once. The grid is not modified.
// Returns an empty Removal when at is empty or no run qualifies.
func FindLines(g *Grid, at Coord, minLength int) Removal {
	color, ok := g.Occupant(at)
	if !ok {
		return Removal{}
	}

	lines := mapset.New[Coord]()

	// Horizontal
	startX := scan(g, at, color, -1, 0)
	endX := scan(g, at, color, 1, 0)
	if endX.X-startX.X+1 >= minLength {
		for x := startX.X; x <= endX.X; x++ {
			lines.Put(C(x, at.Y))
		}
	}

	// Vertical
	startY := scan(g, at, color, 0, -1)
	endY := scan(g, at, color, 0, 1)
	if endY.Y-startY.Y+1 >= minLength {
		for y := startY.Y; y <= endY.Y; y++ {
			lines.Put(C(at.X, y))
		}
	}

	if lines.Size() == 0 {
		return Removal{Color: color}
	}

	coords := make([]Coord, 0, lines.Size())
	lines.Each(func(c Coord) {
		coords = append(coords, c)
	})
	SortCoords(coords)

	return Removal{Color: color, Coords: coords}
}

// ResolveLines finds the lines through at like FindLines and removes all of
// their cells from the grid in one step.
func ResolveLines(g *Grid, at Coord, minLength int) Removal {
	removal := FindLines(g, at, minLength)
	for _, c := range removal.Coords {
		g.Remove(c)
	}
	return removal
}

// scan walks from at in the (dx, dy) direction while cells hold color and
// returns the last matching cell.
func scan(g *Grid, at Coord, color Color, dx, dy int) Coord {
	end := at
	for {
		next := end.Add(dx, dy)
		if c, ok := g.Occupant(next); !ok || c != color {
			return end
		}
		end = next
	}
}
