// Package board implements the marble grid: occupancy, path finding between
// cells and detection of completed lines.
// It is UI-agnostic and deterministic for a given random source.
package board

import "fmt"

// Coord is a cell position on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring Coord in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Adjacent reports whether two coordinates share an edge.
func (c Coord) Adjacent(other Coord) bool {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// Dir is one of the four orthogonal directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// searchOrder is the order in which directions are tried from each cell.
var searchOrder = [4]Dir{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Toward reports whether stepping in d from c reduces the distance to target
// along that direction's axis.
func (d Dir) Toward(c, target Coord) bool {
	switch d {
	case DirUp:
		return target.Y < c.Y
	case DirDown:
		return target.Y > c.Y
	case DirLeft:
		return target.X < c.X
	case DirRight:
		return target.X > c.X
	default:
		return false
	}
}

// Color identifies a marble color. Valid colors are in [0, colors).
type Color int

// Marble is an occupied cell.
type Marble struct {
	At    Coord `yaml:"at"`
	Color Color `yaml:"color"`
}

// Path is an ordered sequence of cells from origin to destination, inclusive.
type Path []Coord

// From returns the first cell of the path.
func (p Path) From() Coord {
	return p[0]
}

// To returns the last cell of the path.
func (p Path) To() Coord {
	return p[len(p)-1]
}

// Removal is the set of cells cleared by one line resolution.
type Removal struct {
	Color  Color
	Coords []Coord
}

// Empty reports whether nothing was removed.
func (r Removal) Empty() bool {
	return len(r.Coords) == 0
}
