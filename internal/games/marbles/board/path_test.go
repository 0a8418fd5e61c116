package board_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

// fillExcept occupies every cell of g except the given ones.
func fillExcept(t *testing.T, g *board.Grid, empty ...board.Coord) {
	t.Helper()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := board.C(x, y)
			if slices.Contains(empty, c) {
				continue
			}
			require.NoError(t, g.Place(c, board.Color((x+y)%5)))
		}
	}
}

// checkPath verifies the structural properties of a path found on g.
func checkPath(t *testing.T, g *board.Grid, path board.Path, from, to board.Coord) {
	t.Helper()
	require.GreaterOrEqual(t, len(path), 2, "path too short: %v", path)
	require.Equal(t, from, path.From(), "path %v", path)
	require.Equal(t, to, path.To(), "path %v", path)

	seen := make(map[board.Coord]bool)
	for i, c := range path {
		require.False(t, seen[c], "path %v repeats %v", path, c)
		seen[c] = true
		if i == 0 {
			continue
		}
		require.True(t, path[i-1].Adjacent(c), "path %v: %v and %v are not adjacent", path, path[i-1], c)
		require.False(t, g.Occupied(c), "path %v passes through occupied cell %v", path, c)
	}
}

func TestFindPathStraight(t *testing.T) {
	g := newGrid(t, 5, 5)
	require.NoError(t, g.Place(board.C(0, 0), 1))

	path, err := board.FindPath(g, board.C(0, 0), board.C(3, 0))
	require.NoError(t, err)
	assert.Equal(t, board.Path{board.C(0, 0), board.C(1, 0), board.C(2, 0), board.C(3, 0)}, path)
}

func TestFindPathDirectionOrder(t *testing.T) {
	// Both Down and Right lead toward the target; Down is tried first.
	g := newGrid(t, 3, 3)
	require.NoError(t, g.Place(board.C(0, 0), 1))

	path, err := board.FindPath(g, board.C(0, 0), board.C(2, 2))
	require.NoError(t, err)
	assert.Equal(t, board.Path{board.C(0, 0), board.C(0, 1), board.C(0, 2), board.C(1, 2), board.C(2, 2)}, path)
}

func TestFindPathDetour(t *testing.T) {
	// Wall in column 2 with a single gap at the bottom.
	g := newGrid(t, 5, 5)
	from, to := board.C(0, 2), board.C(4, 2)
	placeAll(t, g, 0, from, board.C(2, 0), board.C(2, 1), board.C(2, 2), board.C(2, 3))

	path, err := board.FindPath(g, from, to)
	require.NoError(t, err)
	checkPath(t, g, path, from, to)
	assert.Contains(t, path, board.C(2, 4), "path should pass through the gap")
}

func TestFindPathOpenColumnSegment(t *testing.T) {
	g := newGrid(t, 9, 9)
	fillExcept(t, g, board.C(3, 2), board.C(3, 3), board.C(3, 5))

	path, err := board.FindPath(g, board.C(3, 1), board.C(3, 3))
	require.NoError(t, err)
	assert.Equal(t, board.Path{board.C(3, 1), board.C(3, 2), board.C(3, 3)}, path)

	// (3,5) is cut off by the marble at (3,4).
	_, err = board.FindPath(g, board.C(3, 1), board.C(3, 5))
	assert.ErrorIs(t, err, board.ErrNoPath)
}

func TestFindPathBlocked(t *testing.T) {
	g := newGrid(t, 9, 9)
	fillExcept(t, g, board.C(3, 3), board.C(3, 5))

	path, err := board.FindPath(g, board.C(3, 1), board.C(3, 3))
	assert.ErrorIs(t, err, board.ErrNoPath)
	assert.Nil(t, path, "no path on failure")
}

func TestFindPathErrors(t *testing.T) {
	g := newGrid(t, 4, 4)
	require.NoError(t, g.Place(board.C(0, 0), 1))
	require.NoError(t, g.Place(board.C(1, 1), 2))

	testCases := []struct {
		name     string
		from, to board.Coord
		want     error
	}{
		{"destination out of bounds", board.C(0, 0), board.C(4, 0), board.ErrOutOfBounds},
		{"source out of bounds", board.C(-1, 0), board.C(2, 2), board.ErrOutOfBounds},
		{"empty source", board.C(3, 3), board.C(2, 2), board.ErrSourceEmpty},
		{"occupied destination", board.C(0, 0), board.C(1, 1), board.ErrCellOccupied},
		{"same cell", board.C(0, 0), board.C(0, 0), board.ErrCellOccupied},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := board.FindPath(g, tc.from, tc.to)
			assert.ErrorIs(t, err, tc.want, "FindPath(%v, %v)", tc.from, tc.to)
		})
	}
}

func TestFindPathDoesNotMutate(t *testing.T) {
	g := newGrid(t, 6, 6)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 15; i++ {
		c, _ := g.RandomEmpty(rng)
		_ = g.Place(c, board.Color(i%3))
	}
	before := g.Marbles()

	from := before[0].At
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			_, _ = board.FindPath(g, from, board.C(x, y))
		}
	}

	assert.Equal(t, before, g.Marbles(), "FindPath modified the grid")
}

// TestFindPathCompleteness compares FindPath against a breadth-first flood
// fill on random boards: a path must be found exactly when the destination
// is reachable, and every path must be valid.
func TestFindPathCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))

	for trial := 0; trial < 200; trial++ {
		w, h := 3+rng.Intn(7), 3+rng.Intn(7)
		g := newGrid(t, w, h)
		density := rng.Float64() * 0.6
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if rng.Float64() < density {
					_ = g.Place(board.C(x, y), board.Color(rng.Intn(4)))
				}
			}
		}
		from, ok := g.RandomEmpty(rng)
		if !ok {
			continue
		}
		_ = g.Place(from, 0)

		reachable := make(map[board.Coord]bool)
		for _, c := range board.Reachable(g, from) {
			reachable[c] = true
		}

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				to := board.C(x, y)
				if g.Occupied(to) {
					continue
				}
				path, err := board.FindPath(g, from, to)
				if reachable[to] {
					require.NoError(t, err, "trial %d: %v reachable from %v", trial, to, from)
					checkPath(t, g, path, from, to)
				} else {
					require.ErrorIs(t, err, board.ErrNoPath, "trial %d: %v unreachable from %v, got path %v", trial, to, from, path)
				}
			}
		}
	}
}

func TestReachable(t *testing.T) {
	g := newGrid(t, 3, 3)
	// Marble at (0,0) walled in by (1,0) and (0,1), except nothing else.
	placeAll(t, g, 1, board.C(0, 0), board.C(1, 0), board.C(0, 1))

	assert.Empty(t, board.Reachable(g, board.C(0, 0)), "enclosed marble reaches nothing")

	want := []board.Coord{board.C(2, 0), board.C(1, 1), board.C(2, 1), board.C(0, 2), board.C(1, 2), board.C(2, 2)}
	assert.Equal(t, want, board.Reachable(g, board.C(1, 0)))

	assert.Nil(t, board.Reachable(g, board.C(2, 2)), "empty cell reaches nothing")
}
