package board_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

func newGrid(t *testing.T, w, h int) *board.Grid {
	t.Helper()
	g, err := board.NewGrid(w, h)
	require.NoError(t, err, "NewGrid(%d, %d)", w, h)
	return g
}

func TestNewGridInvalid(t *testing.T) {
	testCases := []struct {
		w, h int
	}{
		{0, 9},
		{9, 0},
		{-1, 5},
		{5, -3},
	}

	for _, tc := range testCases {
		_, err := board.NewGrid(tc.w, tc.h)
		assert.ErrorIs(t, err, board.ErrInvalidConfiguration, "NewGrid(%d, %d)", tc.w, tc.h)
	}
}

func TestGridPlaceAndRemove(t *testing.T) {
	g := newGrid(t, 3, 3)

	require.NoError(t, g.Place(board.C(1, 1), 2))
	color, ok := g.Occupant(board.C(1, 1))
	assert.True(t, ok)
	assert.Equal(t, board.Color(2), color)
	assert.Equal(t, 1, g.Count())

	assert.ErrorIs(t, g.Place(board.C(1, 1), 3), board.ErrCellOccupied)
	color, _ = g.Occupant(board.C(1, 1))
	assert.Equal(t, board.Color(2), color, "failed Place must not change the cell")

	assert.ErrorIs(t, g.Place(board.C(3, 0), 1), board.ErrOutOfBounds)

	color, ok = g.Remove(board.C(1, 1))
	assert.True(t, ok)
	assert.Equal(t, board.Color(2), color)

	_, ok = g.Remove(board.C(1, 1))
	assert.False(t, ok, "Remove on empty cell should report false")
	assert.True(t, g.IsEmpty())
}

func TestGridMove(t *testing.T) {
	g := newGrid(t, 4, 4)
	from, to := board.C(0, 0), board.C(3, 3)
	require.NoError(t, g.Place(from, 4))

	require.NoError(t, g.Move(from, to))
	assert.False(t, g.Occupied(from), "source should be empty after move")
	color, ok := g.Occupant(to)
	assert.True(t, ok)
	assert.Equal(t, board.Color(4), color)
	assert.Equal(t, 1, g.Count())

	testCases := []struct {
		name     string
		from, to board.Coord
		want     error
	}{
		{"empty source", board.C(1, 1), board.C(2, 2), board.ErrSourceEmpty},
		{"occupied destination", to, to, board.ErrCellOccupied},
		{"out of bounds", to, board.C(4, 0), board.ErrOutOfBounds},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, g.Move(tc.from, tc.to), tc.want)
			assert.Equal(t, 1, g.Count(), "failed Move must not change the grid")
		})
	}
}

func TestGridFull(t *testing.T) {
	g := newGrid(t, 2, 2)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 4; i++ {
		require.False(t, g.IsFull(), "grid full after %d placements", i)
		c, ok := g.RandomEmpty(rng)
		require.True(t, ok, "RandomEmpty with %d marbles", g.Count())
		require.NoError(t, g.Place(c, board.Color(i)), "RandomEmpty returned %v", c)
	}

	assert.True(t, g.IsFull())
	_, ok := g.RandomEmpty(rng)
	assert.False(t, ok, "RandomEmpty on a full grid")
}

func TestGridRandomEmptyCoversAllCells(t *testing.T) {
	g := newGrid(t, 3, 2)
	require.NoError(t, g.Place(board.C(0, 0), 0))
	rng := rand.New(rand.NewSource(7))

	seen := make(map[board.Coord]int)
	for i := 0; i < 2000; i++ {
		c, ok := g.RandomEmpty(rng)
		require.True(t, ok)
		require.False(t, g.Occupied(c), "RandomEmpty returned occupied cell %v", c)
		seen[c]++
	}

	assert.Len(t, seen, 5, "every empty cell should be drawn")
	for c, n := range seen {
		assert.GreaterOrEqual(t, n, 250, "cell %v drawn too rarely", c)
	}
}

// TestGridOccupancyInvariant runs random place/remove/move sequences and checks
// that the count stays within capacity and every marble stays in bounds.
func TestGridOccupancyInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := newGrid(t, 5, 4)

	randomCoord := func() board.Coord {
		// Occasionally out of bounds
		return board.C(rng.Intn(7)-1, rng.Intn(6)-1)
	}

	for i := 0; i < 5000; i++ {
		switch rng.Intn(3) {
		case 0:
			_ = g.Place(randomCoord(), board.Color(rng.Intn(5)))
		case 1:
			g.Remove(randomCoord())
		case 2:
			_ = g.Move(randomCoord(), randomCoord())
		}

		require.LessOrEqual(t, g.Count(), g.Capacity(), "step %d", i)
		require.Equal(t, g.Count() == g.Capacity(), g.IsFull(), "step %d: IsFull", i)
		marbles := g.Marbles()
		require.Len(t, marbles, g.Count(), "step %d", i)
		for _, m := range marbles {
			require.True(t, g.InBounds(m.At), "step %d: marble out of bounds at %v", i, m.At)
		}
	}
}

func TestGridMarblesOrder(t *testing.T) {
	g := newGrid(t, 3, 3)
	for _, c := range []board.Coord{board.C(2, 2), board.C(0, 1), board.C(1, 0), board.C(0, 0)} {
		require.NoError(t, g.Place(c, 1))
	}

	var got []board.Coord
	for _, m := range g.Marbles() {
		got = append(got, m.At)
	}
	assert.Equal(t, []board.Coord{board.C(0, 0), board.C(1, 0), board.C(0, 1), board.C(2, 2)}, got)
}

func TestGridClone(t *testing.T) {
	g := newGrid(t, 3, 3)
	require.NoError(t, g.Place(board.C(1, 1), 1))

	clone := g.Clone()
	require.NoError(t, clone.Place(board.C(0, 0), 2))
	clone.Remove(board.C(1, 1))

	assert.Equal(t, 1, g.Count())
	assert.True(t, g.Occupied(board.C(1, 1)), "modifying the clone changed the original")
	assert.False(t, g.Occupied(board.C(0, 0)), "modifying the clone changed the original")
}
