package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/marbles/internal/games/marbles/board"
)

// placeAll puts color at every coordinate.
func placeAll(t *testing.T, g *board.Grid, color board.Color, coords ...board.Coord) {
	t.Helper()
	for _, c := range coords {
		require.NoError(t, g.Place(c, color))
	}
}

func row(y int, xs ...int) []board.Coord {
	coords := make([]board.Coord, len(xs))
	for i, x := range xs {
		coords[i] = board.C(x, y)
	}
	return coords
}

func column(x int, ys ...int) []board.Coord {
	coords := make([]board.Coord, len(ys))
	for i, y := range ys {
		coords[i] = board.C(x, y)
	}
	return coords
}

func TestResolveLinesHorizontalFive(t *testing.T) {
	g := newGrid(t, 9, 9)
	line := row(4, 0, 1, 2, 3, 4)
	placeAll(t, g, 2, line...)

	removal := board.ResolveLines(g, board.C(2, 4), 5)

	assert.Equal(t, board.Color(2), removal.Color)
	assert.Equal(t, line, removal.Coords)
	assert.True(t, g.IsEmpty(), "grid should be empty after removal, has %d marbles", g.Count())
}

func TestFindLines(t *testing.T) {
	testCases := []struct {
		name    string
		setup   func(g *board.Grid)
		trigger board.Coord
		want    []board.Coord
	}{
		{
			name: "short run untouched",
			setup: func(g *board.Grid) {
				placeAll(t, g, 1, row(0, 0, 1, 2, 3)...)
			},
			trigger: board.C(3, 0),
		},
		{
			name: "maximal run longer than threshold",
			setup: func(g *board.Grid) {
				placeAll(t, g, 1, row(3, 1, 2, 3, 4, 5, 6, 7)...)
			},
			trigger: board.C(1, 3),
			want:    row(3, 1, 2, 3, 4, 5, 6, 7),
		},
		{
			name: "run stops at other color",
			setup: func(g *board.Grid) {
				placeAll(t, g, 1, row(2, 0, 1, 2, 3, 4)...)
				placeAll(t, g, 3, board.C(5, 2))
				placeAll(t, g, 1, board.C(6, 2))
			},
			trigger: board.C(4, 2),
			want:    row(2, 0, 1, 2, 3, 4),
		},
		{
			name: "run stops at gap",
			setup: func(g *board.Grid) {
				placeAll(t, g, 1, row(2, 0, 1, 2, 3)...)
				placeAll(t, g, 1, row(2, 5, 6, 7, 8)...)
			},
			trigger: board.C(2, 2),
		},
		{
			name: "vertical run",
			setup: func(g *board.Grid) {
				placeAll(t, g, 4, column(8, 4, 5, 6, 7, 8)...)
			},
			trigger: board.C(8, 8),
			want:    column(8, 4, 5, 6, 7, 8),
		},
		{
			name: "both axes merged",
			setup: func(g *board.Grid) {
				placeAll(t, g, 0, row(4, 2, 3, 4, 5, 6)...)
				placeAll(t, g, 0, column(4, 2, 3, 5, 6)...)
			},
			trigger: board.C(4, 4),
			want: []board.Coord{
				board.C(4, 2), board.C(4, 3),
				board.C(2, 4), board.C(3, 4), board.C(4, 4), board.C(5, 4), board.C(6, 4),
				board.C(4, 5), board.C(4, 6),
			},
		},
		{
			name: "only qualifying axis removed",
			setup: func(g *board.Grid) {
				placeAll(t, g, 0, row(4, 0, 1, 2, 3, 4)...)
				placeAll(t, g, 0, column(2, 3, 5)...)
			},
			trigger: board.C(2, 4),
			want:    row(4, 0, 1, 2, 3, 4),
		},
		{
			name:    "empty trigger",
			setup:   func(g *board.Grid) {},
			trigger: board.C(0, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(t, 9, 9)
			tc.setup(g)
			before := g.Count()

			removal := board.FindLines(g, tc.trigger, 5)
			if tc.want == nil {
				assert.True(t, removal.Empty(), "FindLines = %v, want nothing", removal.Coords)
			} else {
				assert.Equal(t, tc.want, removal.Coords)
			}
			assert.Equal(t, before, g.Count(), "FindLines must not modify the grid")
		})
	}
}

func TestResolveLinesNoMatchLeavesGrid(t *testing.T) {
	g := newGrid(t, 9, 9)
	placeAll(t, g, 1, row(0, 0, 1, 2, 3)...)

	removal := board.ResolveLines(g, board.C(0, 0), 5)
	assert.True(t, removal.Empty(), "expected empty removal, got %v", removal.Coords)
	assert.Equal(t, 4, g.Count())
}

func TestResolveLinesLeavesOtherMarbles(t *testing.T) {
	g := newGrid(t, 9, 9)
	placeAll(t, g, 1, column(0, 0, 1, 2, 3, 4)...)
	placeAll(t, g, 2, board.C(0, 5), board.C(1, 2))

	removal := board.ResolveLines(g, board.C(0, 0), 5)
	require.Len(t, removal.Coords, 5)
	assert.Equal(t, []board.Marble{
		{At: board.C(1, 2), Color: 2},
		{At: board.C(0, 5), Color: 2},
	}, g.Marbles(), "unrelated marbles should remain")
}

func TestResolveLinesCustomLength(t *testing.T) {
	g := newGrid(t, 7, 7)
	placeAll(t, g, 3, row(6, 4, 5, 6)...)

	assert.True(t, board.ResolveLines(g, board.C(6, 6), 4).Empty(), "three in a row should not clear with length 4")
	assert.Len(t, board.ResolveLines(g, board.C(6, 6), 3).Coords, 3, "three in a row should clear with length 3")
}
