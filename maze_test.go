package mazesearch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromMasks_Connected(t *testing.T) {
	m, err := FromMasks(2, 1, []Direction{East, West})
	require.NoError(t, err)
	require.Equal(t, 2, m.Cols())
	require.Equal(t, 1, m.Rows())
	require.Equal(t, 1, m.EdgeCount())
	require.Equal(t, []Cell{{X: 1, Y: 0}}, m.Passages(Cell{X: 0, Y: 0}))
	require.Equal(t, []Cell{{X: 0, Y: 0}}, m.Neighbors(Cell{X: 1, Y: 0}))
	require.True(t, m.Open(Cell{}, East))
	require.False(t, m.Open(Cell{}, South))
}

func TestFromMasks_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		cols  int
		rows  int
		masks []Direction
		want  error
	}{
		{"missing opposite bit", 2, 1, []Direction{East, 0}, ErrInconsistentPassages},
		{"opens off the grid", 2, 1, []Direction{West, East}, ErrInconsistentPassages},
		{"stray high bit", 1, 1, []Direction{0x10}, ErrInconsistentPassages},
		{"wrong mask count", 2, 2, []Direction{0, 0, 0}, ErrBadDimensions},
		{"zero columns", 0, 3, nil, ErrBadDimensions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromMasks(tc.cols, tc.rows, tc.masks)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMaze_OutOfBoundsQueries(t *testing.T) {
	m, err := FromMasks(1, 1, []Direction{0})
	require.NoError(t, err)
	require.False(t, m.Contains(Cell{X: 1, Y: 0}))
	require.Zero(t, m.Mask(Cell{X: -1, Y: 0}))
	require.Empty(t, m.Passages(Cell{X: 5, Y: 5}))
}

func TestMaze_String(t *testing.T) {
	m, err := FromMasks(2, 1, []Direction{East, West})
	require.NoError(t, err)
	require.Equal(t, "+--+--+\n|     |\n+--+--+\n", m.String())

	split, err := FromMasks(1, 2, []Direction{0, 0})
	require.NoError(t, err)
	require.Equal(t, "+--+\n|  |\n+--+\n|  |\n+--+\n", split.String())
}

func TestMaze_Corners(t *testing.T) {
	m, err := FromMasks(3, 2, make([]Direction, 6))
	require.NoError(t, err)
	start, goal := m.Corners()
	require.Equal(t, Cell{X: 0, Y: 0}, start)
	require.Equal(t, Cell{X: 2, Y: 1}, goal)
}

func TestDirection(t *testing.T) {
	for _, d := range Directions {
		require.Equal(t, d, d.Opposite().Opposite())
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		require.Equal(t, 0, dx+ox)
		require.Equal(t, 0, dy+oy)
	}
	require.Equal(t, "NS", (North | South).String())
	require.Equal(t, "NESW", (West | East | South | North).String())
	require.Equal(t, "-", Direction(0).String())
	require.Equal(t, Cell{X: 2, Y: 2}, Cell{X: 2, Y: 3}.Step(North))
	require.Equal(t, "(4,1)", Cell{X: 4, Y: 1}.String())
}
