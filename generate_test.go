package mazesearch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// GenerateSuite checks the spanning-tree guarantees of every generator.
type GenerateSuite struct {
	suite.Suite
	sizes [][2]int
}

func (s *GenerateSuite) SetupTest() {
	s.sizes = [][2]int{{1, 1}, {1, 6}, {6, 1}, {2, 2}, {7, 5}, {31, 21}}
}

// reachable counts the cells reachable from the top-left corner.
func reachable(m *Maze) int {
	seen := map[Cell]bool{{}: true}
	queue := []Cell{{}}
	for qi := 0; qi < len(queue); qi++ {
		for _, next := range m.Passages(queue[qi]) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen)
}

func (s *GenerateSuite) TestSpanningTree() {
	for _, generator := range []Generator{Backtracker, Kruskal} {
		for _, size := range s.sizes {
			for seed := int64(1); seed <= 20; seed++ {
				name := fmt.Sprintf("%v %dx%d seed=%d", generator, size[0], size[1], seed)
				m, err := Generate(size[0], size[1], WithSeed(seed), WithGenerator(generator))
				require.NoError(s.T(), err, name)

				cells := size[0] * size[1]
				require.Equal(s.T(), cells-1, m.EdgeCount(), name)
				require.Equal(s.T(), cells, reachable(m), name)

				// FromMasks validates passage consistency.
				_, err = FromMasks(m.Cols(), m.Rows(), m.grid)
				require.NoError(s.T(), err, "%s\n%s", name, m)
			}
		}
	}
}

func (s *GenerateSuite) TestSingleCellHasNoPassages() {
	for _, generator := range []Generator{Backtracker, Kruskal} {
		m, err := Generate(1, 1, WithSeed(3), WithGenerator(generator))
		require.NoError(s.T(), err)
		require.Zero(s.T(), m.Mask(Cell{}))
		require.Zero(s.T(), m.EdgeCount())
	}
}

func (s *GenerateSuite) TestDeterministic() {
	for _, generator := range []Generator{Backtracker, Kruskal} {
		a, err := Generate(31, 21, WithSeed(42), WithGenerator(generator))
		require.NoError(s.T(), err)
		b, err := Generate(31, 21, WithSeed(42), WithGenerator(generator))
		require.NoError(s.T(), err)
		c, err := Generate(31, 21, WithSeed(43), WithGenerator(generator))
		require.NoError(s.T(), err)

		require.Equal(s.T(), a.grid, b.grid)
		require.NotEqual(s.T(), a.grid, c.grid)
		require.Equal(s.T(), int64(42), a.Seed())
		require.Equal(s.T(), generator, a.Generator())
	}
}

func (s *GenerateSuite) TestUnseededRecordsSeed() {
	m, err := Generate(8, 8)
	require.NoError(s.T(), err)
	require.NotZero(s.T(), m.Seed())
	require.Equal(s.T(), Backtracker, m.Generator())

	replay, err := Generate(8, 8, WithSeed(m.Seed()))
	require.NoError(s.T(), err)
	require.Equal(s.T(), m.grid, replay.grid)
}

func (s *GenerateSuite) TestBadInput() {
	_, err := Generate(0, 5)
	require.ErrorIs(s.T(), err, ErrBadDimensions)
	_, err = Generate(5, -1)
	require.ErrorIs(s.T(), err, ErrBadDimensions)
	_, err = Generate(5, 5, WithGenerator(Generator(9)))
	require.ErrorIs(s.T(), err, ErrUnknownGenerator)
}

func TestGenerateSuite(t *testing.T) {
	suite.Run(t, new(GenerateSuite))
}

func TestGenerator_Text(t *testing.T) {
	var g Generator
	require.NoError(t, g.UnmarshalText([]byte("Kruskal")))
	require.Equal(t, Kruskal, g)
	require.NoError(t, g.UnmarshalText([]byte("dfs")))
	require.Equal(t, Backtracker, g)
	require.ErrorIs(t, g.UnmarshalText([]byte("prim")), ErrUnknownGenerator)

	text, err := Kruskal.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "kruskal", string(text))
	_, err = Generator(7).MarshalText()
	require.ErrorIs(t, err, ErrUnknownGenerator)
}
