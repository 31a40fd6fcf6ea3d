package mazesearch

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Generator selects the algorithm used to carve a maze. Every generator
// produces a perfect maze: a spanning tree over all cells.
type Generator int

const (
	// Backtracker carves with a randomized depth-first walk, giving long
	// winding corridors.
	Backtracker Generator = iota
	// Kruskal joins random adjacent cells from different disjoint sets,
	// giving many short dead ends.
	Kruskal
)

func (g Generator) String() string {
	switch g {
	case Backtracker:
		return "backtracker"
	case Kruskal:
		return "kruskal"
	}
	return "unknown"
}

// MarshalText lets a Generator be used with flag.TextVar and encoding/json.
func (g Generator) MarshalText() ([]byte, error) {
	if g != Backtracker && g != Kruskal {
		return nil, errors.Wrapf(ErrUnknownGenerator, "%d", int(g))
	}
	return []byte(g.String()), nil
}

func (g *Generator) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "backtracker", "dfs":
		*g = Backtracker
	case "kruskal":
		*g = Kruskal
	default:
		return errors.Wrapf(ErrUnknownGenerator, "%q", text)
	}
	return nil
}

type generateOptions struct {
	seed      int64
	seeded    bool
	generator Generator
}

// GenerateOption configures Generate.
type GenerateOption func(*generateOptions)

// WithSeed makes generation deterministic: the same seed, size and generator
// always carve the same maze.
func WithSeed(seed int64) GenerateOption {
	return func(options *generateOptions) {
		options.seed = seed
		options.seeded = true
	}
}

// WithGenerator selects the carving algorithm. The default is Backtracker.
func WithGenerator(generator Generator) GenerateOption {
	return func(options *generateOptions) { options.generator = generator }
}

// Generate carves a perfect maze of cols x rows cells. Without WithSeed the
// seed is taken from the clock; the seed used is available from Maze.Seed so
// the maze can be carved again.
func Generate(cols, rows int, options ...GenerateOption) (*Maze, error) {
	generateOpts := generateOptions{generator: Backtracker}
	for _, option := range options {
		option(&generateOpts)
	}
	if !generateOpts.seeded {
		generateOpts.seed = time.Now().UnixNano()
	}

	m, err := allocateMaze(cols, rows)
	if err != nil {
		return nil, err
	}
	m.seed = generateOpts.seed
	m.generator = generateOpts.generator

	rng := rand.New(rand.NewSource(generateOpts.seed))
	switch generateOpts.generator {
	case Backtracker:
		m.carveBacktracker(rng)
	case Kruskal:
		m.carveKruskal(rng)
	default:
		return nil, errors.Wrapf(ErrUnknownGenerator, "%d", int(generateOpts.generator))
	}
	return m, nil
}

// carveBacktracker keeps a stack of visited cells and always carves from the
// top of the stack into a uniformly random unvisited neighbour, popping cells
// that have none left.
func (m *Maze) carveBacktracker(rng *rand.Rand) {
	visited := make([]bool, len(m.grid))
	start := Cell{X: rng.Intn(m.cols), Y: rng.Intn(m.rows)}
	visited[m.index(start)] = true
	stack := []Cell{start}

	var candidates [4]Direction
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		unvisited := candidates[:0]
		for _, d := range Directions {
			next := current.Step(d)
			if m.InBounds(next) && !visited[m.index(next)] {
				unvisited = append(unvisited, d)
			}
		}
		if len(unvisited) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := unvisited[rng.Intn(len(unvisited))]
		next := current.Step(d)
		m.carve(current, d)
		visited[m.index(next)] = true
		stack = append(stack, next)
	}
}

// wallCandidate is a wall between a cell and its east or south neighbour.
type wallCandidate struct {
	cell      Cell
	direction Direction
}

// carveKruskal shuffles every interior wall and removes each one that
// separates two cells not yet connected.
func (m *Maze) carveKruskal(rng *rand.Rand) {
	walls := make([]wallCandidate, 0, (m.cols-1)*m.rows+(m.rows-1)*m.cols)
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			cell := Cell{X: x, Y: y}
			if x < m.cols-1 {
				walls = append(walls, wallCandidate{cell: cell, direction: East})
			}
			if y < m.rows-1 {
				walls = append(walls, wallCandidate{cell: cell, direction: South})
			}
		}
	}
	rng.Shuffle(len(walls), func(i, j int) { walls[i], walls[j] = walls[j], walls[i] })

	sets := newDisjointSets(len(m.grid))
	remaining := len(m.grid) - 1
	for _, wall := range walls {
		if remaining == 0 {
			break
		}
		a := m.index(wall.cell)
		b := m.index(wall.cell.Step(wall.direction))
		if !sets.union(a, b) {
			continue
		}
		m.carve(wall.cell, wall.direction)
		remaining--
	}
}
