package mazesearch

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Cell is a maze coordinate in [0, cols) x [0, rows). Y grows southwards.
type Cell struct {
	X, Y int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Step returns the cell one unit away in direction d. The result may lie
// outside the maze.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is a 4-bit passage mask. A single bit names one direction.
type Direction uint8

const (
	North Direction = 1 << iota
	East
	South
	West

	allDirections = North | East | South | West
)

// Directions lists the single directions in canonical iteration order.
// Passages and both generators enumerate neighbours in this order, which
// keeps searches over a given maze reproducible.
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the direction facing d. Only defined for single bits.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	}
	return 0
}

// Delta returns the coordinate offset of a single direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// String lists the set bits in N, E, S, W order, or "-" for a closed cell.
func (d Direction) String() string {
	if d&allDirections == 0 {
		return "-"
	}
	var sb strings.Builder
	for i, name := range "NESW" {
		if d&Directions[i] != 0 {
			sb.WriteRune(name)
		}
	}
	return sb.String()
}

// Maze is a rectangular grid of cells, each holding the mask of directions in
// which a passage is open. A Maze is immutable once built, so it may be read
// by several searches at the same time.
type Maze struct {
	cols, rows int
	grid       []Direction
	seed       int64
	generator  Generator
}

// allocateMaze returns a maze with every wall standing.
func allocateMaze(cols, rows int) (*Maze, error) {
	if cols < 1 || rows < 1 {
		return nil, errors.Wrapf(ErrBadDimensions, "got %dx%d", cols, rows)
	}
	cellCount := cols * rows
	if cellCount/cols != rows {
		return nil, errors.Wrapf(ErrBadDimensions, "%dx%d overflows", cols, rows)
	}
	return &Maze{
		cols: cols,
		rows: rows,
		grid: make([]Direction, cellCount),
	}, nil
}

// FromMasks builds a maze from explicit passage masks laid out row-major
// (index y*cols+x). Every open bit must lead to an in-bounds cell carrying
// the opposite bit.
func FromMasks(cols, rows int, masks []Direction) (*Maze, error) {
	m, err := allocateMaze(cols, rows)
	if err != nil {
		return nil, err
	}
	if len(masks) != len(m.grid) {
		return nil, errors.Wrapf(ErrBadDimensions, "%dx%d maze needs %d masks, got %d",
			cols, rows, len(m.grid), len(masks))
	}
	copy(m.grid, masks)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell := Cell{X: x, Y: y}
			mask := m.Mask(cell)
			if mask&^allDirections != 0 {
				return nil, errors.Wrapf(ErrInconsistentPassages, "cell %v has mask %#x", cell, uint8(mask))
			}
			for _, d := range Directions {
				if mask&d == 0 {
					continue
				}
				next := cell.Step(d)
				if !m.InBounds(next) {
					return nil, errors.Wrapf(ErrInconsistentPassages, "cell %v opens %v off the grid", cell, d)
				}
				if !m.Open(next, d.Opposite()) {
					return nil, errors.Wrapf(ErrInconsistentPassages, "cell %v opens %v but %v does not open %v",
						cell, d, next, d.Opposite())
				}
			}
		}
	}
	return m, nil
}

func (m *Maze) Cols() int { return m.cols }
func (m *Maze) Rows() int { return m.rows }

// Seed returns the random seed the maze was carved with. Mazes built by
// FromMasks report 0.
func (m *Maze) Seed() int64 { return m.seed }

// Generator returns the carving algorithm used to build the maze.
func (m *Maze) Generator() Generator { return m.generator }

func (m *Maze) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < m.cols && c.Y >= 0 && c.Y < m.rows
}

// Contains reports whether c is a cell of the maze. It lets a Maze serve as a
// search Graph.
func (m *Maze) Contains(c Cell) bool { return m.InBounds(c) }

func (m *Maze) index(c Cell) int { return c.Y*m.cols + c.X }

// Mask returns the passage mask of c, or 0 when c is out of bounds.
func (m *Maze) Mask(c Cell) Direction {
	if !m.InBounds(c) {
		return 0
	}
	return m.grid[m.index(c)]
}

// Open reports whether c has a passage in direction d.
func (m *Maze) Open(c Cell, d Direction) bool {
	return m.Mask(c)&d != 0
}

// Passages returns the cells reachable from c in one move, in N, E, S, W
// order.
func (m *Maze) Passages(c Cell) []Cell {
	mask := m.Mask(c)
	cells := make([]Cell, 0, 4)
	for _, d := range Directions {
		if mask&d != 0 {
			cells = append(cells, c.Step(d))
		}
	}
	return cells
}

// Neighbors implements Graph.
func (m *Maze) Neighbors(c Cell) []Cell { return m.Passages(c) }

// EdgeCount returns the number of carved passages. A perfect maze has
// cols*rows-1 of them.
func (m *Maze) EdgeCount() int {
	edges := 0
	for _, mask := range m.grid {
		if mask&East != 0 {
			edges++
		}
		if mask&South != 0 {
			edges++
		}
	}
	return edges
}

// Corners returns the top-left and bottom-right cells, the start and goal
// used by the visualizer.
func (m *Maze) Corners() (start, goal Cell) {
	return Cell{}, Cell{X: m.cols - 1, Y: m.rows - 1}
}

// carve opens the wall between c and its neighbour in direction d on both
// sides. It reports false when the neighbour is off the grid.
func (m *Maze) carve(c Cell, d Direction) bool {
	next := c.Step(d)
	if !m.InBounds(c) || !m.InBounds(next) {
		return false
	}
	m.grid[m.index(c)] |= d
	m.grid[m.index(next)] |= d.Opposite()
	return true
}

// String draws the maze with ASCII walls, for logs and test failures.
func (m *Maze) String() string {
	var sb strings.Builder
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			sb.WriteByte('+')
			if m.Open(Cell{X: x, Y: y}, North) {
				sb.WriteString("  ")
			} else {
				sb.WriteString("--")
			}
		}
		sb.WriteString("+\n")
		for x := 0; x < m.cols; x++ {
			if m.Open(Cell{X: x, Y: y}, West) {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('|')
			}
			sb.WriteString("  ")
		}
		if m.Open(Cell{X: m.cols - 1, Y: y}, East) {
			sb.WriteString(" \n")
		} else {
			sb.WriteString("|\n")
		}
	}
	for x := 0; x < m.cols; x++ {
		sb.WriteByte('+')
		if m.Open(Cell{X: x, Y: m.rows - 1}, South) {
			sb.WriteString("  ")
		} else {
			sb.WriteString("--")
		}
	}
	sb.WriteString("+\n")
	return sb.String()
}
