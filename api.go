package mazesearch

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Graph is generic over node type N. Every edge costs 1.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	Contains(node NodeType) bool
	// Neighbors returns the nodes one edge away, in a fixed order.
	Neighbors(node NodeType) []NodeType
}

// PriorityFunc returns the frontier key of node reached with cost gScore.
// Lower keys are expanded first.
type PriorityFunc[NodeType comparable] func(gScore int, node NodeType) int

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) int

// Result contains the outcome of a search run to completion
type Result[NodeType comparable] struct {
	Path     []NodeType
	Cost     int
	Expanded int
	Steps    int
	Found    bool
}

// Options defines parameters for batch comparisons.
type Options struct {
	NumberOfWorkers int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines run comparisons.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// NewUniformCost creates a Dijkstra-style stepper: the frontier is ordered by
// g-score alone.
func NewUniformCost[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
) (*Stepper[NodeType], error) {
	return NewStepper(graph, startNode, goalNode, func(gScore int, _ NodeType) int {
		return gScore
	})
}

// NewHeuristic creates an A*-style stepper ordered by g-score plus the
// heuristic estimate to the goal. The heuristic must not overestimate for
// the returned path to be a shortest one.
func NewHeuristic[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
) (*Stepper[NodeType], error) {
	if heuristic == nil {
		return nil, ErrNilPriority
	}
	return NewStepper(graph, startNode, goalNode, func(gScore int, node NodeType) int {
		return gScore + heuristic(node, goalNode)
	})
}

// Manhattan is the grid distance |dx|+|dy|. On a maze without diagonal moves
// it never overestimates and is consistent.
func Manhattan(a, b Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// NewMazeHeuristic creates an A* stepper over m guided by Manhattan distance.
func NewMazeHeuristic(m *Maze, start, goal Cell) (*Stepper[Cell], error) {
	if m == nil {
		return nil, ErrNilGraph
	}
	return NewHeuristic[Cell](m, start, goal, Manhattan)
}

// Strategy names one of the two search algorithms.
type Strategy int

const (
	UniformCost Strategy = iota
	AStar
)

func (s Strategy) String() string {
	switch s {
	case UniformCost:
		return "dijkstra"
	case AStar:
		return "astar"
	}
	return "unknown"
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "dijkstra", "uniform-cost", "ucs":
		*s = UniformCost
	case "astar", "a*":
		*s = AStar
	default:
		return errors.Wrapf(ErrUnknownStrategy, "%q", text)
	}
	return nil
}

// NewMazeStepper builds the stepper for strategy over m.
func NewMazeStepper(strategy Strategy, m *Maze, start, goal Cell) (*Stepper[Cell], error) {
	if m == nil {
		return nil, ErrNilGraph
	}
	switch strategy {
	case UniformCost:
		return NewUniformCost[Cell](m, start, goal)
	case AStar:
		return NewMazeHeuristic(m, start, goal)
	}
	return nil, errors.Wrapf(ErrUnknownStrategy, "%d", int(strategy))
}

// Search advances stepper until it finishes. A missing path is reported
// through Result.Found, not as an error; errors come from ctx or from a
// broken predecessor chain.
func Search[NodeType comparable](contextObject context.Context, stepper *Stepper[NodeType]) (Result[NodeType], error) {
	for !stepper.Finished() {
		if err := contextObject.Err(); err != nil {
			return Result[NodeType]{Expanded: stepper.Expanded(), Steps: stepper.Steps()}, err
		}
		stepper.Advance()
	}

	result := Result[NodeType]{
		Expanded: stepper.Expanded(),
		Steps:    stepper.Steps(),
		Found:    stepper.Found(),
	}
	path, err := stepper.ReconstructPath()
	if err != nil {
		return result, err
	}
	result.Path = path
	if result.Found {
		result.Cost, _ = stepper.GScore(stepper.Goal())
	}
	return result, nil
}

// Run is one strategy's outcome in a Comparison.
type Run struct {
	Strategy Strategy
	Result   Result[Cell]
	Final    StepSnapshot[Cell]
	Elapsed  time.Duration
}

// Comparison holds both strategies run over the same maze.
type Comparison struct {
	Maze        *Maze
	Start, Goal Cell
	UniformCost Run
	AStar       Run
}

// Compare runs uniform-cost and heuristic search from start to goal over m.
func Compare(contextObject context.Context, m *Maze, start, goal Cell) (Comparison, error) {
	comparison := Comparison{Maze: m, Start: start, Goal: goal}
	for _, strategy := range []Strategy{UniformCost, AStar} {
		run, err := runStrategy(contextObject, strategy, m, start, goal)
		if err != nil {
			return comparison, errors.Wrap(err, strategy.String())
		}
		if strategy == UniformCost {
			comparison.UniformCost = run
		} else {
			comparison.AStar = run
		}
	}
	return comparison, nil
}

func runStrategy(contextObject context.Context, strategy Strategy, m *Maze, start, goal Cell) (Run, error) {
	stepper, err := NewMazeStepper(strategy, m, start, goal)
	if err != nil {
		return Run{}, err
	}
	began := time.Now()
	result, err := Search(contextObject, stepper)
	elapsed := time.Since(began)
	if err != nil {
		return Run{}, err
	}
	final, err := stepper.Snapshot()
	if err != nil {
		return Run{}, err
	}
	return Run{Strategy: strategy, Result: result, Final: final, Elapsed: elapsed}, nil
}
