package mazesearch

import (
	"github.com/pkg/errors"

	"github.com/pdrpinto/mazesearch/internal"
)

// State is the lifecycle of a Stepper.
type State int

const (
	NotStarted State = iota
	Running
	FinishedFound
	FinishedNotFound
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case FinishedFound:
		return "found"
	case FinishedNotFound:
		return "not-found"
	}
	return "unknown"
}

// StepSnapshot exposes the per-iteration state of the search. Open and
// Closed are copies; the caller may keep them.
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	Open      map[NodeType]bool
	Closed    map[NodeType]bool
	State     State
	Done      bool
	Found     bool
	Path      []NodeType
	StepIndex int
	Expanded  int
}

// Stepper is a single-source shortest-path search that advances one node
// expansion per call. The priority function is the only difference between
// uniform-cost and heuristic search; all bookkeeping lives here.
//
// A Stepper is not safe for concurrent use. It holds no goroutines or other
// resources and may be dropped at any point between steps.
type Stepper[NodeType comparable] struct {
	graph    Graph[NodeType]
	start    NodeType
	goal     NodeType
	priority PriorityFunc[NodeType]

	openSet   *PriorityQueue[NodeType]
	openNodes map[NodeType]bool
	closedSet map[NodeType]bool
	cameFrom  map[NodeType]NodeType
	gScore    map[NodeType]int

	current   NodeType
	stepCount int
	expanded  int
	state     State
}

// NewStepper creates a search from start to goal over graph, ordering the
// frontier by priority(g, node). Both endpoints must be in the graph.
func NewStepper[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	priority PriorityFunc[NodeType],
) (*Stepper[NodeType], error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	if priority == nil {
		return nil, ErrNilPriority
	}
	if !graph.Contains(startNode) {
		return nil, errors.Wrapf(ErrOutOfBounds, "start %v", startNode)
	}
	if !graph.Contains(goalNode) {
		return nil, errors.Wrapf(ErrOutOfBounds, "goal %v", goalNode)
	}

	s := &Stepper[NodeType]{
		graph:     graph,
		start:     startNode,
		goal:      goalNode,
		priority:  priority,
		openSet:   NewPriorityQueue[NodeType](),
		openNodes: make(map[NodeType]bool),
		closedSet: make(map[NodeType]bool),
		cameFrom:  make(map[NodeType]NodeType),
		gScore:    map[NodeType]int{startNode: 0},
		current:   startNode,
	}
	s.openSet.Push(startNode, priority(0, startNode))
	s.openNodes[startNode] = true
	return s, nil
}

func (s *Stepper[NodeType]) Start() NodeType { return s.start }
func (s *Stepper[NodeType]) Goal() NodeType  { return s.goal }
func (s *Stepper[NodeType]) State() State    { return s.state }

// Finished reports whether the search has reached a terminal state.
func (s *Stepper[NodeType]) Finished() bool {
	return s.state == FinishedFound || s.state == FinishedNotFound
}

func (s *Stepper[NodeType]) Found() bool { return s.state == FinishedFound }

// Steps returns the number of calls that advanced the search, including the
// one that finished it.
func (s *Stepper[NodeType]) Steps() int { return s.stepCount }

// Expanded returns the number of nodes whose neighbours were relaxed. The
// goal is never expanded.
func (s *Stepper[NodeType]) Expanded() int { return s.expanded }

// GScore returns the best known cost from the start to node.
func (s *Stepper[NodeType]) GScore(node NodeType) (int, bool) {
	g, ok := s.gScore[node]
	return g, ok
}

// Advance performs one expansion without building a snapshot. It reports
// false, and changes nothing, once the search has finished.
func (s *Stepper[NodeType]) Advance() bool {
	if s.Finished() {
		return false
	}
	s.state = Running
	s.stepCount++

	item, ok := s.popOpen()
	if !ok {
		s.state = FinishedNotFound
		return true
	}
	currentNode := item.Node
	s.current = currentNode
	delete(s.openNodes, currentNode)

	// The goal leaves the open set but is never closed or expanded.
	if currentNode == s.goal {
		s.state = FinishedFound
		return true
	}

	s.closedSet[currentNode] = true
	s.expanded++
	currentG := s.gScore[currentNode]
	for _, neighbor := range s.graph.Neighbors(currentNode) {
		if s.closedSet[neighbor] {
			continue
		}
		tentativeG := currentG + 1
		if previousG, seen := s.gScore[neighbor]; seen && tentativeG >= previousG {
			continue
		}
		s.gScore[neighbor] = tentativeG
		s.cameFrom[neighbor] = currentNode
		s.openSet.Push(neighbor, s.priority(tentativeG, neighbor))
		s.openNodes[neighbor] = true
	}
	return true
}

// popOpen pops until it finds an entry whose node is not already closed.
func (s *Stepper[NodeType]) popOpen() (PriorityQueueItem[NodeType], bool) {
	for {
		item, ok := s.openSet.Pop()
		if !ok {
			return item, false
		}
		if !s.closedSet[item.Node] {
			return item, true
		}
	}
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search has finished, Step only reports the final state.
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	s.Advance()
	return s.Snapshot()
}

// Snapshot copies the current search state. The path is filled in once the
// goal has been found.
func (s *Stepper[NodeType]) Snapshot() (StepSnapshot[NodeType], error) {
	snapshot := StepSnapshot[NodeType]{
		Current:   s.current,
		Open:      copyBoolMap(s.openNodes),
		Closed:    copyBoolMap(s.closedSet),
		State:     s.state,
		Done:      s.Finished(),
		Found:     s.Found(),
		StepIndex: s.stepCount,
		Expanded:  s.expanded,
	}
	path, err := s.ReconstructPath()
	if err != nil {
		return snapshot, err
	}
	snapshot.Path = path
	return snapshot, nil
}

// ReconstructPath returns the nodes from start to goal inclusive. It returns
// nil without an error while the search is running or when no path exists.
func (s *Stepper[NodeType]) ReconstructPath() ([]NodeType, error) {
	if s.state != FinishedFound {
		return nil, nil
	}
	path, ok := internal.ReconstructPath(s.cameFrom, s.goal, s.start)
	if !ok {
		return nil, errors.Wrapf(ErrBrokenPredecessorChain, "from %v to %v", s.goal, s.start)
	}
	return path, nil
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
