// Package mazesearch generates perfect mazes and searches them one step at a
// time.
//
// It exposes three groups of entry points:
//
//   - Generate / FromMasks: build an immutable Maze whose passages form a
//     spanning tree over the grid.
//   - Stepper: a resumable shortest-path search. NewUniformCost orders the
//     frontier by cost so far, NewHeuristic adds an admissible estimate.
//     Both share the same bookkeeping and advance one expansion per Step,
//     so a visualizer can render the open and closed sets between calls.
//   - Search, Compare and CompareBatch: run searches to completion, alone,
//     side by side, or across many mazes on a worker pool.
//
// Steppers are single-threaded and own all of their state. A Maze is
// read-only and may be searched by several steppers concurrently.
package mazesearch
