package mazesearch

import "github.com/pkg/errors"

// Errors
var (
	// ErrBadDimensions is returned when a maze is requested with fewer than
	// one column or row, or with more cells than fit in an int.
	ErrBadDimensions = errors.New("mazesearch: cols and rows must be at least 1")

	// ErrInconsistentPassages is returned by FromMasks when a passage bit has
	// no matching opposite bit on the neighbouring cell, or leads off the grid.
	ErrInconsistentPassages = errors.New("mazesearch: inconsistent passage masks")

	// ErrUnknownGenerator is returned for a Generator value with no carving
	// routine behind it.
	ErrUnknownGenerator = errors.New("mazesearch: unknown maze generator")

	// ErrOutOfBounds is returned when a search is constructed with a start or
	// goal the graph does not contain.
	ErrOutOfBounds = errors.New("mazesearch: coordinate out of bounds")

	ErrNilGraph    = errors.New("mazesearch: graph is nil")
	ErrNilPriority = errors.New("mazesearch: priority function is nil")

	// ErrBrokenPredecessorChain means the predecessor links recorded during a
	// successful search do not lead back to the start. It indicates a bug in
	// relaxation bookkeeping and is never expected in practice.
	ErrBrokenPredecessorChain = errors.New("mazesearch: broken predecessor chain")

	ErrUnknownStrategy = errors.New("mazesearch: unknown search strategy")
)
