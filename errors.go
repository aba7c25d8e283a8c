package canopy

import "errors"

// ErrNodeComplete is returned when a single-shot composite is ticked again
// after it already produced a terminal result. This is a contract violation
// in the driver loop, not an operational failure.
var ErrNodeComplete = errors.New("node ticked after completion")

// ErrSwapIdentical is returned when Swap is asked to exchange a result with
// itself. Surfaced when the node is acquired, before any ticking.
var ErrSwapIdentical = errors.New("cannot swap a result with itself")

// ErrEmptyTree is returned by introspection readers when the bookkeeping
// store holds no root node, i.e. no tree has been built on this context.
var ErrEmptyTree = errors.New("bookkeeping store has no root node")
