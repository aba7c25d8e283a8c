package canopy

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tick advances a node by one evaluation step. The blackboard is the
// caller-owned application state; the engine never touches it itself. The
// error channel carries engine contract violations only (such as
// ErrNodeComplete); application-level failure is the Failure result.
type Tick[B any] func(blackboard B) (Result, error)

// Condition evaluates the blackboard for React and Failsafe.
type Condition[B any] func(blackboard B) bool

// Node is a recipe for a node instance. Invoking it acquires the instance:
// a fresh identity is minted, registered under the caller's active
// ancestor, and setup runs. A Node may be invoked any number of times; each
// invocation is an independent instantiation with its own lifecycle, which
// is how Repeat obtains a fresh child per repetition.
type Node[B any] func(tc *Context) (*Handle[B], error)

// Setup performs a node's construction. It receives the bookkeeping
// context (with the node itself already the active ancestor, so children
// acquired here or later attach correctly) and returns the tick function
// plus an optional teardown. Teardown is guaranteed to run exactly once
// when the handle is closed, on error paths included.
type Setup[B any] func(tc *Context) (tick Tick[B], teardown func() error, err error)

// Handle is the scoped acquisition of one node instance. Exactly one
// handle exists per instantiation and it is held by whoever acquired it:
// the owning composite, or the caller for the tree's root.
type Handle[B any] struct {
	id     uuid.UUID
	name   string
	tick   Tick[B]
	close  func() error
	closed bool
}

// ID returns the identity minted for this instantiation.
func (h *Handle[B]) ID() uuid.UUID { return h.id }

// Name returns the display name the node was registered with.
func (h *Handle[B]) Name() string { return h.name }

// Tick evaluates the node once and records its result in the bookkeeping
// store.
func (h *Handle[B]) Tick(blackboard B) (Result, error) {
	return h.tick(blackboard)
}

// Close runs the node's teardown and releases its place on the
// active-ancestor stack. Closing an already-closed handle is a no-op.
func (h *Handle[B]) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.close()
}

// Action wraps a setup routine into a lifecycle-managed Node. On
// acquisition it mints the identity, registers it in the store, makes it
// the active ancestor for the duration of setup, and arranges for every
// tick's result to be recorded before it is returned. Teardown runs on
// every exit path: a setup error unwinds the registration immediately, and
// Close unwinds it after teardown even if teardown fails.
func Action[B any](name string, setup Setup[B]) Node[B] {
	return func(tc *Context) (*Handle[B], error) {
		id := uuid.New()
		tc.enter(id, name)
		tick, teardown, err := setup(tc)
		if err != nil {
			tc.exit(id)
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		h := &Handle[B]{id: id, name: name}
		h.tick = func(b B) (Result, error) {
			var start time.Time
			if tc.onTick != nil {
				start = time.Now()
			}
			r, err := tick(b)
			if err != nil {
				return r, err
			}
			var elapsed time.Duration
			if tc.onTick != nil {
				elapsed = time.Since(start)
			}
			tc.record(id, name, r, elapsed)
			return r, nil
		}
		h.close = func() error {
			defer tc.exit(id)
			if teardown == nil {
				return nil
			}
			return teardown()
		}
		return h, nil
	}
}

// SimpleAction lifts a bare tick function into a Node with no setup or
// teardown of its own.
func SimpleAction[B any](name string, tick Tick[B]) Node[B] {
	return Action(name, func(*Context) (Tick[B], func() error, error) {
		return tick, nil, nil
	})
}
