/*
Package canopy is a behavior-tree execution engine: small units of work
("actions") compose into trees whose evaluation is re-entrant, non-blocking
and driven by repeated external ticks.

Every tick returns one of three results (Running, Success or Failure) and
composite nodes combine their children's results under well-defined
control-flow policies: Sequential, Fallback, Parallel, Repeat (with Retry
and Redo), Remap/Swap/ForceResult, React and Failsafe. The engine is aimed
at robotics and control-system authors who need deterministic,
interruption-safe decision logic evaluated at a fixed cadence without ever
blocking the ticking goroutine.

# Model

A Node is a reusable recipe. Acquiring it (by invoking it with a Context)
runs its setup and yields a Handle: tick the handle as often as you like,
close it to run teardown. Composites acquire and release their children as
their policies dictate; teardown runs on every exit path. No node blocks:
an action that depends on asynchronous work polls for completion on each
tick and returns Running until it resolves.

The Context is the bookkeeping store. Every instantiation registers a
unique identity, its display name, and its place in the parent→children
graph; every tick records the node's latest result. External collaborators
(tracing, tree rendering, graph export; see pkg/viz and pkg/introspect)
read this state; they never write it.

# Usage

Build the tree once, acquire the root, then tick it with your
application-defined blackboard until a terminal result comes back:

	package main

	import (
		"fmt"

		"github.com/aretw0/canopy"
	)

	type board struct{ fuel int }

	func main() {
		burn := canopy.SimpleAction("burn", func(b *board) (canopy.Result, error) {
			if b.fuel == 0 {
				return canopy.Failure, nil
			}
			b.fuel--
			return canopy.Success, nil
		})

		tc := canopy.NewContext()
		root, err := canopy.Retry(burn, canopy.WithCount(3))(tc)
		if err != nil {
			panic(err)
		}
		defer root.Close()

		b := &board{fuel: 2}
		for {
			r, err := root.Tick(b)
			if err != nil {
				panic(err)
			}
			if r.Terminal() {
				fmt.Println("finished:", r)
				return
			}
		}
	}

Single-shot composites (Sequential, Fallback, Repeat/Retry/Redo, Failsafe,
Parallel) return ErrNodeComplete if ticked again after a terminal result;
the transparent adapters (Remap, Swap, ForceResult) and React can be ticked
indefinitely.
*/
package canopy
