package canopy

import "fmt"

// Sequential ticks its children in construction order. A child's Running is
// forwarded and the same child is resumed on the next tick; a child's
// Failure fails the whole node; on Success the child is released and the
// cursor advances, within the same tick call, so a run of immediately
// succeeding children completes in one call. When every child has
// succeeded the node returns Success.
//
// Sequential is single-shot: once it has returned a terminal result, any
// further tick fails with ErrNodeComplete.
func Sequential[B any](children ...Node[B]) Node[B] {
	return Action("sequential", func(tc *Context) (Tick[B], func() error, error) {
		var (
			idx  int
			open *Handle[B]
			done bool
		)
		tick := func(b B) (Result, error) {
			if done {
				return Failure, fmt.Errorf("sequential: %w", ErrNodeComplete)
			}
			for idx < len(children) {
				if open == nil {
					h, err := children[idx](tc)
					if err != nil {
						return Failure, err
					}
					open = h
				}
				r, err := open.Tick(b)
				if err != nil {
					return r, err
				}
				if r == Running {
					return Running, nil
				}
				if err := open.Close(); err != nil {
					return r, err
				}
				open = nil
				if r == Failure {
					done = true
					return Failure, nil
				}
				idx++
			}
			done = true
			return Success, nil
		}
		teardown := func() error {
			if open != nil {
				return open.Close()
			}
			return nil
		}
		return tick, teardown, nil
	})
}
