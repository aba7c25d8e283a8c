package canopy

import "fmt"

// Fallback is the dual of Sequential: a child's Failure releases it and
// advances the cursor, any Success short-circuits the whole node to
// Success, and exhausting all children yields Failure. Running is forwarded
// with the cursor unchanged. Single-shot, like Sequential.
func Fallback[B any](children ...Node[B]) Node[B] {
	return Action("fallback", func(tc *Context) (Tick[B], func() error, error) {
		var (
			idx  int
			open *Handle[B]
			done bool
		)
		tick := func(b B) (Result, error) {
			if done {
				return Failure, fmt.Errorf("fallback: %w", ErrNodeComplete)
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
				if r == Success {
					done = true
					return Success, nil
				}
				idx++
			}
			done = true
			return Failure, nil
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
