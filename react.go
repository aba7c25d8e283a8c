package canopy

import "errors"

// React holds two permanently instantiated children, nominal and failure,
// and routes each tick by evaluating condition against the blackboard:
// while the condition holds the nominal child is ticked, otherwise the
// failure child, switching back and forth as the condition flips. Each
// branch keeps its internal state across the stretches where the other
// branch is active.
//
// Each branch owns an independent bookkeeping view (ancestry stack plus
// graph), captured when switching away and restored before the branch is
// ticked again, so nodes either branch constructs lazily attach to the
// right subtree.
//
// React has no terminal result and is never single-shot; it runs for as
// long as the caller keeps ticking it. Closing it releases both branches.
func React[B any](condition Condition[B], nominal, failure Node[B]) Node[B] {
	return Action("react", func(tc *Context) (Tick[B], func() error, error) {
		base := tc.capture()
		fh, err := failure(tc)
		if err != nil {
			return nil, nil, err
		}
		failView := tc.capture()
		tc.restore(base)
		nh, err := nominal(tc)
		if err != nil {
			tc.restore(failView)
			return nil, nil, errors.Join(err, fh.Close())
		}
		nomView := tc.capture()
		inFailure := false

		tick := func(b B) (Result, error) {
			switch hold := condition(b); {
			case !inFailure && hold:
				return nh.Tick(b)
			case !inFailure && !hold:
				nomView = tc.capture()
				tc.restore(failView)
				inFailure = true
				return fh.Tick(b)
			case inFailure && hold:
				failView = tc.capture()
				tc.restore(nomView)
				inFailure = false
				return nh.Tick(b)
			default:
				return fh.Tick(b)
			}
		}
		teardown := func() error {
			if inFailure {
				err := fh.Close()
				tc.restore(nomView)
				return errors.Join(err, nh.Close())
			}
			err := nh.Close()
			tc.restore(failView)
			return errors.Join(err, fh.Close())
		}
		return tick, teardown, nil
	})
}
