package canopy

import "fmt"

// Failsafe ticks the nominal child while check holds. Running is forwarded;
// a terminal result from nominal ends the whole node with that result and
// the failure child is never constructed. The first tick on which check
// evaluates false releases nominal and latches irrevocably onto a fresh
// instantiation of failure, whose terminal result becomes the failsafe's
// own. There is no path back to nominal. Single-shot.
func Failsafe[B any](check Condition[B], nominal, failure Node[B]) Node[B] {
	return Action("failsafe", func(tc *Context) (Tick[B], func() error, error) {
		nh, err := nominal(tc)
		if err != nil {
			return nil, nil, err
		}
		var (
			fh   *Handle[B]
			done bool
		)
		tick := func(b B) (Result, error) {
			if done {
				return Failure, fmt.Errorf("failsafe: %w", ErrNodeComplete)
			}
			if fh == nil {
				if check(b) {
					r, err := nh.Tick(b)
					if err != nil {
						return r, err
					}
					if r.Terminal() {
						done = true
					}
					return r, nil
				}
				if err := nh.Close(); err != nil {
					return Failure, err
				}
				nh = nil
				h, err := failure(tc)
				if err != nil {
					return Failure, err
				}
				fh = h
			}
			r, err := fh.Tick(b)
			if err != nil {
				return r, err
			}
			if r.Terminal() {
				done = true
			}
			return r, nil
		}
		teardown := func() error {
			if nh != nil {
				return nh.Close()
			}
			if fh != nil {
				return fh.Close()
			}
			return nil
		}
		return tick, teardown, nil
	})
}
