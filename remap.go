package canopy

import "fmt"

// Remap wraps one child and passes every tick through, replacing the
// child's result according to mapping (identity for unmapped values).
// Remap tracks no completion of its own: it forwards whatever the child
// produces, tick after tick, and never returns ErrNodeComplete.
func Remap[B any](child Node[B], mapping map[Result]Result) Node[B] {
	frozen := make(map[Result]Result, len(mapping))
	for from, to := range mapping {
		frozen[from] = to
	}
	return Action("remap", func(tc *Context) (Tick[B], func() error, error) {
		h, err := child(tc)
		if err != nil {
			return nil, nil, err
		}
		tick := func(b B) (Result, error) {
			r, err := h.Tick(b)
			if err != nil {
				return r, err
			}
			if to, ok := frozen[r]; ok {
				return to, nil
			}
			return r, nil
		}
		return tick, h.Close, nil
	})
}

// Swap exchanges exactly two results with each other: the child's a
// becomes b, its b becomes a, and anything else passes through. Acquiring
// a Swap of a result with itself fails with ErrSwapIdentical, before any
// ticking. Like Remap, Swap is a transparent adapter and never completes
// on its own.
func Swap[B any](child Node[B], a, b Result) Node[B] {
	return Action("swap", func(tc *Context) (Tick[B], func() error, error) {
		if a == b {
			return nil, nil, fmt.Errorf("%w: %s", ErrSwapIdentical, a)
		}
		h, err := child(tc)
		if err != nil {
			return nil, nil, err
		}
		tick := func(bb B) (Result, error) {
			r, err := h.Tick(bb)
			if err != nil {
				return r, err
			}
			switch r {
			case a:
				return b, nil
			case b:
				return a, nil
			default:
				return r, nil
			}
		}
		return tick, h.Close, nil
	})
}

// ForceResult maps every result the child produces to target, making an
// otherwise-failing (or running) action appear to have produced target.
// Transparent like Remap: no completion tracking.
func ForceResult[B any](child Node[B], target Result) Node[B] {
	return Action("force_result", func(tc *Context) (Tick[B], func() error, error) {
		h, err := child(tc)
		if err != nil {
			return nil, nil, err
		}
		tick := func(b B) (Result, error) {
			if _, err := h.Tick(b); err != nil {
				return Failure, err
			}
			return target, nil
		}
		return tick, h.Close, nil
	})
}
