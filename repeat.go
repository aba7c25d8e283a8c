package canopy

import "fmt"

// RepeatOption configures Repeat, Retry and Redo.
type RepeatOption func(*repeatConfig)

type repeatConfig struct {
	count int // 0 means unbounded
}

// WithCount bounds the number of repetitions. Without it repetition is
// unbounded.
func WithCount(n int) RepeatOption {
	return func(cfg *repeatConfig) {
		cfg.count = n
	}
}

// Repeat instantiates child, ticks it to a terminal result, and starts a
// fresh instantiation (with its own setup and teardown) whenever that
// result equals continueIf. The tick on which a repetition completes with
// continueIf reports Running; the next tick begins the next repetition. A
// terminal result different from continueIf stops immediately and becomes
// the node's final result. If the bound set by WithCount is reached while
// still matching, continueIf itself is the final result. Single-shot.
func Repeat[B any](child Node[B], continueIf Result, opts ...RepeatOption) Node[B] {
	return repeatNode("repeat", child, continueIf, opts)
}

// Retry is Repeat with continueIf fixed to Failure: the child is retried
// while it fails, Success stops with Success, and a bound of n yields
// Failure after n consecutive failures.
func Retry[B any](child Node[B], opts ...RepeatOption) Node[B] {
	return repeatNode("retry", child, Failure, opts)
}

// Redo is Repeat with continueIf fixed to Success: the child is re-run
// while it succeeds, the first Failure stops with Failure, and a bound of n
// yields Success after n consecutive successes.
func Redo[B any](child Node[B], opts ...RepeatOption) Node[B] {
	return repeatNode("redo", child, Success, opts)
}

func repeatNode[B any](name string, child Node[B], continueIf Result, opts []RepeatOption) Node[B] {
	var cfg repeatConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return Action(name, func(tc *Context) (Tick[B], func() error, error) {
		var (
			open    *Handle[B]
			started int
			done    bool
		)
		tick := func(b B) (Result, error) {
			if done {
				return Failure, fmt.Errorf("%s: %w", name, ErrNodeComplete)
			}
			if open == nil {
				h, err := child(tc)
				if err != nil {
					return Failure, err
				}
				open = h
				started++
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
			if r != continueIf || (cfg.count > 0 && started >= cfg.count) {
				done = true
				return r, nil
			}
			return Running, nil
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
