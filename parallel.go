package canopy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ParallelConfig tunes the aggregation policy of ParallelWith.
type ParallelConfig struct {
	// FailureTolerance is the number of failed children the default policy
	// forgives before the whole node fails. Zero means any failure fails
	// the node (once no child is still running).
	FailureTolerance int

	// Reduce, if set, replaces the default policy. It receives one result
	// per child, in construction order, and returns the aggregate. A
	// terminal aggregate completes the node.
	Reduce func(results []Result) Result
}

// Parallel ticks all of its children within each call using the default
// aggregation policy: Running if any child is still running, Failure if
// more children failed than the tolerance allows, Success otherwise.
func Parallel[B any](children ...Node[B]) Node[B] {
	return ParallelWith(ParallelConfig{}, children...)
}

// ParallelWith is Parallel with an explicit configuration.
//
// Children are ticked in construction order, each against its own ancestry
// snapshot so siblings never see each other as ancestors, and results are
// aggregated only after all of them have been ticked. A child that
// produced a terminal result keeps that result in every later aggregation
// and is not ticked again. Single-shot once the aggregate is terminal.
func ParallelWith[B any](cfg ParallelConfig, children ...Node[B]) Node[B] {
	reduce := cfg.Reduce
	if reduce == nil {
		reduce = defaultReduce(cfg.FailureTolerance)
	}
	return Action("parallel", func(tc *Context) (Tick[B], func() error, error) {
		base := tc.captureStack()
		handles := make([]*Handle[B], 0, len(children))
		stacks := make([][]uuid.UUID, 0, len(children))
		for _, child := range children {
			tc.restoreStack(base)
			h, err := child(tc)
			if err != nil {
				var errs []error
				for _, open := range handles {
					errs = append(errs, open.Close())
				}
				tc.restoreStack(base)
				return nil, nil, errors.Join(append([]error{err}, errs...)...)
			}
			handles = append(handles, h)
			stacks = append(stacks, tc.captureStack())
		}
		tc.restoreStack(base)

		results := make([]Result, len(handles))
		settled := make([]bool, len(handles))
		done := false

		tick := func(b B) (Result, error) {
			if done {
				return Failure, fmt.Errorf("parallel: %w", ErrNodeComplete)
			}
			for i, h := range handles {
				if settled[i] {
					continue
				}
				tc.restoreStack(stacks[i])
				r, err := h.Tick(b)
				if err != nil {
					tc.restoreStack(base)
					return r, err
				}
				stacks[i] = tc.captureStack()
				results[i] = r
				if r.Terminal() {
					settled[i] = true
				}
			}
			tc.restoreStack(base)
			agg := reduce(append([]Result(nil), results...))
			if agg.Terminal() {
				done = true
			}
			return agg, nil
		}
		teardown := func() error {
			var errs []error
			for _, h := range handles {
				errs = append(errs, h.Close())
			}
			return errors.Join(errs...)
		}
		return tick, teardown, nil
	})
}

func defaultReduce(tolerance int) func([]Result) Result {
	return func(results []Result) Result {
		failures := 0
		for _, r := range results {
			switch r {
			case Running:
				return Running
			case Failure:
				failures++
			}
		}
		if failures > tolerance {
			return Failure
		}
		return Success
	}
}
