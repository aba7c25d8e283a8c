package canopy_test

import (
	"errors"
	"testing"

	"github.com/aretw0/canopy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Standard leaf actions shared by the composite tests.
var (
	alwaysOK = canopy.SimpleAction("always_ok", func(any) (canopy.Result, error) {
		return canopy.Success, nil
	})
	alwaysFail = canopy.SimpleAction("always_fail", func(any) (canopy.Result, error) {
		return canopy.Failure, nil
	})
	alwaysRunning = canopy.SimpleAction("always_running", func(any) (canopy.Result, error) {
		return canopy.Running, nil
	})
	// neverRuns surfaces as a tick error, failing whichever test reached it.
	neverRuns = canopy.SimpleAction("never_runs", func(any) (canopy.Result, error) {
		return canopy.Failure, errors.New("action must not run")
	})
)

// runThen returns Running for count ticks, then result forever after.
// The counter lives in setup, so every acquisition starts fresh.
func runThen(result canopy.Result, count int) canopy.Node[any] {
	return canopy.Action("run_then", func(*canopy.Context) (canopy.Tick[any], func() error, error) {
		remaining := count
		tick := func(any) (canopy.Result, error) {
			if remaining > 0 {
				remaining--
				return canopy.Running, nil
			}
			return result, nil
		}
		return tick, nil, nil
	})
}

func runThenOK() canopy.Node[any]   { return runThen(canopy.Success, 1) }
func runThenFail() canopy.Node[any] { return runThen(canopy.Failure, 1) }

// tickExpect acquires node on a fresh context and asserts the tick-by-tick
// result sequence. The context is returned for bookkeeping assertions.
func tickExpect(t *testing.T, node canopy.Node[any], want []canopy.Result) *canopy.Context {
	t.Helper()
	tc := canopy.NewContext()
	h, err := node(tc)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	for i, expected := range want {
		got, err := h.Tick(nil)
		require.NoError(t, err, "tick %d", i+1)
		assert.Equal(t, expected, got, "tick %d", i+1)
	}
	return tc
}

// names resolves display names for a slice of identities, in order.
func names(t *testing.T, tc *canopy.Context, ids []uuid.UUID) []string {
	t.Helper()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := tc.Name(id)
		require.True(t, ok, "missing name for %s", id)
		out = append(out, name)
	}
	return out
}
