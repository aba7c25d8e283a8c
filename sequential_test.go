package canopy_test

import (
	"testing"

	"github.com/aretw0/canopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequential(t *testing.T) {
	cases := []struct {
		name     string
		children []canopy.Node[any]
		want     []canopy.Result
	}{
		{"single ok", []canopy.Node[any]{alwaysOK}, []canopy.Result{canopy.Success}},
		{"single fail", []canopy.Node[any]{alwaysFail}, []canopy.Result{canopy.Failure}},
		{"single running", []canopy.Node[any]{alwaysRunning}, []canopy.Result{canopy.Running}},
		{"ok ok", []canopy.Node[any]{alwaysOK, alwaysOK}, []canopy.Result{canopy.Success}},
		{"ok fail", []canopy.Node[any]{alwaysOK, alwaysFail}, []canopy.Result{canopy.Failure}},
		{"ok running", []canopy.Node[any]{alwaysOK, alwaysRunning}, []canopy.Result{canopy.Running}},
		{"fail short-circuits", []canopy.Node[any]{alwaysFail, neverRuns}, []canopy.Result{canopy.Failure}},
		{"running holds cursor", []canopy.Node[any]{alwaysRunning, neverRuns}, []canopy.Result{canopy.Running}},
		{"run then ok", []canopy.Node[any]{runThenOK()}, []canopy.Result{canopy.Running, canopy.Success}},
		{"run then fail", []canopy.Node[any]{runThenFail()}, []canopy.Result{canopy.Running, canopy.Failure}},
		{"run then ok, ok", []canopy.Node[any]{runThenOK(), alwaysOK}, []canopy.Result{canopy.Running, canopy.Success}},
		{"run then ok, fail", []canopy.Node[any]{runThenOK(), alwaysFail}, []canopy.Result{canopy.Running, canopy.Failure}},
		{"run then fail short-circuits", []canopy.Node[any]{runThenFail(), neverRuns}, []canopy.Result{canopy.Running, canopy.Failure}},
		{"two slow oks", []canopy.Node[any]{runThenOK(), runThenOK()}, []canopy.Result{canopy.Running, canopy.Running, canopy.Success}},
		{"slow ok then slow fail", []canopy.Node[any]{runThenOK(), runThenFail()}, []canopy.Result{canopy.Running, canopy.Running, canopy.Failure}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			tickExpect(t, canopy.Sequential(tt.children...), tt.want)
		})
	}
}

func TestSequentialTickedAfterCompletion(t *testing.T) {
	tc := canopy.NewContext()
	h, err := canopy.Sequential(alwaysOK)(tc)
	require.NoError(t, err)
	defer h.Close()

	r, err := h.Tick(nil)
	require.NoError(t, err)
	require.Equal(t, canopy.Success, r)

	for i := 0; i < 2; i++ {
		_, err = h.Tick(nil)
		assert.ErrorIs(t, err, canopy.ErrNodeComplete)
	}
}

func TestSequentialReleasesChildBeforeAdvancing(t *testing.T) {
	var events []string
	child := func(label string, result canopy.Result) canopy.Node[any] {
		return canopy.Action(label, func(*canopy.Context) (canopy.Tick[any], func() error, error) {
			events = append(events, "setup "+label)
			tick := func(any) (canopy.Result, error) {
				events = append(events, "tick "+label)
				return result, nil
			}
			teardown := func() error {
				events = append(events, "teardown "+label)
				return nil
			}
			return tick, teardown, nil
		})
	}

	tc := canopy.NewContext()
	h, err := canopy.Sequential(child("a", canopy.Success), child("b", canopy.Success))(tc)
	require.NoError(t, err)
	defer h.Close()

	r, err := h.Tick(nil)
	require.NoError(t, err)
	require.Equal(t, canopy.Success, r)

	assert.Equal(t, []string{
		"setup a", "tick a", "teardown a",
		"setup b", "tick b", "teardown b",
	}, events)
}

// The bookkeeping graph has exactly one root (the sequential node) whose
// children appear in construction order, no matter how often it is ticked.
func TestSequentialGraphShape(t *testing.T) {
	leafA := canopy.SimpleAction("leaf_a", func(any) (canopy.Result, error) { return canopy.Success, nil })
	leafB := canopy.SimpleAction("leaf_b", func(any) (canopy.Result, error) { return canopy.Success, nil })

	tc := canopy.NewContext()
	h, err := canopy.Sequential(leafA, leafB)(tc)
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Tick(nil)
	require.NoError(t, err)
	_, err = h.Tick(nil)
	require.ErrorIs(t, err, canopy.ErrNodeComplete)

	roots := tc.Roots()
	require.Len(t, roots, 1)
	rootName, ok := tc.Name(roots[0])
	require.True(t, ok)
	assert.Equal(t, "sequential", rootName)
	assert.Equal(t, []string{"leaf_a", "leaf_b"}, names(t, tc, tc.Children(roots[0])))

	for _, id := range tc.Children(roots[0]) {
		r, ticked := tc.LastResult(id)
		assert.True(t, ticked)
		assert.Equal(t, canopy.Success, r)
	}
}
