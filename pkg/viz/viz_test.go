package viz_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/viz"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(name string, r canopy.Result) canopy.Node[any] {
	return canopy.SimpleAction(name, func(any) (canopy.Result, error) { return r, nil })
}

// Builds a ticked two-level tree: fallback(miss -> hit).
func tickedContext(t *testing.T) *canopy.Context {
	t.Helper()
	tc := canopy.NewContext()
	h, err := canopy.Fallback(leaf("miss", canopy.Failure), leaf("hit", canopy.Success))(tc)
	require.NoError(t, err)
	defer h.Close()

	r, err := h.Tick(nil)
	require.NoError(t, err)
	require.Equal(t, canopy.Success, r)
	return tc
}

func TestBuild(t *testing.T) {
	tree, err := viz.Build(tickedContext(t))
	require.NoError(t, err)

	assert.Equal(t, "fallback", tree.Node)
	assert.Equal(t, "SUCCESS", tree.Status)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "miss", tree.Children[0].Node)
	assert.Equal(t, "FAILURE", tree.Children[0].Status)
	assert.Equal(t, "hit", tree.Children[1].Node)
	assert.Equal(t, "SUCCESS", tree.Children[1].Status)
}

func TestBuildEmptyContext(t *testing.T) {
	_, err := viz.Build(canopy.NewContext())
	assert.ErrorIs(t, err, canopy.ErrEmptyTree)
}

func TestBuildRejectsMultipleRoots(t *testing.T) {
	tc := canopy.NewContext()
	for i := 0; i < 2; i++ {
		h, err := leaf("standalone", canopy.Success)(tc)
		require.NoError(t, err)
		require.NoError(t, h.Close())
	}
	_, err := viz.Build(tc)
	assert.ErrorContains(t, err, "one root")
}

func TestBuildUntickedNodeHasEmptyStatus(t *testing.T) {
	tc := canopy.NewContext()
	h, err := leaf("idle", canopy.Success)(tc)
	require.NoError(t, err)
	defer h.Close()

	tree, err := viz.Build(tc)
	require.NoError(t, err)
	assert.Empty(t, tree.Status)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"node":"idle"}`, string(data))
}

func TestWriteTrace(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, viz.WriteTrace(&sb, tickedContext(t)))
	out := sb.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], " Trace ")
	assert.True(t, strings.HasSuffix(lines[1], "fallback - SUCCESS"))
	assert.True(t, strings.HasPrefix(lines[2], "    "), "children are indented")
	assert.True(t, strings.HasSuffix(lines[2], "miss - FAILURE"))
	assert.True(t, strings.HasSuffix(lines[3], "hit - SUCCESS"))
	assert.Equal(t, strings.Repeat("-", 50), lines[4])
}

func TestWriteTraceMultipleRoots(t *testing.T) {
	tc := canopy.NewContext()
	for _, name := range []string{"first", "second"} {
		h, err := leaf(name, canopy.Success)(tc)
		require.NoError(t, err)
		_, err = h.Tick(nil)
		require.NoError(t, err)
		require.NoError(t, h.Close())
	}

	var sb strings.Builder
	require.NoError(t, viz.WriteTrace(&sb, tc))
	assert.Contains(t, sb.String(), "first - SUCCESS")
	assert.Contains(t, sb.String(), "second - SUCCESS")
}

func TestRenderWithAscii(t *testing.T) {
	tree, err := viz.Build(tickedContext(t))
	require.NoError(t, err)

	out := viz.RenderWith(termenv.Ascii, tree)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "fallback - SUCCESS", lines[0])
	assert.Equal(t, "├── miss - FAILURE", lines[1])
	assert.Equal(t, "└── hit - SUCCESS", lines[2])
}

func TestMermaid(t *testing.T) {
	tree, err := viz.Build(tickedContext(t))
	require.NoError(t, err)

	out := viz.Mermaid(tree)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `n0["fallback"]`)
	assert.Contains(t, out, `n1["miss"]`)
	assert.Contains(t, out, `n2["hit"]`)
	assert.Contains(t, out, "n0 --> n1")
	assert.Contains(t, out, "n0 --> n2")
	assert.Contains(t, out, "class n0 success;")
	assert.Contains(t, out, "class n1 failure;")
	assert.Contains(t, out, "class n2 success;")
}

func TestMermaidEscapesLabels(t *testing.T) {
	out := viz.Mermaid(&viz.StatusTree{Node: `say "hi"`})
	assert.Contains(t, out, `n0["say 'hi'"]`)
	assert.NotContains(t, out, "class n0")
}
