package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/canopy"
	"github.com/google/uuid"
)

const traceWidth = 50

// WriteTrace dumps the whole bookkeeping graph to w, one line per node with
// identity, name and last result, indented by depth. Unlike Build it accepts
// any number of roots, so it stays usable on partially constructed or torn
// down trees.
func WriteTrace(w io.Writer, tc *canopy.Context) error {
	header := " Trace "
	pad := traceWidth - len(header)
	if _, err := fmt.Fprintf(w, "\n%s%s%s\n",
		strings.Repeat("-", pad/2), header, strings.Repeat("-", pad-pad/2)); err != nil {
		return err
	}
	for _, root := range tc.Roots() {
		if err := writeTraceNode(w, tc, root, 0); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s\n\n", strings.Repeat("-", traceWidth))
	return err
}

func writeTraceNode(w io.Writer, tc *canopy.Context, id uuid.UUID, depth int) error {
	name, _ := tc.Name(id)
	status := "none"
	if r, ok := tc.LastResult(id); ok {
		status = r.String()
	}
	if _, err := fmt.Fprintf(w, "%s%s %s - %s\n",
		strings.Repeat(" ", depth*4), id, name, status); err != nil {
		return err
	}
	for _, child := range tc.Children(id) {
		if err := writeTraceNode(w, tc, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
