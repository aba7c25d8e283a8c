// Package viz renders bookkeeping snapshots as status trees, text traces,
// ANSI terminal trees and Mermaid flowcharts.
package viz

import (
	"fmt"

	"github.com/aretw0/canopy"
	"github.com/google/uuid"
)

// StatusTree is a point-in-time snapshot of one node and its subtree:
// display name, last observed result, children in construction order. The
// Status field is empty for nodes that have never been ticked.
type StatusTree struct {
	Node     string        `json:"node"`
	Status   string        `json:"status,omitempty"`
	Children []*StatusTree `json:"children,omitempty"`
}

// Build walks the bookkeeping graph from its single root and returns the
// snapshot tree. It errors with canopy.ErrEmptyTree when nothing has been
// registered, and rejects stores holding more than one root.
func Build(tc *canopy.Context) (*StatusTree, error) {
	roots := tc.Roots()
	switch len(roots) {
	case 0:
		return nil, canopy.ErrEmptyTree
	case 1:
	default:
		return nil, fmt.Errorf("viz: expected one root, found %d", len(roots))
	}
	return buildNode(tc, roots[0]), nil
}

func buildNode(tc *canopy.Context, id uuid.UUID) *StatusTree {
	name, _ := tc.Name(id)
	node := &StatusTree{Node: name}
	if r, ok := tc.LastResult(id); ok {
		node.Status = r.String()
	}
	for _, child := range tc.Children(id) {
		node.Children = append(node.Children, buildNode(tc, child))
	}
	return node
}
