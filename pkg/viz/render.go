package viz

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Status colors, high contrast on dark and light backgrounds.
const (
	colorSuccess = "#119911"
	colorFailure = "#991111"
	colorRunning = "#BB6633"
)

// Render draws the snapshot as an ANSI tree for the current terminal's
// color profile.
func Render(tree *StatusTree) string {
	return RenderWith(termenv.ColorProfile(), tree)
}

// RenderWith draws the snapshot as a tree using box-drawing guides, with
// each node's status colored through the given profile. Pass termenv.Ascii
// for plain output.
func RenderWith(p termenv.Profile, tree *StatusTree) string {
	var sb strings.Builder
	sb.WriteString(renderLabel(p, tree))
	sb.WriteByte('\n')
	renderChildren(&sb, p, tree, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, p termenv.Profile, node *StatusTree, prefix string) {
	for i, child := range node.Children {
		guide, nested := "├── ", "│   "
		if i == len(node.Children)-1 {
			guide, nested = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(guide)
		sb.WriteString(renderLabel(p, child))
		sb.WriteByte('\n')
		renderChildren(sb, p, child, prefix+nested)
	}
}

func renderLabel(p termenv.Profile, node *StatusTree) string {
	status := node.Status
	if status == "" {
		status = "none"
	}
	var color string
	switch status {
	case "SUCCESS":
		color = colorSuccess
	case "FAILURE":
		color = colorFailure
	case "RUNNING":
		color = colorRunning
	default:
		return fmt.Sprintf("%s - %s", node.Node, status)
	}
	styled := termenv.String(status).Foreground(p.Color(color))
	return fmt.Sprintf("%s - %s", node.Node, styled.String())
}
