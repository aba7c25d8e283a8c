package viz

import (
	"fmt"
	"strings"
)

// Mermaid produces a Mermaid flowchart of the snapshot with per-status
// styling classes, suitable for embedding in Markdown.
func Mermaid(tree *StatusTree) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	byStatus := map[string][]string{}
	counter := 0
	var walk func(node *StatusTree) string
	walk = func(node *StatusTree) string {
		id := fmt.Sprintf("n%d", counter)
		counter++
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, escapeMermaidLabel(node.Node)))
		if node.Status != "" {
			byStatus[node.Status] = append(byStatus[node.Status], id)
		}
		for _, child := range node.Children {
			childID := walk(child)
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, childID))
		}
		return id
	}
	walk(tree)

	// Force black text for high contrast regardless of theme.
	sb.WriteString("\n    classDef success fill:#d4f7d4,stroke:#119911,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef failure fill:#f7d4d4,stroke:#991111,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef running fill:#fbe3cf,stroke:#BB6633,stroke-width:2px,color:#000;\n")
	for _, m := range []struct{ status, class string }{
		{"SUCCESS", "success"},
		{"FAILURE", "failure"},
		{"RUNNING", "running"},
	} {
		for _, id := range byStatus[m.status] {
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", id, m.class))
		}
	}
	return sb.String()
}

func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
