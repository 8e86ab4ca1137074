package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/libstate/pkg/graph"
)

// startNode is the Mermaid id of the sourceless start point.
const startNode = "__start"

// Overlay contains run data to visualize on the graph.
type Overlay struct {
	Visited []any
	Current any
}

// GenerateMermaid produces a Mermaid flowchart from a graph description.
// It applies semantic styling:
// - Start point: ((Circle))
// - Terminal state (no outgoing transitions): ([Stadium])
// - Unregistered destination: {{Hexagon}}
// - Default: [Rectangle]
// Guarded transitions are labelled "when", transitions with actions "then".
func GenerateMermaid[K comparable](d graph.Description[K], overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	outgoing := make(map[K]bool)
	for _, t := range d.Transitions {
		if !t.Entry {
			outgoing[t.Source] = true
		}
	}

	sb.WriteString(fmt.Sprintf("    %s((\"start\"))\n", startNode))
	for _, s := range d.States {
		opener, closer := "[", "]"
		if !outgoing[s.ID] {
			opener, closer = "([", "])"
		}
		name := fmt.Sprint(s.ID)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(name), opener, escape(name), closer))
	}

	missing := make(map[string]bool)
	for _, t := range d.Transitions {
		from := startNode
		if !t.Entry {
			from = sanitizeMermaidID(fmt.Sprint(t.Source))
		}
		to := fmt.Sprint(t.Destination)
		safeTo := sanitizeMermaidID(to)
		if !d.Registered(t.Destination) && !missing[safeTo] {
			missing[safeTo] = true
			sb.WriteString(fmt.Sprintf("    %s{{\"%s (missing)\"}}\n", safeTo, escape(to)))
		}

		arrow := "-->"
		var labels []string
		if t.Guarded {
			labels = append(labels, "when")
		}
		if t.HasAction {
			labels = append(labels, "then")
		}
		if len(labels) > 0 {
			arrow = fmt.Sprintf("-- \"%s\" -->", strings.Join(labels, " / "))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, safeTo))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light fills in both themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Visited {
			safeID := sanitizeMermaidID(fmt.Sprint(id))
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.Current != nil {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(fmt.Sprint(overlay.Current))))
		}
	}

	return sb.String()
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "\"", "_")
	return r.Replace(id)
}
