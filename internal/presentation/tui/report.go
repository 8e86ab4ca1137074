package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/libstate/internal/validator"
	"github.com/aretw0/libstate/pkg/graph"
)

// Summary is the input of the inspect report.
type Summary[K comparable] struct {
	Name        string
	Description string
	Graph       graph.Description[K]
	Validation  validator.Report
}

// Markdown renders the summary as a markdown document.
func Markdown[K comparable](s Summary[K]) string {
	var sb strings.Builder

	title := s.Name
	if title == "" {
		title = "State graph"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if s.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", s.Description)
	}

	fmt.Fprintf(&sb, "## States (%d)\n\n", len(s.Graph.States))
	sb.WriteString("| State | Entry | Do | Exit |\n|---|---|---|---|\n")
	for _, st := range s.Graph.States {
		fmt.Fprintf(&sb, "| `%v` | %s | %s | %s |\n", st.ID, mark(st.HasEntry), mark(st.HasDo), mark(st.HasExit))
	}

	fmt.Fprintf(&sb, "\n## Transitions (%d)\n\n", len(s.Graph.Transitions))
	sb.WriteString("| From | To | Guarded | Action |\n|---|---|---|---|\n")
	for _, t := range s.Graph.Transitions {
		from := fmt.Sprintf("`%v`", t.Source)
		if t.Entry {
			from = "*start*"
		}
		fmt.Fprintf(&sb, "| %s | `%v` | %s | %s |\n", from, t.Destination, mark(t.Guarded), mark(t.HasAction))
	}

	sb.WriteString("\n## Validation\n\n")
	if len(s.Validation.Findings) == 0 {
		fmt.Fprintf(&sb, "No problems found. %d states reachable.\n", s.Validation.Reachable)
		return sb.String()
	}
	for _, f := range s.Validation.Findings {
		fmt.Fprintf(&sb, "- **%s**: %s\n", f.Severity, f.Error())
	}
	return sb.String()
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
