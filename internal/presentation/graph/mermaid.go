package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
)

const (
	startID = "__start__"
	endID   = "__end__"
)

// GraphOverlay contains run data to highlight on the graph.
type GraphOverlay struct {
	VisitedSteps []domain.StepID
	CurrentStep  domain.StepID
}

// GenerateMermaid produces a Mermaid flowchart for the workflow.
// It applies semantic styling:
// - Start/End: ((Circle))
// - Terminal step: ([Stadium])
// - Default: [Rectangle]
// Labeled edges carry their routing label. Overlay styles mark visited and current steps.
func GenerateMermaid(steps []domain.Step, entry domain.StepID, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	fmt.Fprintf(&sb, "    %s((\"start\"))\n", startID)
	fmt.Fprintf(&sb, "    %s((\"end\"))\n", endID)
	if entry != "" {
		fmt.Fprintf(&sb, "    %s --> %s\n", startID, sanitizeMermaidID(string(entry)))
	}

	for _, step := range steps {
		safeID := sanitizeMermaidID(string(step.ID))

		opener, closer := "[", "]"
		if step.Terminal() {
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, step.ID, closer)

		for _, t := range step.Transitions {
			safeTo := sanitizeMermaidID(string(t.ToStepID))
			arrow := "-->"
			if t.Label != "" {
				safeLabel := strings.ReplaceAll(t.Label, "\"", "'")
				arrow = fmt.Sprintf("-- \"%s\" -->", safeLabel)
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeID, arrow, safeTo)
		}
		if step.Terminal() {
			fmt.Fprintf(&sb, "    %s --> %s\n", safeID, endID)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both light and dark themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, id := range overlay.VisitedSteps {
			safeID := sanitizeMermaidID(string(id))
			if !visited[safeID] && safeID != "" {
				visited[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.CurrentStep != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(string(overlay.CurrentStep)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
