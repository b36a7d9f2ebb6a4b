package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/abenteuer/pkg/domain"
)

// GraphOverlay contains traversal data to visualize on the graph.
type GraphOverlay struct {
	VisitedScenes []string
	CurrentScene  string
}

// OverlayFromState builds an overlay from a session state.
func OverlayFromState(state *domain.State) *GraphOverlay {
	if state == nil {
		return nil
	}
	return &GraphOverlay{
		VisitedScenes: state.History,
		CurrentScene:  state.CurrentSceneID,
	}
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a story.
// It applies semantic styling:
// - Start: ((Circle))
// - Ending: ([Stadium])
// - Default: [Rectangle]
// Choices that show feedback before moving on are drawn dotted.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(story *domain.Story, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i := range story.Scenes {
		scene := &story.Scenes[i]
		safeID := sanitizeMermaidID(scene.ID)

		opener, closer := "[", "]"
		switch {
		case scene.ID == story.StartSceneID:
			opener, closer = "((", "))"
		case scene.IsTerminal():
			opener, closer = "([", "])"
		}

		label := scene.ID
		if scene.Title != "" {
			label = fmt.Sprintf("%s <br/> %s", scene.ID, escapeLabel(scene.Title))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, c := range scene.Choices {
			safeTo := sanitizeMermaidID(c.NextSceneID)
			text := escapeLabel(c.ID)
			arrow := fmt.Sprintf("-- \"%s\" -->", text)
			if c.Feedback != "" {
				arrow = fmt.Sprintf("-. \"%s\" .->", text)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedScenes {
			if !story.Has(id) {
				continue
			}
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentScene != "" && story.Has(overlay.CurrentScene) {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentScene)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
