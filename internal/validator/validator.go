package validator

import (
	"fmt"

	"github.com/aretw0/abenteuer/pkg/domain"
)

// Report holds non-fatal findings of a successful validation.
type Report struct {
	// Unreachable lists scenes that no path from the start scene visits.
	Unreachable []string
	// Reachable is the number of scenes visited from the start scene.
	Reachable int
}

// ValidateStory checks a story for structural defects.
// Any defect (dangling edge, bad start, duplicate ids) is fatal and
// returned as a *domain.ValidationError listing all issues.
func ValidateStory(story *domain.Story) (*Report, error) {
	if story == nil {
		return nil, &domain.ValidationError{Issues: []string{"story is nil"}}
	}

	var issues []string
	seen := make(map[string]bool, len(story.Scenes))

	if len(story.Scenes) == 0 {
		issues = append(issues, "story has no scenes")
	}

	for i, sc := range story.Scenes {
		if sc.ID == "" {
			issues = append(issues, fmt.Sprintf("scene #%d has an empty id", i))
			continue
		}
		if seen[sc.ID] {
			issues = append(issues, fmt.Sprintf("duplicate scene id '%s'", sc.ID))
		}
		seen[sc.ID] = true
	}

	if story.StartSceneID == "" {
		issues = append(issues, "startSceneId is empty")
	} else if !seen[story.StartSceneID] {
		issues = append(issues, fmt.Sprintf("startSceneId '%s' does not reference a scene", story.StartSceneID))
	}

	for _, sc := range story.Scenes {
		choiceIDs := make(map[string]bool, len(sc.Choices))
		for _, ch := range sc.Choices {
			if ch.ID == "" {
				issues = append(issues, fmt.Sprintf("scene '%s' has a choice with an empty id", sc.ID))
			} else if choiceIDs[ch.ID] {
				issues = append(issues, fmt.Sprintf("scene '%s' has duplicate choice id '%s'", sc.ID, ch.ID))
			}
			choiceIDs[ch.ID] = true

			if !seen[ch.NextSceneID] {
				issues = append(issues, fmt.Sprintf("missing scene '%s' (choice '%s' in scene '%s')", ch.NextSceneID, ch.ID, sc.ID))
			}
		}

		for j, block := range sc.ContentBlocks {
			switch block.Type {
			case domain.BlockNarration:
			case domain.BlockDialogue:
				if block.GermanText == "" {
					issues = append(issues, fmt.Sprintf("scene '%s' block #%d: dialogue without germanText", sc.ID, j))
				}
			default:
				issues = append(issues, fmt.Sprintf("scene '%s' block #%d: unknown block type '%s'", sc.ID, j, block.Type))
			}
		}
	}

	if len(issues) > 0 {
		return nil, &domain.ValidationError{StoryID: story.ID, Issues: issues}
	}

	return crawl(story), nil
}

// crawl walks the graph breadth-first from the start scene.
func crawl(story *domain.Story) *Report {
	visited := make(map[string]bool)
	queue := []string{story.StartSceneID}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		sc, ok := story.Scene(currentID)
		if !ok {
			continue
		}
		for _, ch := range sc.Choices {
			if !visited[ch.NextSceneID] {
				queue = append(queue, ch.NextSceneID)
			}
		}
	}

	report := &Report{Reachable: len(visited)}
	for _, sc := range story.Scenes {
		if !visited[sc.ID] {
			report.Unreachable = append(report.Unreachable, sc.ID)
		}
	}
	return report
}
