package runtime

import (
	"github.com/aretw0/abenteuer/pkg/domain"
)

// Completion is the verdict of the completion detector for one scene.
type Completion struct {
	Terminal  bool
	FollowUps []domain.FollowUp
}

// Complete decides whether scene ends the traversal and what may follow.
// A nil scene (unresolvable) is a dead end with no follow-ups.
func Complete(scene *domain.Scene) Completion {
	if scene == nil || !scene.IsTerminal() {
		return Completion{}
	}
	return Completion{
		Terminal:  true,
		FollowUps: []domain.FollowUp{domain.FollowUpRestart, domain.FollowUpExit},
	}
}

// View projects the state into what a presentation layer renders.
func (e *Engine) View(state *domain.State) domain.View {
	view := domain.View{
		StoryID:         state.StoryID,
		PendingFeedback: state.PendingFeedback,
		CanGoBack:       state.CanGoBack(),
		History:         append([]string(nil), state.History...),
	}

	scene, ok := e.story.Scene(state.CurrentSceneID)
	if !ok {
		e.logger.Error("current scene cannot be resolved", "scene", state.CurrentSceneID)
		return view
	}

	view.Scene = scene
	completion := Complete(scene)
	view.Terminal = completion.Terminal
	view.FollowUps = completion.FollowUps
	return view
}
