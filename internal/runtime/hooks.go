package runtime

import (
	"context"
	"time"

	"github.com/aretw0/abenteuer/pkg/domain"
)

func (e *Engine) enterScene(ctx context.Context, state *domain.State) {
	e.logger.DebugContext(ctx, "scene entered", "scene", state.CurrentSceneID, "depth", len(state.History))

	if e.hooks.OnSceneEnter != nil {
		e.hooks.OnSceneEnter(ctx, e.sceneEvent(domain.EventSceneEnter, state.CurrentSceneID))
	}

	if scene, ok := e.story.Scene(state.CurrentSceneID); ok && scene.IsTerminal() {
		e.logger.DebugContext(ctx, "story complete", "scene", scene.ID)
		if e.hooks.OnComplete != nil {
			e.hooks.OnComplete(ctx, e.sceneEvent(domain.EventComplete, scene.ID))
		}
	}
}

func (e *Engine) leaveScene(ctx context.Context, state *domain.State) {
	if e.hooks.OnSceneLeave != nil {
		e.hooks.OnSceneLeave(ctx, e.sceneEvent(domain.EventSceneLeave, state.CurrentSceneID))
	}
}

func (e *Engine) emitFeedback(ctx context.Context, state *domain.State, choice *domain.Choice) {
	e.logger.DebugContext(ctx, "deferred transition started",
		"scene", state.CurrentSceneID,
		"choice", choice.ID,
		"target", choice.NextSceneID)

	if e.hooks.OnFeedback == nil {
		return
	}
	e.hooks.OnFeedback(ctx, &domain.FeedbackEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventFeedback,
			StoryID:   e.story.ID,
		},
		SceneID:  state.CurrentSceneID,
		ChoiceID: choice.ID,
		Message:  choice.Feedback,
	})
}

func (e *Engine) sceneEvent(typ domain.EventType, sceneID string) *domain.SceneEvent {
	return &domain.SceneEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			StoryID:   e.story.ID,
		},
		SceneID: sceneID,
	}
}
