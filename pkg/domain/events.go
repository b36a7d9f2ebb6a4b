package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSceneEnter EventType = "scene_enter"
	EventSceneLeave EventType = "scene_leave"
	EventFeedback   EventType = "feedback"
	EventComplete   EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	StoryID   string    `json:"story_id"`
}

// SceneEvent represents entry into or exit from a scene.
type SceneEvent struct {
	EventBase
	SceneID string `json:"scene_id"`
}

// FeedbackEvent is emitted when a choice with feedback starts a deferred transition.
type FeedbackEvent struct {
	EventBase
	SceneID  string `json:"scene_id"`
	ChoiceID string `json:"choice_id"`
	Message  string `json:"message"`
}

// LifecycleHooks defines callbacks for navigator observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnSceneEnter func(context.Context, *SceneEvent)
	OnSceneLeave func(context.Context, *SceneEvent)
	OnFeedback   func(context.Context, *FeedbackEvent)
	OnComplete   func(context.Context, *SceneEvent)
}

// ChainHooks combines several hook sets; each event is delivered to every
// non-nil callback in argument order.
func ChainHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range sets {
		out.OnSceneEnter = chainScene(out.OnSceneEnter, h.OnSceneEnter)
		out.OnSceneLeave = chainScene(out.OnSceneLeave, h.OnSceneLeave)
		out.OnComplete = chainScene(out.OnComplete, h.OnComplete)
		out.OnFeedback = chainFeedback(out.OnFeedback, h.OnFeedback)
	}
	return out
}

func chainScene(a, b func(context.Context, *SceneEvent)) func(context.Context, *SceneEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *SceneEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainFeedback(a, b func(context.Context, *FeedbackEvent)) func(context.Context, *FeedbackEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *FeedbackEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
