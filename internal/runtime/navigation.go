package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/abenteuer/pkg/domain"
)

// Select applies a choice made in sceneID to the state.
//
// A choice without feedback advances immediately. A choice with feedback
// starts a deferred transition: the returned state carries the feedback and
// the pending target while the current scene stays put. Commit completes it.
//
// Rejected selections return the input state (cloned) together with an
// ignorable error; see domain.IsIgnorable.
func (e *Engine) Select(ctx context.Context, state *domain.State, sceneID, choiceID string) (*domain.State, error) {
	if state.Pending() {
		return state.Clone(), domain.ErrTransitionPending
	}
	if sceneID != state.CurrentSceneID {
		e.logger.DebugContext(ctx, "stale choice ignored",
			"scene", sceneID,
			"current", state.CurrentSceneID,
			"choice", choiceID)
		return state.Clone(), fmt.Errorf("%w: '%s' (current '%s')", domain.ErrStaleScene, sceneID, state.CurrentSceneID)
	}

	scene, ok := e.story.Scene(state.CurrentSceneID)
	if !ok {
		return state.Clone(), fmt.Errorf("%w: scene '%s'", domain.ErrChoiceNotFound, state.CurrentSceneID)
	}
	if scene.IsTerminal() {
		return state.Clone(), domain.ErrTerminalScene
	}

	choice, ok := scene.Choice(choiceID)
	if !ok {
		return state.Clone(), fmt.Errorf("%w: '%s' in scene '%s'", domain.ErrChoiceNotFound, choiceID, scene.ID)
	}

	if choice.Feedback != "" {
		next := state.Clone()
		next.PendingFeedback = choice.Feedback
		next.PendingSceneID = choice.NextSceneID
		e.emitFeedback(ctx, next, choice)
		return next, nil
	}

	return e.transitionTo(ctx, state, choice.NextSceneID), nil
}

// Commit completes a deferred transition started by Select.
func (e *Engine) Commit(ctx context.Context, state *domain.State) (*domain.State, error) {
	if !state.Pending() {
		return state.Clone(), domain.ErrNoPendingTransition
	}

	target := state.PendingSceneID
	cleared := state.Clone()
	cleared.PendingFeedback = ""
	cleared.PendingSceneID = ""
	return e.transitionTo(ctx, cleared, target), nil
}

// Back returns to the previously visited scene.
// At the entry scene it is a no-op. While a deferred transition is pending
// it is rejected so that the pending push cannot land on a popped history.
func (e *Engine) Back(ctx context.Context, state *domain.State) (*domain.State, error) {
	if state.Pending() {
		return state.Clone(), domain.ErrTransitionPending
	}
	if !state.CanGoBack() {
		return state.Clone(), nil
	}

	e.leaveScene(ctx, state)

	next := state.Clone()
	next.History = next.History[:len(next.History)-1]
	next.CurrentSceneID = next.History[len(next.History)-1]

	e.enterScene(ctx, next)
	return next, nil
}

// transitionTo moves the state to target and records it in history.
func (e *Engine) transitionTo(ctx context.Context, state *domain.State, target string) *domain.State {
	e.leaveScene(ctx, state)

	next := state.Clone()
	next.CurrentSceneID = target
	next.History = append(next.History, target)

	e.enterScene(ctx, next)
	return next
}
