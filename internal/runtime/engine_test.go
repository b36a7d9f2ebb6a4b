package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/abenteuer/internal/runtime"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleStory builds S1 -> S2 -> S3 -(feedback)-> S4 (terminal).
// S2 also offers a direct path to S4.
func sampleStory() *domain.Story {
	story := &domain.Story{
		ID:           "sample",
		StartSceneID: "S1",
		Scenes: []domain.Scene{
			{
				ID:            "S1",
				Title:         "Guten Morgen",
				ContentBlocks: []domain.ContentBlock{domain.Narration("Anna wakes up.")},
				Choices:       []domain.Choice{{ID: "go", Text: "Go out", NextSceneID: "S2"}},
			},
			{
				ID: "S2",
				Choices: []domain.Choice{
					{ID: "cafe", Text: "Enter the café", NextSceneID: "S3"},
					{ID: "home", Text: "Go home", NextSceneID: "S4"},
				},
			},
			{
				ID: "S3",
				Choices: []domain.Choice{
					{ID: "order", Text: "Ich hätte gerne einen Kaffee.", NextSceneID: "S4", Feedback: "Good job!"},
				},
			},
			{ID: "S4", Title: "Ende"},
		},
	}
	story.Index()
	return story
}

func newEngine(t *testing.T) *runtime.Engine {
	t.Helper()
	engine, err := runtime.NewEngine(sampleStory())
	require.NoError(t, err)
	return engine
}

func assertHistoryInvariant(t *testing.T, state *domain.State) {
	t.Helper()
	require.NotEmpty(t, state.History)
	assert.Equal(t, state.CurrentSceneID, state.History[len(state.History)-1])
}

func TestEngine_Start(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	t.Run("Default start", func(t *testing.T) {
		state := engine.Start(ctx, "")
		assert.Equal(t, "S1", state.CurrentSceneID)
		assert.Equal(t, []string{"S1"}, state.History)
		assert.False(t, state.Pending())
		assert.Equal(t, "sample", state.StoryID)
	})

	t.Run("Requested start", func(t *testing.T) {
		state := engine.Start(ctx, "S3")
		assert.Equal(t, "S3", state.CurrentSceneID)
		assert.Equal(t, []string{"S3"}, state.History)
	})

	t.Run("Bogus start falls back", func(t *testing.T) {
		state := engine.Start(ctx, "bogus")
		assert.Equal(t, "S1", state.CurrentSceneID)
	})
}

func TestNewEngine_FailsFast(t *testing.T) {
	t.Run("Invalid start scene", func(t *testing.T) {
		story := sampleStory()
		story.StartSceneID = "missing"

		engine, err := runtime.NewEngine(story)
		assert.Nil(t, engine)
		assert.ErrorIs(t, err, domain.ErrInvalidStory)
	})

	t.Run("Dangling edge", func(t *testing.T) {
		story := sampleStory()
		story.Scenes[0].Choices[0].NextSceneID = "S99"

		_, err := runtime.NewEngine(story)
		assert.ErrorIs(t, err, domain.ErrInvalidStory)
		assert.Contains(t, err.Error(), "S99")
	})
}

func TestEngine_Select_Immediate(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	state := engine.Start(ctx, "")

	next, err := engine.Select(ctx, state, "S1", "go")
	require.NoError(t, err)
	assert.Equal(t, "S2", next.CurrentSceneID)
	assert.Equal(t, []string{"S1", "S2"}, next.History)
	assertHistoryInvariant(t, next)

	// Input state is never mutated.
	assert.Equal(t, "S1", state.CurrentSceneID)
	assert.Equal(t, []string{"S1"}, state.History)
}

func TestEngine_Select_Deferred(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	state := engine.Start(ctx, "S3")

	// Phase 1
	pending, err := engine.Select(ctx, state, "S3", "order")
	require.NoError(t, err)
	assert.Equal(t, "S3", pending.CurrentSceneID)
	assert.Equal(t, "Good job!", pending.PendingFeedback)
	assert.True(t, pending.Pending())
	assert.Equal(t, []string{"S3"}, pending.History)

	// Second selection while pending has no effect.
	again, err := engine.Select(ctx, pending, "S3", "order")
	assert.ErrorIs(t, err, domain.ErrTransitionPending)
	assert.Equal(t, pending, again)

	// Back while pending is rejected too.
	_, err = engine.Back(ctx, pending)
	assert.ErrorIs(t, err, domain.ErrTransitionPending)

	// Phase 2
	done, err := engine.Commit(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, "S4", done.CurrentSceneID)
	assert.Empty(t, done.PendingFeedback)
	assert.False(t, done.Pending())
	assert.Len(t, done.History, len(pending.History)+1)
	assertHistoryInvariant(t, done)

	_, err = engine.Commit(ctx, done)
	assert.ErrorIs(t, err, domain.ErrNoPendingTransition)
}

func TestEngine_Select_Rejections(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	state := engine.Start(ctx, "")

	tests := []struct {
		name     string
		state    *domain.State
		sceneID  string
		choiceID string
		expect   error
	}{
		{"Stale scene", state, "S2", "cafe", domain.ErrStaleScene},
		{"Unknown choice", state, "S1", "fly", domain.ErrChoiceNotFound},
		{"Choice of another scene", state, "S1", "cafe", domain.ErrChoiceNotFound},
		{"Terminal scene", engine.Start(ctx, "S4"), "S4", "anything", domain.ErrTerminalScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := engine.Select(ctx, tt.state, tt.sceneID, tt.choiceID)
			assert.ErrorIs(t, err, tt.expect)
			assert.True(t, domain.IsIgnorable(err))
			assert.Equal(t, tt.state.CurrentSceneID, next.CurrentSceneID)
			assert.Equal(t, tt.state.History, next.History)
		})
	}
}

func TestEngine_Back(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	// history = [S1, S2, S4]
	state := engine.Start(ctx, "")
	state, _ = engine.Select(ctx, state, "S1", "go")
	state, _ = engine.Select(ctx, state, "S2", "home")
	require.Equal(t, []string{"S1", "S2", "S4"}, state.History)

	state, err := engine.Back(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "S2", state.CurrentSceneID)
	assert.Equal(t, []string{"S1", "S2"}, state.History)

	state, err = engine.Back(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "S1", state.CurrentSceneID)
	assert.Equal(t, []string{"S1"}, state.History)

	state, err = engine.Back(ctx, state)
	require.NoError(t, err, "back at the entry point is a no-op")
	assert.Equal(t, []string{"S1"}, state.History)
}

func TestEngine_BackIsInverseOfForward(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	state := engine.Start(ctx, "")
	state, _ = engine.Select(ctx, state, "S1", "go")

	for _, choice := range []string{"cafe", "home"} {
		forward, err := engine.Select(ctx, state, "S2", choice)
		require.NoError(t, err)

		back, err := engine.Back(ctx, forward)
		require.NoError(t, err)
		assert.Equal(t, state.CurrentSceneID, back.CurrentSceneID)
		assert.Equal(t, state.History, back.History)
	}
}

func TestEngine_TerminalStability(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	state := engine.Start(ctx, "S4")

	for _, choice := range []string{"", "go", "order"} {
		next, _ := engine.Select(ctx, state, "S4", choice)
		assert.Equal(t, "S4", next.CurrentSceneID)
	}
}

func TestEngine_Reset(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	state := engine.Start(ctx, "")
	state, _ = engine.Select(ctx, state, "S1", "go")
	state, _ = engine.Select(ctx, state, "S2", "cafe")
	state, _ = engine.Select(ctx, state, "S3", "order")
	require.True(t, state.Pending())

	reset := engine.Reset(ctx, "S1")
	assert.Equal(t, []string{"S1"}, reset.History)
	assert.Empty(t, reset.PendingFeedback)
	assert.False(t, reset.Pending())
}

func TestEngine_HistoryInvariant_RandomWalk(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	story := engine.Story()

	ops := []string{"first", "back", "first", "first", "last", "back", "back", "back", "reset", "last", "first", "commit"}
	state := engine.Start(ctx, "")

	for _, op := range ops {
		switch op {
		case "first", "last":
			scene, _ := story.Scene(state.CurrentSceneID)
			if len(scene.Choices) == 0 {
				break
			}
			choice := scene.Choices[0]
			if op == "last" {
				choice = scene.Choices[len(scene.Choices)-1]
			}
			state, _ = engine.Select(ctx, state, state.CurrentSceneID, choice.ID)
		case "back":
			state, _ = engine.Back(ctx, state)
		case "commit":
			state, _ = engine.Commit(ctx, state)
		case "reset":
			state = engine.Reset(ctx, "")
		}
		assertHistoryInvariant(t, state)
	}
}

func TestEngine_View(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	view := engine.View(engine.Start(ctx, ""))
	require.True(t, view.Found())
	assert.Equal(t, "Guten Morgen", view.Scene.Title)
	assert.False(t, view.Terminal)
	assert.False(t, view.CanGoBack)
	assert.Empty(t, view.FollowUps)

	end := engine.View(engine.Start(ctx, "S4"))
	assert.True(t, end.Terminal)
	assert.Equal(t, []domain.FollowUp{domain.FollowUpRestart, domain.FollowUpExit}, end.FollowUps)

	lost := engine.View(&domain.State{StoryID: "sample", CurrentSceneID: "gone", History: []string{"gone"}})
	assert.False(t, lost.Found())
	assert.False(t, lost.Terminal)
}

func TestComplete(t *testing.T) {
	assert.False(t, runtime.Complete(nil).Terminal)
	assert.True(t, runtime.Complete(&domain.Scene{ID: "end"}).Terminal)
	assert.False(t, runtime.Complete(&domain.Scene{ID: "mid", Choices: []domain.Choice{{ID: "a"}}}).Terminal)
}
