package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/abenteuer/internal/runtime"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/aretw0/abenteuer/pkg/dsl"
	"github.com/aretw0/abenteuer/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedbackStory(t *testing.T) *runtime.Engine {
	t.Helper()
	b := dsl.New("feedback", "S1")
	b.Add("S1").Narrate("Start").Choose("next", "Weiter", "S3")
	b.Add("S3").Say("Kellner", "Was darf's sein?", "What can I get you?").
		Choose("order", "Ich hätte gerne einen Kaffee.", "S4").Feedback("Good job!").
		Choose("quiet", "...", "S4")
	b.Add("S4").Narrate("Ende")

	story, err := b.Build()
	require.NoError(t, err)
	engine, err := runtime.NewEngine(story)
	require.NoError(t, err)
	return engine
}

func TestSession_DeferredTransition(t *testing.T) {
	sched := &manualScheduler{}
	var changes []domain.View
	ctx := context.Background()

	s := session.New(ctx, feedbackStory(t), "S3",
		session.WithScheduler(sched),
		session.WithFeedbackDelay(2*time.Second),
		session.WithOnChange(func(v domain.View) { changes = append(changes, v) }),
	)

	view, err := s.Choose(ctx, "S3", "order")
	require.NoError(t, err)
	assert.Equal(t, "Good job!", view.PendingFeedback)
	assert.Equal(t, "S3", view.Scene.ID)
	require.Equal(t, 1, sched.Count())
	assert.Equal(t, 2*time.Second, sched.timers[0].delay)

	// A second choice while pending is ignored and schedules nothing.
	_, err = s.Choose(ctx, "S3", "quiet")
	assert.ErrorIs(t, err, domain.ErrTransitionPending)
	assert.Equal(t, 1, sched.Count())

	sched.FireAll()

	view = s.View()
	assert.Equal(t, "S4", view.Scene.ID)
	assert.Empty(t, view.PendingFeedback)
	assert.Equal(t, []string{"S3", "S4"}, view.History)
	assert.True(t, view.Terminal)
	require.Len(t, changes, 1)
	assert.Equal(t, "S4", changes[0].Scene.ID)
}

func TestSession_ResetInvalidatesPendingTransition(t *testing.T) {
	sched := &manualScheduler{}
	ctx := context.Background()
	s := session.New(ctx, feedbackStory(t), "S3", session.WithScheduler(sched))

	_, err := s.Choose(ctx, "S3", "order")
	require.NoError(t, err)

	view, err := s.Reset(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, view.History)
	assert.True(t, sched.timers[0].stopped)

	// The stale callback fires anyway (lost race with Stop) and must be discarded.
	sched.FireAll()
	view = s.View()
	assert.Equal(t, "S1", view.Scene.ID)
	assert.Equal(t, []string{"S1"}, view.History)
}

func TestSession_CloseInvalidatesPendingTransition(t *testing.T) {
	sched := &manualScheduler{}
	ctx := context.Background()
	s := session.New(ctx, feedbackStory(t), "S3", session.WithScheduler(sched))

	_, err := s.Choose(ctx, "S3", "order")
	require.NoError(t, err)
	before := s.State()

	s.Close()
	sched.FireAll()

	assert.True(t, s.Closed())
	assert.Equal(t, before, s.State())

	_, err = s.Choose(ctx, "S3", "order")
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	_, err = s.Back(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	_, err = s.Restart(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestSession_ImmediateAndBack(t *testing.T) {
	sched := &manualScheduler{}
	ctx := context.Background()
	s := session.New(ctx, feedbackStory(t), "", session.WithScheduler(sched))

	view, err := s.Choose(ctx, "S1", "next")
	require.NoError(t, err)
	assert.Equal(t, "S3", view.Scene.ID)
	assert.True(t, view.CanGoBack)
	assert.Equal(t, 0, sched.Count())

	// Stale choice from the previous screen.
	_, err = s.Choose(ctx, "S1", "next")
	assert.True(t, domain.IsIgnorable(err))

	view, err = s.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, "S1", view.Scene.ID)
	assert.False(t, view.CanGoBack)
}

func TestSession_Restart(t *testing.T) {
	ctx := context.Background()
	s := session.New(ctx, feedbackStory(t), "S3", session.WithScheduler(&manualScheduler{}))

	_, err := s.Choose(ctx, "S3", "quiet")
	require.NoError(t, err)

	view, err := s.Restart(ctx)
	require.NoError(t, err)
	assert.Equal(t, "S3", view.Scene.ID)
	assert.Equal(t, []string{"S3"}, view.History)
}

func TestSession_Await(t *testing.T) {
	ctx := context.Background()
	s := session.New(ctx, feedbackStory(t), "S3", session.WithFeedbackDelay(10*time.Millisecond))

	_, err := s.Choose(ctx, "S3", "order")
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	view, err := s.Await(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, "S4", view.Scene.ID)
	assert.Empty(t, view.PendingFeedback)
}

func TestSession_AwaitCancelled(t *testing.T) {
	ctx := context.Background()
	sched := &manualScheduler{}
	s := session.New(ctx, feedbackStory(t), "S3", session.WithScheduler(sched))

	_, err := s.Choose(ctx, "S3", "order")
	require.NoError(t, err)

	waitCtx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Await(waitCtx)
	assert.ErrorIs(t, err, context.Canceled)
}
