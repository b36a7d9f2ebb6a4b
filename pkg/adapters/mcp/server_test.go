package mcp

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/abenteuer"
	"github.com/aretw0/abenteuer/internal/metrics"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	eng, err := abenteuer.New(context.Background(), abenteuer.WithFeedbackDelay(5*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return NewServer(eng, opts...)
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestListStories(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleListStories(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "- cafe:")
	assert.Contains(t, text, "- train:")
}

func TestPlaythrough(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	started, err := s.handleStart(ctx, toolRequest(nil), startArgs{Story: "cafe"})
	require.NoError(t, err)
	require.NotEmpty(t, started.SessionID)
	assert.Equal(t, "S1", started.View.Scene.ID)
	assert.Contains(t, started.Markdown, "# ")

	resp, err := s.handleChoose(ctx, toolRequest(nil), chooseArgs{SessionID: started.SessionID, SceneID: "S1", ChoiceID: "go-cafe"})
	require.NoError(t, err)
	assert.Equal(t, "S2", resp.View.Scene.ID)
	assert.Empty(t, resp.Feedback)

	// Feedback choice: the call returns after the deferred transition.
	resp, err = s.handleChoose(ctx, toolRequest(nil), chooseArgs{SessionID: started.SessionID, SceneID: "S2", ChoiceID: "order-coffee"})
	require.NoError(t, err)
	assert.Contains(t, resp.Feedback, "Ich hätte gerne")
	assert.Equal(t, "S3", resp.View.Scene.ID)
	assert.Empty(t, resp.View.PendingFeedback)

	// Stale scene ids are reported, not failed.
	resp, err = s.handleChoose(ctx, toolRequest(nil), chooseArgs{SessionID: started.SessionID, SceneID: "S2", ChoiceID: "order-tea"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Ignored)
	assert.Equal(t, "S3", resp.View.Scene.ID)

	resp, err = s.handleBack(ctx, toolRequest(nil), sessionArgs{SessionID: started.SessionID})
	require.NoError(t, err)
	assert.Equal(t, "S2", resp.View.Scene.ID)

	resp, err = s.handleRestart(ctx, toolRequest(nil), restartArgs{SessionID: started.SessionID, Start: "S10"})
	require.NoError(t, err)
	assert.Equal(t, "S10", resp.View.Scene.ID)
	assert.True(t, resp.View.Terminal)

	resp, err = s.handleRestart(ctx, toolRequest(nil), restartArgs{SessionID: started.SessionID})
	require.NoError(t, err)
	assert.Equal(t, "S1", resp.View.Scene.ID)

	resp, err = s.handleGetScene(ctx, toolRequest(nil), sessionArgs{SessionID: started.SessionID})
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, resp.View.History)

	res, err := s.handleEnd(ctx, toolRequest(map[string]any{"session_id": started.SessionID}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	_, err = s.handleGetScene(ctx, toolRequest(nil), sessionArgs{SessionID: started.SessionID})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestChoose_AwaitTimeoutReturnsPendingView(t *testing.T) {
	eng, err := abenteuer.New(context.Background(), abenteuer.WithFeedbackDelay(time.Hour))
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	s := NewServer(eng, WithAwaitTimeout(10*time.Millisecond))
	ctx := context.Background()

	started, err := s.handleStart(ctx, toolRequest(nil), startArgs{Story: "train"})
	require.NoError(t, err)

	resp, err := s.handleChoose(ctx, toolRequest(nil), chooseArgs{SessionID: started.SessionID, SceneID: "T1", ChoiceID: "ask"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Feedback)
	assert.Equal(t, "T1", resp.View.Scene.ID)
	assert.Equal(t, resp.Feedback, resp.View.PendingFeedback)
}

func TestStart_UnknownStory(t *testing.T) {
	s := newTestServer(t)
	_, err := s.handleStart(context.Background(), toolRequest(nil), startArgs{Story: "atlantis"})
	assert.ErrorIs(t, err, domain.ErrStoryNotFound)
}

func TestEnd_MissingSession(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleEnd(context.Background(), toolRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleEnd(context.Background(), toolRequest(map[string]any{"session_id": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestTranslate(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleTranslate(context.Background(), toolRequest(map[string]any{"text": "Ein Kaffee, bitte!"}))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Kaffee: coffee")
	assert.Contains(t, text, "bitte: please")
	assert.NotContains(t, text, ",:")
}

func TestSessionGauge(t *testing.T) {
	collector := metrics.New()
	eng, err := abenteuer.New(context.Background(), abenteuer.WithSessionTracker(collector))
	require.NoError(t, err)
	s := NewServer(eng)
	ctx := context.Background()

	scrape := func() string {
		rec := httptest.NewRecorder()
		collector.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
		return rec.Body.String()
	}

	first, err := s.handleStart(ctx, toolRequest(nil), startArgs{Story: "cafe"})
	require.NoError(t, err)
	_, err = s.handleStart(ctx, toolRequest(nil), startArgs{Story: "train"})
	require.NoError(t, err)
	assert.Contains(t, scrape(), "abenteuer_active_sessions 2")

	_, err = s.handleEnd(ctx, toolRequest(map[string]any{"session_id": first.SessionID}))
	require.NoError(t, err)
	assert.Contains(t, scrape(), "abenteuer_active_sessions 1")

	// Shutdown releases the rest.
	eng.Close()
	assert.Contains(t, scrape(), "abenteuer_active_sessions 0")
}
