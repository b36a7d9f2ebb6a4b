package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Hooks(t *testing.T) {
	c := New()
	h := c.Hooks()
	ctx := context.Background()

	enter := &domain.SceneEvent{EventBase: domain.EventBase{StoryID: "cafe"}, SceneID: "S1"}
	h.OnSceneEnter(ctx, enter)
	h.OnSceneEnter(ctx, enter)
	h.OnFeedback(ctx, &domain.FeedbackEvent{EventBase: domain.EventBase{StoryID: "cafe"}})
	h.OnComplete(ctx, &domain.SceneEvent{EventBase: domain.EventBase{StoryID: "cafe"}, SceneID: "S10"})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.sceneVisits.WithLabelValues("cafe", "S1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.feedback.WithLabelValues("cafe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.completions.WithLabelValues("cafe", "S10")))

	c.SessionStarted()
	c.SessionStarted()
	c.SessionEnded()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions))
}

func TestCollector_Handler(t *testing.T) {
	c := New()
	c.Hooks().OnSceneEnter(context.Background(), &domain.SceneEvent{EventBase: domain.EventBase{StoryID: "train"}, SceneID: "T1"})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `abenteuer_scene_visits_total{scene="T1",story="train"} 1`)
	assert.Contains(t, string(body), "abenteuer_active_sessions 0")
}
