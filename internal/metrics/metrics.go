// Package metrics exposes Prometheus collectors for story traversal.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records scene visits, feedback, completions and live sessions.
type Collector struct {
	registry *prometheus.Registry

	sceneVisits *prometheus.CounterVec
	feedback    *prometheus.CounterVec
	completions *prometheus.CounterVec
	sessions    prometheus.Gauge
}

// New creates a Collector on its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		sceneVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abenteuer_scene_visits_total",
				Help: "Total number of scene visits",
			},
			[]string{"story", "scene"},
		),
		feedback: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abenteuer_feedback_total",
				Help: "Choices that showed feedback before advancing",
			},
			[]string{"story"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abenteuer_completions_total",
				Help: "Traversals that reached an ending",
			},
			[]string{"story", "scene"},
		),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "abenteuer_active_sessions",
			Help: "Sessions currently held by the session manager",
		}),
	}
	c.registry.MustRegister(c.sceneVisits, c.feedback, c.completions, c.sessions)
	return c
}

// Hooks returns lifecycle hooks that feed the collectors.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(_ context.Context, e *domain.SceneEvent) {
			c.sceneVisits.WithLabelValues(e.StoryID, e.SceneID).Inc()
		},
		OnFeedback: func(_ context.Context, e *domain.FeedbackEvent) {
			c.feedback.WithLabelValues(e.StoryID).Inc()
		},
		OnComplete: func(_ context.Context, e *domain.SceneEvent) {
			c.completions.WithLabelValues(e.StoryID, e.SceneID).Inc()
		},
	}
}

// SessionStarted increments the live session gauge.
func (c *Collector) SessionStarted() {
	c.sessions.Inc()
}

// SessionEnded decrements the live session gauge.
func (c *Collector) SessionEnded() {
	c.sessions.Dec()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
