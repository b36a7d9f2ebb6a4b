package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/abenteuer/internal/presentation/graph"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func sample() *domain.Story {
	story := &domain.Story{
		ID:           "cafe",
		StartSceneID: "S1",
		Scenes: []domain.Scene{
			{ID: "S1", Title: "Im \"Café\"", Choices: []domain.Choice{
				{ID: "order", NextSceneID: "S2", Feedback: "Gut!"},
				{ID: "leave-now", NextSceneID: "home.end"},
			}},
			{ID: "S2", Choices: []domain.Choice{{ID: "pay", NextSceneID: "home.end"}}},
			{ID: "home.end", Title: "Ende"},
		},
	}
	story.Index()
	return story
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(sample(), nil)

	for _, want := range []string{
		"graph TD\n",
		"S1((\"S1 <br/> Im 'Café'\"))",
		"S2[\"S2\"]",
		"home_end([\"home.end <br/> Ende\"])",
		"S1 -. \"order\" .-> S2",
		"S1 -- \"leave-now\" --> home_end",
		"S2 -- \"pay\" --> home_end",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	state := &domain.State{StoryID: "cafe", CurrentSceneID: "S2", History: []string{"S1", "S1", "S2", "ghost"}}
	out := graph.GenerateMermaid(sample(), graph.OverlayFromState(state))

	assert.Contains(t, out, "classDef visited")
	assert.Equal(t, 1, strings.Count(out, "class S1 visited;"), "visited scenes are deduplicated")
	assert.Contains(t, out, "class S2 current;")
	assert.NotContains(t, out, "ghost")
}

func TestOverlayFromState_Nil(t *testing.T) {
	assert.Nil(t, graph.OverlayFromState(nil))
}
