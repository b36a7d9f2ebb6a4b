package http

import (
	"github.com/aretw0/abenteuer/pkg/catalog"
	"github.com/aretw0/abenteuer/pkg/domain"
)

type storySummary struct {
	catalog.Entry
	StartSceneID string `json:"start_scene_id"`
	SceneCount   int    `json:"scene_count"`
}

type storyDetail struct {
	storySummary
	Scenes []domain.Scene `json:"scenes"`
}

func summarize(e catalog.Entry) storySummary {
	return storySummary{Entry: e, StartSceneID: e.StartSceneID(), SceneCount: e.SceneCount()}
}

type createSessionRequest struct {
	Story string `json:"story"`
	Start string `json:"start,omitempty"`
}

type chooseRequest struct {
	SceneID  string `json:"scene_id"`
	ChoiceID string `json:"choice_id"`
}

type resetRequest struct {
	Start string `json:"start,omitempty"`
}

type annotateRequest struct {
	Text string `json:"text"`
}

type sessionResponse struct {
	ID   string      `json:"id"`
	View domain.View `json:"view"`
	// Ignored carries the reason a navigation event had no effect.
	Ignored string `json:"ignored,omitempty"`
}

type translationResponse struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Known       bool   `json:"known"`
}

type errorResponse struct {
	Error string `json:"error"`
}
