package domain

// FollowUp names an action the presentation layer may offer at a terminal scene.
type FollowUp string

const (
	// FollowUpRestart restarts the current story from its entry scene.
	FollowUpRestart FollowUp = "restart"
	// FollowUpExit returns the user to story selection. It is a pure signal to the host.
	FollowUpExit FollowUp = "exit"
)

// View is everything a presentation layer needs to render the current position.
type View struct {
	StoryID string `json:"story_id"`

	// Scene is nil when the current scene cannot be resolved. Hosts render a
	// "not found" state with no forward action in that case.
	Scene *Scene `json:"scene"`

	PendingFeedback string     `json:"pending_feedback,omitempty"`
	CanGoBack       bool       `json:"can_go_back"`
	Terminal        bool       `json:"terminal"`
	FollowUps       []FollowUp `json:"follow_ups,omitempty"`
	History         []string   `json:"history"`
}

// Found reports whether the current scene was resolved.
func (v View) Found() bool {
	return v.Scene != nil
}
