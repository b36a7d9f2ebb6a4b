package domain

// State is the traversal snapshot of one session.
// Navigator operations never mutate a State; they return a new one.
type State struct {
	// StoryID identifies the story being traversed.
	StoryID string `json:"story_id"`

	// CurrentSceneID is the scene currently displayed.
	CurrentSceneID string `json:"current_scene_id"`

	// History lists visited scenes, oldest first. The last element is always CurrentSceneID.
	History []string `json:"history"`

	// PendingFeedback is the message shown while a deferred transition is in flight.
	PendingFeedback string `json:"pending_feedback,omitempty"`

	// PendingSceneID is the target of the deferred transition.
	// It is set if and only if a transition is pending.
	PendingSceneID string `json:"pending_scene_id,omitempty"`
}

// NewState creates a clean state starting at a specific scene.
func NewState(storyID, startSceneID string) *State {
	return &State{
		StoryID:        storyID,
		CurrentSceneID: startSceneID,
		History:        []string{startSceneID},
	}
}

// Pending reports whether a deferred transition is outstanding.
func (s *State) Pending() bool {
	return s.PendingSceneID != ""
}

// CanGoBack reports whether there is a scene before the current one.
func (s *State) CanGoBack() bool {
	return len(s.History) > 1
}

// Clone returns a deep copy safe for independent mutation.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = make([]string, len(s.History))
	copy(next.History, s.History)
	return &next
}
