package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a session ID is not registered.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionClosed is returned by operations on a torn-down session.
var ErrSessionClosed = errors.New("session closed")

// ErrStoryNotFound is returned when a story id is not in the catalog.
var ErrStoryNotFound = errors.New("story not found")

// ErrInvalidStory marks a structural defect in a story document.
var ErrInvalidStory = errors.New("invalid story")

// Navigation rejections. They leave the state untouched and are never shown
// to the user; see IsIgnorable.
var (
	ErrTransitionPending   = errors.New("a deferred transition is pending")
	ErrStaleScene          = errors.New("choice targets a scene that is no longer current")
	ErrChoiceNotFound      = errors.New("choice not available in current scene")
	ErrTerminalScene       = errors.New("current scene is terminal")
	ErrNoPendingTransition = errors.New("no deferred transition to commit")
)

// IsIgnorable reports whether err is a navigation rejection that hosts
// should swallow rather than surface.
func IsIgnorable(err error) bool {
	return errors.Is(err, ErrTransitionPending) ||
		errors.Is(err, ErrStaleScene) ||
		errors.Is(err, ErrChoiceNotFound) ||
		errors.Is(err, ErrTerminalScene) ||
		errors.Is(err, ErrNoPendingTransition)
}

// ValidationError lists every structural defect found in a story.
type ValidationError struct {
	StoryID string
	Issues  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("story '%s' has %d errors:\n- %s", e.StoryID, len(e.Issues), strings.Join(e.Issues, "\n- "))
}

// Unwrap allows errors.Is(err, ErrInvalidStory).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidStory
}
