package dsl

import (
	"fmt"

	"github.com/aretw0/abenteuer/internal/validator"
	"github.com/aretw0/abenteuer/pkg/domain"
)

// Builder manages the story construction.
type Builder struct {
	id    string
	start string
	order []string
	nodes map[string]*SceneBuilder
}

// New creates a new story builder.
func New(id, start string) *Builder {
	return &Builder{
		id:    id,
		start: start,
		nodes: make(map[string]*SceneBuilder),
	}
}

// Add creates a new scene in the story.
// If the scene already exists, it returns the existing builder.
func (b *Builder) Add(id string) *SceneBuilder {
	if sb, ok := b.nodes[id]; ok {
		return sb
	}
	sb := &SceneBuilder{
		scene:   domain.Scene{ID: id},
		builder: b,
	}
	b.nodes[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Build compiles the scenes into a validated story. Scenes keep the order
// they were added in.
func (b *Builder) Build() (*domain.Story, error) {
	story := &domain.Story{
		ID:           b.id,
		StartSceneID: b.start,
		Scenes:       make([]domain.Scene, 0, len(b.order)),
	}
	for _, id := range b.order {
		story.Scenes = append(story.Scenes, b.nodes[id].scene)
	}
	story.Index()

	if _, err := validator.ValidateStory(story); err != nil {
		return nil, fmt.Errorf("failed to build story: %w", err)
	}
	return story, nil
}
