package dsl

import "github.com/aretw0/abenteuer/pkg/domain"

// SceneBuilder provides a fluent API for configuring a scene.
type SceneBuilder struct {
	scene   domain.Scene
	builder *Builder
}

// Title sets the scene heading.
func (s *SceneBuilder) Title(title string) *SceneBuilder {
	s.scene.Title = title
	return s
}

// Location sets where the scene takes place.
func (s *SceneBuilder) Location(location string) *SceneBuilder {
	s.scene.Location = location
	return s
}

// Narrate appends a narration block.
func (s *SceneBuilder) Narrate(text string) *SceneBuilder {
	s.scene.ContentBlocks = append(s.scene.ContentBlocks, domain.Narration(text))
	return s
}

// Say appends a dialogue line with its English gloss.
func (s *SceneBuilder) Say(speaker, germanText, gloss string) *SceneBuilder {
	s.scene.ContentBlocks = append(s.scene.ContentBlocks, domain.Dialogue(speaker, germanText, gloss))
	return s
}

// Choose adds an outgoing choice to target.
func (s *SceneBuilder) Choose(id, text, target string) *SceneBuilder {
	s.scene.Choices = append(s.scene.Choices, domain.Choice{
		ID:          id,
		Text:        text,
		NextSceneID: target,
	})
	return s
}

// German sets the target-language label of the last added choice.
func (s *SceneBuilder) German(text string) *SceneBuilder {
	if c := s.last(); c != nil {
		c.GermanText = text
	}
	return s
}

// Feedback makes the last added choice a deferred transition showing msg.
func (s *SceneBuilder) Feedback(msg string) *SceneBuilder {
	if c := s.last(); c != nil {
		c.Feedback = msg
	}
	return s
}

// Note attaches a language note to the scene.
func (s *SceneBuilder) Note(note domain.LanguageNote) *SceneBuilder {
	s.scene.LanguageNote = &note
	return s
}

// End marks the scene as an explicit ending.
func (s *SceneBuilder) End() *SceneBuilder {
	s.scene.Terminal = true
	return s
}

// Build returns the underlying domain.Scene.
// This is primarily used by the Builder, but exposed for advanced usage.
func (s *SceneBuilder) Build() domain.Scene {
	return s.scene
}

func (s *SceneBuilder) last() *domain.Choice {
	if len(s.scene.Choices) == 0 {
		return nil
	}
	return &s.scene.Choices[len(s.scene.Choices)-1]
}
