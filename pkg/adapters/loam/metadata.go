package loam

import (
	"github.com/aretw0/abenteuer/pkg/domain"
)

// SceneMetadata represents the frontmatter of a scene document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type SceneMetadata struct {
	ID       string `json:"id" mapstructure:"id"`
	Title    string `json:"title" mapstructure:"title"`
	Location string `json:"location" mapstructure:"location"`

	// Start marks the story's default entry scene.
	Start bool `json:"start" mapstructure:"start"`
	// Terminal marks an explicit ending even when choices are present.
	Terminal bool `json:"terminal" mapstructure:"terminal"`

	// Blocks are appended after the narration taken from the body.
	Blocks  []domain.ContentBlock `json:"blocks" mapstructure:"blocks"`
	Choices []domain.Choice       `json:"choices" mapstructure:"choices"`
	Note    *domain.LanguageNote  `json:"note,omitempty" mapstructure:"note"`
}
