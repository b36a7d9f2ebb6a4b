package tui

import (
	"testing"

	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func scene() *domain.Scene {
	return &domain.Scene{
		ID:       "S2",
		Title:    "Im Café",
		Location: "Berlin",
		ContentBlocks: []domain.ContentBlock{
			domain.Narration("You step inside."),
			domain.Dialogue("Kellnerin", "Was darf es sein?", "What can I get you?"),
		},
		Choices: []domain.Choice{
			{ID: "coffee", Text: "A coffee, please.", GermanText: "Einen Kaffee, bitte.", NextSceneID: "S3"},
			{ID: "leave", Text: "Leave", NextSceneID: "S4"},
		},
		LanguageNote: &domain.LanguageNote{Phrase: "bitte", Translation: "please", Pronunciation: "BIT-te", Grammar: "adverb"},
	}
}

func TestSceneMarkdown_Choices(t *testing.T) {
	out := SceneMarkdown(domain.View{Scene: scene()})

	assert.Contains(t, out, "# Im Café")
	assert.Contains(t, out, "*Berlin*")
	assert.Contains(t, out, "You step inside.")
	assert.Contains(t, out, "> **Kellnerin:** Was darf es sein?")
	assert.Contains(t, out, "*What can I get you?*")
	assert.Contains(t, out, "**bitte** = please")
	assert.Contains(t, out, "`BIT-te`")
	assert.Contains(t, out, "*Grammar:* adverb")
	assert.Contains(t, out, "1. Einen Kaffee, bitte. *(A coffee, please.)*")
	assert.Contains(t, out, "2. Leave\n")
}

func TestSceneMarkdown_Pending(t *testing.T) {
	out := SceneMarkdown(domain.View{Scene: scene(), PendingFeedback: "Sehr gut!"})
	assert.Contains(t, out, "**Sehr gut!**")
	assert.NotContains(t, out, "1. ")
}

func TestSceneMarkdown_Terminal(t *testing.T) {
	end := &domain.Scene{ID: "S10", ContentBlocks: []domain.ContentBlock{domain.Narration("Bye.")}}
	out := SceneMarkdown(domain.View{Scene: end, Terminal: true})
	assert.Contains(t, out, "# S10", "falls back to the id")
	assert.Contains(t, out, MsgStoryComplete)
}

func TestSceneMarkdown_NotFound(t *testing.T) {
	assert.Equal(t, "# Scene not found\n", SceneMarkdown(domain.View{}))
}

func TestPlainRenderer(t *testing.T) {
	out, err := PlainRenderer("# x")
	assert.NoError(t, err)
	assert.Equal(t, "# x", out)
}
