package loam

import (
	"context"
	"testing"

	"github.com/aretw0/abenteuer/internal/testutils"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	dir := testutils.WriteStoryDir(t, "kiosk", map[string]string{
		"K1.md": `---
id: K1
start: true
title: Am Kiosk
blocks:
  - type: dialogue
    speaker: Verkäufer
    germanText: Was darf's sein?
    text: What can I get you?
choices:
  - id: paper
    text: Eine Zeitung, bitte.
    nextSceneId: K2
    feedback: Gut!
note:
  phrase: Zeitung
  translation: newspaper
  explanation: die Zeitung
---
You stop at a kiosk
on the corner.

It is raining.`,
		"K2.md": `---
title: Danke
---
You walk away with your paper.`,
	})

	loader, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, "kiosk", loader.StoryID)

	story, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "kiosk", story.ID)
	assert.Equal(t, "K1", story.StartSceneID)
	assert.Equal(t, []string{"K1", "K2"}, story.SceneIDs())

	k1, ok := story.Scene("K1")
	require.True(t, ok)
	require.Len(t, k1.ContentBlocks, 3)
	assert.Equal(t, domain.Narration("You stop at a kiosk on the corner."), k1.ContentBlocks[0])
	assert.Equal(t, domain.Narration("It is raining."), k1.ContentBlocks[1])
	assert.Equal(t, domain.BlockDialogue, k1.ContentBlocks[2].Type)
	require.NotNil(t, k1.LanguageNote)
	assert.Equal(t, "newspaper", k1.LanguageNote.Translation)

	paper, ok := k1.Choice("paper")
	require.True(t, ok)
	assert.Equal(t, "Gut!", paper.Feedback)

	k2, ok := story.Scene("K2")
	require.True(t, ok, "id is implied from filename")
	assert.True(t, k2.IsTerminal())
}

func TestLoader_DefaultStart(t *testing.T) {
	dir := testutils.WriteStoryDir(t, "mini", map[string]string{
		"start.md": "---\ntitle: Hallo\n---\nHello.",
	})

	loader, err := Open(dir)
	require.NoError(t, err)
	story, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultStartID, story.StartSceneID)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name: "multiple starts",
			files: map[string]string{
				"a.md": "---\nstart: true\n---\nA",
				"b.md": "---\nstart: true\n---\nB",
			},
		},
		{
			name: "dangling choice",
			files: map[string]string{
				"start.md": "---\nchoices:\n  - id: go\n    text: Go\n    nextSceneId: nowhere\n---\nA",
			},
		},
		{
			name: "no start scene",
			files: map[string]string{
				"a.md": "---\ntitle: A\n---\nA",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutils.WriteStoryDir(t, "broken", tt.files)
			loader, err := Open(dir)
			require.NoError(t, err)

			_, err = loader.Load(context.Background())
			assert.ErrorIs(t, err, domain.ErrInvalidStory)
		})
	}
}

func TestLoader_DetectsCollisions(t *testing.T) {
	dir := testutils.WriteStoryDir(t, "dupes", map[string]string{
		"foo.md":   "---\nid: foo\n---\nExplicit ID",
		"foo.json": `{"id": "foo"}`,
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestParagraphs(t *testing.T) {
	assert.Empty(t, paragraphs("  \n\n"))
	assert.Equal(t, []string{"a b", "c"}, paragraphs("a\r\nb\r\n\r\nc\n"))
}
