package dsl

import (
	"testing"

	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New("cafe", "S1")

	b.Add("S1").
		Title("Im Café").
		Location("Berlin").
		Narrate("You enter the café.").
		Say("Kellnerin", "Guten Tag!", "Good day!").
		Choose("coffee", "A coffee, please.", "S2").German("Einen Kaffee, bitte.").Feedback("Perfekt!").
		Choose("leave", "Leave", "S3")

	b.Add("S2").Narrate("The coffee arrives.").End()
	b.Add("S3").Narrate("You go home.")

	story, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "cafe", story.ID)
	assert.Equal(t, []string{"S1", "S2", "S3"}, story.SceneIDs())

	s1, ok := story.Scene("S1")
	require.True(t, ok)
	assert.Equal(t, "Im Café", s1.Title)
	require.Len(t, s1.ContentBlocks, 2)
	assert.Equal(t, domain.BlockDialogue, s1.ContentBlocks[1].Type)
	assert.Equal(t, "Kellnerin", s1.ContentBlocks[1].Speaker)

	coffee, ok := s1.Choice("coffee")
	require.True(t, ok)
	assert.Equal(t, "Einen Kaffee, bitte.", coffee.GermanText)
	assert.Equal(t, "Perfekt!", coffee.Feedback)

	leave, _ := s1.Choice("leave")
	assert.Empty(t, leave.Feedback)

	s2, _ := story.Scene("S2")
	assert.True(t, s2.IsTerminal())
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New("x", "A")
	b.Add("A").Choose("go", "Go", "B")
	b.Add("A").Narrate("again")
	b.Add("B")

	story, err := b.Build()
	require.NoError(t, err)
	require.Len(t, story.Scenes, 2)

	a, _ := story.Scene("A")
	assert.Len(t, a.Choices, 1)
	assert.Len(t, a.ContentBlocks, 1)
}

func TestBuilder_InvalidStory(t *testing.T) {
	b := New("broken", "A")
	b.Add("A").Choose("go", "Go", "missing")

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidStory)
}
