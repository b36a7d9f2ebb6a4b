package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/abenteuer/pkg/domain"
)

// Messages shown by the terminal surfaces.
const (
	MsgSceneNotFound = "Scene not found"
	MsgStoryComplete = "The End. Choose another scenario to keep practicing."
)

// SceneMarkdown formats a view as markdown: heading, content blocks,
// language note, then either the numbered choices, the pending feedback or
// the ending message.
func SceneMarkdown(view domain.View) string {
	if !view.Found() {
		return "# " + MsgSceneNotFound + "\n"
	}

	scene := view.Scene
	var sb strings.Builder

	title := scene.Title
	if title == "" {
		title = scene.ID
	}
	sb.WriteString("# " + title + "\n\n")
	if scene.Location != "" {
		sb.WriteString("*" + scene.Location + "*\n\n")
	}

	for _, b := range scene.ContentBlocks {
		switch b.Type {
		case domain.BlockDialogue:
			sb.WriteString(fmt.Sprintf("> **%s:** %s\n>\n> *%s*\n\n", b.Speaker, b.GermanText, b.Text))
		default:
			sb.WriteString(b.Text + "\n\n")
		}
	}

	if note := scene.LanguageNote; note != nil {
		sb.WriteString("---\n\n")
		sb.WriteString(fmt.Sprintf("**%s** = %s\n\n", note.Phrase, note.Translation))
		if note.Pronunciation != "" {
			sb.WriteString(fmt.Sprintf("Pronunciation: `%s`\n\n", note.Pronunciation))
		}
		if note.Explanation != "" {
			sb.WriteString(note.Explanation + "\n\n")
		}
		if note.Grammar != "" {
			sb.WriteString("*Grammar:* " + note.Grammar + "\n\n")
		}
	}

	switch {
	case view.PendingFeedback != "":
		sb.WriteString("---\n\n**" + view.PendingFeedback + "**\n")
	case view.Terminal:
		sb.WriteString("---\n\n**" + MsgStoryComplete + "**\n")
	default:
		sb.WriteString("---\n\n")
		for i, c := range scene.Choices {
			label := c.Text
			if c.GermanText != "" && c.GermanText != c.Text {
				label = fmt.Sprintf("%s *(%s)*", c.GermanText, c.Text)
			}
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, label))
		}
	}

	return sb.String()
}
