package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/abenteuer/pkg/lexicon"
)

// RunTranslate prints a word-by-word gloss of text. With a reading id the
// reading's text is glossed instead.
func RunTranslate(out io.Writer, lex *lexicon.Lexicon, text, readingID string) error {
	if readingID != "" {
		reading, ok := lexicon.FindReading(readingID)
		if !ok {
			return fmt.Errorf("unknown reading %q", readingID)
		}
		fmt.Fprintf(out, "%s (%s) [%s]\n\n", reading.Title, reading.TitleTranslation, reading.Level)
		text = reading.Text
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to translate")
	}

	for _, tok := range lex.Annotate(text) {
		if tok.Kind != lexicon.TokenWord {
			continue
		}
		mark := " "
		if !tok.Known {
			mark = "?"
		}
		fmt.Fprintf(out, "%s %-20s %s\n", mark, tok.Text, tok.Translation)
	}
	return nil
}

// RunReadings lists the built-in reading passages.
func RunReadings(out io.Writer) {
	for _, r := range lexicon.Readings() {
		fmt.Fprintf(out, "%-12s %s (%s) [%s]\n", r.ID, r.Title, r.TitleTranslation, r.Level)
	}
}
