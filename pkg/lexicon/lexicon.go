// Package lexicon provides the static German-to-English word table used for
// tap-to-translate reading practice.
//
// It is a lookup table, not a translator: unknown words yield
// NotAvailable.
package lexicon

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// NotAvailable is returned for words missing from the table.
const NotAvailable = "Translation not available"

// punctuation matches the characters stripped before a lookup.
const punctuation = ".,!?;:"

var splitter = regexp.MustCompile(`\s+|[.,!?;:]`)

//go:embed words.yaml
var wordsYAML []byte

// Lexicon is an immutable word table.
type Lexicon struct {
	words map[string]string
}

// New builds a lexicon from a word table. The map is copied.
func New(words map[string]string) *Lexicon {
	l := &Lexicon{words: make(map[string]string, len(words))}
	for k, v := range words {
		l.words[k] = v
	}
	return l
}

// Parse builds a lexicon from a YAML mapping of word to gloss.
func Parse(data []byte) (*Lexicon, error) {
	var words map[string]string
	if err := yaml.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	return New(words), nil
}

// Default returns the built-in table.
func Default() *Lexicon {
	l, err := Parse(wordsYAML)
	if err != nil {
		panic(err)
	}
	return l
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Lookup translates a single word. Punctuation is stripped, then the
// lowercase, Capitalized and original spellings are tried in that order.
// A miss returns NotAvailable and false; an empty word returns "" and false.
func (l *Lexicon) Lookup(word string) (string, bool) {
	clean := Clean(word)
	if clean == "" {
		return "", false
	}

	lower := cases.Lower(language.German).String(clean)
	if t, ok := l.words[lower]; ok {
		return t, true
	}

	capitalized := cases.Title(language.German).String(clean)
	if t, ok := l.words[capitalized]; ok {
		return t, true
	}

	if t, ok := l.words[clean]; ok {
		return t, true
	}

	return NotAvailable, false
}

// Clean removes lookup punctuation and surrounding whitespace.
func Clean(word string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, word))
}

// TokenKind classifies a piece of tokenized text.
type TokenKind string

const (
	TokenWord        TokenKind = "word"
	TokenSpace       TokenKind = "space"
	TokenPunctuation TokenKind = "punctuation"
)

// Token is one piece of text with its translation, if it is a word.
type Token struct {
	Text        string    `json:"text"`
	Kind        TokenKind `json:"kind"`
	Translation string    `json:"translation,omitempty"`
	Known       bool      `json:"known,omitempty"`
}

// Tokenize splits text into words, whitespace runs and single punctuation
// marks, preserving order so the pieces concatenate back to text.
func Tokenize(text string) []Token {
	var tokens []Token
	last := 0

	for _, loc := range splitter.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			tokens = append(tokens, Token{Text: text[last:loc[0]], Kind: TokenWord})
		}
		sep := text[loc[0]:loc[1]]
		kind := TokenPunctuation
		if strings.TrimSpace(sep) == "" {
			kind = TokenSpace
		}
		tokens = append(tokens, Token{Text: sep, Kind: kind})
		last = loc[1]
	}
	if last < len(text) {
		tokens = append(tokens, Token{Text: text[last:], Kind: TokenWord})
	}
	return tokens
}

// Annotate tokenizes text and fills in translations for words.
func (l *Lexicon) Annotate(text string) []Token {
	tokens := Tokenize(text)
	for i := range tokens {
		if tokens[i].Kind != TokenWord {
			continue
		}
		tokens[i].Translation, tokens[i].Known = l.Lookup(tokens[i].Text)
	}
	return tokens
}
