// Package yamlstory decodes story documents written in YAML.
//
// A document carries catalog metadata next to the scene graph:
//
//	id: cafe
//	title: Das Café-Abenteuer
//	englishTitle: The Café Adventure
//	startSceneId: S1
//	scenes:
//	  - id: S1
//	    title: Im Café
//	    contentBlocks:
//	      - type: narration
//	        text: You step inside.
//	    choices:
//	      - id: order
//	        text: Einen Kaffee, bitte.
//	        nextSceneId: S2
package yamlstory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aretw0/abenteuer/internal/validator"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Document is a decoded story file.
type Document struct {
	Title        string
	EnglishTitle string
	Description  string
	Location     string
	Phrases      []string

	Story *domain.Story
}

type rawDocument struct {
	ID           string     `yaml:"id"`
	Title        string     `yaml:"title"`
	EnglishTitle string     `yaml:"englishTitle"`
	Description  string     `yaml:"description"`
	Location     string     `yaml:"location"`
	Phrases      []string   `yaml:"phrases"`
	StartSceneID string     `yaml:"startSceneId"`
	Scenes       []rawScene `yaml:"scenes"`
}

type rawScene struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Location string `yaml:"location"`
	// Blocks stay untyped so unknown keys can be reported per block.
	ContentBlocks []map[string]any     `yaml:"contentBlocks"`
	Choices       []domain.Choice      `yaml:"choices"`
	LanguageNote  *domain.LanguageNote `yaml:"languageNote"`
	Terminal      bool                 `yaml:"terminal"`
}

// Decode reads a YAML story document and validates its graph.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw rawDocument
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty story document")
		}
		return nil, fmt.Errorf("failed to parse story document: %w", err)
	}

	story := &domain.Story{
		ID:           raw.ID,
		StartSceneID: raw.StartSceneID,
		Scenes:       make([]domain.Scene, 0, len(raw.Scenes)),
	}

	for _, rs := range raw.Scenes {
		blocks, err := decodeBlocks(rs.ContentBlocks)
		if err != nil {
			return nil, fmt.Errorf("scene '%s': %w", rs.ID, err)
		}
		story.Scenes = append(story.Scenes, domain.Scene{
			ID:            rs.ID,
			Title:         rs.Title,
			Location:      rs.Location,
			ContentBlocks: blocks,
			Choices:       rs.Choices,
			LanguageNote:  rs.LanguageNote,
			Terminal:      rs.Terminal,
		})
	}
	story.Index()

	if _, err := validator.ValidateStory(story); err != nil {
		return nil, err
	}

	return &Document{
		Title:        raw.Title,
		EnglishTitle: raw.EnglishTitle,
		Description:  raw.Description,
		Location:     raw.Location,
		Phrases:      raw.Phrases,
		Story:        story,
	}, nil
}

// Parse decodes a story document held in memory.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile decodes the story document at path on fsys.
func ReadFile(fsys fs.FS, path string) (*Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Open decodes the story document at a filesystem path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open story: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func decodeBlocks(raw []map[string]any) ([]domain.ContentBlock, error) {
	blocks := make([]domain.ContentBlock, 0, len(raw))
	for i, m := range raw {
		var block domain.ContentBlock
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &block,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("content block #%d: %w", i, err)
		}
		if block.Type == "" {
			block.Type = domain.BlockNarration
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}
