package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/abenteuer/pkg/adapters/loam"
	"github.com/aretw0/abenteuer/pkg/adapters/yamlstory"
)

// OpenPath loads a single story from disk: a .yaml/.yml file is decoded as
// a story document, a directory as a Loam scene directory.
func OpenPath(ctx context.Context, path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to open story: %w", err)
	}

	if !info.IsDir() {
		if !isYAML(path) {
			return Entry{}, fmt.Errorf("unsupported story file %s (expected .yaml or .yml)", path)
		}
		doc, err := yamlstory.Open(path)
		if err != nil {
			return Entry{}, err
		}
		return entryFromDocument(doc), nil
	}

	loader, err := loam.Open(path)
	if err != nil {
		return Entry{}, err
	}
	story, err := loader.Load(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", path, err)
	}
	return Entry{ID: story.ID, Title: story.ID, Story: story}, nil
}

// LoadDir registers every story found directly under dir: each YAML file
// and each subdirectory of scene documents.
func (c *Catalog) LoadDir(ctx context.Context, dir string) error {
	items, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read stories dir: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

	for _, item := range items {
		name := item.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !item.IsDir() && !isYAML(name) {
			continue
		}

		entry, err := OpenPath(ctx, filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := c.Register(entry); err != nil {
			return err
		}
	}
	return nil
}

func entryFromDocument(doc *yamlstory.Document) Entry {
	return Entry{
		ID:           doc.Story.ID,
		Title:        doc.Title,
		EnglishTitle: doc.EnglishTitle,
		Description:  doc.Description,
		Location:     doc.Location,
		Phrases:      doc.Phrases,
		Story:        doc.Story,
	}
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
