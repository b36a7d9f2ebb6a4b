// Package catalog maps story ids to their documents and display metadata.
package catalog

import (
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/aretw0/abenteuer/pkg/adapters/yamlstory"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/aretw0/abenteuer/stories"
)

// Entry is one selectable storyline.
type Entry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	EnglishTitle string   `json:"english_title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Location     string   `json:"location,omitempty"`
	Phrases      []string `json:"phrases,omitempty"`

	Story *domain.Story `json:"-"`
}

// StartSceneID returns the story's default entry scene.
func (e Entry) StartSceneID() string {
	return e.Story.StartSceneID
}

// SceneCount returns the number of scenes in the story.
func (e Entry) SceneCount() int {
	return len(e.Story.Scenes)
}

// Catalog is a concurrency-safe registry of stories.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Default returns a catalog holding the built-in stories.
func Default() (*Catalog, error) {
	c := New()
	if err := c.LoadFS(stories.FS, "*.yaml"); err != nil {
		return nil, err
	}
	return c, nil
}

// Register adds an entry. The id defaults to the story id.
func (c *Catalog) Register(entry Entry) error {
	if entry.Story == nil {
		return fmt.Errorf("catalog entry '%s' has no story", entry.ID)
	}
	if entry.ID == "" {
		entry.ID = entry.Story.ID
	}
	if entry.ID == "" {
		return fmt.Errorf("catalog entry has no id")
	}
	if entry.Title == "" {
		entry.Title = entry.ID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[entry.ID]; exists {
		return fmt.Errorf("story '%s' is already registered", entry.ID)
	}
	c.entries[entry.ID] = entry
	return nil
}

// RegisterDocument adds a decoded YAML document.
func (c *Catalog) RegisterDocument(doc *yamlstory.Document) error {
	return c.Register(entryFromDocument(doc))
}

// LoadFS registers every YAML story on fsys matching pattern.
func (c *Catalog) LoadFS(fsys fs.FS, pattern string) error {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("invalid story pattern: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		doc, err := yamlstory.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		if err := c.RegisterDocument(doc); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the entry registered under id.
func (c *Catalog) Get(id string) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrStoryNotFound, id)
	}
	return entry, nil
}

// List returns all entries ordered by id.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
