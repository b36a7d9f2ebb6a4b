// Package loam loads stories from a directory of scene documents managed by
// Loam. Each Markdown (or JSON/YAML) file is one scene: the frontmatter holds
// the choices and dialogue, the body holds the narration.
//
//	---
//	id: S1
//	start: true
//	title: Im Café
//	blocks:
//	  - type: dialogue
//	    speaker: Kellnerin
//	    germanText: Was darf es sein?
//	    text: What can I get you?
//	choices:
//	  - id: order
//	    text: Einen Kaffee, bitte.
//	    nextSceneId: S2
//	---
//	You step inside.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/abenteuer/internal/validator"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/aretw0/loam"
)

// DefaultStartID is used when no scene carries `start: true`.
const DefaultStartID = "start"

// Loader adapts a Loam repository to a story source.
type Loader struct {
	Repo    *loam.TypedRepository[SceneMetadata]
	StoryID string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SceneMetadata], storyID string) *Loader {
	return &Loader{
		Repo:    repo,
		StoryID: storyID,
	}
}

// Open initializes a read-only Loam repository over dir. The story id is
// the directory name.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric types consistent across adapters; read-only
	// avoids Loam's sandbox behavior since stories are never written.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	typedRepo := loam.NewTypedRepository[SceneMetadata](repo)
	return New(typedRepo, filepath.Base(absPath)), nil
}

// Load reads every scene document and assembles a validated story.
// Scenes are ordered by id.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	ids, err := l.ListScenes(ctx)
	if err != nil {
		return nil, err
	}

	story := &domain.Story{ID: l.StoryID, Scenes: make([]domain.Scene, 0, len(ids))}
	var starts []string

	for _, ref := range ids {
		scene, start, err := l.GetScene(ctx, ref)
		if err != nil {
			return nil, err
		}
		if start {
			starts = append(starts, scene.ID)
		}
		story.Scenes = append(story.Scenes, scene)
	}
	sort.SliceStable(story.Scenes, func(i, j int) bool { return story.Scenes[i].ID < story.Scenes[j].ID })
	story.Index()

	switch len(starts) {
	case 0:
		story.StartSceneID = DefaultStartID
	case 1:
		story.StartSceneID = starts[0]
	default:
		sort.Strings(starts)
		return nil, &domain.ValidationError{
			StoryID: story.ID,
			Issues:  []string{fmt.Sprintf("multiple start scenes: %s", strings.Join(starts, ", "))},
		}
	}

	if _, err := validator.ValidateStory(story); err != nil {
		return nil, err
	}
	return story, nil
}

// GetScene retrieves one document and converts it to a scene. It also
// reports whether the document is flagged as the start scene.
func (l *Loader) GetScene(ctx context.Context, docID string) (domain.Scene, bool, error) {
	doc, err := l.Repo.Get(ctx, docID)
	if err != nil {
		return domain.Scene{}, false, fmt.Errorf("loam get failed for %s: %w", docID, err)
	}

	meta := doc.Data
	rawID := meta.ID
	if rawID == "" {
		rawID = doc.ID
	}

	scene := domain.Scene{
		ID:           trimExtension(rawID),
		Title:        meta.Title,
		Location:     meta.Location,
		Choices:      meta.Choices,
		LanguageNote: meta.Note,
		Terminal:     meta.Terminal,
	}
	for _, para := range paragraphs(doc.Content) {
		scene.ContentBlocks = append(scene.ContentBlocks, domain.Narration(para))
	}
	for _, b := range meta.Blocks {
		if b.Type == "" {
			b.Type = domain.BlockNarration
		}
		scene.ContentBlocks = append(scene.ContentBlocks, b)
	}

	return scene, meta.Start, nil
}

// ListScenes returns the repository document ids, rejecting documents that
// normalize to the same scene id.
func (l *Loader) ListScenes(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	refs := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: scene '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		refs = append(refs, doc.ID)
	}
	sort.Strings(refs)
	return refs, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// paragraphs splits a Markdown body on blank lines, joining wrapped lines.
func paragraphs(body string) []string {
	var out []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}
