package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/abenteuer/internal/presentation/graph"
	"github.com/aretw0/abenteuer/internal/validator"
	"github.com/aretw0/abenteuer/pkg/catalog"
)

// RunStories lists the catalog the engine would serve.
func RunStories(out io.Writer, opts EngineOptions) error {
	engine, err := createEngine(context.Background(), opts, createLogger(opts))
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, e := range engine.Stories() {
		title := e.Title
		if e.EnglishTitle != "" {
			title += " (" + e.EnglishTitle + ")"
		}
		fmt.Fprintf(out, "%-10s %s, %d scenes\n", e.ID, title, e.SceneCount())
		if e.Description != "" {
			fmt.Fprintf(out, "%-10s %s\n", "", e.Description)
		}
		if len(e.Phrases) > 0 {
			fmt.Fprintf(out, "%-10s Phrases: %s\n", "", strings.Join(e.Phrases, ", "))
		}
	}
	return nil
}

// RunValidate checks the story at path (a YAML file or a scene directory)
// and reports unreachable scenes as warnings.
func RunValidate(ctx context.Context, out io.Writer, path string) error {
	entry, err := catalog.OpenPath(ctx, path)
	if err != nil {
		return err
	}

	report, err := validator.ValidateStory(entry.Story)
	if err != nil {
		return err
	}
	for _, id := range report.Unreachable {
		fmt.Fprintf(out, "warning: scene '%s' is unreachable from '%s'\n", id, entry.Story.StartSceneID)
	}
	fmt.Fprintf(out, "Story '%s' is valid! ✅ (%d of %d scenes reachable)\n", entry.ID, report.Reachable, entry.SceneCount())
	return nil
}

// RunGraph prints the Mermaid diagram of a catalog story, or of the story
// at a path when the argument is not a catalog id.
func RunGraph(ctx context.Context, out io.Writer, opts EngineOptions, target string) error {
	engine, err := createEngine(ctx, opts, createLogger(opts))
	if err != nil {
		return err
	}
	defer engine.Close()

	entry, err := engine.Story(target)
	if err != nil {
		fromPath, pathErr := catalog.OpenPath(ctx, target)
		if pathErr != nil {
			return err
		}
		entry = fromPath
	}

	fmt.Fprint(out, graph.GenerateMermaid(entry.Story, nil))
	return nil
}
