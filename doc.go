/*
Package abenteuer is a branching-narrative engine for language learning.

Learners move through short interactive stories set in everyday situations
(ordering at a café, buying a train ticket). Each scene shows narration and
German dialogue with English glosses, a language note, and a set of choices.
Some choices show feedback first and only then move on.

# Concept

A story is an immutable graph of scenes. Navigation is a set of pure
functions over an explicit session state: the current scene, the visited
history and an optional pending transition. Scenes without choices are
endings. The host (CLI, HTTP server, MCP server) owns the I/O and the
timer that completes feedback transitions.

# Usage

	ctx := context.Background()

	eng, err := abenteuer.New(ctx)
	if err != nil {
		log.Fatal(err)
	}

	s, err := eng.Start(ctx, "cafe", "")
	if err != nil {
		log.Fatal(err)
	}

	view := s.View()
	fmt.Println(view.Scene.Title)

	// Choose the first option of the current scene.
	view, err = s.Choose(ctx, view.Scene.ID, view.Scene.Choices[0].ID)
	if domain.IsIgnorable(err) {
		// Stale click or a transition already pending: nothing happened.
	}

	// Wait for feedback to finish before rendering the next scene.
	view, _ = s.Await(ctx)

# Stories

Built-in stories are embedded YAML documents. Additional stories can be
loaded with WithStoryDir from YAML files or from directories of Markdown
scene documents (one file per scene, managed by Loam).
*/
package abenteuer
