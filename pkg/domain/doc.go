/*
Package domain contains the core models of the Abenteuer narrative engine.

It defines the story graph, the traversal state and the view handed to
presentation layers. This package is kept pure and free of external
dependencies like I/O or scheduling.

# Key Entities

  - Story: An immutable graph of scenes with a default entry point.
  - Scene: A node in the graph (location, content blocks, choices, language note).
  - Choice: A labeled edge to another scene, optionally carrying feedback.
  - State: The traversal snapshot of one session (current scene, history, pending feedback).
  - View: What a presentation layer needs to render the current position.
*/
package domain
