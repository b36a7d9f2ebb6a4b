// Package stories embeds the built-in story documents.
package stories

import "embed"

// FS holds every built-in *.yaml story.
//
//go:embed *.yaml
var FS embed.FS
