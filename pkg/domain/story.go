package domain

// Block type constants for the ContentBlock tagged union.
const (
	// BlockNarration is plain narrative text.
	BlockNarration = "narration"
	// BlockDialogue is a spoken line in the target language with a native gloss.
	BlockDialogue = "dialogue"
)

// Story is the complete, immutable graph of scenes for one storyline.
// It is shared read-only by every session traversing it.
type Story struct {
	ID           string  `json:"id" yaml:"id"`
	Scenes       []Scene `json:"scenes" yaml:"scenes"`
	StartSceneID string  `json:"startSceneId" yaml:"startSceneId"`

	index map[string]int
}

// Scene is a unit of displayed content plus its outgoing choices.
type Scene struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	Location      string         `json:"location" yaml:"location"`
	ContentBlocks []ContentBlock `json:"contentBlocks" yaml:"contentBlocks"`
	Choices       []Choice       `json:"choices" yaml:"choices"`
	LanguageNote  *LanguageNote  `json:"languageNote,omitempty" yaml:"languageNote,omitempty"`

	// Terminal marks an explicit ending even when choices are present.
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}

// ContentBlock is either a narration or a dialogue line.
// Speaker and GermanText are only meaningful for dialogue blocks.
type ContentBlock struct {
	Type       string `json:"type" yaml:"type" mapstructure:"type"`
	Text       string `json:"text" yaml:"text" mapstructure:"text"`
	Speaker    string `json:"speaker,omitempty" yaml:"speaker,omitempty" mapstructure:"speaker"`
	GermanText string `json:"germanText,omitempty" yaml:"germanText,omitempty" mapstructure:"germanText"`
}

// Choice is a labeled edge from its owning scene to NextSceneID.
type Choice struct {
	ID          string `json:"id" yaml:"id" mapstructure:"id"`
	Text        string `json:"text" yaml:"text" mapstructure:"text"`
	GermanText  string `json:"germanText,omitempty" yaml:"germanText,omitempty" mapstructure:"germanText"`
	NextSceneID string `json:"nextSceneId" yaml:"nextSceneId" mapstructure:"nextSceneId"`
	Feedback    string `json:"feedback,omitempty" yaml:"feedback,omitempty" mapstructure:"feedback"`
}

// LanguageNote is the pedagogical annotation attached to a scene.
type LanguageNote struct {
	Phrase        string `json:"phrase" yaml:"phrase" mapstructure:"phrase"`
	Translation   string `json:"translation" yaml:"translation" mapstructure:"translation"`
	Explanation   string `json:"explanation" yaml:"explanation" mapstructure:"explanation"`
	Pronunciation string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty" mapstructure:"pronunciation"`
	Grammar       string `json:"grammar,omitempty" yaml:"grammar,omitempty" mapstructure:"grammar"`
}

// Narration returns a narration block.
func Narration(text string) ContentBlock {
	return ContentBlock{Type: BlockNarration, Text: text}
}

// Dialogue returns a dialogue block.
func Dialogue(speaker, germanText, gloss string) ContentBlock {
	return ContentBlock{Type: BlockDialogue, Speaker: speaker, GermanText: germanText, Text: gloss}
}

// IsTerminal reports whether the scene ends the traversal.
// Detection is structural: no outgoing choices, or an explicit ending flag.
func (s *Scene) IsTerminal() bool {
	return s.Terminal || len(s.Choices) == 0
}

// Choice returns the choice with the given id, if present in this scene.
func (s *Scene) Choice(id string) (*Choice, bool) {
	for i := range s.Choices {
		if s.Choices[i].ID == id {
			return &s.Choices[i], true
		}
	}
	return nil, false
}

// Scene looks up a scene by id.
// The returned pointer aliases the story and must be treated as read-only.
func (d *Story) Scene(id string) (*Scene, bool) {
	if d.index == nil {
		// Stories assembled by hand skip Index(); fall back to a scan.
		for i := range d.Scenes {
			if d.Scenes[i].ID == id {
				return &d.Scenes[i], true
			}
		}
		return nil, false
	}
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return &d.Scenes[i], true
}

// Has reports whether a scene with the given id exists.
func (d *Story) Has(id string) bool {
	_, ok := d.Scene(id)
	return ok
}

// Index builds the id lookup table. Loaders call it once after decoding.
// On duplicate ids the first occurrence wins; the validator reports the rest.
func (d *Story) Index() {
	d.index = make(map[string]int, len(d.Scenes))
	for i, sc := range d.Scenes {
		if _, dup := d.index[sc.ID]; !dup {
			d.index[sc.ID] = i
		}
	}
}

// SceneIDs returns all scene ids in document order.
func (d *Story) SceneIDs() []string {
	ids := make([]string, 0, len(d.Scenes))
	for _, sc := range d.Scenes {
		ids = append(ids, sc.ID)
	}
	return ids
}

// ResolveStart returns candidate when it names an existing scene,
// otherwise the document default. Candidates are untrusted (deep links),
// so a miss is corrected silently.
func ResolveStart(d *Story, candidate string) string {
	if candidate != "" && d.Has(candidate) {
		return candidate
	}
	return d.StartSceneID
}
