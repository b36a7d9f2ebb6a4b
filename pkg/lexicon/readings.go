package lexicon

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed readings.yaml
var readingsYAML []byte

// Reading is a short graded text for word-by-word practice.
type Reading struct {
	ID               string `json:"id" yaml:"id"`
	Title            string `json:"title" yaml:"title"`
	TitleTranslation string `json:"titleTranslation" yaml:"titleTranslation"`
	Level            string `json:"level" yaml:"level"`
	Text             string `json:"text" yaml:"text"`
}

// Readings returns the built-in texts in their authored order.
func Readings() []Reading {
	var list []Reading
	if err := yaml.Unmarshal(readingsYAML, &list); err != nil {
		panic(fmt.Errorf("failed to parse readings: %w", err))
	}
	return list
}

// FindReading returns the built-in reading with the given id.
func FindReading(id string) (Reading, bool) {
	for _, r := range Readings() {
		if r.ID == id {
			return r, true
		}
	}
	return Reading{}, false
}
