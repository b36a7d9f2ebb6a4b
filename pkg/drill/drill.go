// Package drill implements the sentence-ordering minigame: the player
// rebuilds a German sentence from a shuffled pool of words and distractors.
package drill

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AdvanceDelay is how long a solved puzzle stays on screen before the next
// one is shown.
const AdvanceDelay = 1500 * time.Millisecond

var (
	// ErrRoundComplete is returned when a solved round is modified.
	ErrRoundComplete = errors.New("round already solved")
	// ErrNothingSelected is returned by Check on an empty answer.
	ErrNothingSelected = errors.New("no words selected")
	// ErrBadIndex is returned for a word index outside the pool.
	ErrBadIndex = errors.New("word index out of range")
)

//go:embed puzzles.yaml
var puzzlesYAML []byte

// Puzzle is one sentence to rebuild.
type Puzzle struct {
	English      string   `json:"english" yaml:"english"`
	Words        []string `json:"words" yaml:"words"`
	CorrectOrder []string `json:"correctOrder" yaml:"correctOrder"`
	Distractors  []string `json:"distractors,omitempty" yaml:"distractors"`
	Hint         string   `json:"hint,omitempty" yaml:"hint"`
	Tips         []string `json:"tips,omitempty" yaml:"tips"`
}

// CafePuzzles returns the built-in café puzzle set.
func CafePuzzles() []Puzzle {
	var list []Puzzle
	if err := yaml.Unmarshal(puzzlesYAML, &list); err != nil {
		panic(fmt.Errorf("failed to parse puzzles: %w", err))
	}
	return list
}

// Result is the verdict of a Check.
type Result struct {
	Correct bool `json:"correct"`
	// Tips are shown when the answer is wrong.
	Tips []string `json:"tips,omitempty"`
}

// Round is one attempt at a puzzle.
type Round struct {
	puzzle    Puzzle
	rnd       *rand.Rand
	available []string
	selected  []string
	solved    bool
}

// NewRound deals a shuffled pool for p using rnd.
func NewRound(p Puzzle, rnd *rand.Rand) *Round {
	r := &Round{puzzle: p, rnd: rnd}
	r.Reset()
	return r
}

// Puzzle returns the puzzle being played.
func (r *Round) Puzzle() Puzzle {
	return r.puzzle
}

// Available returns the words still in the pool.
func (r *Round) Available() []string {
	return append([]string(nil), r.available...)
}

// Selected returns the answer built so far.
func (r *Round) Selected() []string {
	return append([]string(nil), r.selected...)
}

// Solved reports whether the round was answered correctly.
func (r *Round) Solved() bool {
	return r.solved
}

// Pick moves available[i] to the end of the answer.
func (r *Round) Pick(i int) error {
	if r.solved {
		return ErrRoundComplete
	}
	if i < 0 || i >= len(r.available) {
		return ErrBadIndex
	}
	r.selected = append(r.selected, r.available[i])
	r.available = append(r.available[:i], r.available[i+1:]...)
	return nil
}

// Unpick moves selected[i] back to the end of the pool.
func (r *Round) Unpick(i int) error {
	if r.solved {
		return ErrRoundComplete
	}
	if i < 0 || i >= len(r.selected) {
		return ErrBadIndex
	}
	r.available = append(r.available, r.selected[i])
	r.selected = append(r.selected[:i], r.selected[i+1:]...)
	return nil
}

// Check compares the answer with the correct order, ignoring case and
// surrounding whitespace. The answer must have exactly the right length.
func (r *Round) Check() (Result, error) {
	if r.solved {
		return Result{Correct: true}, nil
	}
	if len(r.selected) == 0 {
		return Result{}, ErrNothingSelected
	}

	if !matches(r.selected, r.puzzle.CorrectOrder) {
		return Result{Tips: r.puzzle.Tips}, nil
	}
	r.solved = true
	return Result{Correct: true}, nil
}

// Reset clears the answer and reshuffles the pool.
func (r *Round) Reset() {
	pool := make([]string, 0, len(r.puzzle.Words)+len(r.puzzle.Distractors))
	pool = append(pool, r.puzzle.Words...)
	pool = append(pool, r.puzzle.Distractors...)
	r.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	r.available = pool
	r.selected = nil
	r.solved = false
}

func matches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if normalize(got[i]) != normalize(want[i]) {
			return false
		}
	}
	return true
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
