package drill

import "math/rand/v2"

// Game plays a list of puzzles in order and keeps score.
type Game struct {
	puzzles []Puzzle
	rnd     *rand.Rand
	index   int
	score   int
	round   *Round
}

// NewGame starts at the first puzzle. rnd drives every shuffle; pass a
// seeded source for reproducible games.
func NewGame(puzzles []Puzzle, rnd *rand.Rand) *Game {
	g := &Game{puzzles: puzzles, rnd: rnd}
	g.Reset()
	return g
}

// Round returns the round in play, or nil for an empty game.
func (g *Game) Round() *Round {
	return g.round
}

// Index returns the zero-based position of the current puzzle.
func (g *Game) Index() int {
	return g.index
}

// Len returns the number of puzzles.
func (g *Game) Len() int {
	return len(g.puzzles)
}

// Score returns the number of solved puzzles.
func (g *Game) Score() int {
	return g.score
}

// Submit checks the current round and scores it once when correct.
func (g *Game) Submit() (Result, error) {
	if g.round == nil {
		return Result{}, ErrNothingSelected
	}
	wasSolved := g.round.Solved()
	res, err := g.round.Check()
	if err != nil {
		return res, err
	}
	if res.Correct && !wasSolved {
		g.score++
	}
	return res, nil
}

// Advance moves to the next puzzle once the current one is solved.
// It reports false on the last puzzle or while the round is unsolved.
func (g *Game) Advance() bool {
	if g.round == nil || !g.round.Solved() || g.index >= len(g.puzzles)-1 {
		return false
	}
	g.index++
	g.round = NewRound(g.puzzles[g.index], g.rnd)
	return true
}

// Complete reports whether the last puzzle has been solved.
func (g *Game) Complete() bool {
	return g.round != nil && g.index == len(g.puzzles)-1 && g.round.Solved()
}

// PerfectScore reports whether every puzzle was solved.
func (g *Game) PerfectScore() bool {
	return g.Complete() && g.score == len(g.puzzles)
}

// Reset restarts from the first puzzle with a zero score.
func (g *Game) Reset() {
	g.index = 0
	g.score = 0
	g.round = nil
	if len(g.puzzles) > 0 {
		g.round = NewRound(g.puzzles[0], g.rnd)
	}
}
