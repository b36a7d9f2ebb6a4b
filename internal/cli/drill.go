package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/abenteuer/pkg/drill"
)

// DrillOptions configures the sentence builder.
type DrillOptions struct {
	In  io.Reader
	Out io.Writer
	// Pause waits between solved puzzles; nil uses time.Sleep.
	Pause func(time.Duration)
}

// RunDrill plays the sentence builder until every puzzle is solved or the
// user quits.
//
//	3 1 2   pick words by number, in order
//	u 2     put the second selected word back
//	c       check the answer
//	h       show the hint
//	x       clear and reshuffle
//	q       quit
func RunDrill(ctx context.Context, game *drill.Game, opts DrillOptions) error {
	if opts.Pause == nil {
		opts.Pause = time.Sleep
	}
	if game.Round() == nil {
		return errors.New("no puzzles to play")
	}
	in := bufio.NewScanner(opts.In)
	out := opts.Out

	showRound(out, game)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return in.Err()
		}
		round := game.Round()
		fields := strings.Fields(strings.ToLower(in.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "quit":
			fmt.Fprintf(out, "Score: %d/%d\n", game.Score(), game.Len())
			return nil
		case "h", "hint":
			if hint := round.Puzzle().Hint; hint != "" {
				fmt.Fprintf(out, "Hint: %s\n", hint)
			} else {
				fmt.Fprintln(out, "No hint for this one.")
			}
			continue
		case "x", "reset":
			round.Reset()
		case "u":
			if len(fields) != 2 {
				fmt.Fprintln(out, "Usage: u <number>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err == nil {
				err = round.Unpick(n - 1)
			}
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
		case "c", "check":
			res, err := game.Submit()
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			if !res.Correct {
				fmt.Fprintln(out, "Not quite. Try again!")
				for _, tip := range res.Tips {
					fmt.Fprintf(out, "  - %s\n", tip)
				}
				continue
			}
			fmt.Fprintf(out, "Richtig! %s\n", strings.Join(round.Selected(), " "))
			if game.Complete() {
				fmt.Fprintf(out, "Fertig! Score: %d/%d\n", game.Score(), game.Len())
				if game.PerfectScore() {
					fmt.Fprintln(out, "Perfekt!")
				}
				return nil
			}
			opts.Pause(drill.AdvanceDelay)
			game.Advance()
		default:
			if err := pickAll(round, fields); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
		}
		showRound(out, game)
	}
}

// pickAll picks numbered words in order. Numbers refer to the pool as
// shown, so later indexes are adjusted for words already taken.
func pickAll(round *drill.Round, fields []string) error {
	indexes := make([]int, 0, len(fields))
	seen := make(map[int]bool, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("unknown command %q", f)
		}
		if seen[n] {
			return fmt.Errorf("word %d picked twice", n)
		}
		seen[n] = true
		indexes = append(indexes, n-1)
	}
	for i, idx := range indexes {
		shift := 0
		for _, prev := range indexes[:i] {
			if prev < idx {
				shift++
			}
		}
		if err := round.Pick(idx - shift); err != nil {
			return err
		}
	}
	return nil
}

func showRound(out io.Writer, game *drill.Game) {
	round := game.Round()
	fmt.Fprintf(out, "\nPuzzle %d/%d: %s\n", game.Index()+1, game.Len(), round.Puzzle().English)
	fmt.Fprintf(out, "Sentence: %s\n", strings.Join(round.Selected(), " "))
	var words []string
	for i, w := range round.Available() {
		words = append(words, fmt.Sprintf("%d) %s", i+1, w))
	}
	fmt.Fprintf(out, "Words:    %s\n", strings.Join(words, "  "))
}
