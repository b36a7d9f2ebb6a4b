package runner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/abenteuer/pkg/domain"
)

// CommandKind is the navigation event an input line maps to.
type CommandKind int

const (
	CommandChoose CommandKind = iota
	CommandBack
	CommandRestart
	CommandQuit
)

// Command is a parsed input line.
type Command struct {
	Kind CommandKind
	// Choice is the zero-based choice index for CommandChoose.
	Choice int
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoChoice       = errors.New("no such choice")
	ErrCannotGoBack   = errors.New("nothing to go back to")
)

// ParseCommand maps line to a command valid for view.
func ParseCommand(line string, view domain.View) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	case "r", "restart":
		return Command{Kind: CommandRestart}, nil
	case "b", "back":
		if !view.CanGoBack {
			return Command{}, ErrCannotGoBack
		}
		return Command{Kind: CommandBack}, nil
	case "":
		return Command{}, ErrUnknownCommand
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	if !view.Found() || view.Terminal || n < 1 || n > len(view.Scene.Choices) {
		return Command{}, fmt.Errorf("%w: %d", ErrNoChoice, n)
	}
	return Command{Kind: CommandChoose, Choice: n - 1}, nil
}
