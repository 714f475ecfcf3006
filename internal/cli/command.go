// Package cli implements the interactive solver shell: a line-oriented
// command language, a renderer for the lock and the assumption tree, and
// the read-eval-print loop tying them together.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gitrdm/runelock/pkg/runelock"
)

// CommandKind enumerates the shell commands.
type CommandKind int

const (
	// CmdAssume places one activation on one position under a new child
	// node.
	CmdAssume CommandKind = iota
	// CmdView moves the cursor to a tree node by id.
	CmdView
	// CmdExplain prints the causal chain of a fact handle.
	CmdExplain
	// CmdTryPosition fans out over every open activation of a position.
	CmdTryPosition
	// CmdTryActivation fans out over every open position of an activation.
	CmdTryActivation
	// CmdDump prints the current database's fact summary.
	CmdDump
	// CmdHelp prints the command reference.
	CmdHelp
	// CmdQuit leaves the shell.
	CmdQuit
)

// Command is one parsed shell command. Only the fields relevant to Kind
// are set.
type Command struct {
	Kind       CommandKind
	Position   runelock.Position
	Activation runelock.Activation
	Node       int
	Fact       runelock.FactHandle
	Depth      int
}

// DefaultExplainDepth bounds explanation output when the user gives no
// explicit depth.
const DefaultExplainDepth = 10

// UnknownCommandError reports an unrecognized command word.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %q (try 'help')", e.Name)
}

// ArgumentCountError reports too few arguments for a command.
type ArgumentCountError struct {
	Command  string
	Expected int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("not enough arguments for %q: expected %d", e.Command, e.Expected)
}

// Parse turns one input line into a Command. Every malformed input is
// reported as an error; parsing never panics and never touches solver
// state.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, &UnknownCommandError{Name: ""}
	}
	word, args := fields[0], fields[1:]

	switch word {
	case "assume", "a":
		if len(args) < 2 {
			return Command{}, &ArgumentCountError{Command: "assume", Expected: 2}
		}
		pos, err := parsePosition(args[0])
		if err != nil {
			return Command{}, err
		}
		act, err := parseActivation(args[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdAssume, Position: pos, Activation: act}, nil

	case "view", "v":
		if len(args) < 1 {
			return Command{}, &ArgumentCountError{Command: "view", Expected: 1}
		}
		node, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("node id %q: %w", args[0], err)
		}
		return Command{Kind: CmdView, Node: node}, nil

	case "explain", "e":
		if len(args) < 1 {
			return Command{}, &ArgumentCountError{Command: "explain", Expected: 1}
		}
		fact, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("fact handle %q: %w", args[0], err)
		}
		depth := DefaultExplainDepth
		if len(args) > 1 {
			depth, err = strconv.Atoi(args[1])
			if err != nil {
				return Command{}, fmt.Errorf("depth %q: %w", args[1], err)
			}
		}
		return Command{Kind: CmdExplain, Fact: runelock.FactHandle(fact), Depth: depth}, nil

	case "tryposition", "tp":
		if len(args) < 1 {
			return Command{}, &ArgumentCountError{Command: "tryposition", Expected: 1}
		}
		pos, err := parsePosition(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdTryPosition, Position: pos}, nil

	case "tryactivation", "ta":
		if len(args) < 1 {
			return Command{}, &ArgumentCountError{Command: "tryactivation", Expected: 1}
		}
		act, err := parseActivation(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdTryActivation, Activation: act}, nil

	case "dump", "d":
		return Command{Kind: CmdDump}, nil

	case "help", "h", "?":
		return Command{Kind: CmdHelp}, nil

	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil

	default:
		return Command{}, &UnknownCommandError{Name: word}
	}
}

// parsePosition reads a zero-based ring position.
func parsePosition(s string) (runelock.Position, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("position %q: %w", s, err)
	}
	return runelock.ParsePosition(n)
}

// parseActivation reads a one-based activation number as it appears on
// screen.
func parseActivation(s string) (runelock.Activation, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("activation %q: %w", s, err)
	}
	return runelock.ActivationFromHuman(n)
}

// Help is the command reference printed by the help command.
const Help = `Commands:
  assume <position> <activation>   (a)  place an activation, opening a child node
  view <node>                      (v)  move the cursor to a tree node
  explain <fact> [depth]           (e)  print why a fact holds
  tryposition <position>           (tp) branch over every open activation there
  tryactivation <activation>       (ta) branch over every open position for it
  dump                             (d)  print the recorded facts
  help                                  this text
  quit                                  leave

Positions are 0-11 (0-5 outer ring, 6-11 inner ring).
Activations are 1-12 as displayed.`
