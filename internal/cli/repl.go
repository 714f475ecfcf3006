// The read-eval-print loop. Every command failure is reported as a line
// of text and the loop continues; only quit or end of input leave it.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/gitrdm/runelock/pkg/runelock"
)

// REPL wires a solver, a renderer and an input stream together.
type REPL struct {
	solver   *runelock.Solver
	renderer *Renderer
	in       io.Reader
	out      io.Writer
	logger   *slog.Logger
}

// NewREPL returns a loop over the given solver reading commands from in
// and writing everything to the renderer's output.
func NewREPL(solver *runelock.Solver, renderer *Renderer, in io.Reader, out io.Writer, logger *slog.Logger) *REPL {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &REPL{solver: solver, renderer: renderer, in: in, out: out, logger: logger}
}

// Run renders the initial state and then processes commands until quit or
// end of input. The returned error reports input stream failures only;
// command errors are printed and swallowed.
func (r *REPL) Run() error {
	fmt.Fprintln(r.out, r.renderer.style(titleStyle, "Rune Lock"))
	r.renderer.RenderUI(r.solver)

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		cmd, err := Parse(line)
		if err != nil {
			fmt.Fprintf(r.out, "Didn't understand command: %v\n", err)
			continue
		}
		if cmd.Kind == CmdQuit {
			return nil
		}
		r.dispatch(cmd)

		r.renderer.RenderUI(r.solver)
		fmt.Fprintln(r.out, "==============================")
	}
	return scanner.Err()
}

// dispatch runs one command against the solver, reporting failures as
// text.
func (r *REPL) dispatch(cmd Command) {
	switch cmd.Kind {
	case CmdAssume:
		child, err := r.solver.Assume(cmd.Activation, cmd.Position)
		if err != nil {
			fmt.Fprintln(r.out, err)
			return
		}
		r.logger.Debug("assumed", "node", child, "position", cmd.Position, "activation", cmd.Activation)

	case CmdView:
		handle, err := r.solver.Handle(cmd.Node)
		if err != nil {
			fmt.Fprintln(r.out, err)
			return
		}
		r.solver.SetCurrent(handle)

	case CmdExplain:
		fmt.Fprintf(r.out, "Explaining fact %s in node %s:\n", cmd.Fact, r.solver.Current())
		if err := r.solver.Explain(r.out, cmd.Fact, cmd.Depth); err != nil {
			fmt.Fprintln(r.out, err)
		}

	case CmdTryPosition:
		children, err := r.solver.TryPossibilities(runelock.PositionView(cmd.Position))
		if err != nil {
			fmt.Fprintln(r.out, err)
			return
		}
		fmt.Fprintf(r.out, "Opened %d branches for position %s.\n", len(children), cmd.Position)

	case CmdTryActivation:
		children, err := r.solver.TryPossibilities(runelock.ActivationView(cmd.Activation))
		if err != nil {
			fmt.Fprintln(r.out, err)
			return
		}
		fmt.Fprintf(r.out, "Opened %d branches for %s.\n", len(children), cmd.Activation)

	case CmdDump:
		r.solver.DumpKnowledge(r.out)
		r.renderer.RenderGrid(r.solver.CurrentNode().Facts)

	case CmdHelp:
		fmt.Fprintln(r.out, Help)
	}
}
