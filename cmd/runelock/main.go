// Package main is the interactive rune lock solver. It loads a lock
// definition (built-in or from a YAML file) and runs the command shell on
// stdin/stdout.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitrdm/runelock/internal/cli"
	"github.com/gitrdm/runelock/pkg/runelock"
)

var (
	configPath string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "runelock",
	Short: "Interactive assumption-based solver for the twelve-rune lock",
	Long: `runelock explores placements of twelve activations on a two-ring
lock under a list of geometric rules. Assumptions open branches in a
tree; every derived fact carries its justification and can be explained.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML lock definition (default: built-in lock)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable terminal colors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log propagation telemetry to stderr")
}

func run(cmd *cobra.Command, args []string) error {
	lock := runelock.DefaultLock()
	if configPath != "" {
		loaded, err := runelock.LoadLock(configPath)
		if err != nil {
			return fmt.Errorf("loading lock: %w", err)
		}
		lock = loaded
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	color := !noColor && isatty.IsTerminal(os.Stdout.Fd())

	solver := runelock.NewSolver(lock, runelock.WithLogger(logger))
	renderer := cli.NewRenderer(os.Stdout, color)
	repl := cli.NewREPL(solver, renderer, os.Stdin, os.Stdout, logger)
	return repl.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
