package cli

import (
	"errors"
	"testing"

	"github.com/gitrdm/runelock/pkg/runelock"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{
			name: "assume",
			line: "assume 3 7",
			want: Command{Kind: CmdAssume, Position: 3, Activation: 6},
		},
		{
			name: "assume short form",
			line: "a 0 1",
			want: Command{Kind: CmdAssume, Position: 0, Activation: 0},
		},
		{
			name: "view",
			line: "view 4",
			want: Command{Kind: CmdView, Node: 4},
		},
		{
			name: "explain with default depth",
			line: "e 12",
			want: Command{Kind: CmdExplain, Fact: 12, Depth: DefaultExplainDepth},
		},
		{
			name: "explain with depth",
			line: "explain 12 3",
			want: Command{Kind: CmdExplain, Fact: 12, Depth: 3},
		},
		{
			name: "tryposition",
			line: "tp 11",
			want: Command{Kind: CmdTryPosition, Position: 11},
		},
		{
			name: "tryactivation",
			line: "ta 12",
			want: Command{Kind: CmdTryActivation, Activation: 11},
		},
		{
			name: "dump",
			line: "d",
			want: Command{Kind: CmdDump},
		},
		{
			name: "help",
			line: "help",
			want: Command{Kind: CmdHelp},
		},
		{
			name: "quit",
			line: "quit",
			want: Command{Kind: CmdQuit},
		},
		{
			name: "leading whitespace is tolerated",
			line: "  view 0",
			want: Command{Kind: CmdView, Node: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("unknown command", func(t *testing.T) {
		_, err := Parse("solve")
		var unknown *UnknownCommandError
		if !errors.As(err, &unknown) {
			t.Fatalf("Parse = %v, want UnknownCommandError", err)
		}
		if unknown.Name != "solve" {
			t.Errorf("Name = %q, want %q", unknown.Name, "solve")
		}
	})

	t.Run("missing arguments", func(t *testing.T) {
		_, err := Parse("assume 3")
		var count *ArgumentCountError
		if !errors.As(err, &count) {
			t.Fatalf("Parse = %v, want ArgumentCountError", err)
		}
		if count.Expected != 2 {
			t.Errorf("Expected = %d, want 2", count.Expected)
		}
	})

	t.Run("non-numeric position", func(t *testing.T) {
		if _, err := Parse("assume x 1"); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("activation out of range", func(t *testing.T) {
		_, err := Parse("assume 0 13")
		if !errors.Is(err, runelock.ErrActivationOutOfBounds) {
			t.Errorf("Parse = %v, want ErrActivationOutOfBounds", err)
		}
	})

	t.Run("position out of range", func(t *testing.T) {
		if _, err := Parse("tp 12"); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("empty line", func(t *testing.T) {
		if _, err := Parse(""); err == nil {
			t.Error("expected an error")
		}
	})
}
