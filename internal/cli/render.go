// Terminal rendering for the solver shell. The renderer owns an output
// writer and a color switch; when color is off every style renders as
// plain text, so piped output stays clean.
package cli

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitrdm/runelock/pkg/runelock"
)

//go:embed rings.txt
var ringsLayout string

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	contradictedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
)

// Renderer draws solver state onto one writer.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer returns a renderer. With color false all styling is
// suppressed.
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// RenderUI draws the full screen: assumption tree, cursor, the two-ring
// lock with the forced placements, the rule verdict and the fact count.
func (r *Renderer) RenderUI(s *runelock.Solver) {
	r.RenderTree(s)
	fmt.Fprintf(r.out, "Current node: %s\n\n", r.style(cursorStyle, s.Current().String()))

	asg, err := s.CurrentAssignment()
	if err != nil {
		// A contradicted branch has no consistent projection; say so
		// instead of drawing a bogus lock.
		fmt.Fprintf(r.out, "%s\n", r.style(contradictedStyle, fmt.Sprintf("No consistent assignment: %v", err)))
	} else {
		r.RenderLock(&asg)
		if verr := s.Lock().Validate(&asg); verr != nil {
			fmt.Fprintf(r.out, "%s\n", r.style(contradictedStyle, fmt.Sprintf("Invalid assignment: %v", verr)))
		} else {
			fmt.Fprintln(r.out, "Valid state.")
		}
	}

	node := s.CurrentNode()
	fmt.Fprintf(r.out, "%d facts recorded.\n", node.Facts.FactCount())
	if node.Status == runelock.StatusContradicted {
		fmt.Fprintf(r.out, "%s\n", r.style(contradictedStyle,
			fmt.Sprintf("Contradiction at %s (explain %d)", node.Contradiction, int(node.Contradiction))))
	}
}

// RenderTree draws the assumption tree with one line per node: id, status
// glyph and the action that created it.
func (r *Renderer) RenderTree(s *runelock.Solver) {
	fmt.Fprintln(r.out, r.style(titleStyle, "Assumptions"))
	s.Tree().Walk(func(h runelock.NodeHandle, depth int) {
		node := s.Node(h)
		glyph := " "
		line := fmt.Sprintf("%s- (%d) [%s] %s", strings.Repeat("  ", depth), int(h), glyph, node.Action)
		switch node.Status {
		case runelock.StatusContradicted:
			glyph = "✘"
			line = fmt.Sprintf("%s- (%d) [%s %s] %s",
				strings.Repeat("  ", depth), int(h), glyph, node.Contradiction, node.Action)
			line = r.style(contradictedStyle, line)
		case runelock.StatusSolved:
			glyph = "✔"
			line = fmt.Sprintf("%s- (%d) [%s] %s", strings.Repeat("  ", depth), int(h), glyph, node.Action)
			line = r.style(solvedStyle, line)
		}
		if h == s.Current() {
			line += r.style(cursorStyle, "  <- current")
		}
		fmt.Fprintln(r.out, line)
	})
}

// RenderLock draws the two rings with each decided position showing its
// activation and each open position showing its dimmed index.
func (r *Renderer) RenderLock(asg *runelock.Assignment) {
	cells := make([]any, runelock.RingSize)
	for p := 0; p < runelock.RingSize; p++ {
		if act, ok := asg.At(runelock.Position(p)); ok {
			cells[p] = fmt.Sprintf("%3s", act)
		} else {
			cells[p] = r.style(dimStyle, fmt.Sprintf("%3d", p))
		}
	}
	fmt.Fprintf(r.out, ringsLayout, cells...)
	fmt.Fprintln(r.out)
}

// RenderGrid draws the 12x12 knowledge grid, one row per position and one
// column per activation: '+' forced, '-' excluded, '!' contradicted, '.'
// open.
func (r *Renderer) RenderGrid(db *runelock.FactDB) {
	fmt.Fprintln(r.out, r.style(titleStyle, "Knowledge"))
	fmt.Fprint(r.out, "      ")
	for a := 0; a < runelock.RingSize; a++ {
		fmt.Fprintf(r.out, "%3s", runelock.Activation(a))
	}
	fmt.Fprintln(r.out)

	for p := 0; p < runelock.RingSize; p++ {
		fmt.Fprintf(r.out, "%5d ", p)
		for a := 0; a < runelock.RingSize; a++ {
			glyph := "."
			if h, ok := db.At(runelock.Position(p), runelock.Activation(a)); ok {
				fact, err := db.Fact(h)
				if err == nil {
					switch fact.Kind {
					case runelock.FactMustBe:
						glyph = "+"
					case runelock.FactCannotBe:
						glyph = "-"
					case runelock.FactContradiction:
						glyph = "!"
					}
				}
			}
			fmt.Fprintf(r.out, "%3s", glyph)
		}
		fmt.Fprintln(r.out)
	}
}
