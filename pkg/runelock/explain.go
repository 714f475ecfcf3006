// Package runelock explanation generator. Walks the justification DAG
// recorded in a FactDB and renders a human-readable causal chain for any
// fact.
//
// Termination needs no cycle detection: a fact's reasons only cite
// strictly earlier log entries, so recursion always descends toward the
// front of the log. The depth bound exists to keep output readable, not
// to guarantee termination; hitting it is reported explicitly.
package runelock

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Explain writes a causal chain for the fact under handle, following fact
// reasons up to maxDepth levels deep. Unknown handles are reported as an
// UnknownFactError.
//
// Uniqueness deductions typically cite one exclusion per sibling cell,
// all with identical reasoning; to avoid drowning the reader, cited facts
// that share kind, activation and reason set but differ only in position
// are grouped and reported once with the affected positions joined.
func (db *FactDB) Explain(w io.Writer, handle FactHandle, lock *Lock, maxDepth int) error {
	if _, err := db.Fact(handle); err != nil {
		return err
	}
	db.explainFact(w, handle, lock, 0, maxDepth)
	return nil
}

// factShape is the grouping key for cited facts: everything that
// identifies a deduction except the position it lands on.
type factShape struct {
	kind          FactKind
	contradiction ContradictionKind
	activation    Activation
	reasonKey     string
}

func shapeOf(f Fact) factShape {
	var b strings.Builder
	for _, r := range f.Reasons {
		fmt.Fprintf(&b, "%d:%d:%d;", r.Kind, r.Fact, r.Rule)
	}
	return factShape{
		kind:          f.Kind,
		contradiction: f.Contradiction,
		activation:    f.Activation,
		reasonKey:     b.String(),
	}
}

func (db *FactDB) explainFact(w io.Writer, handle FactHandle, lock *Lock, depth, maxDepth int) {
	fact, err := db.Fact(handle)
	if err != nil {
		fmt.Fprintf(w, "unknown fact %s\n", handle)
		return
	}

	inset := strings.Repeat(" ", depth*4)
	fmt.Fprintf(w, "%s: %s\n", handle, fact)

	if depth >= maxDepth {
		if len(fact.Reasons) > 0 {
			fmt.Fprintf(w, "%s -> ... (depth limit reached)\n", inset)
		}
		return
	}

	// Rule citations and assumption markers first; they are leaves.
	for _, reason := range fact.Reasons {
		switch reason.Kind {
		case ReasonRule:
			fmt.Fprintf(w, "%s -> Rule %d: '%s'\n", inset, reason.Rule, lock.Rules[reason.Rule])
		case ReasonAssumption:
			fmt.Fprintf(w, "%s -> Fact is Assumed.\n", inset)
		}
	}

	// Group cited facts that differ only in position.
	groups := make(map[factShape][]FactHandle)
	var order []factShape
	for _, reason := range fact.Reasons {
		if reason.Kind != ReasonFact {
			continue
		}
		cited, err := db.Fact(reason.Fact)
		if err != nil {
			fmt.Fprintf(w, "%s -> unknown fact %s\n", inset, reason.Fact)
			continue
		}
		shape := shapeOf(cited)
		if _, seen := groups[shape]; !seen {
			order = append(order, shape)
		}
		groups[shape] = append(groups[shape], reason.Fact)
	}

	for _, shape := range order {
		handles := groups[shape]
		if len(handles) == 1 {
			fmt.Fprintf(w, "%s -> ", inset)
			db.explainFact(w, handles[0], lock, depth+1, maxDepth)
			continue
		}

		positions := make([]string, len(handles))
		for i, h := range handles {
			cited, _ := db.Fact(h)
			positions[i] = cited.Position.String()
		}
		fmt.Fprintf(w, "%s -> %s\n", inset, groupVerb(shape, positions))

		// The group shares one reason set; explain it once.
		representative, _ := db.Fact(handles[0])
		reasons := append([]Reason(nil), representative.Reasons...)
		sort.Slice(reasons, func(i, j int) bool {
			if reasons[i].Kind != reasons[j].Kind {
				return reasons[i].Kind < reasons[j].Kind
			}
			if reasons[i].Fact != reasons[j].Fact {
				return reasons[i].Fact < reasons[j].Fact
			}
			return reasons[i].Rule < reasons[j].Rule
		})
		childInset := strings.Repeat(" ", (depth+1)*4)
		for _, reason := range reasons {
			switch reason.Kind {
			case ReasonFact:
				if depth+1 >= maxDepth {
					cited, _ := db.Fact(reason.Fact)
					fmt.Fprintf(w, "%s -> %s: %s\n", childInset, reason.Fact, cited)
					fmt.Fprintf(w, "%s    -> ... (depth limit reached)\n", childInset)
					continue
				}
				fmt.Fprintf(w, "%s -> ", childInset)
				db.explainFact(w, reason.Fact, lock, depth+2, maxDepth)
			case ReasonRule:
				fmt.Fprintf(w, "%s -> Rule %d: '%s'\n", childInset, reason.Rule, lock.Rules[reason.Rule])
			case ReasonAssumption:
				fmt.Fprintf(w, "%s -> Fact is Assumed.\n", childInset)
			}
		}
	}
}

func groupVerb(shape factShape, positions []string) string {
	joined := strings.Join(positions, ", ")
	switch shape.kind {
	case FactContradiction:
		if shape.contradiction == NoOptionsLeft {
			return fmt.Sprintf("%s has no options left to go", shape.activation)
		}
		return fmt.Sprintf("%s has contradicting facts regarding position %s",
			shape.activation, joined)
	case FactCannotBe:
		return fmt.Sprintf("%s cannot be on %s", shape.activation, joined)
	case FactMustBe:
		return fmt.Sprintf("%s must be on %s", shape.activation, joined)
	default:
		return fmt.Sprintf("%s relates to %s", shape.activation, joined)
	}
}
