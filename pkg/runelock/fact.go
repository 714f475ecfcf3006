// Package runelock fact model. Facts are the atomic unit of knowledge the
// solver maintains: each one states something about a single
// (position, activation) cell and remembers why it holds.
//
// Facts live in an append-only log addressed by small integer handles, in
// the manner of a truth-maintenance system's node arena. A fact's reasons
// only ever cite strictly earlier handles, so log order is a topological
// order of the justification DAG and every traversal terminates without
// cycle checks.
package runelock

import (
	"fmt"
	"strconv"
)

// FactHandle is the stable index of a fact in its database's log. Handles
// stay valid for the lifetime of the database even after the cell's
// current fact is superseded.
type FactHandle int

func (h FactHandle) String() string {
	return "F" + strconv.Itoa(int(h))
}

// UnknownFactError reports a handle that does not name a fact in the
// database. It is a routine lookup error, never fatal.
type UnknownFactError struct {
	Handle FactHandle
}

func (e *UnknownFactError) Error() string {
	return fmt.Sprintf("unknown fact handle %s", e.Handle)
}

// FactKind classifies what a fact states about its cell. Kinds form a
// monotonic lattice: unknown < {FactMustBe, FactCannotBe} <
// FactContradiction, and FactContradiction is absorbing.
type FactKind int

const (
	// FactCannotBe states the activation is excluded from the position.
	FactCannotBe FactKind = iota
	// FactMustBe states the activation is placed on the position.
	FactMustBe
	// FactContradiction states the cell is logically impossible.
	FactContradiction
)

// ContradictionKind distinguishes how a cell became impossible.
type ContradictionKind int

const (
	// ContradictingRequirements: a MustBe and a CannotBe collided on the
	// same cell.
	ContradictingRequirements ContradictionKind = iota
	// NoOptionsLeft: every candidate of a position or activation line was
	// excluded without any cell being forced.
	NoOptionsLeft
)

// ReasonKind tags a justification entry.
type ReasonKind int

const (
	// ReasonFact cites another fact by handle.
	ReasonFact ReasonKind = iota
	// ReasonRule cites a lock rule by index.
	ReasonRule
	// ReasonAssumption marks a user-injected fact with no prior cause.
	ReasonAssumption
)

// Reason is one justification entry of a fact: an earlier fact, a lock
// rule, or a bare assumption marker. The struct is comparable so reason
// sets can be grouped and deduplicated during explanation.
type Reason struct {
	Kind ReasonKind
	Fact FactHandle // valid when Kind == ReasonFact
	Rule int        // valid when Kind == ReasonRule
}

// ByFact cites an earlier fact.
func ByFact(h FactHandle) Reason {
	return Reason{Kind: ReasonFact, Fact: h}
}

// ByRule cites a lock rule by index.
func ByRule(index int) Reason {
	return Reason{Kind: ReasonRule, Rule: index}
}

// ByAssumption marks a fact as assumed.
func ByAssumption() Reason {
	return Reason{Kind: ReasonAssumption}
}

// Fact is one immutable statement about a (position, activation) cell
// together with its ordered justification list.
type Fact struct {
	Kind          FactKind
	Contradiction ContradictionKind // valid when Kind == FactContradiction
	Position      Position
	Activation    Activation
	Reasons       []Reason
}

func (f Fact) String() string {
	var verb string
	switch f.Kind {
	case FactContradiction:
		verb = "caused a Contradiction on"
	case FactCannotBe:
		verb = "cannot be on"
	case FactMustBe:
		verb = "must be on"
	default:
		verb = "relates somehow to"
	}
	return fmt.Sprintf("%s %s %s", f.Activation, verb, f.Position)
}
