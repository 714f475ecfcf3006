// Package runelock constraint rules. This file defines the binary rules a
// lock imposes on its activations and the evaluator that checks them
// against partial assignments.
package runelock

import (
	"errors"
	"fmt"
)

// RuleKind enumerates the relation a rule demands between its operands.
type RuleKind int

const (
	// RuleAlwanese: the second activation's position must be alwanese of
	// the first's (within two clockwise steps of ring distance).
	RuleAlwanese RuleKind = iota
	// RuleAntakianConjugates: the two positions must sit opposite each
	// other on the same ring.
	RuleAntakianConjugates
	// RuleAlwaneseConjugates: the two positions must occupy opposite
	// angles, on either ring.
	RuleAlwaneseConjugates
	// RuleDifferentRunes: the two positions must carry different labels.
	RuleDifferentRunes
	// RuleAntakianTwins: the two positions must share a ring.
	RuleAntakianTwins
	// RuleIncreaseSantor: the second position's santor weight must be
	// strictly larger than the first's.
	RuleIncreaseSantor
	// RuleMax0Conductive: the two positions must be adjacent under the
	// doubled-ring connectivity.
	RuleMax0Conductive
	// RuleRuneFollows: wherever the first label's position is activated,
	// the immediately following activation must light a position carrying
	// the second label. Operands are rune labels, not activations.
	RuleRuneFollows
)

// Rule is one immutable entry of a lock's rule list. Activation rules use
// First/Second; RuleRuneFollows uses FirstRune/SecondRune instead. Rules
// are cited by their stable index in the lock's rule list.
type Rule struct {
	Kind       RuleKind
	First      Activation
	Second     Activation
	FirstRune  Rune
	SecondRune Rune
}

// Rule outcome errors. Violated means the placed operands break the
// relation; Unfulfillable means the relation can no longer be satisfied
// given the current placements even though an operand is still open.
var (
	ErrRuleViolated      = errors.New("rule is violated")
	ErrRuleUnfulfillable = errors.New("rule is not fulfillable in this situation")
)

func (r Rule) String() string {
	switch r.Kind {
	case RuleAlwanese:
		return fmt.Sprintf("%s & %s are Alwanese", r.First, r.Second)
	case RuleAntakianConjugates:
		return fmt.Sprintf("%s & %s are Antakian Conjugates", r.First, r.Second)
	case RuleAlwaneseConjugates:
		return fmt.Sprintf("%s & %s are Alwanese Conjugates", r.First, r.Second)
	case RuleDifferentRunes:
		return fmt.Sprintf("%s & %s are Different Runes", r.First, r.Second)
	case RuleAntakianTwins:
		return fmt.Sprintf("%s & %s are Antakian Twins", r.First, r.Second)
	case RuleIncreaseSantor:
		return fmt.Sprintf("%s & %s increase Santor", r.First, r.Second)
	case RuleMax0Conductive:
		return fmt.Sprintf("%s & %s are max 0 Conductive", r.First, r.Second)
	case RuleRuneFollows:
		return fmt.Sprintf("%s immediately follows %s", r.SecondRune, r.FirstRune)
	default:
		return fmt.Sprintf("unknown rule kind %d", int(r.Kind))
	}
}

// Mentions reports whether act is one of the rule's activation operands.
// RuleRuneFollows mentions no activation directly; its propagation is
// keyed on position labels instead.
func (r Rule) Mentions(act Activation) bool {
	if r.Kind == RuleRuneFollows {
		return false
	}
	return r.First == act || r.Second == act
}

// Validate checks the rule against a possibly partial assignment.
//
// A nil return means the rule cannot (yet) fail. ErrRuleViolated means
// both relevant operands are placed and the relation does not hold.
// ErrRuleUnfulfillable means the placements made so far already rule out
// every completion.
func (r Rule) Validate(lock *Lock, asg *Assignment) error {
	switch r.Kind {
	case RuleAlwanese:
		one, okOne := asg.PositionOf(r.First)
		two, okTwo := asg.PositionOf(r.Second)
		if okOne && okTwo && !two.AlwaneseOf(one) {
			return ErrRuleViolated
		}
		return nil

	case RuleAntakianConjugates:
		one, okOne := asg.PositionOf(r.First)
		two, okTwo := asg.PositionOf(r.Second)
		switch {
		case okOne && okTwo:
			if !one.AntakianConjugateOf(two) {
				return ErrRuleViolated
			}
		case okOne:
			// The partner slot is fixed by geometry; if something else
			// already sits there the rule cannot be completed.
			if _, taken := asg.At(one.AntakianConjugate()); taken {
				return ErrRuleUnfulfillable
			}
		case okTwo:
			if _, taken := asg.At(two.AntakianConjugate()); taken {
				return ErrRuleUnfulfillable
			}
		}
		return nil

	case RuleAlwaneseConjugates:
		one, okOne := asg.PositionOf(r.First)
		two, okTwo := asg.PositionOf(r.Second)
		if okOne && okTwo && !one.AlwaneseConjugateOf(two) {
			return ErrRuleViolated
		}
		return nil

	case RuleDifferentRunes:
		one, okOne := asg.PositionOf(r.First)
		two, okTwo := asg.PositionOf(r.Second)
		if okOne && okTwo && lock.Runes[one] == lock.Runes[two] {
			return ErrRuleViolated
		}
		return nil

	case RuleAntakianTwins:
		one, okOne := asg.PositionOf(r.First)
		two, okTwo := asg.PositionOf(r.Second)
		if okOne && okTwo && !one.AntakianTwinOf(two) {
			return ErrRuleViolated
		}
		return nil

	case RuleIncreaseSantor:
		first, okFirst := asg.PositionOf(r.First)
		second, okSecond := asg.PositionOf(r.Second)
		switch {
		case okFirst && okSecond:
			if !first.IncreasesSantorTo(second) {
				return ErrRuleViolated
			}
		case okFirst:
			if first.Santor() == maxSantor {
				return ErrRuleUnfulfillable
			}
		case okSecond:
			if second.Santor() == minSantor {
				return ErrRuleUnfulfillable
			}
		}
		return nil

	case RuleMax0Conductive:
		one, okOne := asg.PositionOf(r.First)
		two, okTwo := asg.PositionOf(r.Second)
		if okOne && okTwo && !one.Max0ConductiveWith(two) {
			return ErrRuleViolated
		}
		return nil

	case RuleRuneFollows:
		for idx, label := range lock.Runes {
			if label != r.FirstRune {
				continue
			}
			act, ok := asg.At(Position(idx))
			if !ok {
				continue
			}
			next, hasNext := act.Next()
			if !hasNext {
				// The last activation has no successor to place.
				return ErrRuleUnfulfillable
			}
			if nextPos, placed := asg.PositionOf(next); placed && lock.Runes[nextPos] != r.SecondRune {
				return ErrRuleViolated
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown rule kind %d", int(r.Kind))
	}
}

// ValidatePair checks the rule against a throwaway two-cell assignment
// built from a and b. The propagation engine uses it to probe one
// candidate at a time without touching real state. A pair that cannot
// even form a valid assignment (same position or same activation twice)
// is reported through the assignment's own error.
func (r Rule) ValidatePair(lock *Lock, a, b Placement) error {
	asg, err := AssignmentFromPlacements(a, b)
	if err != nil {
		return err
	}
	return r.Validate(lock, &asg)
}

// Helper constructors for the activation rules; operands are one-based
// activation numbers as they appear in lock descriptions.

func mustActivation(oneBased int) Activation {
	act, err := ActivationFromHuman(oneBased)
	if err != nil {
		panic(fmt.Sprintf("rule activation %d: %v", oneBased, err))
	}
	return act
}

// Alwanese builds a RuleAlwanese over one-based activations.
func Alwanese(first, second int) Rule {
	return Rule{Kind: RuleAlwanese, First: mustActivation(first), Second: mustActivation(second)}
}

// AntakianConjugates builds a RuleAntakianConjugates over one-based activations.
func AntakianConjugates(first, second int) Rule {
	return Rule{Kind: RuleAntakianConjugates, First: mustActivation(first), Second: mustActivation(second)}
}

// AlwaneseConjugates builds a RuleAlwaneseConjugates over one-based activations.
func AlwaneseConjugates(first, second int) Rule {
	return Rule{Kind: RuleAlwaneseConjugates, First: mustActivation(first), Second: mustActivation(second)}
}

// DifferentRunes builds a RuleDifferentRunes over one-based activations.
func DifferentRunes(first, second int) Rule {
	return Rule{Kind: RuleDifferentRunes, First: mustActivation(first), Second: mustActivation(second)}
}

// AntakianTwins builds a RuleAntakianTwins over one-based activations.
func AntakianTwins(first, second int) Rule {
	return Rule{Kind: RuleAntakianTwins, First: mustActivation(first), Second: mustActivation(second)}
}

// IncreaseSantor builds a RuleIncreaseSantor over one-based activations.
func IncreaseSantor(first, second int) Rule {
	return Rule{Kind: RuleIncreaseSantor, First: mustActivation(first), Second: mustActivation(second)}
}

// Max0Conductive builds a RuleMax0Conductive over one-based activations.
func Max0Conductive(first, second int) Rule {
	return Rule{Kind: RuleMax0Conductive, First: mustActivation(first), Second: mustActivation(second)}
}

// RuneFollows builds a RuleRuneFollows over two rune labels.
func RuneFollows(first, second Rune) Rule {
	return Rule{Kind: RuleRuneFollows, FirstRune: first, SecondRune: second}
}
