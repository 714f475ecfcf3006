package runelock

import "fmt"

// Lock is the immutable description of one puzzle instance: the rune
// label carved into each position and the rule list constraining the
// activations. Both are fixed at construction time; rules are cited by
// their index for justification purposes.
type Lock struct {
	// Runes addresses the outer ring first, then the inner ring.
	Runes [RingSize]Rune
	Rules []Rule
}

// RuleViolationError reports which rule of a lock failed validation and
// how.
type RuleViolationError struct {
	Index int
	Rule  Rule
	Err   error
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("rule %d (%s): %v", e.Index, e.Rule, e.Err)
}

func (e *RuleViolationError) Unwrap() error {
	return e.Err
}

// Validate checks every rule of the lock against the assignment, stopping
// at the first violated or unfulfillable rule.
func (l *Lock) Validate(asg *Assignment) error {
	for i, rule := range l.Rules {
		if err := rule.Validate(l, asg); err != nil {
			return &RuleViolationError{Index: i, Rule: rule, Err: err}
		}
	}
	return nil
}

// DefaultLock returns the built-in lock instance: the twelve observed
// rune labels and the thirteen known rules.
func DefaultLock() *Lock {
	return &Lock{
		Runes: [RingSize]Rune{
			// Outer ring
			RuneZ, RuneS, RuneV, RuneC, RuneS, RuneV,
			// Inner ring
			RuneC, RuneS, RuneV, RuneZ, RuneS, RuneV,
		},
		Rules: []Rule{
			Alwanese(1, 2),
			AntakianConjugates(2, 3),
			Alwanese(3, 4),
			AlwaneseConjugates(6, 7),
			AntakianConjugates(6, 8),
			DifferentRunes(7, 8),
			Alwanese(9, 10),
			AntakianTwins(9, 10),
			IncreaseSantor(10, 11),
			IncreaseSantor(11, 12),
			AntakianTwins(8, 10),
			Alwanese(1, 12),
			RuneFollows(RuneZ, RuneV),
		},
	}
}
