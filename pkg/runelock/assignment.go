package runelock

import "fmt"

// Placement pairs one position with one activation. It is the unit in
// which assumptions, rule probes and solved cells travel through the API.
type Placement struct {
	Position   Position
	Activation Activation
}

func (p Placement) String() string {
	return fmt.Sprintf("%s = %s", p.Position, p.Activation)
}

// Assignment is a partial injective mapping between positions and
// activations, kept as two inverse lookup arrays so that "activation at
// position" and "position of activation" are both O(1) and always
// mutually consistent.
//
// Assign silently evicts older pairings and is meant for transient
// validity probes only; the authoritative knowledge store is the FactDB.
type Assignment struct {
	activationOf [RingSize]int // position -> activation index, -1 when empty
	positionOf   [RingSize]int // activation -> position index, -1 when empty
}

// DoubleAssignmentError reports an activation that two placements tried to
// claim, or a position two activations tried to occupy. It indicates a
// contract violation in the caller: the propagation engine reifies such
// collisions as contradiction facts before an Assignment is ever built.
type DoubleAssignmentError struct {
	Activation Activation
	First      Position
	Second     Position
}

func (e *DoubleAssignmentError) Error() string {
	return fmt.Sprintf("activation %s was assigned twice, to %s and %s",
		e.Activation, e.First, e.Second)
}

// OccupiedPositionError reports a position that two placements tried to
// fill with different activations.
type OccupiedPositionError struct {
	Position Position
	First    Activation
	Second   Activation
}

func (e *OccupiedPositionError) Error() string {
	return fmt.Sprintf("position %s was assigned twice, to %s and %s",
		e.Position, e.First, e.Second)
}

// NewAssignment returns an empty assignment.
func NewAssignment() Assignment {
	var a Assignment
	for i := range a.activationOf {
		a.activationOf[i] = -1
		a.positionOf[i] = -1
	}
	return a
}

// AssignmentFromPlacements builds an assignment from placements, rejecting
// any duplicate activation or occupied position instead of evicting.
func AssignmentFromPlacements(placements ...Placement) (Assignment, error) {
	a := NewAssignment()
	for _, p := range placements {
		if old := a.positionOf[p.Activation.Index()]; old >= 0 {
			return Assignment{}, &DoubleAssignmentError{
				Activation: p.Activation,
				First:      Position(old),
				Second:     p.Position,
			}
		}
		if old := a.activationOf[p.Position.Index()]; old >= 0 {
			return Assignment{}, &OccupiedPositionError{
				Position: p.Position,
				First:    Activation(old),
				Second:   p.Activation,
			}
		}
		a.set(p.Position, p.Activation)
	}
	return a, nil
}

func (a *Assignment) set(pos Position, act Activation) {
	a.activationOf[pos.Index()] = act.Index()
	a.positionOf[act.Index()] = pos.Index()
}

// Assign places act on pos, evicting any previous pairing of either so the
// two lookup arrays stay consistent.
func (a *Assignment) Assign(pos Position, act Activation) {
	if old := a.positionOf[act.Index()]; old >= 0 {
		a.activationOf[old] = -1
	}
	if old := a.activationOf[pos.Index()]; old >= 0 {
		a.positionOf[old] = -1
	}
	a.set(pos, act)
}

// At returns the activation placed on pos, if any.
func (a *Assignment) At(pos Position) (Activation, bool) {
	idx := a.activationOf[pos.Index()]
	if idx < 0 {
		return 0, false
	}
	return Activation(idx), true
}

// PositionOf returns the position act is placed on, if any.
func (a *Assignment) PositionOf(act Activation) (Position, bool) {
	idx := a.positionOf[act.Index()]
	if idx < 0 {
		return 0, false
	}
	return Position(idx), true
}

// Contains reports whether act is placed anywhere.
func (a *Assignment) Contains(act Activation) bool {
	return a.positionOf[act.Index()] >= 0
}

// Len returns the number of placed activations.
func (a *Assignment) Len() int {
	n := 0
	for _, idx := range a.positionOf {
		if idx >= 0 {
			n++
		}
	}
	return n
}

// Complete reports whether every position is filled, i.e. the assignment
// is a full bijection.
func (a *Assignment) Complete() bool {
	return a.Len() == RingSize
}
