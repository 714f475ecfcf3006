// Package runelock fact database. This file implements the propagation
// engine: a grid holding the current fact per (position, activation) cell
// over an append-only fact log, with a fixpoint consolidation loop that
// combines the two uniqueness constraints and rule propagation.
package runelock

import (
	"fmt"
	"io"
	"log/slog"
)

// ContradictionError is the only hard failure of the propagation engine.
// It carries the handle of the contradiction fact so callers can abandon
// the branch and still explain what happened. It is always recoverable.
type ContradictionError struct {
	Handle FactHandle
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("contradiction reached, see fact %s", e.Handle)
}

// FactDB stores at most one current fact per cell plus the append-only
// log of every fact ever integrated. Superseded facts stay retrievable by
// handle because later facts' reasons may cite them.
//
// A FactDB is exclusively owned by the assumption-tree node holding it;
// branching clones the whole database so no two branches ever share
// mutable state.
type FactDB struct {
	positions   int
	activations int
	facts       []Fact
	grid        []int // cell -> fact log index, -1 when undetermined
	logger      *slog.Logger
}

// NewFactDB returns an empty database for a grid of the given dimensions.
func NewFactDB(positions, activations int) *FactDB {
	grid := make([]int, positions*activations)
	for i := range grid {
		grid[i] = -1
	}
	return &FactDB{
		positions:   positions,
		activations: activations,
		grid:        grid,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger routes the database's debug telemetry to l.
func (db *FactDB) SetLogger(l *slog.Logger) {
	if l != nil {
		db.logger = l
	}
}

// Clone returns an independent copy of the database. Fact reason slices
// are shared between the copies; facts are immutable once created, so the
// sharing is never observable.
func (db *FactDB) Clone() *FactDB {
	facts := make([]Fact, len(db.facts))
	copy(facts, db.facts)
	grid := make([]int, len(db.grid))
	copy(grid, db.grid)
	return &FactDB{
		positions:   db.positions,
		activations: db.activations,
		facts:       facts,
		grid:        grid,
		logger:      db.logger,
	}
}

// FactCount returns the number of facts ever integrated.
func (db *FactDB) FactCount() int {
	return len(db.facts)
}

// Fact returns the fact stored under h.
func (db *FactDB) Fact(h FactHandle) (Fact, error) {
	if h < 0 || int(h) >= len(db.facts) {
		return Fact{}, &UnknownFactError{Handle: h}
	}
	return db.facts[h], nil
}

// At returns the handle of the current fact of the cell, if any.
func (db *FactDB) At(pos Position, act Activation) (FactHandle, bool) {
	idx := db.grid[pos.Index()*db.activations+act.Index()]
	if idx < 0 {
		return 0, false
	}
	return FactHandle(idx), true
}

func (db *FactDB) cell(pos Position, act Activation) *int {
	return &db.grid[pos.Index()*db.activations+act.Index()]
}

func (db *FactDB) append(f Fact) FactHandle {
	db.facts = append(db.facts, f)
	return FactHandle(len(db.facts) - 1)
}

// IntegrateAndConsolidate is the single public write path. It integrates
// the fact into its cell and, if anything changed, reruns position
// uniqueness, activation uniqueness and rule propagation until a full
// pass derives nothing new.
//
// A contradiction anywhere aborts the call with a ContradictionError; the
// contradiction fact itself is retained (not rolled back) so the branch
// stays explainable.
func (db *FactDB) IntegrateAndConsolidate(f Fact, lock *Lock) error {
	handle, integrated, err := db.integrateChecked(f)
	if err != nil {
		return err
	}
	if !integrated {
		return nil
	}
	db.logger.Debug("fact integrated", "handle", handle, "fact", f.String())

	for pass := 1; ; pass++ {
		posChanged, err := db.consolidateAxis(func(line int) View { return PositionView(line) }, db.positions)
		if err != nil {
			return err
		}
		actChanged, err := db.consolidateAxis(func(line int) View { return ActivationView(line) }, db.activations)
		if err != nil {
			return err
		}
		ruleChanged, err := db.consolidateRules(lock)
		if err != nil {
			return err
		}
		db.logger.Debug("consolidation pass complete",
			"pass", pass,
			"positions", posChanged,
			"activations", actChanged,
			"rules", ruleChanged,
			"facts", len(db.facts))
		if !posChanged && !actChanged && !ruleChanged {
			return nil
		}
	}
}

// integrateSingle merges one fact into its cell without any global
// reasoning. It returns the handle now current in the cell and whether
// the database changed.
//
// Lattice behaviour: an empty cell stores the fact; an equal-kind rewrite
// is a no-op; MustBe/CannotBe collisions reify a contradiction citing
// both facts; an existing contradiction absorbs everything; an incoming
// contradiction overwrites anything else.
func (db *FactDB) integrateSingle(f Fact) (FactHandle, bool) {
	cell := db.cell(f.Position, f.Activation)
	if *cell < 0 {
		h := db.append(f)
		*cell = int(h)
		return h, true
	}

	existing := FactHandle(*cell)
	switch {
	case db.facts[existing].Kind == FactContradiction:
		return existing, false

	case f.Kind == FactContradiction:
		h := db.append(f)
		*cell = int(h)
		return h, true

	case db.facts[existing].Kind == f.Kind:
		// Already known. The new derivation might have a shorter reason
		// chain, but swapping it in could introduce circular reasoning
		// with facts integrated later in the same pass.
		return existing, false

	default:
		incoming := db.append(f)
		contradiction := db.append(Fact{
			Kind:          FactContradiction,
			Contradiction: ContradictingRequirements,
			Position:      f.Position,
			Activation:    f.Activation,
			Reasons:       []Reason{ByFact(existing), ByFact(incoming)},
		})
		*cell = int(contradiction)
		return contradiction, true
	}
}

// integrateChecked runs integrateSingle and converts a cell that ends up
// contradictory into a ContradictionError.
func (db *FactDB) integrateChecked(f Fact) (FactHandle, bool, error) {
	handle, integrated := db.integrateSingle(f)
	if db.facts[handle].Kind == FactContradiction {
		return handle, integrated, &ContradictionError{Handle: handle}
	}
	return handle, integrated, nil
}

// integrateBatch feeds a sub-pass's collected derivations through
// integrateChecked. Derivations are never applied speculatively while a
// sub-pass is still scanning, so within one pass facts do not see each
// other's results; sequential consistency holds only across passes, which
// is why consolidation iterates to a fixpoint.
func (db *FactDB) integrateBatch(derived []Fact) (bool, error) {
	changed := false
	for _, f := range derived {
		_, integrated, err := db.integrateChecked(f)
		if err != nil {
			return changed, err
		}
		if integrated {
			changed = true
		}
	}
	return changed, nil
}

// consolidateAxis applies per-line uniqueness along one axis of the grid.
// For every line it derives:
//   - CannotBe for every other cell when the line holds a MustBe,
//   - MustBe for a sole undetermined cell when all others are excluded,
//   - NoOptionsLeft contradictions when nothing on the line is possible.
func (db *FactDB) consolidateAxis(makeView func(line int) View, lines int) (bool, error) {
	var derived []Fact
	for line := 0; line < lines; line++ {
		derived = db.deriveLine(makeView(line), derived)
	}
	return db.integrateBatch(derived)
}

func (db *FactDB) deriveLine(v View, out []Fact) []Fact {
	n := v.LineLen(db.positions, db.activations)

	mustIdx := -1
	var mustHandle FactHandle
	for i := 0; i < n; i++ {
		pos, act := v.Cell(i)
		if h, ok := db.At(pos, act); ok && db.facts[h].Kind == FactMustBe {
			mustIdx, mustHandle = i, h
			break
		}
	}

	if mustIdx >= 0 {
		// The line is decided: everything else on it is excluded,
		// justified solely by the deciding fact. A second MustBe on the
		// line is deliberately not skipped so the collision reifies as a
		// contradiction during integration.
		for i := 0; i < n; i++ {
			if i == mustIdx {
				continue
			}
			pos, act := v.Cell(i)
			if h, ok := db.At(pos, act); ok {
				if k := db.facts[h].Kind; k == FactCannotBe || k == FactContradiction {
					continue
				}
			}
			out = append(out, Fact{
				Kind:       FactCannotBe,
				Position:   pos,
				Activation: act,
				Reasons:    []Reason{ByFact(mustHandle)},
			})
		}
		return out
	}

	var open []int
	var exclusions []Reason
	for i := 0; i < n; i++ {
		pos, act := v.Cell(i)
		h, ok := db.At(pos, act)
		if !ok {
			open = append(open, i)
			continue
		}
		if db.facts[h].Kind == FactCannotBe {
			exclusions = append(exclusions, ByFact(h))
		}
		// Contradiction cells contribute nothing: they are terminal.
	}

	switch len(open) {
	case 1:
		// Exactly one candidate survives; it is forced, justified by the
		// full set of exclusions that eliminated its siblings.
		pos, act := v.Cell(open[0])
		out = append(out, Fact{
			Kind:       FactMustBe,
			Position:   pos,
			Activation: act,
			Reasons:    exclusions,
		})
	case 0:
		// The line ran out of candidates without being decided.
		for i := 0; i < n; i++ {
			pos, act := v.Cell(i)
			out = append(out, Fact{
				Kind:          FactContradiction,
				Contradiction: NoOptionsLeft,
				Position:      pos,
				Activation:    act,
				Reasons:       exclusions,
			})
		}
	}
	return out
}

type given struct {
	placement Placement
	handle    FactHandle
}

// givens returns every cell currently holding a MustBe fact, in grid
// order.
func (db *FactDB) givens() []given {
	var out []given
	for p := 0; p < db.positions; p++ {
		for a := 0; a < db.activations; a++ {
			pos, act := Position(p), Activation(a)
			if h, ok := db.At(pos, act); ok && db.facts[h].Kind == FactMustBe {
				out = append(out, given{
					placement: Placement{Position: pos, Activation: act},
					handle:    h,
				})
			}
		}
	}
	return out
}

// consolidateRules derives exclusions from every current given and every
// rule mentioning it: each still-open candidate for the rule's other
// operand is probed with ValidatePair, and any non-Ok outcome excludes
// the candidate, justified by the given fact and the rule index.
func (db *FactDB) consolidateRules(lock *Lock) (bool, error) {
	var derived []Fact
	for _, g := range db.givens() {
		for index, rule := range lock.Rules {
			if rule.Kind == RuleRuneFollows {
				derived = db.deriveRuneFollows(lock, index, rule, g, derived)
				continue
			}
			for _, operands := range [2][2]Activation{
				{rule.First, rule.Second},
				{rule.Second, rule.First},
			} {
				this, other := operands[0], operands[1]
				if this != g.placement.Activation {
					continue
				}
				for _, candidate := range db.candidatesFor(ActivationView(other)) {
					if err := rule.ValidatePair(lock, g.placement, candidate); err != nil {
						derived = append(derived, Fact{
							Kind:       FactCannotBe,
							Position:   candidate.Position,
							Activation: candidate.Activation,
							Reasons:    []Reason{ByFact(g.handle), ByRule(index)},
						})
					}
				}
			}
		}
	}
	return db.integrateBatch(derived)
}

// deriveRuneFollows propagates the label-adjacency rule from a given
// whose position carries the rule's first label toward the candidates of
// the immediately following activation. The reverse direction (reasoning
// from second label back to first) is a known derivation gap left to the
// uniqueness passes.
func (db *FactDB) deriveRuneFollows(lock *Lock, index int, rule Rule, g given, out []Fact) []Fact {
	if lock.Runes[g.placement.Position] != rule.FirstRune {
		return out
	}
	next, ok := g.placement.Activation.Next()
	if !ok {
		return out
	}
	for _, candidate := range db.candidatesFor(ActivationView(next)) {
		if err := rule.ValidatePair(lock, g.placement, candidate); err != nil {
			out = append(out, Fact{
				Kind:       FactCannotBe,
				Position:   candidate.Position,
				Activation: candidate.Activation,
				Reasons:    []Reason{ByFact(g.handle), ByRule(index)},
			})
		}
	}
	return out
}

// candidatesFor returns the cells on the view's line a rule probe must
// still consider: undetermined cells and the decided cell itself, so a
// violated pair between two placed operands still surfaces.
func (db *FactDB) candidatesFor(v View) []Placement {
	n := v.LineLen(db.positions, db.activations)
	var out []Placement
	for i := 0; i < n; i++ {
		pos, act := v.Cell(i)
		h, ok := db.At(pos, act)
		if !ok || db.facts[h].Kind == FactMustBe {
			out = append(out, v.Placement(i))
		}
	}
	return out
}

// PossibilitiesFor returns the still-open cells of a line for external
// callers such as the search controller: only undetermined cells count,
// since a decided line has nothing left to explore.
func (db *FactDB) PossibilitiesFor(v View) []Placement {
	n := v.LineLen(db.positions, db.activations)
	var out []Placement
	for i := 0; i < n; i++ {
		pos, act := v.Cell(i)
		if _, ok := db.At(pos, act); !ok {
			out = append(out, v.Placement(i))
		}
	}
	return out
}

// FixedAssignment projects all current MustBe cells into an Assignment.
// Two MustBe cells for one activation reify as a contradiction during
// consolidation, so the error path is unreachable on a consistent
// database.
func (db *FactDB) FixedAssignment() (Assignment, error) {
	placements := make([]Placement, 0, RingSize)
	for _, g := range db.givens() {
		placements = append(placements, g.placement)
	}
	return AssignmentFromPlacements(placements...)
}

// InfoDump writes a plain-text summary of the database: the total fact
// count and the current fact of every decided cell.
func (db *FactDB) InfoDump(w io.Writer) {
	fmt.Fprintf(w, "%d facts recorded\n", len(db.facts))
	for p := 0; p < db.positions; p++ {
		for a := 0; a < db.activations; a++ {
			pos, act := Position(p), Activation(a)
			if h, ok := db.At(pos, act); ok {
				fmt.Fprintf(w, "%s: %s\n", h, db.facts[h])
			}
		}
	}
}
