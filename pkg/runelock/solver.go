// Package runelock search controller. The solver wraps a FactDB per
// assumption-tree node and exposes the user-level operations: assume a
// placement, fan out over all open candidates, navigate between branches,
// and explain any recorded fact.
package runelock

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// NodeStatus is the lifecycle state of one assumption-tree node.
type NodeStatus int

const (
	// StatusAlive nodes accept further assumptions.
	StatusAlive NodeStatus = iota
	// StatusContradicted nodes hold a database whose last integration
	// ended in a contradiction. Terminal, but still inspectable.
	StatusContradicted
	// StatusSolved nodes hold a complete assignment validating every
	// rule. Terminal.
	StatusSolved
)

func (s NodeStatus) String() string {
	switch s {
	case StatusAlive:
		return "alive"
	case StatusContradicted:
		return "contradicted"
	case StatusSolved:
		return "solved"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ActionKind tags what produced a tree node.
type ActionKind int

const (
	// ActionRoot marks the initial empty node.
	ActionRoot ActionKind = iota
	// ActionAssume marks a node produced by assuming one placement.
	ActionAssume
)

// Action records the operation that produced a node.
type Action struct {
	Kind      ActionKind
	Placement Placement // valid when Kind == ActionAssume
}

func (a Action) String() string {
	if a.Kind == ActionRoot {
		return "Root"
	}
	return fmt.Sprintf("Assume %s", a.Placement)
}

// Node is the payload of one assumption-tree node: a database snapshot,
// the action that produced it, its status, and the contradiction handle
// when contradicted.
type Node struct {
	Facts         *FactDB
	Action        Action
	Status        NodeStatus
	Contradiction FactHandle // valid when Status == StatusContradicted
}

// TerminalNodeError reports an assumption attempted on a node that can
// take no further children.
type TerminalNodeError struct {
	Node   NodeHandle
	Status NodeStatus
}

func (e *TerminalNodeError) Error() string {
	return fmt.Sprintf("node %s is %s and accepts no further assumptions", e.Node, e.Status)
}

// Solver drives the fact database through an assumption tree. All
// operations are synchronous and single-threaded; each node exclusively
// owns its database snapshot.
type Solver struct {
	lock    *Lock
	tree    *AssumptionTree[Node]
	current NodeHandle
	logger  *slog.Logger
}

// SolverOption configures a Solver at construction time.
type SolverOption func(*Solver)

// WithLogger routes solver and database debug telemetry to l.
func WithLogger(l *slog.Logger) SolverOption {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSolver returns a solver over the given lock with an empty root
// database.
func NewSolver(lock *Lock, opts ...SolverOption) *Solver {
	s := &Solver{
		lock:   lock,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	db := NewFactDB(RingSize, RingSize)
	db.SetLogger(s.logger)
	s.tree, s.current = NewAssumptionTree(Node{
		Facts:  db,
		Action: Action{Kind: ActionRoot},
		Status: StatusAlive,
	})
	return s
}

// Lock returns the puzzle definition the solver runs against.
func (s *Solver) Lock() *Lock {
	return s.lock
}

// Current returns the cursor's node handle.
func (s *Solver) Current() NodeHandle {
	return s.current
}

// Tree exposes the assumption tree for read-only presentation.
func (s *Solver) Tree() *AssumptionTree[Node] {
	return s.tree
}

// Node returns the payload of a tree node.
func (s *Solver) Node(h NodeHandle) *Node {
	return s.tree.Data(h)
}

// CurrentNode returns the payload under the cursor.
func (s *Solver) CurrentNode() *Node {
	return s.tree.Data(s.current)
}

// Assume clones the current database, integrates a MustBe fact justified
// only by assumption, records the outcome as a new child node and moves
// the cursor there. This is the only way new tree nodes are created.
func (s *Solver) Assume(act Activation, pos Position) (NodeHandle, error) {
	parent := s.tree.Data(s.current)
	if parent.Status != StatusAlive {
		return s.current, &TerminalNodeError{Node: s.current, Status: parent.Status}
	}

	derived := parent.Facts.Clone()
	node := Node{
		Facts:  derived,
		Action: Action{Kind: ActionAssume, Placement: Placement{Position: pos, Activation: act}},
		Status: StatusAlive,
	}

	err := derived.IntegrateAndConsolidate(Fact{
		Kind:       FactMustBe,
		Position:   pos,
		Activation: act,
		Reasons:    []Reason{ByAssumption()},
	}, s.lock)

	var contradiction *ContradictionError
	switch {
	case errors.As(err, &contradiction):
		node.Status = StatusContradicted
		node.Contradiction = contradiction.Handle
	case err != nil:
		// IntegrateAndConsolidate only fails with ContradictionError;
		// anything else is a programming error worth surfacing.
		return s.current, err
	default:
		if s.isSolved(derived) {
			node.Status = StatusSolved
		}
	}

	s.current = s.tree.InsertChild(s.current, node)
	s.logger.Debug("assumption recorded",
		"node", s.current,
		"placement", node.Action.Placement.String(),
		"status", node.Status.String())
	return s.current, nil
}

// isSolved reports whether the database forces a complete assignment that
// validates the entire rule list.
func (s *Solver) isSolved(db *FactDB) bool {
	asg, err := db.FixedAssignment()
	if err != nil || !asg.Complete() {
		return false
	}
	return s.lock.Validate(&asg) == nil
}

// TryPossibilities assumes, one sibling at a time, every still-open
// candidate of the view's line, restoring the cursor after each branch.
// It never auto-descends: after the call the cursor is exactly where it
// was, with one new child per surviving candidate recorded for
// inspection.
func (s *Solver) TryPossibilities(v View) ([]NodeHandle, error) {
	origin := s.current
	if node := s.tree.Data(origin); node.Status != StatusAlive {
		return nil, &TerminalNodeError{Node: origin, Status: node.Status}
	}

	possibilities := s.tree.Data(origin).Facts.PossibilitiesFor(v)
	children := make([]NodeHandle, 0, len(possibilities))
	for _, p := range possibilities {
		child, err := s.Assume(p.Activation, p.Position)
		s.current = origin
		if err != nil {
			return children, err
		}
		children = append(children, child)
	}
	return children, nil
}

// Handle validates a raw node id from the boundary.
func (s *Solver) Handle(id int) (NodeHandle, error) {
	return s.tree.Handle(id)
}

// SetCurrent moves the cursor to a node obtained from Handle.
func (s *Solver) SetCurrent(h NodeHandle) {
	s.current = h
}

// CurrentAssignment projects the cursor database's forced placements into
// an assignment.
func (s *Solver) CurrentAssignment() (Assignment, error) {
	return s.tree.Data(s.current).Facts.FixedAssignment()
}

// Explain writes the causal chain of the fact under handle, read from the
// cursor's database.
func (s *Solver) Explain(w io.Writer, handle FactHandle, maxDepth int) error {
	return s.tree.Data(s.current).Facts.Explain(w, handle, s.lock, maxDepth)
}

// DumpKnowledge writes the cursor database's fact summary.
func (s *Solver) DumpKnowledge(w io.Writer) {
	s.tree.Data(s.current).Facts.InfoDump(w)
}
