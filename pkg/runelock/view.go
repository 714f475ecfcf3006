package runelock

// View fixes one axis of the fact grid and enumerates the cells along the
// other. The two implementations let the uniqueness logic and the
// candidate queries run identically position-major and activation-major
// instead of being written twice.
type View interface {
	// LineLen returns the number of cells on the line for a grid of the
	// given dimensions.
	LineLen(positions, activations int) int
	// Cell reconstructs the (position, activation) pair of the i-th cell
	// on the line.
	Cell(i int) (Position, Activation)
	// Placement is Cell packaged for callers that fan out assumptions.
	Placement(i int) Placement
}

// PositionView is the line of all activations for one fixed position.
type PositionView Position

// LineLen implements View.
func (v PositionView) LineLen(positions, activations int) int { return activations }

// Cell implements View.
func (v PositionView) Cell(i int) (Position, Activation) {
	return Position(v), Activation(i)
}

// Placement implements View.
func (v PositionView) Placement(i int) Placement {
	return Placement{Position: Position(v), Activation: Activation(i)}
}

// ActivationView is the line of all positions for one fixed activation.
type ActivationView Activation

// LineLen implements View.
func (v ActivationView) LineLen(positions, activations int) int { return positions }

// Cell implements View.
func (v ActivationView) Cell(i int) (Position, Activation) {
	return Position(i), Activation(v)
}

// Placement implements View.
func (v ActivationView) Placement(i int) Placement {
	return Placement{Position: Position(i), Activation: Activation(v)}
}
