package runelock

import (
	"fmt"
	"strconv"
)

// Activation identifies one of the twelve items to be placed on the lock.
// Internally zero-based; displayed one-based (#1 through #12) to match how
// the lock numbers them.
type Activation int

// ErrActivationOutOfBounds is returned for activation indices outside the
// valid domain.
var ErrActivationOutOfBounds = fmt.Errorf("activation is out of bounds [1, %d]", RingSize)

// ActivationFromHuman converts a one-based activation number, as typed at
// the boundary, into an Activation.
func ActivationFromHuman(oneBased int) (Activation, error) {
	if oneBased < 1 || oneBased > RingSize {
		return 0, ErrActivationOutOfBounds
	}
	return Activation(oneBased - 1), nil
}

// Next returns the activation that immediately follows a in activation
// order. ok is false for the last activation, which has no successor.
func (a Activation) Next() (next Activation, ok bool) {
	if int(a)+1 >= RingSize {
		return 0, false
	}
	return a + 1, true
}

// Index returns the raw array index of a.
func (a Activation) Index() int {
	return int(a)
}

func (a Activation) String() string {
	return "#" + strconv.Itoa(int(a)+1)
}
